package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_GroupsByStem(t *testing.T) {
	prefixes := []Prefix{"816221", "816223", "816224", "913550", "816222"}

	rules, err := Build(prefixes)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, RuleName("TP_81622"), rules[0].Name)
	assert.Equal(t, "+181622([1-4]XXXX)", rules[0].MatchingPattern)
	assert.Equal(t, "9081622$1", rules[0].ReplacementPattern)

	assert.Equal(t, RuleName("TP_91355"), rules[1].Name)
	assert.Equal(t, "+1913550(XXXX)", rules[1].MatchingPattern)
	assert.Equal(t, "90913550$1", rules[1].ReplacementPattern)
}

func TestBuild_DeduplicatesPrefixes(t *testing.T) {
	rules, err := Build([]Prefix{"816221", "816221", "816221"})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "+1816221(XXXX)", rules[0].MatchingPattern)
}

func TestBuild_Deterministic(t *testing.T) {
	// Same prefixes in two different input orders.
	a := []Prefix{"816229", "816220", "913551", "816225", "913559"}
	b := []Prefix{"913559", "816225", "816220", "913551", "816229"}

	first, err := Build(a)
	require.NoError(t, err)
	second, err := Build(b)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// And stable across repeated runs on the same input.
	again, err := Build(a)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestBuild_RejectsInvalidPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		prefix Prefix
	}{
		{"too short", "81622"},
		{"too long", "8162212"},
		{"non-digit", "81622x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]Prefix{tt.prefix})
			assert.Error(t, err)
		})
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	rules, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, rules)
}
