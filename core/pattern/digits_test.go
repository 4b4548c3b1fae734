package pattern

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDigitSet_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty set rejected",
			input:   "",
			wantErr: "must not be empty",
		},
		{
			name:    "non-digit rejected",
			input:   "12a",
			wantErr: "non-digit",
		},
		{
			name:    "duplicate rejected",
			input:   "122",
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDigitSet(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDigitSet_NormalizesOrder(t *testing.T) {
	set, err := NewDigitSet("9305")
	require.NoError(t, err)
	assert.Equal(t, "0359", set.String())
	assert.Equal(t, 4, set.Len())
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   string
	}{
		{
			name:   "single digit stays literal",
			digits: "5",
			want:   "5",
		},
		{
			// Intentionally irregular encoding: two adjacent digits are
			// enumerated, never written as a range.
			name:   "two adjacent digits enumerate",
			digits: "12",
			want:   "12",
		},
		{
			name:   "three consecutive digits form a range",
			digits: "123",
			want:   "1-3",
		},
		{
			name:   "isolated digits concatenate",
			digits: "135",
			want:   "135",
		},
		{
			name:   "mixed runs",
			digits: "0145679",
			want:   "014-79",
		},
		{
			name:   "all ten digits collapse to wildcard",
			digits: "0123456789",
			want:   Wildcard,
		},
		{
			name:   "nine digits stay a range",
			digits: "012345678",
			want:   "0-8",
		},
		{
			name:   "input order does not matter",
			digits: "7698",
			want:   "6-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewDigitSet(tt.digits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Compress())
		})
	}
}

// expand reverses Compress for test purposes: it rebuilds the plain digit
// string a compressed expression covers.
func expand(expr string) string {
	if expr == Wildcard {
		return "0123456789"
	}
	var b strings.Builder
	for i := 0; i < len(expr); i++ {
		if i+2 < len(expr) && expr[i+1] == '-' {
			for d := expr[i]; d <= expr[i+2]; d++ {
				b.WriteByte(d)
			}
			i += 2
			continue
		}
		b.WriteByte(expr[i])
	}
	return b.String()
}

// Property: compressing any non-empty digit set and expanding the result
// yields exactly the original set.
func TestCompress_RoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	// Every non-empty subset of {0..9} encoded as a 10-bit mask.
	properties.Property("expand(compress(s)) == s", prop.ForAll(
		func(mask int) bool {
			var digits []byte
			for d := 0; d < 10; d++ {
				if mask&(1<<d) != 0 {
					digits = append(digits, byte('0'+d))
				}
			}
			set, err := NewDigitSet(string(digits))
			if err != nil {
				return false
			}
			return expand(set.Compress()) == string(digits)
		},
		gen.IntRange(1, 1<<10-1),
	))

	properties.TestingRun(t)
}
