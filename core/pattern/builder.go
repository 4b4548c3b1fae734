package pattern

import (
	"fmt"
	"sort"
)

// Prefix is a 6-digit NPA+NXX destination block as returned by the local
// calling area lookup.
type Prefix string

// Validate checks the fixed-length all-digits contract.
func (p Prefix) Validate() error {
	if len(p) != prefixLen {
		return fmt.Errorf("prefix %q must be %d digits", string(p), prefixLen)
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return fmt.Errorf("prefix %q contains non-digit %q", string(p), string(p[i]))
		}
	}
	return nil
}

// Stem returns the first five digits, the grouping key for rule synthesis.
func (p Prefix) Stem() string {
	return string(p[:stemLen])
}

// TrailingDigit returns the final digit.
func (p Prefix) TrailingDigit() byte {
	return p[prefixLen-1]
}

// Build synthesizes the full rule set for a collection of local prefixes.
// Prefixes are sorted and de-duplicated, partitioned by stem, and each
// stem's trailing digits are folded into one rule. The result is sorted
// by stem ascending and is fully deterministic for a given input.
func Build(prefixes []Prefix) ([]Rule, error) {
	for _, p := range prefixes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	sorted := make([]Prefix, len(prefixes))
	copy(sorted, prefixes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rules := make([]Rule, 0)
	var stem string
	var trailing []byte

	flush := func() error {
		if stem == "" {
			return nil
		}
		set, err := NewDigitSet(string(trailing))
		if err != nil {
			return fmt.Errorf("stem %s: %w", stem, err)
		}
		rules = append(rules, Synthesize(stem, set))
		return nil
	}

	var last Prefix
	for _, p := range sorted {
		if p == last {
			continue
		}
		last = p

		if s := p.Stem(); s != stem {
			if err := flush(); err != nil {
				return nil, err
			}
			stem = s
			trailing = trailing[:0]
		}
		trailing = append(trailing, p.TrailingDigit())
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return rules, nil
}
