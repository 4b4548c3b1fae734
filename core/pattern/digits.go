package pattern

import (
	"fmt"
	"strings"
)

// Wildcard is the compressed expression emitted when a DigitSet contains
// all ten digits. It is a single-character marker distinct from every
// digit-class expression.
const Wildcard = "X"

// DigitSet is the set of distinct trailing digits (0-9) observed across
// all prefixes sharing one stem. A valid set is non-empty, duplicate-free
// and held in ascending order.
type DigitSet struct {
	digits []byte
}

// NewDigitSet validates and normalizes a string of decimal digits into a
// DigitSet. Non-digit characters and duplicates are rejected; input order
// is irrelevant.
func NewDigitSet(digits string) (DigitSet, error) {
	if digits == "" {
		return DigitSet{}, fmt.Errorf("digit set must not be empty")
	}

	var seen [10]bool
	for i := 0; i < len(digits); i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return DigitSet{}, fmt.Errorf("digit set contains non-digit %q", string(d))
		}
		if seen[d-'0'] {
			return DigitSet{}, fmt.Errorf("digit set contains duplicate %q", string(d))
		}
		seen[d-'0'] = true
	}

	normalized := make([]byte, 0, len(digits))
	for d := 0; d < 10; d++ {
		if seen[d] {
			normalized = append(normalized, byte('0'+d))
		}
	}

	return DigitSet{digits: normalized}, nil
}

// Len returns the number of digits in the set.
func (s DigitSet) Len() int {
	return len(s.digits)
}

// String returns the digits in ascending order with no decoration.
func (s DigitSet) String() string {
	return string(s.digits)
}

// Compress returns the shortest expression covering exactly the digits in
// the set, built from maximal runs of consecutive digits:
//   - a run of one digit is emitted as the literal digit
//   - a run of two adjacent digits is emitted as both digits ("12"),
//     never as a range
//   - a run of three or more digits is emitted as "start-stop"
//
// Runs are concatenated in ascending order. If the result spans all ten
// digits ("0-9") it collapses to the Wildcard marker.
func (s DigitSet) Compress() string {
	var b strings.Builder

	for i := 0; i < len(s.digits); {
		j := i
		for j+1 < len(s.digits) && s.digits[j+1] == s.digits[j]+1 {
			j++
		}

		switch runLen := j - i + 1; {
		case runLen == 1:
			b.WriteByte(s.digits[i])
		case runLen == 2:
			// Two adjacent digits stay enumerated; a range would not be
			// shorter and upstream consumers rely on this encoding.
			b.WriteByte(s.digits[i])
			b.WriteByte(s.digits[j])
		default:
			b.WriteByte(s.digits[i])
			b.WriteByte('-')
			b.WriteByte(s.digits[j])
		}

		i = j + 1
	}

	expr := b.String()
	if expr == "0-9" {
		return Wildcard
	}
	return expr
}
