package pattern

import (
	"fmt"
	"strings"
)

const (
	// namePrefix tags every rule this tool owns. Only rules whose name
	// carries this prefix followed by a 5-digit stem are ever touched
	// during reconciliation.
	namePrefix = "TP_"

	// countryCode prefixes every matching pattern; destinations arrive in
	// +1 E.164 format.
	countryCode = "+1"

	// routingPrefix is prepended to every replacement so the rewritten
	// number can be steered to the premises route.
	routingPrefix = "90"

	// stemLen is the number of leading NPA/NXX digits shared by all
	// prefixes folded into one rule.
	stemLen = 5

	// prefixLen is the full NPA+NXX length.
	prefixLen = 6
)

// RuleName is the unique identifier of a rule, derived from its stem.
// It doubles as the join key when diffing desired rules against rules
// already provisioned remotely.
type RuleName string

// NameForStem derives the rule name owning a 5-digit stem.
func NameForStem(stem string) RuleName {
	return RuleName(namePrefix + stem)
}

// ParseRuleName reports whether s names a rule under this tool's naming
// convention and returns it typed if so. Names that don't match belong
// to somebody else and must be left alone.
func ParseRuleName(s string) (RuleName, bool) {
	if len(s) != len(namePrefix)+stemLen || !strings.HasPrefix(s, namePrefix) {
		return "", false
	}
	for i := len(namePrefix); i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	return RuleName(s), true
}

// Stem returns the 5-digit stem the name was derived from.
func (n RuleName) Stem() string {
	return strings.TrimPrefix(string(n), namePrefix)
}

// Rule is one named matching/replacement pattern pair, the unit of both
// desired and provisioned state.
type Rule struct {
	Name               RuleName
	MatchingPattern    string
	ReplacementPattern string
}

// Equal reports whether two rules agree on every field the remote store
// persists. Rules sharing a name can still differ when the digit set for
// their stem changed between runs.
func (r Rule) Equal(other Rule) bool {
	return r.Name == other.Name &&
		r.MatchingPattern == other.MatchingPattern &&
		r.ReplacementPattern == other.ReplacementPattern
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: %s -> %s", r.Name, r.MatchingPattern, r.ReplacementPattern)
}

// Synthesize builds the single rule covering a stem and its observed
// trailing digits. The matching pattern shape depends on how many digits
// the compressed expression covers:
//   - all ten: the trailing digit joins the wildcard capture group,
//     "+1<stem>(XXXXX)"
//   - exactly one: the literal digit sits outside the capture group,
//     "+1<stem>d(XXXX)", and reappears literally in the replacement
//   - otherwise: a digit class opens the capture group,
//     "+1<stem>([<expr>]XXXX)"
//
// The capture group always spans the remainder of the 10-digit
// destination number; the replacement routes it via the routing prefix
// and a back-reference.
func Synthesize(stem string, digits DigitSet) Rule {
	expr := digits.Compress()

	var match, replacement string
	switch {
	case expr == Wildcard:
		match = countryCode + stem + "(XXXXX)"
		replacement = routingPrefix + stem + "$1"
	case len(expr) == 1:
		match = countryCode + stem + expr + "(XXXX)"
		replacement = routingPrefix + stem + expr + "$1"
	default:
		match = countryCode + stem + "([" + expr + "]XXXX)"
		replacement = routingPrefix + stem + "$1"
	}

	return Rule{
		Name:               NameForStem(stem),
		MatchingPattern:    match,
		ReplacementPattern: replacement,
	}
}
