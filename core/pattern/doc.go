// Package pattern synthesizes the minimal set of translation patterns
// covering a collection of local NPA/NXX prefixes.
//
// # Model
//
// A Prefix is a 6-digit NPA+NXX destination block. Prefixes sharing the
// same first five digits (the stem) are folded into a single Rule whose
// matching pattern enumerates the observed trailing digits as compactly
// as possible: a literal digit, a digit class like [13-5], or a single
// wildcard when all ten digits are present.
//
// # Usage
//
//	rules, err := pattern.Build(prefixes)
//	if err != nil {
//	    return err
//	}
//	for _, r := range rules {
//	    fmt.Println(r.Name, r.MatchingPattern, r.ReplacementPattern)
//	}
//
// Build is deterministic: the same prefix collection always yields the
// same rules in the same order. Reconciliation depends on this, since
// rule names derived from stems are the diff keys across runs.
package pattern
