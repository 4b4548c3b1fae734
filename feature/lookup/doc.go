// Package lookup retrieves local calling areas from localcallingguide.com.
//
// Given a gateway NPA/NXX it returns every NPA/NXX prefix the guide
// considers local to that pair, as 6-digit blocks ready for rule
// synthesis. An unknown or invalid pair surfaces as a *LookupError, which
// callers must treat as fatal input: no rules can be synthesized without
// the local calling area.
package lookup
