// Package rules implements declarative compliance validation for classified
// estate documents.
//
// Rules are data, not polymorphic types: each category code owns an ordered,
// immutable list of (name, predicate, failure message) tuples loaded once at
// construction. Validation evaluates every rule in declared order against the
// raw document text; a misbehaving predicate is recovered as a single failed
// check and never aborts the rest of the list. Categories without registered
// rules pass validation by policy: absence of rules is not a failure.
package rules
