// Package pipeline orchestrates the two-stage document processing run:
// classification followed by category-specific compliance validation.
//
// The orchestrator owns the system's one non-trivial control-flow contract:
// a payload without a usable document identifier raises an input-validation
// fault to the caller, while any unexpected stage fault after the identifier
// is known is recovered into a failed ProcessingResult anchored to that
// identifier. Callers therefore always receive either a well-formed result or
// a typed validation error, never an unstructured crash.
package pipeline
