// Package classifier maps estate document text to a taxonomy category using
// keyword-density scoring.
//
// Matching is case-insensitive substring search over a fixed per-category
// keyword table. Each matched phrase contributes its word count to the
// category's raw score, which is then normalized by the number of keywords
// defined for the category. The classifier holds no per-call mutable state
// and the keyword table is read-only after construction, so concurrent
// classifications require no coordination.
package classifier
