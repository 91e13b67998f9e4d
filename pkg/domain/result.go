package domain

import "time"

// Status is the terminal state of a pipeline run.
type Status string

const (
	// StatusCompleted indicates both stages ran to completion.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the run was recovered into a fallback result.
	StatusFailed Status = "failed"
)

// ClassificationResult is the outcome of the classification stage.
// Confidence is always within [0.0, 1.0].
type ClassificationResult struct {
	DocumentID   string  `json:"document_id"`
	CategoryCode string  `json:"category_code"`
	CategoryName string  `json:"category_name"`
	Confidence   float64 `json:"confidence"`
}

// ComplianceResult is the outcome of the rule validation stage. Reason is
// always populated, even on success. ChecksPerformed preserves rule
// declaration order and is never empty; bypass paths record a single
// synthetic check name.
type ComplianceResult struct {
	DocumentID      string   `json:"document_id"`
	Valid           bool     `json:"valid"`
	Reason          string   `json:"reason"`
	ChecksPerformed []string `json:"checks_performed"`
}

// ProcessingResult aggregates both stage outcomes for one document. It is the
// only entity exposed across the system boundary and is never mutated after
// construction.
type ProcessingResult struct {
	DocumentID     string               `json:"document_id"`
	Classification ClassificationResult `json:"classification"`
	Compliance     ComplianceResult     `json:"compliance"`
	Status         Status               `json:"status"`
	ProcessedAt    time.Time            `json:"processed_at"`
	Errors         []string             `json:"errors,omitempty"`
}
