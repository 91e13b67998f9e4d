package classifier

import (
	"context"
	"log/slog"
	"strings"

	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// Confidence constants. Empirical tuning; the literal formula is part of the
// classifier's contract.
const (
	// fallbackConfidence is reported when no keyword matches at all.
	fallbackConfidence = 0.5
	// minConfidence floors any detected signal at "weak" rather than near-zero.
	minConfidence = 0.3
	// saturationDivisor maps normalized density to confidence; densities at or
	// above twice this divisor saturate at full confidence.
	saturationDivisor = 2.0
)

// Result is the outcome of one classification.
type Result struct {
	Category   taxonomy.Category
	Confidence float64
}

// Classifier scores document text against the keyword table and picks the
// densest category.
type Classifier struct {
	table   KeywordTable
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// New constructs a Classifier with the builtin keyword table.
func New(logger *slog.Logger, metrics *telemetry.Metrics) *Classifier {
	c, _ := NewWithTable(DefaultKeywordTable(), logger, metrics)
	return c
}

// NewWithTable constructs a Classifier over a custom keyword table. The table
// is validated and copied; it cannot change after construction.
func NewWithTable(table KeywordTable, logger *slog.Logger, metrics *telemetry.Metrics) (*Classifier, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		table:   table.clone(),
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Classify maps document text to a category and confidence. The original text
// is never mutated; matching runs against a case-folded copy. No keyword
// match anywhere yields the catch-all category at confidence 0.5.
func (c *Classifier) Classify(ctx context.Context, content string) (Result, error) {
	var timer *telemetry.StageTimer
	if c.metrics != nil {
		timer = c.metrics.NewStageTimer(telemetry.StageClassification)
	}

	if ctx != nil {
		if err := ctx.Err(); err != nil {
			if timer != nil {
				timer.Error()
			}
			return Result{}, err
		}
	}

	result := c.classify(content)

	if timer != nil {
		timer.Success()
		c.metrics.RecordClassification(result.Category.Code)
	}

	return result, nil
}

func (c *Classifier) classify(content string) Result {
	folded := strings.ToLower(content)

	var (
		best      taxonomy.Category
		bestScore float64
		matched   bool
	)

	for _, category := range taxonomy.Categories() {
		phrases := c.table[category.Code]
		if len(phrases) == 0 {
			continue
		}

		raw := 0
		hits := 0
		for _, phrase := range phrases {
			if strings.Contains(folded, phrase) {
				// Multi-word phrases score higher than single words.
				raw += len(strings.Fields(phrase))
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		// Density: reward keyword coverage, not raw hit count.
		density := float64(raw) / float64(len(phrases))
		c.logger.Debug("category scored",
			"category", category.Name,
			"score", density,
			"matched_keywords", hits,
		)

		// Strict comparison keeps the first-declared category on ties.
		if !matched || density > bestScore {
			best = category
			bestScore = density
			matched = true
		}
	}

	if !matched {
		return Result{Category: taxonomy.Miscellaneous, Confidence: fallbackConfidence}
	}

	confidence := bestScore / saturationDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < minConfidence {
		confidence = minConfidence
	}

	return Result{Category: best, Confidence: confidence}
}
