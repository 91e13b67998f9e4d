package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/probatech/estadoc/pkg/classifier"
	"github.com/probatech/estadoc/pkg/domain"
	"github.com/probatech/estadoc/pkg/rules"
	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// Classifier maps document text to a category and confidence.
type Classifier interface {
	Classify(ctx context.Context, content string) (classifier.Result, error)
}

// RuleValidator validates document text against a category's rule list.
type RuleValidator interface {
	Validate(ctx context.Context, content, categoryCode string) (rules.Verdict, error)
}

// Processor sequences the two pipeline stages and assembles the combined
// result. Each run is atomic from the caller's perspective: the only terminal
// states are completed and failed.
type Processor struct {
	classifier Classifier
	validator  RuleValidator
	payloads   atomic.Pointer[PayloadValidator]
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// NewProcessor wires a Processor from its stages. Nil classifier or validator
// select the builtin implementations.
func NewProcessor(cls Classifier, val RuleValidator, limits Limits, logger *slog.Logger, metrics *telemetry.Metrics) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cls == nil {
		cls = classifier.New(logger, metrics)
	}
	if val == nil {
		val = rules.NewEngine(logger, metrics)
	}
	p := &Processor{
		classifier: cls,
		validator:  val,
		logger:     logger,
		metrics:    metrics,
	}
	p.payloads.Store(NewPayloadValidator(limits))
	return p
}

// SetLimits replaces the payload limits. Used by config hot reload while
// requests are in flight, so the validator is swapped atomically; the rule
// and keyword tables themselves are never reloadable.
func (p *Processor) SetLimits(limits Limits) {
	p.payloads.Store(NewPayloadValidator(limits))
}

// Process runs one document through classification and compliance validation.
//
// A payload that fails shape validation returns a *domain.ValidationError and
// no result. Once the document identifier is known, any unexpected stage
// fault is recovered into a failed ProcessingResult instead of propagating.
func (p *Processor) Process(ctx context.Context, payload domain.Payload) (*domain.ProcessingResult, error) {
	start := time.Now()

	if err := p.payloads.Load().Validate(payload); err != nil {
		p.logger.Error("payload rejected", "document_id", payload.DocumentID, "error", err)
		if p.metrics != nil {
			p.metrics.RecordStage(telemetry.StagePipeline, false, time.Since(start))
		}
		return nil, err
	}

	doc := domain.NewDocument(payload)
	p.logger.Info("processing document", "document_id", doc.ID)

	result, err := p.run(ctx, doc)
	if err != nil {
		p.logger.Error("document processing failed", "document_id", doc.ID, "error", err)
		if p.metrics != nil {
			p.metrics.RecordStage(telemetry.StagePipeline, false, time.Since(start))
			p.metrics.RecordDocument(string(domain.StatusFailed))
		}
		return fallbackResult(doc.ID, err), nil
	}

	if p.metrics != nil {
		p.metrics.RecordStage(telemetry.StagePipeline, true, time.Since(start))
		p.metrics.RecordDocument(string(domain.StatusCompleted))
	}
	return result, nil
}

// run executes both stages. Stage panics are converted into errors so the
// fallback contract holds even for misbehaving injected stages.
func (p *Processor) run(ctx context.Context, doc domain.Document) (result *domain.ProcessingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("stage panic: %v", r)
		}
	}()

	classification, err := p.classifier.Classify(ctx, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("classification: %w", err)
	}
	p.logger.Info("document classified",
		"document_id", doc.ID,
		"category", classification.Category.Name,
		"category_code", classification.Category.Code,
		"confidence", classification.Confidence,
	)

	// The rule set depends on the classification outcome, so the stages are
	// strictly sequential.
	verdict, err := p.validator.Validate(ctx, doc.Content, classification.Category.Code)
	if err != nil {
		return nil, fmt.Errorf("compliance validation: %w", err)
	}
	p.logger.Info("compliance check completed", "document_id", doc.ID, "valid", verdict.Valid)
	if !verdict.Valid {
		p.logger.Warn("validation failure", "document_id", doc.ID, "reason", verdict.Reason)
	}

	return &domain.ProcessingResult{
		DocumentID: doc.ID,
		Classification: domain.ClassificationResult{
			DocumentID:   doc.ID,
			CategoryCode: classification.Category.Code,
			CategoryName: classification.Category.Name,
			Confidence:   classification.Confidence,
		},
		Compliance: domain.ComplianceResult{
			DocumentID:      doc.ID,
			Valid:           verdict.Valid,
			Reason:          verdict.Reason,
			ChecksPerformed: verdict.ChecksPerformed,
		},
		Status:      domain.StatusCompleted,
		ProcessedAt: time.Now(),
	}, nil
}

// fallbackResult synthesizes the failed-status result for an unexpected stage
// fault: catch-all classification at zero confidence, invalid compliance
// carrying the fault text. Only reachable once a document identifier is
// known.
func fallbackResult(documentID string, cause error) *domain.ProcessingResult {
	return &domain.ProcessingResult{
		DocumentID: documentID,
		Classification: domain.ClassificationResult{
			DocumentID:   documentID,
			CategoryCode: taxonomy.Miscellaneous.Code,
			CategoryName: taxonomy.Miscellaneous.Name,
			Confidence:   0.0,
		},
		Compliance: domain.ComplianceResult{
			DocumentID: documentID,
			Valid:      false,
			Reason:     fmt.Sprintf("Processing error: %s", cause),
		},
		Status:      domain.StatusFailed,
		ProcessedAt: time.Now(),
		Errors:      []string{cause.Error()},
	}
}
