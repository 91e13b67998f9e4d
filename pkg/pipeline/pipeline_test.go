package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/probatech/estadoc/pkg/classifier"
	"github.com/probatech/estadoc/pkg/domain"
	"github.com/probatech/estadoc/pkg/rules"
	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// stubClassifier lets tests inject arbitrary stage behavior.
type stubClassifier struct {
	result classifier.Result
	err    error
	panics bool
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (classifier.Result, error) {
	if s.panics {
		panic("classifier exploded")
	}
	return s.result, s.err
}

type stubValidator struct {
	verdict rules.Verdict
	err     error
	panics  bool
}

func (s *stubValidator) Validate(_ context.Context, _, _ string) (rules.Verdict, error) {
	if s.panics {
		panic("validator exploded")
	}
	return s.verdict, s.err
}

const deathCertText = `CERTIFICATE OF DEATH
State of California, Department of Health, Vital Statistics
Name of Deceased: John Smith
Date of Death: January 15, 2024
Cause of Death: natural causes
Certificate Number: 2024-001234
Certifying Physician: Dr. Jane Doe`

func TestProcessCompletedFlow(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "DOC-001",
		Content:    deathCertText,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Equal(t, "DOC-001", result.DocumentID)
	assert.Equal(t, taxonomy.DeathCertificate.Code, result.Classification.CategoryCode)
	assert.Greater(t, result.Classification.Confidence, 0.5)
	assert.True(t, result.Compliance.Valid)
	assert.Equal(t, "All validation checks passed", result.Compliance.Reason)
	assert.Len(t, result.Compliance.ChecksPerformed, 4)
	assert.Empty(t, result.Errors)
	assert.False(t, result.ProcessedAt.IsZero())
}

func TestProcessCatchAllFlow(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "DOC-002",
		Content:    "completely unrelated grocery list: milk, eggs, bread",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Equal(t, taxonomy.CatchAllCode, result.Classification.CategoryCode)
	assert.Equal(t, 0.5, result.Classification.Confidence)
	assert.True(t, result.Compliance.Valid)
	assert.Equal(t, "Miscellaneous documents bypass validation", result.Compliance.Reason)
}

func TestProcessInvalidPayloadReturnsError(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{DocumentID: "DOC-003"})

	// A shape failure is a caller error, never a failed result.
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestProcessClassifierErrorFallsBack(t *testing.T) {
	cls := &stubClassifier{err: errors.New("scoring backend unavailable")}
	p := NewProcessor(cls, nil, DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "DOC-004",
		Content:    deathCertText,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, taxonomy.CatchAllCode, result.Classification.CategoryCode)
	assert.Equal(t, 0.0, result.Classification.Confidence)
	assert.False(t, result.Compliance.Valid)
	assert.Contains(t, result.Compliance.Reason, "Processing error: ")
	assert.Contains(t, result.Compliance.Reason, "scoring backend unavailable")
	require.Len(t, result.Errors, 1)
}

func TestProcessValidatorErrorFallsBack(t *testing.T) {
	val := &stubValidator{err: errors.New("rule store offline")}
	p := NewProcessor(nil, val, DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "DOC-005",
		Content:    deathCertText,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Contains(t, result.Compliance.Reason, "rule store offline")
}

func TestProcessStagePanicFallsBack(t *testing.T) {
	p := NewProcessor(&stubClassifier{panics: true}, nil, DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "DOC-006",
		Content:    deathCertText,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Contains(t, result.Errors[0], "classifier exploded")
}

func TestProcessRecordsMetrics(t *testing.T) {
	m := telemetry.NewMetrics()
	p := NewProcessor(nil, nil, DefaultLimits(), nil, m)

	_, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "DOC-007",
		Content:    deathCertText,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, m.StageCount(telemetry.StagePipeline))
	assert.Equal(t, 1, m.StageCount(telemetry.StageClassification))
	assert.Equal(t, 1, m.StageCount(telemetry.StageCompliance))
	assert.Equal(t, 0, m.StageErrors(telemetry.StagePipeline))
}

// Hot reload swaps the payload validator while requests are in flight; run
// under -race to verify the swap is safe.
func TestSetLimitsConcurrentWithProcess(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultLimits(), nil, nil)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				p.SetLimits(Limits{
					MinContentLength: 1 + i%5,
					MaxContentLength: 1000,
					MaxIDLength:      100,
				})
			}
		}
	}()

	for i := 0; i < 100; i++ {
		result, err := p.Process(context.Background(), domain.Payload{
			DocumentID: "DOC-RELOAD",
			Content:    "a long enough but entirely mundane piece of text",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, result.Status)
	}

	close(stop)
	wg.Wait()
}

func TestSetLimitsTakesEffect(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultLimits(), nil, nil)
	payload := domain.Payload{DocumentID: "DOC-008", Content: "short one"}

	_, err := p.Process(context.Background(), payload)
	assert.True(t, domain.IsValidationError(err))

	p.SetLimits(Limits{MinContentLength: 1, MaxContentLength: 1000, MaxIDLength: 100})

	result, err := p.Process(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, result.Status)
}

// Every valid payload produces exactly one of the two terminal outcomes, and a
// completed result always carries a classification within the taxonomy.
func TestProcessTerminalStateProperty(t *testing.T) {
	p := NewProcessor(nil, nil, DefaultLimits(), nil, nil)

	rapid.Check(t, func(t *rapid.T) {
		content := rapid.StringMatching(`[a-z ]{10,200}`).Draw(t, "content")
		id := rapid.StringMatching(`[A-Za-z0-9\-_]{1,40}`).Draw(t, "id")

		result, err := p.Process(context.Background(), domain.Payload{DocumentID: id, Content: content})
		if err != nil {
			t.Fatalf("valid payload rejected: %v", err)
		}
		if result.Status != domain.StatusCompleted && result.Status != domain.StatusFailed {
			t.Fatalf("unexpected terminal status %q", result.Status)
		}

		if _, ok := taxonomy.ByCode(result.Classification.CategoryCode); !ok {
			t.Errorf("classification outside taxonomy: %s", result.Classification.CategoryCode)
		}
		if result.Compliance.Reason == "" {
			t.Error("compliance reason must never be empty")
		}
	})
}
