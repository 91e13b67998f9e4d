package rules

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// Reason texts and synthetic check names used by the bypass paths.
const (
	failurePrefix     = "Validation failed: "
	successReason     = "All validation checks passed"
	catchAllReason    = "Miscellaneous documents bypass validation"
	checkNoValidation = "no_validation_required"
	checkBypassed     = "validation_bypassed"
)

// Rule is one named boolean check against raw document text. Predicates must
// be pure functions of the text: no metadata access, no state across calls.
type Rule struct {
	// Name is unique within its category's rule list.
	Name string
	// Predicate reports whether the text satisfies the check.
	Predicate func(content string) bool
	// Message is the static failure message reported when the check fails.
	Message string
}

// Verdict is the outcome of validating one document against one category's
// rule list. Reason is always populated. ChecksPerformed preserves rule
// declaration order regardless of individual outcomes.
type Verdict struct {
	Valid           bool
	Reason          string
	ChecksPerformed []string
}

// Engine evaluates category rule lists. Rule tables are immutable after
// construction, so a single Engine serves concurrent validations.
type Engine struct {
	lists   map[string][]Rule
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewEngine constructs an Engine with the builtin estate rule lists.
func NewEngine(logger *slog.Logger, metrics *telemetry.Metrics) *Engine {
	e, _ := NewEngineWithRules(BuiltinRules(), logger, metrics)
	return e
}

// NewEngineWithRules constructs an Engine over custom rule lists. Lists are
// copied; rule names must be non-empty and unique within their list.
func NewEngineWithRules(lists map[string][]Rule, logger *slog.Logger, metrics *telemetry.Metrics) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	copied := make(map[string][]Rule, len(lists))
	for code, list := range lists {
		seen := make(map[string]struct{}, len(list))
		for _, rule := range list {
			name := strings.TrimSpace(rule.Name)
			if name == "" {
				return nil, fmt.Errorf("rules: rule name is required for category %s", code)
			}
			if rule.Predicate == nil {
				return nil, fmt.Errorf("rules: rule %s for category %s has no predicate", name, code)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("rules: duplicate rule name %s for category %s", name, code)
			}
			seen[name] = struct{}{}
		}
		copied[code] = append([]Rule(nil), list...)
	}

	return &Engine{lists: copied, logger: logger, metrics: metrics}, nil
}

// Validate evaluates the rule list registered for categoryCode against the
// raw (non case-folded) document text.
func (e *Engine) Validate(ctx context.Context, content, categoryCode string) (Verdict, error) {
	var timer *telemetry.StageTimer
	if e.metrics != nil {
		timer = e.metrics.NewStageTimer(telemetry.StageCompliance)
	}

	if ctx != nil {
		if err := ctx.Err(); err != nil {
			if timer != nil {
				timer.Error()
			}
			return Verdict{}, err
		}
	}

	verdict := e.validate(content, categoryCode)

	if timer != nil {
		timer.Success()
	}
	return verdict, nil
}

func (e *Engine) validate(content, categoryCode string) Verdict {
	if categoryCode == taxonomy.CatchAllCode {
		return Verdict{
			Valid:           true,
			Reason:          catchAllReason,
			ChecksPerformed: []string{checkNoValidation},
		}
	}

	list, ok := e.lists[categoryCode]
	if !ok || len(list) == 0 {
		e.logger.Info("no validation rules for category, bypassing validation", "category_code", categoryCode)
		return Verdict{
			Valid:           true,
			Reason:          fmt.Sprintf("No validation rules defined for category %s", categoryCode),
			ChecksPerformed: []string{checkBypassed},
		}
	}

	checksPerformed := make([]string, 0, len(list))
	var failures []string

	for _, rule := range list {
		checksPerformed = append(checksPerformed, rule.Name)

		passed, errored := evalRule(rule, content)
		switch {
		case errored:
			e.logger.Error("check errored", "check", rule.Name, "category_code", categoryCode)
			failures = append(failures, fmt.Sprintf("Check '%s' failed with error", rule.Name))
		case !passed:
			e.logger.Debug("check failed", "check", rule.Name, "message", rule.Message)
			failures = append(failures, rule.Message)
		}
	}

	if len(failures) > 0 {
		return Verdict{
			Valid:           false,
			Reason:          failurePrefix + strings.Join(failures, "; "),
			ChecksPerformed: checksPerformed,
		}
	}

	return Verdict{
		Valid:           true,
		Reason:          successReason,
		ChecksPerformed: checksPerformed,
	}
}

// evalRule runs one predicate, converting a panic into an errored check so a
// single bad rule never aborts the remaining list.
func evalRule(rule Rule, content string) (passed, errored bool) {
	defer func() {
		if r := recover(); r != nil {
			passed = false
			errored = true
		}
	}()
	return rule.Predicate(content), false
}
