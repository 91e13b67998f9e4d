package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/probatech/estadoc/pkg/domain"
)

// Limits bound the accepted payload shape.
type Limits struct {
	MinContentLength int `yaml:"min_content_length" json:"min_content_length"`
	MaxContentLength int `yaml:"max_content_length" json:"max_content_length"`
	MaxIDLength      int `yaml:"max_id_length" json:"max_id_length"`
}

// DefaultLimits returns the standard payload limits: IDs up to 100
// characters, content between 10 bytes and 1MB.
func DefaultLimits() Limits {
	return Limits{
		MinContentLength: 10,
		MaxContentLength: 1_000_000,
		MaxIDLength:      100,
	}
}

var validIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// PayloadValidator checks payload shape before the orchestrator runs. A
// failed validation is always surfaced as a *domain.ValidationError, never
// downgraded into a ProcessingResult.
type PayloadValidator struct {
	limits Limits
}

// NewPayloadValidator builds a validator for the given limits. Zero limits
// fall back to the defaults.
func NewPayloadValidator(limits Limits) *PayloadValidator {
	def := DefaultLimits()
	if limits.MinContentLength <= 0 {
		limits.MinContentLength = def.MinContentLength
	}
	if limits.MaxContentLength <= 0 {
		limits.MaxContentLength = def.MaxContentLength
	}
	if limits.MaxIDLength <= 0 {
		limits.MaxIDLength = def.MaxIDLength
	}
	return &PayloadValidator{limits: limits}
}

// Validate checks the payload for required fields and constraints, returning
// a *domain.ValidationError listing every field error found.
func (v *PayloadValidator) Validate(p domain.Payload) error {
	var fields []string

	switch {
	case p.DocumentID == "":
		fields = append(fields, domain.ErrMissingDocumentID.Error())
	case !v.validDocumentID(p.DocumentID):
		fields = append(fields, fmt.Sprintf("invalid document_id format: %s", p.DocumentID))
	}

	switch {
	case p.Content == "":
		fields = append(fields, domain.ErrMissingContent.Error())
	case !v.validContent(p.Content):
		fields = append(fields, fmt.Sprintf("invalid content: must be between %d and %d characters",
			v.limits.MinContentLength, v.limits.MaxContentLength))
	}

	if len(fields) > 0 {
		return domain.NewValidationError(p.DocumentID, fields...)
	}
	return nil
}

func (v *PayloadValidator) validDocumentID(id string) bool {
	if len(id) == 0 || len(id) > v.limits.MaxIDLength {
		return false
	}
	return validIDPattern.MatchString(id)
}

func (v *PayloadValidator) validContent(content string) bool {
	n := len(content)
	return n >= v.limits.MinContentLength && n <= v.limits.MaxContentLength
}

// SanitizeContent strips NUL bytes and control characters (keeping newlines
// and tabs) and collapses repeated spaces within each line. Line structure is
// preserved.
func SanitizeContent(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, r := range content {
		switch {
		case r == '\n' || r == '\t' || r == ' ':
			b.WriteRune(r)
		case r >= 32 && r != 127:
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
