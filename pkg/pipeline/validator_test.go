package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probatech/estadoc/pkg/domain"
)

func TestPayloadValidatorAcceptsValidPayload(t *testing.T) {
	v := NewPayloadValidator(DefaultLimits())

	err := v.Validate(domain.Payload{
		DocumentID: "DOC-001",
		Content:    "a perfectly reasonable document body",
	})
	assert.NoError(t, err)
}

func TestPayloadValidatorMissingFields(t *testing.T) {
	v := NewPayloadValidator(DefaultLimits())

	err := v.Validate(domain.Payload{})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{
		"missing required field: document_id",
		"missing required field: content",
	}, ve.Fields)
}

func TestPayloadValidatorMissingContentOnly(t *testing.T) {
	v := NewPayloadValidator(DefaultLimits())

	err := v.Validate(domain.Payload{DocumentID: "DOC-002"})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "DOC-002", ve.DocumentID)
	assert.Equal(t, []string{"missing required field: content"}, ve.Fields)
}

func TestPayloadValidatorIDFormat(t *testing.T) {
	v := NewPayloadValidator(DefaultLimits())
	content := "a perfectly reasonable document body"

	valid := []string{"DOC-001", "doc_2", "a", "A-b_C-123"}
	for _, id := range valid {
		assert.NoError(t, v.Validate(domain.Payload{DocumentID: id, Content: content}), "id %q", id)
	}

	invalid := []string{"doc 001", "doc/001", "doc.001", "döc", strings.Repeat("x", 101)}
	for _, id := range invalid {
		err := v.Validate(domain.Payload{DocumentID: id, Content: content})
		assert.True(t, domain.IsValidationError(err), "id %q must be rejected", id)
	}
}

func TestPayloadValidatorContentBounds(t *testing.T) {
	v := NewPayloadValidator(Limits{MinContentLength: 10, MaxContentLength: 50, MaxIDLength: 100})

	assert.Error(t, v.Validate(domain.Payload{DocumentID: "DOC-1", Content: "too short"}))
	assert.NoError(t, v.Validate(domain.Payload{DocumentID: "DOC-1", Content: strings.Repeat("x", 50)}))
	assert.Error(t, v.Validate(domain.Payload{DocumentID: "DOC-1", Content: strings.Repeat("x", 51)}))
}

func TestNewPayloadValidatorZeroLimitsFallBack(t *testing.T) {
	v := NewPayloadValidator(Limits{})

	// Defaults: 10 byte minimum applies.
	assert.Error(t, v.Validate(domain.Payload{DocumentID: "DOC-1", Content: "short"}))
	assert.NoError(t, v.Validate(domain.Payload{DocumentID: "DOC-1", Content: "long enough now"}))
}

func TestSanitizeContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "strips nul and control bytes",
			input:    "hello\x00wor\x07ld",
			expected: "helloworld",
		},
		{
			name:     "collapses runs of spaces",
			input:    "hello    world\t\ttabs",
			expected: "hello world tabs",
		},
		{
			name:     "preserves line structure",
			input:    "line one  \nline   two\n",
			expected: "line one\nline two",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  padded  ",
			expected: "padded",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeContent(tc.input))
		})
	}
}
