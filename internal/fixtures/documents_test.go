package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/probatech/estadoc/pkg/pipeline"
	"github.com/probatech/estadoc/pkg/taxonomy"
)

func TestCorpusShape(t *testing.T) {
	seen := make(map[string]struct{})
	validator := pipeline.NewPayloadValidator(pipeline.DefaultLimits())

	for _, sample := range All() {
		if _, dup := seen[sample.Key]; dup {
			t.Errorf("duplicate sample key %s", sample.Key)
		}
		seen[sample.Key] = struct{}{}

		assert.NoError(t, validator.Validate(sample.Payload), "sample %s must be a valid payload", sample.Key)

		found := false
		for _, c := range taxonomy.Categories() {
			if c.Name == sample.ExpectedCategory {
				found = true
				break
			}
		}
		assert.True(t, found, "sample %s expects unknown category %q", sample.Key, sample.ExpectedCategory)
	}
}
