package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probatech/estadoc/internal/fixtures"
	"github.com/probatech/estadoc/pkg/config"
	"github.com/probatech/estadoc/pkg/domain"
	"github.com/probatech/estadoc/pkg/pipeline"
	"github.com/probatech/estadoc/pkg/server"
	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// TestCorpusClassification runs the full bundled corpus through the pipeline
// and checks each document lands in its expected category.
func TestCorpusClassification(t *testing.T) {
	p := pipeline.NewProcessor(nil, nil, pipeline.DefaultLimits(), nil, telemetry.NewMetrics())

	for _, sample := range fixtures.All() {
		sample := sample
		t.Run(sample.Key, func(t *testing.T) {
			result, err := p.Process(context.Background(), sample.Payload)
			require.NoError(t, err)

			assert.Equal(t, domain.StatusCompleted, result.Status)
			assert.Equal(t, sample.ExpectedCategory, result.Classification.CategoryName)
			assert.NotEmpty(t, result.Compliance.Reason)
			assert.NotEmpty(t, result.Compliance.ChecksPerformed)
		})
	}
}

func TestDeathCertificateEndToEnd(t *testing.T) {
	p := pipeline.NewProcessor(nil, nil, pipeline.DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "E2E-001",
		Content:    fixtures.DeathCertificate,
	})
	require.NoError(t, err)

	assert.Equal(t, taxonomy.DeathCertificate.Code, result.Classification.CategoryCode)
	assert.Greater(t, result.Classification.Confidence, 0.5)
	assert.True(t, result.Compliance.Valid)
	assert.Equal(t, []string{
		"contains_certificate_title",
		"has_date_of_death",
		"has_deceased_name",
		"has_certificate_number",
	}, result.Compliance.ChecksPerformed)
}

// A document that names inheritance concepts without matching any keyword
// falls through to the catch-all category and bypasses validation.
func TestUnmatchedDocumentBypassesValidation(t *testing.T) {
	p := pipeline.NewProcessor(nil, nil, pipeline.DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{
		DocumentID: "E2E-002",
		Content: "DOCUMENT OF INHERITANCE. I leave everything to my children. Signed, John Smith",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Equal(t, taxonomy.CatchAllCode, result.Classification.CategoryCode)
	assert.Equal(t, 0.5, result.Classification.Confidence)
	assert.True(t, result.Compliance.Valid)
	assert.Equal(t, "Miscellaneous documents bypass validation", result.Compliance.Reason)
}

func TestMissingContentIsAValidationFault(t *testing.T) {
	p := pipeline.NewProcessor(nil, nil, pipeline.DefaultLimits(), nil, nil)

	result, err := p.Process(context.Background(), domain.Payload{DocumentID: "E2E-003"})

	assert.Nil(t, result)
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "missing required field: content")
}

// TestHTTPRoundTrip exercises the corpus through a real HTTP server.
func TestHTTPRoundTrip(t *testing.T) {
	metrics := telemetry.NewMetrics()
	srv, err := server.New(config.Default(), nil, metrics, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := ts.Client()

	completed := 0
	for _, sample := range fixtures.All() {
		body, err := json.Marshal(sample.Payload)
		require.NoError(t, err)

		resp, err := client.Post(ts.URL+"/process", "application/json", bytes.NewReader(body))
		require.NoError(t, err)

		var result domain.ProcessingResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode, "sample %s", sample.Key)
		assert.Equal(t, sample.ExpectedCategory, result.Classification.CategoryName, "sample %s", sample.Key)
		completed++
	}

	resp, err := client.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats map[string]telemetry.StageSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, completed, stats[telemetry.StagePipeline].Processed)
}
