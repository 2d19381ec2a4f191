package telemetry_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/telemetry"
)

func TestProvider_Record(t *testing.T) {
	p := telemetry.NewProvider(nil)

	p.RecordScore("Cement", "HIGH", 99, 2*time.Millisecond)
	p.RecordScore("Cement", "HIGH", 95, time.Millisecond)
	p.RecordIngest(5, 2)
	p.RecordLeadStored("news")
	p.RecordNotification("new_lead")
	p.RecordFeedback("Converted")
	p.RecordWeights(map[string]float64{"industry_Marine": 1.11})

	assert.InDelta(t, 2, testutil.ToFloat64(p.Metrics.TextsScored.WithLabelValues("Cement", "HIGH")), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(p.Metrics.ItemsIngested), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.Metrics.ItemsDuplicated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.LeadsStored.WithLabelValues("news")), 0)
	assert.InDelta(t, 1.11, testutil.ToFloat64(p.Metrics.IndustryWeight.WithLabelValues("industry_Marine")), 1e-9)
}

func TestProvider_IndependentRegistries(t *testing.T) {
	// a second provider must not collide with the first
	a := telemetry.NewProvider(nil)
	b := telemetry.NewProvider(nil)
	a.RecordFeedback("Rejected")

	assert.InDelta(t, 1, testutil.ToFloat64(a.Metrics.FeedbackRecorded.WithLabelValues("Rejected")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.Metrics.FeedbackRecorded.WithLabelValues("Rejected")), 0)
}

func TestProvider_Handler(t *testing.T) {
	p := telemetry.NewProvider(nil)
	p.RecordLeadStored("tender")

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `leadscope_leads_stored_total{source="tender"} 1`))
}
