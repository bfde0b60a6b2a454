package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordStarted()
	r.RecordStarted()
	r.RecordResolution(ResolutionApplied, 10*time.Millisecond)
	r.RecordResolution(ResolutionSuperseded, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.FetchesStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FetchResolutions.WithLabelValues(ResolutionApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FetchResolutions.WithLabelValues(ResolutionSuperseded)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.FetchResolutions.WithLabelValues(ResolutionFailed)))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordStarted()
	r.RecordResolution(ResolutionFailed, time.Second)
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg).RecordStarted()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "fetches_started_total 1"))
}
