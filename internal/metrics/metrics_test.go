package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()

	rec.Completed()
	rec.Completed()
	rec.Failed()
	rec.DryRun()
	rec.ParseErrors(3)
	rec.APIAttempts(5)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.completed))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.failed))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.dryRun))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.parseErrors))
	assert.Equal(t, 5.0, testutil.ToFloat64(rec.apiAttempts))
}

func TestRecorder_NilSafe(t *testing.T) {
	t.Parallel()
	var rec *Recorder

	// Must not panic.
	rec.Completed()
	rec.Failed()
	rec.DryRun()
	rec.ParseErrors(1)
	rec.APIAttempts(1)
}

func TestRecorder_Handler(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()
	rec.Completed()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "fleetprov_hosts_completed_total 1")
}
