package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ItemMutated("add")
	m.ItemMutated("add")
	m.ContributionRecorded(2500)
	m.ContributionRecorded(100)
	m.DriftRepaired()
	m.FriendEdgeWritten("qr")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.itemMutations.WithLabelValues("add")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.contributions))
	assert.Equal(t, 2600.0, testutil.ToFloat64(m.contributedSum))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.driftRepairs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.friendEdges.WithLabelValues("qr")))
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ItemMutated("add")
		m.ContributionRecorded(1)
		m.DriftRepaired()
		m.FriendEdgeWritten("email")
		m.ObserveRequest("GET", "/health", 200, 0.01)
	})
}

func TestHandlerExposesRequests(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/wishlists/:id", 200, 0.02)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/wishlists/:id"`)
	assert.Contains(t, rec.Body.String(), "giftlist_http_request_duration_seconds")
}
