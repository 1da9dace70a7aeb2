package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/properties", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/properties", http.StatusOK, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/properties", http.StatusBadRequest, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/properties", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/properties", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestObserveSearch(t *testing.T) {
	m := New()

	m.ObserveSearch(nil, 10)
	m.ObserveSearch([]string{"city", "minimum_rating"}, 3)
	m.ObserveSearch([]string{"city"}, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchesTotal.WithLabelValues("none")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.searchesTotal.WithLabelValues("city")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchesTotal.WithLabelValues("minimum_rating")))
}

func TestRateLimitHit(t *testing.T) {
	m := New()
	m.RateLimitHit()
	m.RateLimitHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rateLimitHits))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSearch([]string{"owner_id"}, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lightbnb_property_search_filters_total{filter="owner_id"} 1`)
}
