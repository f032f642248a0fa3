package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/property-records-service/internal/metrics"
)

func newTestRouter(m *metrics.Metrics, seen *string) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(m))
	r.HandleFunc("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		*seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	return r
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	var seen string
	router := newTestRouter(m, &seen)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/things/7", nil))

	require.Equal(t, http.StatusTeapot, rr.Code)
	id := rr.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, seen)
}

func TestRequestLogger_ReusesClientRequestID(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	var seen string
	router := newTestRouter(m, &seen)

	req := httptest.NewRequest(http.MethodGet, "/things/7", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", rr.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-123", seen)
}

func TestRequestLogger_RecordsMetricsByRouteTemplate(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	var seen string
	router := newTestRouter(m, &seen)

	for _, path := range []string{"/things/1", "/things/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418"),
	))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
