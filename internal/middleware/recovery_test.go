package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/property-records-service/internal/metrics"
	"github.com/poofware/property-records-service/internal/utils"
)

func TestRecovery_PanicBecomes500(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	r := mux.NewRouter()
	r.Use(RequestLogger(m), Recovery())
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, utils.ErrCodeInternal, body.Code)
	assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500"),
	))
}
