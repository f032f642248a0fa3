package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/property-records-service/internal/repositories"
	"github.com/poofware/property-records-service/internal/utils"
)

func TestHealthCheckHandler_OK(t *testing.T) {
	h := NewHealthController(repositories.NewMemoryBackend())

	rr := httptest.NewRecorder()
	h.HealthCheckHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rr.Body.String())
}

func TestHealthCheckHandler_Unavailable(t *testing.T) {
	h := NewHealthController(brokenService{})

	rr := httptest.NewRecorder()
	h.HealthCheckHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, utils.ErrCodeInternal, body.Code)
	assert.Equal(t, "Storage unreachable", body.Message)
}
