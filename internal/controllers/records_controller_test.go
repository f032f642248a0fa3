package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/property-records-service/internal/dtos"
	"github.com/poofware/property-records-service/internal/metrics"
	"github.com/poofware/property-records-service/internal/models"
	"github.com/poofware/property-records-service/internal/repositories"
	"github.com/poofware/property-records-service/internal/services"
	"github.com/poofware/property-records-service/internal/utils"
)

func newTestController() *RecordsController {
	svc := services.NewRecordService(
		repositories.NewMemoryBackend(),
		metrics.NewMetrics(prometheus.NewRegistry()),
		nil,
	)
	return NewRecordsController(svc)
}

func doRequest(h http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestCreatePropertyHandler(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.CreatePropertyHandler, http.MethodPost,
		`{"owner":"Alice","address":"1 Main St","valuation":250000,"status":"available"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var p models.Property
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, uint64(1), p.ID)
	assert.Equal(t, "Alice", p.Owner)
	assert.NotZero(t, p.CreatedAt)
}

func TestCreatePropertyHandler_IgnoresClientIDAndTimestamp(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.CreatePropertyHandler, http.MethodPost,
		`{"id":99,"created_at":5,"owner":"Alice","address":"1 Main St"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var p models.Property
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, uint64(1), p.ID)
	assert.NotEqual(t, uint64(5), p.CreatedAt)
}

func TestCreatePropertyHandler_BadJSON(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.CreatePropertyHandler, http.MethodPost, `{"owner":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, utils.ErrCodeInvalidPayload, body.Code)
	assert.Equal(t, "Invalid JSON payload", body.Message)
}

func TestCreatePropertyHandler_ValidationError(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.CreatePropertyHandler, http.MethodPost, `{"address":"1 Main St"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, utils.ErrCodeValidation, body.Code)
	assert.Equal(t, "owner is required", body.Message)
}

func TestListPropertiesHandler_EmptyIsArray(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.ListPropertiesHandler, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestLeaseAgreementHandlers(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.CreateLeaseAgreementHandler, http.MethodPost,
		`{"property_id":42,"tenant":"Bob","rent":1500,"start_date":1700000000,"end_date":1731536000,"digital_signature":"sig"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(c.CreateLeaseAgreementHandler, http.MethodPost,
		`{"tenant":"Bob","start_date":10,"end_date":5}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "end_date must be after start_date", decodeError(t, rr).Message)

	rr = doRequest(c.ListLeaseAgreementsHandler, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var leases []models.LeaseAgreement
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &leases))
	require.Len(t, leases, 1)
	assert.Equal(t, uint64(42), leases[0].PropertyID)
	assert.Equal(t, "sig", leases[0].DigitalSignature)
}

func TestMaintenanceRequestHandlers(t *testing.T) {
	c := newTestController()

	rr := doRequest(c.CreateMaintenanceRequestHandler, http.MethodPost,
		`{"property_id":1,"description":"Leaky faucet","priority":"high","status":"pending"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(c.CreateMaintenanceRequestHandler, http.MethodPost, `{"status":"open"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, utils.ErrCodeValidation, decodeError(t, rr).Code)

	rr = doRequest(c.ListMaintenanceRequestsHandler, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var reqs []models.MaintenanceRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reqs))
	require.Len(t, reqs, 1)
	assert.Equal(t, "pending", reqs[0].Status)
}

// brokenService fails every call with a storage error.
type brokenService struct{ services.RecordService }

var errBroken = utils.Storagef(errors.New("connection refused"), "could not reach storage")

func (brokenService) CreateProperty(context.Context, dtos.PropertyPayload) (*models.Property, error) {
	return nil, errBroken
}

func (brokenService) GetAllProperties(context.Context) ([]*models.Property, error) {
	return nil, errBroken
}

func (brokenService) Ping(context.Context) error { return errBroken }

func TestHandlers_StorageFailureIs500(t *testing.T) {
	c := NewRecordsController(brokenService{})

	rr := doRequest(c.CreatePropertyHandler, http.MethodPost, `{"owner":"a","address":"b"}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, utils.ErrCodeInternal, body.Code)
	assert.Equal(t, "Could not create property", body.Message)

	rr = doRequest(c.ListPropertiesHandler, http.MethodGet, "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Could not list properties", decodeError(t, rr).Message)
}
