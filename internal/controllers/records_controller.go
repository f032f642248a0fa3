package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/poofware/property-records-service/internal/services"
	"github.com/poofware/property-records-service/internal/utils"
)

type RecordsController struct {
	svc services.RecordService
}

func NewRecordsController(s services.RecordService) *RecordsController {
	return &RecordsController{svc: s}
}

// -----------------------------------------------------------------------------
// POST /api/v1/properties
// -----------------------------------------------------------------------------
func (c *RecordsController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, c.svc.CreateProperty, "Could not create property")
}

// -----------------------------------------------------------------------------
// GET /api/v1/properties
// -----------------------------------------------------------------------------
func (c *RecordsController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, c.svc.GetAllProperties, "Could not list properties")
}

// -----------------------------------------------------------------------------
// POST /api/v1/lease-agreements
// -----------------------------------------------------------------------------
func (c *RecordsController) CreateLeaseAgreementHandler(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, c.svc.CreateLeaseAgreement, "Could not create lease agreement")
}

// -----------------------------------------------------------------------------
// GET /api/v1/lease-agreements
// -----------------------------------------------------------------------------
func (c *RecordsController) ListLeaseAgreementsHandler(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, c.svc.GetAllLeaseAgreements, "Could not list lease agreements")
}

// -----------------------------------------------------------------------------
// POST /api/v1/maintenance-requests
// -----------------------------------------------------------------------------
func (c *RecordsController) CreateMaintenanceRequestHandler(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, c.svc.CreateMaintenanceRequest, "Could not create maintenance request")
}

// -----------------------------------------------------------------------------
// GET /api/v1/maintenance-requests
// -----------------------------------------------------------------------------
func (c *RecordsController) ListMaintenanceRequestsHandler(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, c.svc.GetAllMaintenanceRequests, "Could not list maintenance requests")
}

// -----------------------------------------------------------------------------
// shared helpers
// -----------------------------------------------------------------------------

// handleCreate decodes a payload of type P and answers 201 with the stored
// record. Unknown fields (a client-sent id or created_at) are ignored.
func handleCreate[P any, R any](
	w http.ResponseWriter,
	r *http.Request,
	create func(ctx context.Context, payload P) (R, error),
	failureMessage string,
) {
	var payload P
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}

	rec, err := create(r.Context(), payload)
	if err != nil {
		utils.HandleServiceError(w, err, failureMessage)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rec)
}

func handleList[R any](
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context) ([]R, error),
	failureMessage string,
) {
	recs, err := list(r.Context())
	if err != nil {
		utils.HandleServiceError(w, err, failureMessage)
		return
	}
	if recs == nil {
		recs = []R{}
	}
	utils.RespondWithJSON(w, http.StatusOK, recs)
}
