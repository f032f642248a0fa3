package controllers

import (
	"context"
	"net/http"

	"github.com/poofware/property-records-service/internal/dtos"
	"github.com/poofware/property-records-service/internal/utils"
)

// Pinger probes the storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	pinger Pinger
}

func NewHealthController(p Pinger) *HealthController {
	return &HealthController{pinger: p}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.pinger.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("storage backend unreachable")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Storage unreachable",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
