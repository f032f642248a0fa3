package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/poofware/property-records-service/internal/models"
	"github.com/poofware/property-records-service/internal/utils"
)

const statsJobTimeout = 30 * time.Second

// StartScheduler runs RefreshRecordStats on cfg.StatsCronSpec.
func (a *App) StartScheduler() error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(a.Config.StatsCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsJobTimeout)
		defer cancel()
		if err := a.RefreshRecordStats(ctx); err != nil {
			utils.Logger.WithError(err).Error("Failed to refresh record stats")
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	a.scheduler = c
	utils.Logger.Infof("Scheduled record stats job (%s)", a.Config.StatsCronSpec)
	return nil
}

// RefreshRecordStats publishes the size of each collection to the
// records_stored gauge.
func (a *App) RefreshRecordStats(ctx context.Context) error {
	props, err := a.RecordService.GetAllProperties(ctx)
	if err != nil {
		return err
	}
	leases, err := a.RecordService.GetAllLeaseAgreements(ctx)
	if err != nil {
		return err
	}
	requests, err := a.RecordService.GetAllMaintenanceRequests(ctx)
	if err != nil {
		return err
	}

	a.Metrics.RecordsStored.WithLabelValues(models.CollectionProperties).Set(float64(len(props)))
	a.Metrics.RecordsStored.WithLabelValues(models.CollectionLeaseAgreements).Set(float64(len(leases)))
	a.Metrics.RecordsStored.WithLabelValues(models.CollectionMaintenanceRequests).Set(float64(len(requests)))

	utils.Logger.Debugf(
		"Record stats: properties=%d lease_agreements=%d maintenance_requests=%d",
		len(props), len(leases), len(requests),
	)
	return nil
}
