package app

import (
	"context"
	"fmt"
	"time"

	"github.com/poofware/property-records-service/internal/dtos"
	"github.com/poofware/property-records-service/internal/services"
	"github.com/poofware/property-records-service/internal/utils"
)

// SeedAllTestData inserts one demo property plus a lease and a maintenance
// request pointing at it. It does nothing when any property already exists,
// so restarts never duplicate the seed.
func SeedAllTestData(ctx context.Context, svc services.RecordService) error {
	existing, err := svc.GetAllProperties(ctx)
	if err != nil {
		return fmt.Errorf("check existing properties: %w", err)
	}
	if len(existing) > 0 {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	prop, err := svc.CreateProperty(ctx, dtos.PropertyPayload{
		Owner:     "Demo Owner",
		Address:   "1 Main St",
		Valuation: 100000.0,
		Status:    "available",
	})
	if err != nil {
		return fmt.Errorf("seed property: %w", err)
	}

	start := time.Now().UTC()
	if _, err := svc.CreateLeaseAgreement(ctx, dtos.LeaseAgreementPayload{
		PropertyID:       prop.ID,
		Tenant:           "Demo Tenant",
		Rent:             1200.0,
		StartDate:        uint64(start.Unix()),
		EndDate:          uint64(start.AddDate(1, 0, 0).Unix()),
		DigitalSignature: "demo-signature",
	}); err != nil {
		return fmt.Errorf("seed lease agreement: %w", err)
	}

	if _, err := svc.CreateMaintenanceRequest(ctx, dtos.MaintenanceRequestPayload{
		PropertyID:  prop.ID,
		Description: "Replace hallway light fixture",
		Priority:    "low",
		Status:      utils.MaintenanceStatusPending,
	}); err != nil {
		return fmt.Errorf("seed maintenance request: %w", err)
	}

	utils.Logger.Infof("Seeded demo records for property %d", prop.ID)
	return nil
}
