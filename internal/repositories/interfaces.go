package repositories

import (
	"context"

	"github.com/poofware/property-records-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interfaces
------------------------------------------------------------------ */

// Create allocates the next id for the collection, writes it into the
// record and persists the record as one atomic step. ListAll returns every
// record oldest first; an empty collection yields an empty, non-nil slice.

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	ListAll(ctx context.Context) ([]*models.Property, error)
}

type LeaseAgreementRepository interface {
	Create(ctx context.Context, l *models.LeaseAgreement) error
	ListAll(ctx context.Context) ([]*models.LeaseAgreement, error)
}

type MaintenanceRequestRepository interface {
	Create(ctx context.Context, m *models.MaintenanceRequest) error
	ListAll(ctx context.Context) ([]*models.MaintenanceRequest, error)
}

// Backend is one storage substrate holding all three collections.
type Backend interface {
	Name() string
	Properties() PropertyRepository
	LeaseAgreements() LeaseAgreementRepository
	MaintenanceRequests() MaintenanceRequestRepository
	Ping(ctx context.Context) error
	Close() error
}

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)
