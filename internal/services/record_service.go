package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/poofware/property-records-service/internal/dtos"
	"github.com/poofware/property-records-service/internal/metrics"
	"github.com/poofware/property-records-service/internal/models"
	"github.com/poofware/property-records-service/internal/repositories"
	"github.com/poofware/property-records-service/internal/utils"
)

// ------------------------------------------------------------------
// Service
// ------------------------------------------------------------------

// RecordService is the record store: create and list-all over the three
// collections. Every failure carries a readable message; validation
// failures wrap utils.ErrInvalidPayload, backend failures utils.ErrStorage.
type RecordService interface {
	CreateProperty(ctx context.Context, payload dtos.PropertyPayload) (*models.Property, error)
	GetAllProperties(ctx context.Context) ([]*models.Property, error)

	CreateLeaseAgreement(ctx context.Context, payload dtos.LeaseAgreementPayload) (*models.LeaseAgreement, error)
	GetAllLeaseAgreements(ctx context.Context) ([]*models.LeaseAgreement, error)

	CreateMaintenanceRequest(ctx context.Context, payload dtos.MaintenanceRequestPayload) (*models.MaintenanceRequest, error)
	GetAllMaintenanceRequests(ctx context.Context) ([]*models.MaintenanceRequest, error)

	Ping(ctx context.Context) error // tiny health-probe
}

// Clock returns the current time. Injected so tests control created_at.
type Clock func() time.Time

type recordService struct {
	backend  repositories.Backend
	metrics  *metrics.Metrics
	validate *validator.Validate
	now      Clock
}

func NewRecordService(backend repositories.Backend, m *metrics.Metrics, now Clock) RecordService {
	if now == nil {
		now = time.Now
	}
	return &recordService{
		backend:  backend,
		metrics:  m,
		validate: newValidator(),
		now:      now,
	}
}

// ------------------------------------------------------------------
// Public API
// ------------------------------------------------------------------

func (s *recordService) CreateProperty(ctx context.Context, payload dtos.PropertyPayload) (*models.Property, error) {
	if err := s.checkPayload(models.CollectionProperties, payload); err != nil {
		return nil, err
	}

	p := &models.Property{
		Owner:     payload.Owner,
		Address:   payload.Address,
		Valuation: payload.Valuation,
		Status:    payload.Status,
		CreatedAt: s.timestamp(),
	}
	if err := s.backend.Properties().Create(ctx, p); err != nil {
		return nil, s.storageFailure(models.CollectionProperties, err, "could not create property")
	}

	s.created(models.CollectionProperties, p.ID)
	return p, nil
}

func (s *recordService) GetAllProperties(ctx context.Context) ([]*models.Property, error) {
	out, err := s.backend.Properties().ListAll(ctx)
	if err != nil {
		return nil, utils.Storagef(err, "could not list properties")
	}
	return out, nil
}

// CreateLeaseAgreement stores the lease without looking up PropertyID.
func (s *recordService) CreateLeaseAgreement(ctx context.Context, payload dtos.LeaseAgreementPayload) (*models.LeaseAgreement, error) {
	if err := s.checkPayload(models.CollectionLeaseAgreements, payload); err != nil {
		return nil, err
	}

	l := &models.LeaseAgreement{
		PropertyID:       payload.PropertyID,
		Tenant:           payload.Tenant,
		Rent:             payload.Rent,
		StartDate:        payload.StartDate,
		EndDate:          payload.EndDate,
		DigitalSignature: payload.DigitalSignature,
		CreatedAt:        s.timestamp(),
	}
	if err := s.backend.LeaseAgreements().Create(ctx, l); err != nil {
		return nil, s.storageFailure(models.CollectionLeaseAgreements, err, "could not create lease agreement")
	}

	s.created(models.CollectionLeaseAgreements, l.ID)
	return l, nil
}

func (s *recordService) GetAllLeaseAgreements(ctx context.Context) ([]*models.LeaseAgreement, error) {
	out, err := s.backend.LeaseAgreements().ListAll(ctx)
	if err != nil {
		return nil, utils.Storagef(err, "could not list lease agreements")
	}
	return out, nil
}

// CreateMaintenanceRequest stores the request without looking up PropertyID.
func (s *recordService) CreateMaintenanceRequest(ctx context.Context, payload dtos.MaintenanceRequestPayload) (*models.MaintenanceRequest, error) {
	if err := s.checkPayload(models.CollectionMaintenanceRequests, payload); err != nil {
		return nil, err
	}

	m := &models.MaintenanceRequest{
		PropertyID:  payload.PropertyID,
		Description: payload.Description,
		Priority:    payload.Priority,
		Status:      payload.Status,
		CreatedAt:   s.timestamp(),
	}
	if err := s.backend.MaintenanceRequests().Create(ctx, m); err != nil {
		return nil, s.storageFailure(models.CollectionMaintenanceRequests, err, "could not create maintenance request")
	}

	s.created(models.CollectionMaintenanceRequests, m.ID)
	return m, nil
}

func (s *recordService) GetAllMaintenanceRequests(ctx context.Context) ([]*models.MaintenanceRequest, error) {
	out, err := s.backend.MaintenanceRequests().ListAll(ctx)
	if err != nil {
		return nil, utils.Storagef(err, "could not list maintenance requests")
	}
	return out, nil
}

func (s *recordService) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

// timestamp is created_at in Unix seconds.
func (s *recordService) timestamp() uint64 {
	return uint64(s.now().Unix())
}

func (s *recordService) checkPayload(collection string, payload any) error {
	if err := validatePayload(s.validate, payload); err != nil {
		s.metrics.CreateFailuresTotal.WithLabelValues(collection, "validation").Inc()
		utils.Logger.WithFields(logrus.Fields{
			"collection": collection,
			"error":      err.Error(),
		}).Debug("Rejected create payload")
		return err
	}
	return nil
}

func (s *recordService) storageFailure(collection string, err error, msg string) error {
	s.metrics.CreateFailuresTotal.WithLabelValues(collection, "storage").Inc()
	utils.Logger.WithError(err).WithField("collection", collection).Error(msg)
	return utils.Storagef(err, msg)
}

func (s *recordService) created(collection string, id uint64) {
	s.metrics.RecordsCreatedTotal.WithLabelValues(collection).Inc()
	utils.Logger.WithFields(logrus.Fields{
		"collection": collection,
		"id":         id,
	}).Debug("Record created")
}
