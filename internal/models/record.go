// Package models holds the three record types kept by the service.
// Records are immutable once stored; ids and created_at are server-assigned.
package models

// Record is implemented by every stored entity so the repositories can
// assign identifiers generically.
type Record interface {
	GetID() uint64
	SetID(uint64)
}

// Collection names used in logs, metrics labels and table names.
const (
	CollectionProperties          = "properties"
	CollectionLeaseAgreements     = "lease_agreements"
	CollectionMaintenanceRequests = "maintenance_requests"
)
