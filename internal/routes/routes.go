package routes

const (
	// Health
	Health = "/health"

	// Metrics
	Metrics = "/metrics"

	// Record endpoints; POST creates, GET lists all.
	Properties          = "/api/v1/properties"
	LeaseAgreements     = "/api/v1/lease-agreements"
	MaintenanceRequests = "/api/v1/maintenance-requests"
)
