package utils

const (
	OrganizationName                      = "Poof"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	MaintenanceStatusPending   = "pending"
	MaintenanceStatusCompleted = "completed"
)
