package dtos

// Create payloads: every entity field except id and created_at.

type PropertyPayload struct {
	Owner     string  `json:"owner" validate:"required"`
	Address   string  `json:"address" validate:"required"`
	Valuation float64 `json:"valuation"`
	Status    string  `json:"status"`
}

type LeaseAgreementPayload struct {
	PropertyID       uint64  `json:"property_id"`
	Tenant           string  `json:"tenant" validate:"required"`
	Rent             float64 `json:"rent"`
	StartDate        uint64  `json:"start_date"`
	EndDate          uint64  `json:"end_date" validate:"gtfield=StartDate"`
	DigitalSignature string  `json:"digital_signature"`
}

type MaintenanceRequestPayload struct {
	PropertyID  uint64 `json:"property_id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status" validate:"oneof=pending completed"`
}
