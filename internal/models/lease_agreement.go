package models

// LeaseAgreement binds a tenant to a property for a date range. PropertyID is
// informational; nothing checks that the property exists.
type LeaseAgreement struct {
	ID               uint64  `json:"id"`
	PropertyID       uint64  `json:"property_id"`
	Tenant           string  `json:"tenant"`
	Rent             float64 `json:"rent"`
	StartDate        uint64  `json:"start_date"`
	EndDate          uint64  `json:"end_date"`
	DigitalSignature string  `json:"digital_signature"`
	CreatedAt        uint64  `json:"created_at"`
}

func (l *LeaseAgreement) GetID() uint64   { return l.ID }
func (l *LeaseAgreement) SetID(id uint64) { l.ID = id }
