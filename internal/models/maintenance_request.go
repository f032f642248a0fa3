package models

type MaintenanceRequest struct {
	ID          uint64 `json:"id"`
	PropertyID  uint64 `json:"property_id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedAt   uint64 `json:"created_at"`
}

func (m *MaintenanceRequest) GetID() uint64   { return m.ID }
func (m *MaintenanceRequest) SetID(id uint64) { m.ID = id }
