package models

// Property is a managed real-estate unit. Status is free-form.
type Property struct {
	ID        uint64  `json:"id"`
	Owner     string  `json:"owner"`
	Address   string  `json:"address"`
	Valuation float64 `json:"valuation"`
	Status    string  `json:"status"`
	CreatedAt uint64  `json:"created_at"`
}

func (p *Property) GetID() uint64   { return p.ID }
func (p *Property) SetID(id uint64) { p.ID = id }
