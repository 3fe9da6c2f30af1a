package domain

import "time"

// ExternalBank is reference data for a counterpart institution. Looked up
// by id or by its unique routing code; read-mostly.
type ExternalBank struct {
	ID          string
	Name        string
	RoutingCode string
	BaseURL     string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateActive checks that the bank accepts transfers.
func (b *ExternalBank) ValidateActive() error {
	if !b.Active {
		return ErrBankInactive
	}
	return nil
}
