package domain

import "time"

// Customer owns accounts. Deleting a customer is restricted while any of
// their accounts exist.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
