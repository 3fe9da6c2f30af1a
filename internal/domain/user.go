package domain

import (
	"errors"
	"time"
)

// User represents a system user able to authenticate against the API.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin has full access, including account and bank management.
	RoleAdmin Role = "admin"

	// RoleOperator can run money operations but cannot manage reference data.
	RoleOperator Role = "operator"

	// RoleViewer can only read resources.
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanOperate checks if the role can run balance-mutating operations.
func (r Role) CanOperate() bool {
	return r == RoleAdmin || r == RoleOperator
}

// CanManage checks if the role can manage accounts, customers and banks.
func (r Role) CanManage() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
