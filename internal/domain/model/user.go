package model

import "time"

// Role grants access to staff workflows.
type Role string

const (
	RoleClient      Role = "client"
	RoleConseillere Role = "conseillere"
	RoleResponsable Role = "responsable"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleConseillere, RoleResponsable:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Actor identifies the caller of an operation.
type Actor struct {
	UserID int64
	Role   Role
}
