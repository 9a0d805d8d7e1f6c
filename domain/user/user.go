// Package user holds user accounts and the acting principal used for
// authorization decisions.
package user

import "time"

// Role is an account role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an account. Password holds the bcrypt hash, never the clear text.
type User struct {
	ID        string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
