// Package user defines the user record contract this subsystem reads from.
// The store is an external collaborator: this subsystem looks records up by
// id or email and creates them at registration, and never mutates them
// otherwise.
package user

import "time"

// Role is the enumerated access level of a user.
type Role string

const (
	// RoleStandard is the default role assigned at registration.
	RoleStandard Role = "standard"
	// RoleAdmin grants access to admin routes.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdmin
}

// User is a stored user record. PasswordHash never serializes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the client-safe projection returned in response bodies.
type Public struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
