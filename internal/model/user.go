package model

import "time"

// Roles an account may hold.  The role gates which route groups an
// authenticated identity may invoke; it is independent of Status.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCrew     = "crew"
	RolePartner  = "partner"
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// Account lifecycle statuses.  Every registration starts as pending, except
// the very first admin in an empty system which is activated immediately so
// that somebody exists to approve everyone else.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusRejected  = "rejected"
)

// ValidRole reports whether the given string names a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCrew, RolePartner, RoleVendor, RoleCustomer:
		return true
	}
	return false
}

// User represents an account record as stored in the `users` table.
//
// Fields:
//  ID           – uuid primary key of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password; never serialized.
//  FullName     – display name.
//  Role         – capability tag (admin, manager, crew, partner, vendor, customer).
//  Status       – lifecycle stage (pending, active, suspended, rejected).
//  ApprovedBy   – admin who approved the account (null until approved).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string     `json:"id"`            // users.id
	Email        string     `json:"email"`         // users.email
	PasswordHash string     `json:"-"`             // users.password_hash
	FullName     string     `json:"full_name"`     // users.full_name
	Role         string     `json:"role"`          // users.role
	Status       string     `json:"status"`        // users.status
	ApprovedBy   *string    `json:"approved_by,omitempty"` // users.approved_by (nullable)
	CreatedAt    time.Time  `json:"created_at"`    // users.created_at
	UpdatedAt    time.Time  `json:"updated_at"`    // users.updated_at
}
