package model

import "time"

// Role values stored in users.role. CONSUMER is the default for new
// signups; ADMIN accounts are provisioned by the seed command only.
const (
	RoleFarmer   = "FARMER"
	RoleConsumer = "CONSUMER"
	RoleAdmin    = "ADMIN"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleFarmer || s == RoleConsumer || s == RoleAdmin
}

// SignupRole reports whether s may be self-selected at signup.
// ADMIN is deliberately excluded; see the seed command.
func SignupRole(s string) bool {
	return s == RoleFarmer || s == RoleConsumer
}

// User represents a row in the `users` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hash; empty for identities provisioned without
//                 credentials (such accounts cannot log in).
//  Role         – one of FARMER, CONSUMER, ADMIN.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// PublicUser is the sanitized representation returned by the API. The
// password hash never leaves the repository layer.
type PublicUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips credential data from a User.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
