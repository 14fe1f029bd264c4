package entity

import (
	"time"
)

// User is the aggregate root for the auth domain.
// Password holds the bcrypt digest of the primary password; Identity holds
// the digest of the secondary secret required to authorize a password reset.
// Email is stored lowercased and is unique.
type User struct {
	ID        string
	Email     string
	Password  string
	Identity  string
	Name      string
	Phone     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Roles accepted at sign-up. The demo data passthrough branches on these.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
