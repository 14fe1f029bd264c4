package entity

import "time"

// OTP is the ephemeral recovery credential issued by forgot-password.
// At most one row may exist per email (unique index); a record past
// ExpiresAt is dead weight that the next forgot-password call sweeps.
type OTP struct {
	ID        string
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is past its validity window.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
