package application

import (
	"context"
	"time"
)

// Notifier delivers a recovery code to a user's registered email address.
// The production implementation enqueues a job for the email worker; tests
// substitute a fake.
type Notifier interface {
	SendOTP(ctx context.Context, email, name, code string, expiresAt time.Time) error
}
