package repository

import (
	"context"

	"github.com/mzkhan/auth-api/internal/domain/entity"
)

// OTPRepository defines the interface for recovery-code storage.
type OTPRepository interface {
	Create(ctx context.Context, o *entity.OTP) error
	GetByEmail(ctx context.Context, email string) (*entity.OTP, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}
