package repository

import (
	"context"
	"errors"

	"github.com/mzkhan/auth-api/internal/domain/entity"
)

// Store-level sentinel errors. Uniqueness is enforced by the database
// (unique indexes), not by check-then-act reads; a violated constraint
// surfaces as ErrDuplicate.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdatePassword replaces the stored password digest and returns the
	// number of rows changed.
	UpdatePassword(ctx context.Context, id string, passwordHash string) (int64, error)
}
