package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/domain/repository"
)

type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

// Create inserts a recovery code. The unique index on otps.email makes
// concurrent inserts for the same address lose with ErrDuplicate instead
// of producing two active codes.
func (r *OTPRepository) Create(ctx context.Context, o *entity.OTP) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO otps (email, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, o.Email, o.Code, o.ExpiresAt)

	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *OTPRepository) GetByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	o := &entity.OTP{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, code, expires_at, created_at
		FROM otps
		WHERE email = $1
	`, email)
	if err := row.Scan(&o.ID, &o.Email, &o.Code, &o.ExpiresAt, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM otps WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.OTPRepository = (*OTPRepository)(nil)
