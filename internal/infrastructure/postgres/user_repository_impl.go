package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/domain/repository"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, identity_hash, name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Identity, u.Name, u.Phone, u.Role)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, identity_hash, name, phone, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, identity_hash, name, phone, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Identity, &u.Name, &u.Phone,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = now()
		WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
