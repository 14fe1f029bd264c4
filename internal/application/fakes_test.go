package application

import (
	"context"
	"fmt"
	"time"

	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/domain/repository"
)

// -------- in-memory fakes --------

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	nextID  int

	createErr error
	// forceZeroUpdate makes UpdatePassword report no rows changed
	forceZeroUpdate bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) (int64, error) {
	if f.forceZeroUpdate {
		return 0, nil
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			u.Password = passwordHash
			u.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeOTPRepo struct {
	byEmail map[string]*entity.OTP
	nextID  int
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{byEmail: map[string]*entity.OTP{}}
}

func (f *fakeOTPRepo) Create(ctx context.Context, o *entity.OTP) error {
	if _, ok := f.byEmail[o.Email]; ok {
		return repository.ErrDuplicate
	}
	f.nextID++
	o.ID = fmt.Sprintf("otp-%d", f.nextID)
	o.CreatedAt = time.Now()
	f.byEmail[o.Email] = o
	return nil
}

func (f *fakeOTPRepo) GetByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	if o, ok := f.byEmail[email]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOTPRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	if _, ok := f.byEmail[email]; ok {
		delete(f.byEmail, email)
		return 1, nil
	}
	return 0, nil
}

var _ repository.OTPRepository = (*fakeOTPRepo)(nil)

type sentOTP struct {
	Email string
	Name  string
	Code  string
}

type fakeNotifier struct {
	sent []sentOTP
	err  error
}

func (f *fakeNotifier) SendOTP(ctx context.Context, email, name, code string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentOTP{Email: email, Name: name, Code: code})
	return nil
}
