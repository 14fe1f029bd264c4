package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/domain/repository"
	"github.com/mzkhan/auth-api/pkg/helpers"
)

// RecoveryService drives the per-email recovery state machine:
// no code -> code active -> consumed or expired -> no code.
type RecoveryService struct {
	Users    repository.UserRepository
	OTPs     repository.OTPRepository
	Notifier Notifier
	Logger   *logrus.Logger
	OTPTTL   time.Duration

	// now is swappable in tests
	now func() time.Time
}

func NewRecoveryService(users repository.UserRepository, otps repository.OTPRepository, notifier Notifier, logger *logrus.Logger, otpTTL time.Duration) *RecoveryService {
	return &RecoveryService{
		Users:    users,
		OTPs:     otps,
		Notifier: notifier,
		Logger:   logger,
		OTPTTL:   otpTTL,
		now:      time.Now,
	}
}

// ForgotPassword issues a fresh recovery code for the address. An unexpired
// code blocks reissue; an expired one is swept first. The code is persisted
// before delivery is attempted: if the notification fails the record stays
// so the code remains redeemable, and the caller sees the delivery error.
func (s *RecoveryService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	existing, err := s.OTPs.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.Expired(s.now()) {
			return ErrOTPAlreadySent
		}
		if _, err := s.OTPs.DeleteByEmail(ctx, email); err != nil {
			return err
		}
	case errors.Is(err, repository.ErrNotFound):
		// no code active, proceed
	default:
		return err
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	otp := &entity.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.OTPTTL),
	}
	if err := s.OTPs.Create(ctx, otp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent request for the same address
			return ErrOTPAlreadySent
		}
		return err
	}

	if err := s.Notifier.SendOTP(ctx, u.Email, u.Name, code, otp.ExpiresAt); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("otp notification failed, code kept")
		}
		return fmt.Errorf("otp notification: %w", err)
	}
	return nil
}

// VerifyOTP redeems a code. Lookup is keyed by email and the code compared
// against that record only, so a guessed code cannot redeem another
// account's recovery. Expired codes are rejected but left in place; the
// next forgot-password call cleans them up.
func (s *RecoveryService) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.ToLower(email)

	rec, err := s.OTPs.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOTPNotFound
		}
		return err
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return ErrOTPNotFound
	}
	if rec.Expired(s.now()) {
		return ErrOTPExpired
	}
	if _, err := s.OTPs.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	return nil
}

type ResetPasswordInput struct {
	Email       string
	OldPassword string
	Identity    string
	NewPassword string
}

// ResetPassword changes the stored password digest. Both the old password
// and the identity secret must verify; a single mismatch rejects the whole
// request without revealing which factor failed.
func (s *RecoveryService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	oldOK := helpers.CompareHashAndPassword(u.Password, in.OldPassword)
	identityOK := helpers.CompareHashAndPassword(u.Identity, in.Identity)
	if !oldOK || !identityOK {
		return ErrIdentityMismatch
	}

	hash, err := helpers.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	n, err := s.Users.UpdatePassword(ctx, u.ID, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNothingUpdated
	}
	return nil
}
