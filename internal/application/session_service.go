package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/domain/repository"
	"github.com/mzkhan/auth-api/pkg/helpers"
)

// SessionService orchestrates sign-up, login and access-token refresh.
type SessionService struct {
	Users        repository.UserRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewSessionService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *SessionService {
	return &SessionService{Users: users, JWT: jwt, Logger: logger, ES: es, ESUsersIndex: esUsersIndex}
}

// UserData is the outward-facing shape of a user record. Credential digests
// never appear here.
type UserData struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserData(u *entity.User) *UserData {
	return &UserData{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// TokenPair carries freshly issued tokens. The refresh token has no expiry.
type TokenPair struct {
	AccessToken       string
	AccessTokenExpiry time.Time
	RefreshToken      string
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string
	Identity string
}

// SignUp hashes both secrets with their own work factors and persists the
// user with a lowercased email. Uniqueness comes from the email index;
// a violation means the address is taken.
func (s *SessionService) SignUp(ctx context.Context, in SignUpInput) error {
	passwordHash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	identityHash, err := helpers.HashIdentity(in.Identity)
	if err != nil {
		return err
	}

	u := &entity.User{
		Email:    strings.ToLower(in.Email),
		Password: passwordHash,
		Identity: identityHash,
		Name:     in.Name,
		Phone:    in.Phone,
		Role:     in.Role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateEmail
		}
		return err
	}

	s.indexUser(ctx, u)
	return nil
}

// Login verifies the password and issues an access/refresh token pair.
func (s *SessionService) Login(ctx context.Context, email, password string) (*UserData, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrUserNotFound
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return toUserData(u), pair, nil
}

// RefreshAccessToken verifies a refresh token, re-resolves the embedded
// email against the store and mints a new access token. The refresh token
// itself is not rotated.
func (s *SessionService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", time.Time{}, ErrInvalidToken
	}
	u, err := s.Users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, err
	}
	return s.JWT.GenerateAccessToken(u.ID, u.Email, u.Role)
}

// Profile returns the outward-facing record for an authenticated user.
func (s *SessionService) Profile(ctx context.Context, id string) (*UserData, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserData(u), nil
}

func (s *SessionService) issueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, err := s.JWT.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh}, nil
}

// indexUser pushes the public part of a user document to Elasticsearch,
// best-effort. Failures are logged and never surfaced to the caller.
func (s *SessionService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}
