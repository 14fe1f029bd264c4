package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mzkhan/auth-api/internal/application"
	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/domain/repository"
	"github.com/mzkhan/auth-api/internal/interface/middleware"
	"github.com/mzkhan/auth-api/pkg/helpers"
	"github.com/mzkhan/auth-api/pkg/validation"
)

var setupOnce sync.Once

func testSetup() {
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})
}

// -------- in-memory fakes --------

type memUserRepo struct {
	byEmail map[string]*entity.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	m.nextID++
	u.ID = fmt.Sprintf("user-%d", m.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := m.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, id string, hash string) (int64, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			u.Password = hash
			return 1, nil
		}
	}
	return 0, nil
}

type memOTPRepo struct {
	byEmail map[string]*entity.OTP
	nextID  int
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{byEmail: map[string]*entity.OTP{}}
}

func (m *memOTPRepo) Create(ctx context.Context, o *entity.OTP) error {
	if _, ok := m.byEmail[o.Email]; ok {
		return repository.ErrDuplicate
	}
	m.nextID++
	o.ID = fmt.Sprintf("otp-%d", m.nextID)
	o.CreatedAt = time.Now()
	m.byEmail[o.Email] = o
	return nil
}

func (m *memOTPRepo) GetByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	if o, ok := m.byEmail[email]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memOTPRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	if _, ok := m.byEmail[email]; ok {
		delete(m.byEmail, email)
		return 1, nil
	}
	return 0, nil
}

type memNotifier struct {
	lastCode string
}

func (m *memNotifier) SendOTP(ctx context.Context, email, name, code string, expiresAt time.Time) error {
	m.lastCode = code
	return nil
}

// -------- fixture --------

type authFixture struct {
	engine   *gin.Engine
	users    *memUserRepo
	otps     *memOTPRepo
	notifier *memNotifier
	jwt      *helpers.JWTManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	testSetup()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newMemUserRepo()
	otps := newMemOTPRepo()
	notifier := &memNotifier{}
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour)

	sessions := application.NewSessionService(users, jwt, logger, nil, "")
	recovery := application.NewRecoveryService(users, otps, notifier, logger, 30*time.Minute)
	h := NewAuthHandler(sessions, recovery, logger)

	engine := gin.New()
	auth := engine.Group("/api/auth")
	auth.POST("/sign-up", h.SignUp)
	auth.POST("/login", h.Login)
	auth.POST("/generate-access-token", h.GenerateAccessToken)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/verify-otp", h.VerifyOTP)
	auth.POST("/reset-password", middleware.RefreshAuth(jwt), h.ResetPassword)

	return &authFixture{engine: engine, users: users, otps: otps, notifier: notifier, jwt: jwt}
}

func (f *authFixture) do(t *testing.T, path string, body gin.H, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *authFixture) signUp(t *testing.T) {
	t.Helper()
	w := f.do(t, "/api/auth/sign-up", gin.H{
		"email":    "a@x.com",
		"password": "secret1",
		"name":     "A",
		"phone":    "123",
		"role":     "user",
		"identity": "mom",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   map[string]any `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

// -------- tests --------

func TestSignUpEndpoint(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	// same address again
	w := f.do(t, "/api/auth/sign-up", gin.H{
		"email":    "a@x.com",
		"password": "other66",
		"name":     "B",
		"phone":    "456",
		"role":     "user",
		"identity": "dad",
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.False(t, decode(t, w).Success)
}

func TestSignUpEndpoint_Validation(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, "/api/auth/sign-up", gin.H{
		"email":    "a@x.com",
		"password": "short", // below the 6-char minimum
		"name":     "A",
		"phone":    "123",
		"role":     "user",
		"identity": "mom",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decode(t, w)
	require.Contains(t, e.Error, "password")

	w = f.do(t, "/api/auth/sign-up", gin.H{
		"email":    "a@x.com",
		"password": "secret1",
		"name":     "A",
		"phone":    "123",
		"role":     "superuser",
		"identity": "mom",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode(t, w).Error, "role")
}

func TestLoginEndpoint(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	w := f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	e := decode(t, w)
	access, _ := e.Data["accessToken"].(string)
	refresh, _ := e.Data["refreshToken"].(string)
	require.True(t, strings.HasPrefix(access, "bearer "), "access token must carry the bearer prefix")
	require.True(t, strings.HasPrefix(refresh, "bearer "), "refresh token must carry the bearer prefix")

	// no credential digest may leak into the body
	require.NotContains(t, w.Body.String(), "$2a$")
	userData, _ := e.Data["userData"].(map[string]any)
	require.Equal(t, "a@x.com", userData["email"])
	require.NotContains(t, userData, "password")
	require.NotContains(t, userData, "identity")
}

func TestLoginEndpoint_Failures(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	w := f.do(t, "/api/auth/login", gin.H{"email": "nobody@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "wrong66"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateAccessTokenEndpoint(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	w := f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	refresh := decode(t, w).Data["refreshToken"].(string)

	// via Authorization header, prefixed form as issued
	w = f.do(t, "/api/auth/generate-access-token", gin.H{}, map[string]string{"Authorization": refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	access := decode(t, w).Data["accessToken"].(string)
	require.True(t, strings.HasPrefix(access, "bearer "))

	claims, err := f.jwt.ParseAccessToken(strings.TrimPrefix(access, "bearer "))
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)

	// via body
	w = f.do(t, "/api/auth/generate-access-token", gin.H{"token": refresh}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateAccessTokenEndpoint_Failures(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, "/api/auth/generate-access-token", gin.H{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "token not found", decode(t, w).Message)

	w = f.do(t, "/api/auth/generate-access-token", gin.H{"token": "bearer garbage"}, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestForgotAndVerifyOTPEndpoints(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	w := f.do(t, "/api/auth/forgot-password", gin.H{"email": "a@x.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, f.notifier.lastCode)

	// active code blocks reissue
	w = f.do(t, "/api/auth/forgot-password", gin.H{"email": "a@x.com"}, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// wrong code
	wrong := "000000"
	if f.notifier.lastCode == wrong {
		wrong = "000001"
	}
	w = f.do(t, "/api/auth/verify-otp", gin.H{"email": "a@x.com", "code": wrong}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// right code consumes the record
	w = f.do(t, "/api/auth/verify-otp", gin.H{"email": "a@x.com", "code": f.notifier.lastCode}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "/api/auth/verify-otp", gin.H{"email": "a@x.com", "code": f.notifier.lastCode}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestForgotPasswordEndpoint_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	w := f.do(t, "/api/auth/forgot-password", gin.H{"email": "nobody@x.com"}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyOTPEndpoint_BadCodeShape(t *testing.T) {
	f := newAuthFixture(t)
	w := f.do(t, "/api/auth/verify-otp", gin.H{"email": "a@x.com", "code": "12ab"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode(t, w).Error, "code")
}

func TestResetPasswordEndpoint(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	body := gin.H{
		"email":       "a@x.com",
		"oldPassword": "secret1",
		"identity":    "mom",
		"newPassword": "newsecret",
	}

	// refresh token required
	w := f.do(t, "/api/auth/reset-password", body, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, "/api/auth/reset-password", body, map[string]string{"Authorization": "bearer garbage"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	login := f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	refresh := decode(t, login).Data["refreshToken"].(string)

	w = f.do(t, "/api/auth/reset-password", body, map[string]string{"Authorization": refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// old password no longer works, the new one does
	w = f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "newsecret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestResetPasswordEndpoint_IdentityMismatch(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	login := f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	refresh := decode(t, login).Data["refreshToken"].(string)

	w := f.do(t, "/api/auth/reset-password", gin.H{
		"email":       "a@x.com",
		"oldPassword": "secret1",
		"identity":    "dad",
		"newPassword": "newsecret",
	}, map[string]string{"Authorization": refresh})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "identity or old password mismatch", decode(t, w).Message)

	// password unchanged
	w = f.do(t, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
