package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mzkhan/auth-api/internal/application"
	"github.com/mzkhan/auth-api/internal/interface/middleware"
	"github.com/mzkhan/auth-api/pkg/response"
	"github.com/mzkhan/auth-api/pkg/validation"
)

// Issued tokens carry the lowercase "bearer " prefix; existing clients
// split on the space and expect exactly this casing.
const bearerPrefix = "bearer "

type AuthHandler struct {
	Sessions *application.SessionService
	Recovery *application.RecoveryService
	Logger   *logrus.Logger
}

func NewAuthHandler(sessions *application.SessionService, recovery *application.RecoveryService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Recovery: recovery, Logger: logger}
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
	Identity string `json:"identity" binding:"required"`
}

// SignUp POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Sessions.SignUp(c.Request.Context(), application.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		Identity: req.Identity,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateEmail) {
			response.Error[any](c, http.StatusConflict, "this email already exists, try a new one", nil)
			return
		}
		h.Logger.WithError(err).Error("sign-up failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "you've successfully registered")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, pair, err := h.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error[any](c, http.StatusUnauthorized, "wrong email or password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"userData":     user,
		"accessToken":  bearerPrefix + pair.AccessToken,
		"refreshToken": bearerPrefix + pair.RefreshToken,
	}, "login successful")
}

type refreshRequest struct {
	Token string `json:"token"`
}

// GenerateAccessToken POST /api/auth/generate-access-token
// Accepts the refresh token from the Authorization header or the body.
func (h *AuthHandler) GenerateAccessToken(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = stripBearer(req.Token)
		}
	}
	if token == "" {
		response.Error[any](c, http.StatusBadRequest, "token not found", nil)
		return
	}

	access, _, err := h.Sessions.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidToken):
			response.Error[any](c, http.StatusForbidden, "access denied", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		default:
			h.Logger.WithError(err).Error("access token refresh failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accessToken": bearerPrefix + access}, "access token issued")
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Recovery.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrOTPAlreadySent):
			response.Error[any](c, http.StatusConflict, "code already sent, check your inbox", nil)
		default:
			h.Logger.WithError(err).Error("forgot-password failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "a verification code was sent to your email")
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,otp"`
}

// VerifyOTP POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Recovery.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOTPNotFound):
			response.Error[any](c, http.StatusNotFound, "code not found", nil)
		case errors.Is(err, application.ErrOTPExpired):
			response.Error[any](c, http.StatusUnauthorized, "code expired, request a new one", nil)
		default:
			h.Logger.WithError(err).Error("verify-otp failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "code verified")
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OldPassword string `json:"oldPassword" binding:"required"`
	Identity    string `json:"identity" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// ResetPassword POST /api/auth/reset-password (refresh-token protected)
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Recovery.ResetPassword(c.Request.Context(), application.ResetPasswordInput{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		Identity:    req.Identity,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrIdentityMismatch):
			response.Error[any](c, http.StatusUnauthorized, "identity or old password mismatch", nil)
		default:
			h.Logger.WithError(err).Error("reset-password failed")
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated")
}

func stripBearer(s string) string {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return s
}
