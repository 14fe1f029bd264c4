package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mzkhan/auth-api/internal/container"
	handlers "github.com/mzkhan/auth-api/internal/interface/http"
	"github.com/mzkhan/auth-api/internal/interface/middleware"
	"github.com/mzkhan/auth-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/sign-up", signUpLimiter, m.Handler.SignUp)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/generate-access-token", refreshLimiter, m.Handler.GenerateAccessToken)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/verify-otp", verifyLimiter, m.Handler.VerifyOTP)

	// Password reset requires a valid refresh token
	auth := rg.Group("/")
	auth.Use(middleware.RefreshAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/reset-password", m.Handler.ResetPassword)
	}
}
