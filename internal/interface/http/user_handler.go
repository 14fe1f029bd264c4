package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mzkhan/auth-api/internal/application"
	"github.com/mzkhan/auth-api/internal/interface/middleware"
	"github.com/mzkhan/auth-api/pkg/response"
)

type UserHandler struct {
	Sessions *application.SessionService
	Logger   *logrus.Logger
}

func NewUserHandler(sessions *application.SessionService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Sessions: sessions, Logger: logger}
}

// GetData GET /api/user/get-data (access-token protected)
// Returns the profile of the authenticated caller.
func (h *UserHandler) GetData(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	user, err := h.Sessions.Profile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("profile lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"userData": user}, "profile")
}
