package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mzkhan/auth-api/internal/domain/entity"
	"github.com/mzkhan/auth-api/internal/interface/middleware"
	"github.com/mzkhan/auth-api/pkg/response"
)

// DataHandler proxies the external demo data API. Admins get the user
// directory, everyone else gets todos.
type DataHandler struct {
	BaseURL string
	Client  *http.Client
	Logger  *logrus.Logger
}

func NewDataHandler(baseURL string, logger *logrus.Logger) *DataHandler {
	return &DataHandler{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Logger:  logger,
	}
}

// GetData GET /api/data/get-data (access-token protected)
func (h *DataHandler) GetData(c *gin.Context) {
	resource := "todos"
	if c.GetString(middleware.CtxUserRoleKey) == entity.RoleAdmin {
		resource = "users"
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.BaseURL+"/"+resource, nil)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	res, err := h.Client.Do(req)
	if err != nil {
		h.Logger.WithError(err).WithField("resource", resource).Error("demo api request failed")
		response.Error[any](c, http.StatusInternalServerError, "error fetching data", nil)
		return
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		h.Logger.WithField("status", res.StatusCode).Error("demo api response error")
		response.Error[any](c, http.StatusInternalServerError, "error fetching data", nil)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
