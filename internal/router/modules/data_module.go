package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mzkhan/auth-api/internal/container"
	handlers "github.com/mzkhan/auth-api/internal/interface/http"
	"github.com/mzkhan/auth-api/internal/interface/middleware"
	"github.com/mzkhan/auth-api/pkg/helpers"
)

type DataModule struct {
	Handler *handlers.DataHandler
	JWT     *helpers.JWTManager
}

func NewDataModule(h *handlers.DataHandler, jwt *helpers.JWTManager) *DataModule {
	return &DataModule{Handler: h, JWT: jwt}
}

func (m *DataModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.AccessAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/data/get-data", m.Handler.GetData)
	}
}
