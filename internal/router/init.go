package router

import (
	"github.com/mzkhan/auth-api/internal/application"
	"github.com/mzkhan/auth-api/internal/container"
	pginfra "github.com/mzkhan/auth-api/internal/infrastructure/postgres"
	handlers "github.com/mzkhan/auth-api/internal/interface/http"
	"github.com/mzkhan/auth-api/internal/router/modules"
	"github.com/mzkhan/auth-api/pkg/mailer"
)

// InitModules builds the dependency graph from the container singletons and
// registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	otps := pginfra.NewOTPRepository(container.GetPGPool())

	sessions := application.NewSessionService(
		users,
		container.GetJWT(),
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
	)

	notifier := mailer.NewQueueNotifier(container.GetRabbitPub(), cfg.MailSendEnabled)
	recovery := application.NewRecoveryService(users, otps, notifier, logger, cfg.OTPTTL)

	authHandler := handlers.NewAuthHandler(sessions, recovery, logger)
	userHandler := handlers.NewUserHandler(sessions, logger)
	dataHandler := handlers.NewDataHandler(cfg.DemoAPIBaseURL, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewDataModule(dataHandler, container.GetJWT()))
}
