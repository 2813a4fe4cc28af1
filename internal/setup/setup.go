package setup

import (
	"github.com/accountd-dev/accountd/internal/config"
	"github.com/accountd-dev/accountd/internal/email"
	"github.com/accountd-dev/accountd/internal/handler"
	"github.com/accountd-dev/accountd/internal/jwt"
	"github.com/accountd-dev/accountd/internal/middleware"
	"github.com/accountd-dev/accountd/internal/service"
	"github.com/accountd-dev/accountd/internal/storage/mongo"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *mongo.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := mongo.New(&cfg.Public.Mongo)
	if err != nil {
		return nil, err
	}

	notifier := email.New(cfg.Email())
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	user := service.NewUser(storage, notifier, cfg)
	auth := service.NewAuth(storage, jwtService)

	h := handler.New(user, auth, storage, cfg)
	authMw := middleware.NewAuth(jwtService, storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: authMw,
	}, nil
}
