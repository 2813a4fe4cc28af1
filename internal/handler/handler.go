package handler

import (
	"context"

	"github.com/accountd-dev/accountd/internal/config"
	"github.com/accountd-dev/accountd/internal/service"
)

// Pinger reports backing-store reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	user   service.UserService
	auth   service.AuthService
	health Pinger
	cfg    *config.Config
}

func New(user service.UserService, auth service.AuthService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{user: user, auth: auth, health: health, cfg: cfg}
}
