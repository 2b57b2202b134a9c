package handler

import (
	"boardroom/internal/app/asset"
	"boardroom/internal/app/board"
	"boardroom/internal/app/session"
	"boardroom/internal/app/user"
	"boardroom/internal/configs"
	"boardroom/internal/metrics"
)

// AppDeps carries the services the HTTP layer dispatches to.
type AppDeps struct {
	Config   *configs.AppConfig
	Sessions *session.Service
	Users    *user.Service
	Assets   *asset.Service
	Board    *board.Board
	Metrics  *metrics.Metrics
}
