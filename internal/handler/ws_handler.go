package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"boardroom/internal/app/board"
	"boardroom/internal/app/session"
	"boardroom/internal/app/user"
	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/limiter"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/resp"
)

// boardRoles are the roles admitted to the shared board.
var boardRoles = []user.Role{user.RoleUser, user.RoleAdmin}

// HandleBoardSocket upgrades /ws/board?token=<access token> and attaches the connection to the board.
// Token and role failures are reported with a policy-violation close frame before any state is sent.
func HandleBoardSocket(deps *AppDeps, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.Allow(r) {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		token := r.URL.Query().Get("token")
		if token == "" {
			logx.Info("WebSocket connection rejected: Missing token.")
			board.CloseWithCode(conn, websocket.ClosePolicyViolation, "missing token")
			return
		}

		u, err := deps.Sessions.Authenticate(r.Context(), token)
		if err != nil {
			logx.Info("WebSocket connection rejected: Invalid token.")
			board.CloseWithCode(conn, websocket.ClosePolicyViolation, "invalid token")
			return
		}

		if err := session.Authorize(u, boardRoles...); err != nil {
			logx.Info("WebSocket connection rejected: Role not allowed.", "user_id", u.ID)
			board.CloseWithCode(conn, websocket.ClosePolicyViolation, "forbidden")
			return
		}

		client := board.NewClient(deps.Board, conn, u)

		if err := deps.Board.Join(client); err != nil {
			if errors.Is(err, board.ErrClosed) {
				board.CloseWithCode(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			logx.Error(err, "Failed to join board", "user_id", u.ID)
			board.CloseWithCode(conn, websocket.CloseInternalServerErr, "")
			return
		}

		go client.WritePump()

		logx.Info("WebSocket connection established and client registered", "conn_id", client.ID(), "user_id", u.ID)

		client.ReadPump()
	}
}
