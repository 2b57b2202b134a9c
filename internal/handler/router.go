package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"boardroom/internal/app/storage"
	"boardroom/internal/app/user"
	"boardroom/internal/configs"
	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/limiter"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/resp"
)

const (
	LoginRate  = 0.5
	LoginBurst = 5
	JoinRate   = 1
	JoinBurst  = 10
)

// Server is the routing table plus the background resources it owns.
type Server struct {
	http.Handler

	limiters []*limiter.IPRateLimiter
}

// Close stops the rate limiter cleanup loops.
func (s *Server) Close() {
	for _, l := range s.limiters {
		l.Stop()
	}
}

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) *Server {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	devMode := deps.Config.Environment == configs.EnvDev

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if devMode {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if devMode {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		resp.RespondError(w, r, errs.NewError(errs.ErrNotFound))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{"status": "ok"})
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	requireAuth := RequireAuth(deps.Sessions)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.With(loginLimiter.Middleware).Post("/login", HandleLogin(deps))
			auth.Post("/refresh", HandleRefresh(deps))
			auth.Post("/logout", HandleLogout(deps))
			auth.With(requireAuth).Get("/me", HandleMe())
		})

		api.Route("/admin/users", func(admin chi.Router) {
			admin.Use(requireAuth, RequireRole(user.RoleAdmin))
			admin.Get("/", HandleListUsers(deps))
			admin.Post("/", HandleCreateUser(deps))
			admin.Get("/{id}", HandleGetUser(deps))
			admin.Patch("/{id}", HandlePatchUser(deps))
		})

		api.Route("/assets", func(assets chi.Router) {
			assets.Use(requireAuth)
			assets.With(RequireRole(user.RoleUser, user.RoleAdmin)).Get("/", HandleListAssets(deps))
			assets.With(RequireRole(user.RoleUser)).Post("/upload", HandleUploadAsset(deps))
		})
	})

	if deps.Config.AssetStorage == configs.AssetLocal {
		r.Handle(storage.DefaultPublicPath+"/*", uploadsHandler(deps.Config.UploadDir))
	}

	r.Get("/ws/board", HandleBoardSocket(deps, wsUpgrader, joinLimiter))

	return &Server{Handler: r, limiters: []*limiter.IPRateLimiter{loginLimiter, joinLimiter}}
}

// uploadsHandler serves stored files without directory listings.
func uploadsHandler(dir string) http.Handler {
	files := http.StripPrefix(storage.DefaultPublicPath+"/", http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotFound))
			return
		}
		files.ServeHTTP(w, r)
	})
}
