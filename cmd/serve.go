package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"boardroom/internal/app/asset"
	"boardroom/internal/app/board"
	"boardroom/internal/app/bootstrap"
	"boardroom/internal/app/db"
	"boardroom/internal/app/memstore"
	"boardroom/internal/app/session"
	"boardroom/internal/app/storage"
	"boardroom/internal/app/user"
	"boardroom/internal/configs"
	"boardroom/internal/handler"
	"boardroom/internal/metrics"
	"boardroom/internal/pkg/auth/jwt"
	"boardroom/internal/pkg/clock"
	"boardroom/internal/pkg/logx"
)

// stores groups the persistence adapters selected by STORE_DRIVER.
type stores struct {
	users   user.Store
	refresh session.RefreshStore
	assets  asset.Store
	close   func()
}

func openStores(ctx context.Context, cfg *configs.AppConfig) (*stores, error) {
	if cfg.StoreDriver == configs.StoreMemory {
		logx.Warn("Using in-memory stores; all data is lost on restart.")
		return &stores{
			users:   memstore.NewUsers(),
			refresh: memstore.NewRefreshTokens(),
			assets:  memstore.NewAssets(),
			close:   func() {},
		}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &stores{
		users:   db.NewUserStore(pool),
		refresh: db.NewRefreshTokenStore(pool),
		assets:  db.NewAssetStore(pool),
		close:   pool.Close,
	}, nil
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	files, err := storage.NewStorageService(storage.ServiceConfig{
		Backend:           cfg.AssetStorage,
		UploadDir:         cfg.UploadDir,
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize asset storage: %w", err)
	}

	clk := clock.Real{}
	hasher := user.NewBcryptHasher()

	issuer, err := jwt.NewIssuer(cfg.JWTSecret, cfg.AccessTTL, clk)
	if err != nil {
		return err
	}

	sessions, err := session.NewService(st.users, st.refresh, hasher, issuer, clk,
		session.Config{RefreshLifetime: cfg.RefreshTTL})
	if err != nil {
		return err
	}

	users := user.NewService(st.users, hasher, clk)

	if err := bootstrap.SeedAdmin(ctx, st.users, users, bootstrap.Config{
		Enabled:  cfg.BootstrapAdminEnabled,
		Strict:   cfg.IsProd(),
		Nickname: cfg.BootstrapAdminNickname,
		Password: cfg.BootstrapAdminPassword,
	}); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	b := board.New(m)

	router := handler.Router(&handler.AppDeps{
		Config:   cfg,
		Sessions: sessions,
		Users:    users,
		Assets:   asset.NewService(st.assets, files, clk),
		Board:    b,
		Metrics:  m,
	})
	defer router.Close()

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logx.Info(fmt.Sprintf("Boardroom server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		b.Close()
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	// Hijacked board connections are not covered by Shutdown.
	b.Close()

	logx.Info("Server gracefully stopped.")
	return nil
}
