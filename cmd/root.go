package main

import (
	"github.com/spf13/cobra"

	"boardroom/internal/app/db"
	"boardroom/internal/configs"
	"boardroom/internal/pkg/logx"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boardroom",
		Short:         "Shared tabletop board server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP and board socket server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd)
			},
		},
	)

	return root
}

// loadConfig reads the configuration and initializes the global logger from it.
func loadConfig() (*configs.AppConfig, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	logx.InitGlobalLogger(!cfg.IsProd())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("store_driver", cfg.StoreDriver).
		Str("asset_storage", cfg.AssetStorage).
		Msg("Configuration loaded successfully")

	return cfg, nil
}

func runMigrate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != configs.StorePostgres {
		logx.Info("Nothing to migrate for this store driver.", "store_driver", cfg.StoreDriver)
		return nil
	}

	pool, err := db.NewPool(cmd.Context(), cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(cmd.Context(), pool); err != nil {
		return err
	}
	logx.Info("Migrations applied.")
	return nil
}
