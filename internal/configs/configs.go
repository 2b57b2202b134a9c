/*
Package configs is responsible for loading and parsing the application's configuration settings.

Values come from operating system environment variables. A .env file in the working directory,
when present, is loaded first and never overrides variables that are already set.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Store and asset backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	AssetLocal = "local"
	AssetS3    = "s3"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	CookieSecure   bool

	// Persistence Settings
	StoreDriver string
	DatabaseDSN string

	// Asset Storage Settings
	AssetStorage      string
	UploadDir         string
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string

	// Admin Bootstrap Settings
	BootstrapAdminEnabled  bool
	BootstrapAdminNickname string
	BootstrapAdminPassword string
}

// IsProd reports whether the process runs in the prod environment.
func (c *AppConfig) IsProd() bool {
	return c.Environment == EnvProd
}

// LoadConfig loads .env (if any) and then reads the configuration from the environment.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads and validates the configuration from environment variables only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	// --- General Server Settings ---
	cfg.Environment = getString("ENV", EnvDev)
	if cfg.Environment != EnvDev && cfg.Environment != EnvProd {
		return nil, fmt.Errorf("invalid ENV %q: must be %q or %q", cfg.Environment, EnvDev, EnvProd)
	}

	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	accessMinutes, err := getInt("ACCESS_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	if accessMinutes <= 0 {
		return nil, fmt.Errorf("ACCESS_MINUTES must be positive, got %d", accessMinutes)
	}
	cfg.AccessTTL = time.Duration(accessMinutes) * time.Minute

	refreshDays, err := getInt("REFRESH_DAYS", 30)
	if err != nil {
		return nil, err
	}
	if refreshDays <= 0 {
		return nil, fmt.Errorf("REFRESH_DAYS must be positive, got %d", refreshDays)
	}
	cfg.RefreshTTL = time.Duration(refreshDays) * 24 * time.Hour

	if cfg.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	// --- Persistence Settings ---
	cfg.StoreDriver = getString("STORE_DRIVER", StorePostgres)
	switch cfg.StoreDriver {
	case StorePostgres:
		cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
		if cfg.DatabaseDSN == "" {
			return nil, errors.New("DATABASE_URL environment variable is required when STORE_DRIVER=postgres")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: must be %q or %q", cfg.StoreDriver, StorePostgres, StoreMemory)
	}

	// --- Asset Storage Settings ---
	cfg.AssetStorage = getString("ASSET_STORAGE", AssetLocal)
	cfg.UploadDir = getString("UPLOAD_DIR", "storage/uploads")
	switch cfg.AssetStorage {
	case AssetLocal:
	case AssetS3:
		cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
		cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
		cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
		cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")

		for name, v := range map[string]string{
			"S3_BUCKET_NAME":       cfg.S3BucketName,
			"S3_ENDPOINT":          cfg.S3Endpoint,
			"S3_ACCESS_KEY_ID":     cfg.S3AccessKeyID,
			"S3_SECRET_ACCESS_KEY": cfg.S3SecretAccessKey,
			"S3_PUBLIC_BASE_URL":   cfg.S3PublicBaseURL,
		} {
			if v == "" {
				return nil, fmt.Errorf("%s environment variable is required when ASSET_STORAGE=s3", name)
			}
		}
	default:
		return nil, fmt.Errorf("invalid ASSET_STORAGE %q: must be %q or %q", cfg.AssetStorage, AssetLocal, AssetS3)
	}

	// --- Admin Bootstrap Settings ---
	if cfg.BootstrapAdminEnabled, err = getBool("BOOTSTRAP_ADMIN_ENABLED", true); err != nil {
		return nil, err
	}
	cfg.BootstrapAdminNickname = os.Getenv("BOOTSTRAP_ADMIN_NICKNAME")
	cfg.BootstrapAdminPassword = os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")

	return cfg, nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
