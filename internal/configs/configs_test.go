package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"ENV", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET", "ACCESS_MINUTES", "REFRESH_DAYS", "COOKIE_SECURE",
	"STORE_DRIVER", "DATABASE_URL", "ASSET_STORAGE", "UPLOAD_DIR",
	"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_BASE_URL",
	"BOOTSTRAP_ADMIN_ENABLED", "BOOTSTRAP_ADMIN_NICKNAME", "BOOTSTRAP_ADMIN_PASSWORD",
}

// setEnv clears every known key and then applies env.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"JWT_SECRET": "s", "DATABASE_URL": "postgres://x"})

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Environment)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, AssetLocal, cfg.AssetStorage)
	assert.Equal(t, "storage/uploads", cfg.UploadDir)
	assert.True(t, cfg.BootstrapAdminEnabled)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"ENV":                     "prod",
		"PORT":                    "9000",
		"JWT_SECRET":              "s",
		"ACCESS_MINUTES":          "5",
		"REFRESH_DAYS":            "7",
		"COOKIE_SECURE":           "true",
		"ALLOWED_ORIGINS":         " https://a.example , ,https://b.example",
		"STORE_DRIVER":            "memory",
		"ASSET_STORAGE":           "s3",
		"S3_BUCKET_NAME":          "bucket",
		"S3_ENDPOINT":             "https://s3.example",
		"S3_ACCESS_KEY_ID":        "id",
		"S3_SECRET_ACCESS_KEY":    "key",
		"S3_PUBLIC_BASE_URL":      "https://cdn.example",
		"BOOTSTRAP_ADMIN_ENABLED": "false",
	})

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, "https://cdn.example", cfg.S3PublicBaseURL)
	assert.False(t, cfg.BootstrapAdminEnabled)
}

func TestFromEnv_Invalid(t *testing.T) {
	base := map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "memory"}

	cases := map[string]map[string]string{
		"missing secret":       {"JWT_SECRET": ""},
		"bad env":              {"ENV": "staging"},
		"privileged port":      {"PORT": "80"},
		"non-numeric port":     {"PORT": "http"},
		"zero access minutes":  {"ACCESS_MINUTES": "0"},
		"negative refresh":     {"REFRESH_DAYS": "-1"},
		"bad bool":             {"COOKIE_SECURE": "maybe"},
		"bad driver":           {"STORE_DRIVER": "sqlite"},
		"postgres without dsn": {"STORE_DRIVER": "postgres"},
		"bad asset storage":    {"ASSET_STORAGE": "ftp"},
		"s3 without bucket":    {"ASSET_STORAGE": "s3"},
	}

	for name, override := range cases {
		t.Run(name, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range base {
				env[k] = v
			}
			for k, v := range override {
				env[k] = v
			}
			setEnv(t, env)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	setEnv(t, map[string]string{"STORE_DRIVER": "memory", "ACCESS_MINUTES": "20"})
	// godotenv never overrides set variables, so the empty JWT_SECRET set above must be unset.
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-dotenv\nACCESS_MINUTES=99\n"), 0o600))

	t.Chdir(dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.JWTSecret)
	assert.Equal(t, 20*time.Minute, cfg.AccessTTL, "set variables win over .env")
}

func TestLoadConfig_NoDotEnv(t *testing.T) {
	setEnv(t, map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "memory"})

	t.Chdir(t.TempDir())

	_, err := LoadConfig()
	assert.NoError(t, err)
}
