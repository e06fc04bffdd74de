package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-4321/CourseVault/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, k := range []string{"APP_ENV", "APP_PORT", "PORT", "DB_DRIVER", "MONGODB_DATABASE", "TOKEN_TTL", "USER_JWT_SECRET", "ADMIN_JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg, err := config.LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.DriverMongo, cfg.DBDriver)
	assert.Equal(t, "coursevault", cfg.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.UserJWTSecret)
	assert.Empty(t, cfg.AdminJWTSecret)
	assert.ElementsMatch(t, []string{"USER_JWT_SECRET", "ADMIN_JWT_SECRET"}, cfg.MissingSecrets())
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port": "4000", "db_driver": "memory", "rate_limit": 20}`)
	envPath := writeFile(t, dir, ".env", "APP_PORT=5000\nUSER_JWT_SECRET=\"from-dotenv\"\n# comment\n")

	t.Setenv("ADMIN_JWT_SECRET", "from-env")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := config.LoadFrom(jsonPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port, ".env beats app.json")
	assert.Equal(t, config.DriverMemory, cfg.DBDriver)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, "from-dotenv", cfg.UserJWTSecret)
	assert.Equal(t, "from-env", cfg.AdminJWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Empty(t, cfg.MissingSecrets())
}

func TestPortOverridesAppPort(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_PORT", "4000")
	t.Setenv("PORT", "8081")

	cfg, err := config.LoadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TOKEN_TTL", "soon")

	_, err := config.LoadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverMongo, TokenTTL: time.Hour}
	assert.ErrorContains(t, cfg.Validate(), "MONGODB_URL")

	cfg.MongoURL = "mongodb://localhost:27017"
	assert.NoError(t, cfg.Validate())

	cfg.DBDriver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "unsupported DB_DRIVER")

	cfg.DBDriver = config.DriverMemory
	cfg.TokenTTL = 0
	assert.ErrorContains(t, cfg.Validate(), "TOKEN_TTL")
}
