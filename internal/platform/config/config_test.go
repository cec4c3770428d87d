package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MAX_BODY_BYTES", "2048")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
}

func TestValidateRejectsTinyBodyLimit(t *testing.T) {
	cfg := Load()
	cfg.MaxBodyBytes = 100

	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := Load()
	cfg.Environment = "production"
	cfg.JWTSecret = ""

	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}
