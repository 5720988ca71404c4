package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := InitConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, TokenStoreFile, cfg.Tokens.Store)
	assert.Equal(t, 192*time.Hour, cfg.Mock.TokenTTL)
	assert.True(t, cfg.Mock.Seed)
	assert.Equal(t, []string{"*"}, cfg.Mock.AllowedOrigins)
}

func TestInitConfigEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RENTAL_API_BASE_URL", "https://rent.example.com/api/v1")
	t.Setenv("RENTAL_API_TIMEOUT", "5s")
	t.Setenv("RENTAL_TOKENS_STORE", "memory")

	cfg, err := InitConfig("")
	require.NoError(t, err)
	assert.Equal(t, "https://rent.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, TokenStoreMemory, cfg.Tokens.Store)
}

func TestInitConfigFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  page_size: 50\ntokens:\n  store: redis\n  redis:\n    addr: cache:6379\n"), 0o600))

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.API.PageSize)
	assert.Equal(t, "cache:6379", cfg.Tokens.Redis.Addr)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL, "unset keys keep their defaults")
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := InitConfig("")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown store", mutate: func(c *Config) { c.Tokens.Store = "s3" }, wantErr: `tokens.store "s3"`},
		{name: "redis without addr", mutate: func(c *Config) { c.Tokens.Store = TokenStoreRedis; c.Tokens.Redis.Addr = "" }, wantErr: "tokens.redis.addr"},
		{name: "zero page size", mutate: func(c *Config) { c.API.PageSize = 0 }, wantErr: "api.page_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
