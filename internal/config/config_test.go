package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAMLThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  env: production
database:
  driver: postgres
  url: postgres://from-file
jwt:
  secret: file-secret
storage:
  type: s3
  bucket: resumes
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE_URL", "postgres://from-env")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://from-env", cfg.Database.DSN)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "file-secret-refresh", cfg.JWT.RefreshSecret)
	assert.Equal(t, "s3", cfg.Storage.Type)
	assert.Equal(t, "resumes", cfg.Storage.Bucket)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, time.Hour, cfg.ResetTTL())
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.NotEmpty(t, cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret in production", func(c *Config) { c.JWT.Secret = "" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Server.Env = "production"
			c.Database.Driver = "postgres"
			c.JWT.Secret = "s"
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
