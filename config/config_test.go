package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Edinet: EdinetConfig{
			APIKey:  "valid-api-key",
			Timeout: 30 * time.Second,
		},
		Download: DownloadConfig{
			Format:      "pdf",
			Concurrency: 4,
		},
		Archive: ArchiveConfig{
			Backend: "local",
			Dir:     "./docs",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing API key",
			modify:  func(c *Config) { c.Edinet.APIKey = "" },
			wantErr: "edinet.api_key",
		},
		{
			name:    "placeholder API key",
			modify:  func(c *Config) { c.Edinet.APIKey = "your-api-key-here" },
			wantErr: "edinet.api_key",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Edinet.Timeout = 0 },
			wantErr: "edinet.timeout",
		},
		{
			name:   "format by code",
			modify: func(c *Config) { c.Download.Format = "5" },
		},
		{
			name:    "invalid format",
			modify:  func(c *Config) { c.Download.Format = "docx" },
			wantErr: "download.format",
		},
		{
			name:    "concurrency too high",
			modify:  func(c *Config) { c.Download.Concurrency = 64 },
			wantErr: "download.concurrency",
		},
		{
			name:    "concurrency zero",
			modify:  func(c *Config) { c.Download.Concurrency = 0 },
			wantErr: "download.concurrency",
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Archive.Backend = "ftp" },
			wantErr: "archive.backend",
		},
		{
			name: "minio without bucket",
			modify: func(c *Config) {
				c.Archive.Backend = "minio"
				c.Archive.MinIO.Endpoint = "localhost:9000"
			},
			wantErr: "archive.minio",
		},
		{
			name: "minio complete",
			modify: func(c *Config) {
				c.Archive.Backend = "minio"
				c.Archive.MinIO.Endpoint = "localhost:9000"
				c.Archive.MinIO.Bucket = "edinet"
			},
		},
		{
			name:    "invalid logging level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging level",
		},
		{
			name:    "invalid logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("file with presets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
edinet:
  api_key: file-key
  timeout: 10s
download:
  format: xbrl
  concurrency: 2
filter:
  default: 'listed()'
  presets:
    annual: 'docType("120")'
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.Edinet.APIKey)
		assert.Equal(t, 10*time.Second, cfg.Edinet.Timeout)
		assert.Equal(t, "https://api.edinet-fsa.go.jp/api/v2/", cfg.Edinet.BaseURL)
		assert.Equal(t, "xbrl", cfg.Download.Format)
		assert.Equal(t, 2, cfg.Download.Concurrency)
		assert.True(t, cfg.Download.SkipExisting)
		assert.Equal(t, "local", cfg.Archive.Backend)
		assert.Equal(t, "listed()", cfg.Filter.Default)
		assert.Equal(t, `docType("120")`, cfg.Filter.Presets["annual"])
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("edinet:\n  api_key: file-key\n"), 0o600))
		t.Setenv("EDINET_API_KEY", "env-key")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.Edinet.APIKey)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("edinet:\n  api_key: k\nlogging:\n  level: loud\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
