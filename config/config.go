package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/edinet/edinet"
)

// Load loads the configuration from file and environment. A missing config
// file is fine as long as the API key comes from the environment.
func Load(configPath string) (*Config, error) {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".edinet"))
		}
		v.AddConfigPath("/etc/edinet/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("edinet.base_url", edinet.DefaultBaseURL)
	v.SetDefault("edinet.timeout", "30s")

	v.SetDefault("download.format", "pdf")
	v.SetDefault("download.concurrency", 4)
	v.SetDefault("download.skip_existing", true)

	v.SetDefault("archive.backend", "local")
	v.SetDefault("archive.dir", "./edinet-documents")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps EDINET_API_KEY, EDINET_ARCHIVE_DIR and friends onto keys
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("EDINET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key is documented as EDINET_API_KEY, not EDINET_EDINET_API_KEY
	_ = v.BindEnv("edinet.api_key", "EDINET_API_KEY")
	_ = v.BindEnv("archive.minio.access_key", "EDINET_MINIO_ACCESS_KEY")
	_ = v.BindEnv("archive.minio.secret_key", "EDINET_MINIO_SECRET_KEY")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Edinet.APIKey == "" || cfg.Edinet.APIKey == "your-api-key-here" {
		return fmt.Errorf("edinet.api_key must be set to a valid API key (or EDINET_API_KEY)")
	}

	if cfg.Edinet.Timeout <= 0 {
		return fmt.Errorf("edinet.timeout must be positive")
	}

	if _, err := edinet.ParseFormat(cfg.Download.Format); err != nil {
		return fmt.Errorf("invalid download.format: %s", cfg.Download.Format)
	}

	if cfg.Download.Concurrency < 1 || cfg.Download.Concurrency > 16 {
		return fmt.Errorf("download.concurrency must be between 1 and 16, got %d", cfg.Download.Concurrency)
	}

	switch cfg.Archive.Backend {
	case "local":
		if cfg.Archive.Dir == "" {
			return fmt.Errorf("archive.dir is required for the local backend")
		}
	case "minio":
		if cfg.Archive.MinIO.Endpoint == "" || cfg.Archive.MinIO.Bucket == "" {
			return fmt.Errorf("archive.minio.endpoint and archive.minio.bucket are required for the minio backend")
		}
	default:
		return fmt.Errorf("invalid archive.backend: %s (must be 'local' or 'minio')", cfg.Archive.Backend)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
