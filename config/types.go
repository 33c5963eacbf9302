package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Edinet   EdinetConfig   `mapstructure:"edinet"`
	Download DownloadConfig `mapstructure:"download"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// EdinetConfig holds EDINET API connection details
type EdinetConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DownloadConfig controls the download command
type DownloadConfig struct {
	Format       string `mapstructure:"format"`
	Concurrency  int    `mapstructure:"concurrency"`
	SkipExisting bool   `mapstructure:"skip_existing"`
}

// ArchiveConfig selects where fetched documents are stored
type ArchiveConfig struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	MinIO   MinIOConfig `mapstructure:"minio"`
}

// MinIOConfig holds S3-compatible object storage settings
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// FilterConfig contains the default filter and named presets
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// MetricsConfig contains Prometheus textfile settings
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
