package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Upstream UpstreamConfig `mapstructure:"upstream" validate:"required"`
	Check    CheckConfig    `mapstructure:"check" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// UpstreamConfig describes the third-party store API the gateway proxies to.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
}

// CheckConfig contains settings for the apicheck scenario runner.
type CheckConfig struct {
	// BaseURL is the API the scenarios are run against. Either the upstream
	// API directly or a running gateway (http://localhost:8080/api).
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	OutputDir      string `mapstructure:"output_dir" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=300"`
}
