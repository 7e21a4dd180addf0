// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// DirectoryConfig points at the JWT Pizza service API.
type DirectoryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
	ValidateSchema bool   `mapstructure:"validate_schema"`
}

// DashboardConfig holds the admin view page sizes.
type DashboardConfig struct {
	UserPageSize            int `mapstructure:"user_page_size"`
	FranchisePageSize       int `mapstructure:"franchise_page_size"`
	FranchiseFilterPageSize int `mapstructure:"franchise_filter_page_size"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	TTL        int    `mapstructure:"ttl"` // seconds
	KeyPrefix  string `mapstructure:"key_prefix"`
	Secure     bool   `mapstructure:"secure"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type TelemetryConfig struct {
	ServiceName    string  `mapstructure:"service_name"`
	TraceSampling  float64 `mapstructure:"trace_sampling"`
	MetricsEnabled bool    `mapstructure:"metrics_enabled"`
}

// SessionTTL converts the configured seconds into a duration.
func (s SessionConfig) SessionTTL() time.Duration {
	return time.Duration(s.TTL) * time.Second
}
