// Package config provides configuration management for the track report tool.
package config

import (
	"time"

	"github.com/yourusername/track-report/internal/roster"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Athletic AthleticConfig `mapstructure:"athletic" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
	Roster   []RosterEntry  `mapstructure:"roster" validate:"required,min=1,dive"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AthleticConfig represents the athletic.net athlete bio API
type AthleticConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	Sport          string  `mapstructure:"sport" validate:"required,oneof=tf xc"`
	Level          int     `mapstructure:"level" validate:"required,gt=0"`
	Token          string  `mapstructure:"token"`
	UserAgent      string  `mapstructure:"user_agent"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts  int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// CacheConfig represents the athlete document caches
type CacheConfig struct {
	Dir              string `mapstructure:"dir" validate:"required"`
	MemoryTTLSeconds int    `mapstructure:"memory_ttl_seconds" validate:"required,gt=0"`
}

// ReportConfig represents report rendering configuration
type ReportConfig struct {
	OutputDir  string   `mapstructure:"output_dir" validate:"required"`
	ImageDir   string   `mapstructure:"image_dir" validate:"required"`
	Season     string   `mapstructure:"season" validate:"required,season"`
	Title      string   `mapstructure:"title"`
	School     string   `mapstructure:"school"`
	Sport      string   `mapstructure:"sport"`
	Logo       string   `mapstructure:"logo"`
	Stylesheet string   `mapstructure:"stylesheet"`
	Overwrite  bool     `mapstructure:"overwrite"`
	Events     []string `mapstructure:"events" validate:"omitempty,events"`
}

// RosterEntry maps an athlete name to an athletic.net athlete id
type RosterEntry struct {
	Name string `mapstructure:"name" validate:"required"`
	ID   string `mapstructure:"id" validate:"required,numeric"`
}

// MetricsConfig represents metrics export configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Path         string `mapstructure:"path"`
	TextfilePath string `mapstructure:"textfile_path"`
}

// ScheduleConfig represents the watch command's refresh schedule
type ScheduleConfig struct {
	Refresh    string `mapstructure:"refresh" validate:"omitempty,cronspec"`
	HealthPort int    `mapstructure:"health_port" validate:"omitempty,min=1,max=65535"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RosterAthletes converts the configured roster for roster.New
func (c *Config) RosterAthletes() []roster.Athlete {
	out := make([]roster.Athlete, 0, len(c.Roster))
	for _, e := range c.Roster {
		out = append(out, roster.Athlete{Name: e.Name, ID: e.ID})
	}
	return out
}

// RequestTimeout returns the per-request timeout for the athletic.net API
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Athletic.TimeoutSeconds) * time.Second
}

// MemoryTTL returns how long decoded documents stay in the in-memory cache
func (c *Config) MemoryTTL() time.Duration {
	return time.Duration(c.Cache.MemoryTTLSeconds) * time.Second
}
