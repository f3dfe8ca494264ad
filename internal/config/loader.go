// Package config provides configuration management for the track report tool.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is used when no path is given
	DefaultConfigPath = "config/config.yaml"
	envPrefix         = "TRACK_REPORT"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables are used instead.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// TRACK_REPORT_REPORT_SEASON overrides report.season, and so on
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "track-report")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("athletic.base_url", "https://www.athletic.net/api/v1/AthleteBio/GetAthleteBioData")
	v.SetDefault("athletic.sport", "tf")
	v.SetDefault("athletic.level", 4)
	v.SetDefault("athletic.timeout_seconds", 30)
	v.SetDefault("athletic.retry_attempts", 3)
	v.SetDefault("athletic.rate_limit", 1.0)

	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.memory_ttl_seconds", 900)

	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.image_dir", "images")
	v.SetDefault("report.season", "2022")
	v.SetDefault("report.title", "Track and Field")
	v.SetDefault("report.sport", "Track & Field")

	v.SetDefault("roster", defaultRoster())

	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("schedule.refresh", "@daily")
	v.SetDefault("schedule.health_port", 8080)
}

// defaultRoster is the Northville HS distance squad
func defaultRoster() []map[string]interface{} {
	entries := [][2]string{
		{"David Whitaker", "15714155"},
		{"Brady Heron", "15714146"},
		{"Brandon Latta", "15714149"},
		{"Brock Malaikal", "15748733"},
		{"Brendan Herger", "15979366"},
		{"Ethan Powell", "17514447"},
		{"Isaac Luebke", "15714150"},
		{"Maximilian Potrzeba", "15714152"},
		{"Nicholas Yaquinto", "12409091"},
		{"Raunak Chattopadhyay", "15714142"},
		{"Sohil Jayee", "15714147"},
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]interface{}{"name": e[0], "id": e[1]})
	}
	return out
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
