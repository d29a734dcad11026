package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the entire console configuration.
type Config struct {
	Backend Backend       `yaml:"backend"`
	Poll    PollConfig    `yaml:"poll"`
	Bridge  BridgeConfig  `yaml:"bridge"`
	Logging LoggingConfig `yaml:"logging"`
}

// Backend holds settings for the monitoring backend API.
type Backend struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PollConfig holds per-resource poll intervals, in seconds.
type PollConfig struct {
	AlertsInterval    int `yaml:"alerts_interval"`
	IncidentsInterval int `yaml:"incidents_interval"`
	TeamsInterval     int `yaml:"teams_interval"`
	StatsInterval     int `yaml:"stats_interval"`
}

// BridgeConfig holds NATS sync-bridge settings. The bridge republishes
// store changes so sibling consoles can follow along; it is off by default.
type BridgeConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Embedded bool   `yaml:"embedded"`
	DataDir  string `yaml:"data_dir"`
	Port     int    `yaml:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: Backend{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 10,
		},
		Poll: PollConfig{
			AlertsInterval:    5,
			IncidentsInterval: 10,
			TeamsInterval:     15,
			StatsInterval:     30,
		},
		Bridge: BridgeConfig{
			Enabled:  false,
			URL:      "nats://127.0.0.1:4222",
			Embedded: true,
			DataDir:  "./data/nats",
			Port:     4222,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// An explicitly emptied base URL falls back to env, then the default
	if cfg.Backend.BaseURL == "" {
		if env := os.Getenv("OPSCON_BACKEND_URL"); env != "" {
			cfg.Backend.BaseURL = env
		} else {
			cfg.Backend.BaseURL = DefaultConfig().Backend.BaseURL
		}
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")

	return cfg, nil
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LogLevel returns the parsed log level string.
func (c *Config) LogLevel() string {
	return strings.ToLower(c.Logging.Level)
}

// IntervalFor returns the configured poll period for a resource kind,
// with a floor that keeps a misconfigured interval from busy-looping.
func (c *Config) IntervalFor(kind ResourceKind) int {
	var v int
	switch kind {
	case KindAlerts:
		v = c.Poll.AlertsInterval
	case KindIncidents:
		v = c.Poll.IncidentsInterval
	case KindTeams:
		v = c.Poll.TeamsInterval
	case KindStats:
		v = c.Poll.StatsInterval
	}
	if v < 1 {
		v = 5
	}
	return v
}
