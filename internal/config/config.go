package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Database    DatabaseConfig  `yaml:"database"`
	State       StateConfig     `yaml:"state"`
	LegacySlots []string        `yaml:"legacy_slots"`
	Auth        AuthConfig      `yaml:"auth"`
	Tailscale   TailscaleConfig `yaml:"tailscale"`
	Timer       TimerConfig     `yaml:"timer"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig is optional. With no host the server keeps its state in memory.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type StateConfig struct {
	Dir string `yaml:"dir"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type TimerConfig struct {
	Resolution time.Duration `yaml:"resolution"`
}

// Defaults applied after loading.
var (
	DefaultStateDir    = "data"
	DefaultLegacySlots = []string{"fitness-app-storage", "fitness-store"}
	DefaultResolution  = time.Second
	DefaultHostname    = "gymflow"
)

// Enabled reports whether a PostgreSQL store is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix GYMFLOW_ and underscore-separated paths:
//
//	GYMFLOW_SERVER_HOST, GYMFLOW_SERVER_PORT,
//	GYMFLOW_DB_HOST, GYMFLOW_DB_PORT, GYMFLOW_DB_NAME,
//	GYMFLOW_DB_USER, GYMFLOW_DB_PASSWORD, GYMFLOW_DB_SSLMODE,
//	GYMFLOW_STATE_DIR, GYMFLOW_LEGACY_SLOTS (comma-separated),
//	GYMFLOW_AUTH_API_KEY, GYMFLOW_TAILSCALE_ENABLED,
//	GYMFLOW_TAILSCALE_HOSTNAME, GYMFLOW_TIMER_RESOLUTION
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMFLOW_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GYMFLOW_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GYMFLOW_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("GYMFLOW_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("GYMFLOW_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GYMFLOW_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("GYMFLOW_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("GYMFLOW_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("GYMFLOW_STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}
	if v := os.Getenv("GYMFLOW_LEGACY_SLOTS"); v != "" {
		cfg.LegacySlots = splitList(v)
	}
	if v := os.Getenv("GYMFLOW_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GYMFLOW_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("GYMFLOW_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("GYMFLOW_TIMER_RESOLUTION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timer.Resolution = d
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.State.Dir == "" {
		c.State.Dir = DefaultStateDir
	}
	if c.LegacySlots == nil {
		c.LegacySlots = append([]string(nil), DefaultLegacySlots...)
	}
	if c.Timer.Resolution == 0 {
		c.Timer.Resolution = DefaultResolution
	}
	if c.Tailscale.Hostname == "" {
		c.Tailscale.Hostname = DefaultHostname
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Enabled() {
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Timer.Resolution < 0 {
		return fmt.Errorf("timer.resolution must be positive")
	}
	return nil
}
