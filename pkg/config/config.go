// Package config loads gateway settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/open-stdnum-gateway/pkg/marc"
)

type Config struct {
	Port        string   `yaml:"port"`
	APIKey      string   `yaml:"api_key"`
	APIKeyHash  string   `yaml:"api_key_hash"`
	JWTSecret   string   `yaml:"jwt_secret"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`
	MARCProfile string   `yaml:"marc_profile"`
	Tracing     Tracing  `yaml:"tracing"`
}

type Tracing struct {
	// Exporter is one of none, stdout or otlp.
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

func Default() Config {
	return Config{
		Port:        "8899",
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		MARCProfile: marc.ProfileMARC21.Name,
		Tracing:     Tracing{Exporter: "none"},
	}
}

// AuthEnabled reports whether any credential is configured.
func (c Config) AuthEnabled() bool {
	return c.APIKey != "" || c.APIKeyHash != "" || c.JWTSecret != ""
}

// LoadFile overlays the YAML document at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
// Unset or empty variables leave the current value alone.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Port, "PORT")
	set(&c.APIKey, "GATEWAY_API_KEY")
	set(&c.APIKeyHash, "GATEWAY_API_KEY_HASH")
	set(&c.JWTSecret, "GATEWAY_JWT_SECRET")
	set(&c.LogLevel, "LOG_LEVEL")
	set(&c.MARCProfile, "GATEWAY_MARC_PROFILE")
	set(&c.Tracing.Exporter, "OTEL_TRACES_EXPORTER")
	set(&c.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	if v := getenv("GATEWAY_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
}

// Validate rejects settings the gateway cannot start with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be set")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.Tracing.Exporter {
	case "none", "stdout":
	case "otlp":
		if c.Tracing.Endpoint == "" {
			return fmt.Errorf("otlp exporter needs OTEL_EXPORTER_OTLP_ENDPOINT")
		}
	default:
		return fmt.Errorf("unknown trace exporter %q", c.Tracing.Exporter)
	}
	if _, err := marc.ProfileByName(c.MARCProfile); err != nil {
		return err
	}
	return nil
}

// Load builds the configuration from the process environment. GATEWAY_CONFIG
// names an optional YAML file applied before the environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("GATEWAY_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}
