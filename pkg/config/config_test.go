package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("default config should not require auth")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":                        "9000",
		"GATEWAY_API_KEY":             "k",
		"GATEWAY_CORS_ORIGINS":        "https://a.example, https://b.example,",
		"LOG_LEVEL":                   "debug",
		"OTEL_TRACES_EXPORTER":        "otlp",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "collector:4317",
		"GATEWAY_MARC_PROFILE":        "cnmarc",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Port != "9000" || cfg.APIKey != "k" || cfg.LogLevel != "debug" || cfg.MARCProfile != "cnmarc" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %q", cfg.CORSOrigins)
	}
	if cfg.Tracing.Exporter != "otlp" || cfg.Tracing.Endpoint != "collector:4317" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if !cfg.AuthEnabled() {
		t.Error("expected auth to be enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	doc := "port: \"7000\"\njwt_secret: s3cret\ntracing:\n  exporter: stdout\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != "7000" || cfg.JWTSecret != "s3cret" || cfg.Tracing.Exporter != "stdout" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, default should survive", cfg.LogLevel)
	}

	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte("port: \"7000\"\nlog_level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GATEWAY_CONFIG", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7100" || cfg.LogLevel != "warn" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }},
		{"otlp without endpoint", func(c *Config) { c.Tracing.Exporter = "otlp" }},
		{"bad profile", func(c *Config) { c.MARCProfile = "dc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
