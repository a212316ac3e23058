package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Exchange.BaseURL != "https://api.binance.com" {
		t.Errorf("base_url = %q", c.Exchange.BaseURL)
	}
	if c.Exchange.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", c.Exchange.Timeout)
	}
	if c.Exchange.InsecureSkipVerify {
		t.Error("TLS verification must be on by default")
	}
	if c.Cache.TTL != 6*time.Hour {
		t.Errorf("cache ttl = %v", c.Cache.TTL)
	}
	if c.Export.Backend != "none" {
		t.Errorf("export backend = %q", c.Export.Backend)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("environment: prod\nexchange:\n  base_url: https://example.test\noutput:\n  dir: /tmp/data\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Environment != "prod" {
		t.Errorf("environment = %q", c.Environment)
	}
	if c.Exchange.BaseURL != "https://example.test" {
		t.Errorf("base_url = %q", c.Exchange.BaseURL)
	}
	if c.Output.Dir != "/tmp/data" {
		t.Errorf("output dir = %q", c.Output.Dir)
	}
	// Untouched sections still get defaults.
	if c.Log.Level != "info" {
		t.Errorf("log level = %q", c.Log.Level)
	}
}

func TestLoadRejectsBadEnum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("export:\n  backend: postgres\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown export backend")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CANDLEPULL_BASE_URL", "https://mirror.example.test")
	t.Setenv("CANDLEPULL_EXPORT_BACKEND", "kafka")
	t.Setenv("CANDLEPULL_KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv("")
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if c.Exchange.BaseURL != "https://mirror.example.test" {
		t.Errorf("base_url = %q", c.Exchange.BaseURL)
	}
	if c.Export.Backend != "kafka" {
		t.Errorf("backend = %q", c.Export.Backend)
	}
	if len(c.Export.Kafka.Brokers) != 2 {
		t.Errorf("brokers = %v", c.Export.Kafka.Brokers)
	}
}
