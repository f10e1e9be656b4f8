package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYaml = `
api:
  address: "127.0.0.1"
  port: 8080
esios:
  timeout_seconds: 10
database:
  path: "/tmp/esios-test.db"
gui:
  timezone: "UTC"
logging:
  console_level: "DEBUG"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYaml), 0o600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ESIOS_API_TOKEN", "token-from-env")

	cnfg, err := Load(writeTestConfig(t))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	t.Run("api", func(t *testing.T) {
		if cnfg.Api.Address != "127.0.0.1" {
			t.Errorf("expected address 127.0.0.1, got %q", cnfg.Api.Address)
		}
		if cnfg.Api.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cnfg.Api.Port)
		}
	})

	t.Run("esios", func(t *testing.T) {
		if cnfg.Esios.Token != "token-from-env" {
			t.Errorf("expected token from env, got %q", cnfg.Esios.Token)
		}
		if cnfg.Esios.GetTimeout() != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", cnfg.Esios.GetTimeout())
		}
		if cnfg.Esios.GetBaseUrl() != "" {
			t.Errorf("expected no base url override, got %q", cnfg.Esios.GetBaseUrl())
		}
	})

	t.Run("defaults", func(t *testing.T) {
		if cnfg.Live.GetRunAt() != "@every 15m" {
			t.Errorf("unexpected live schedule %q", cnfg.Live.GetRunAt())
		}
		if cnfg.Gui.GetTimezone() != "UTC" {
			t.Errorf("expected configured timezone, got %q", cnfg.Gui.GetTimezone())
		}
		if cnfg.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("expected DEBUG console level, got %v", cnfg.Logging.GetConsoleLevel())
		}
		if cnfg.Logging.GetDbLevel() != slog.LevelInfo {
			t.Errorf("expected default INFO db level, got %v", cnfg.Logging.GetDbLevel())
		}
		if cnfg.Logging.GetDbMaxEntries() != 10000 {
			t.Errorf("expected default max entries, got %d", cnfg.Logging.GetDbMaxEntries())
		}
	})
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
