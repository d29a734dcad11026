package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected default base URL %q", cfg.Backend.BaseURL)
	}
	if cfg.Poll.AlertsInterval != 5 {
		t.Errorf("unexpected alerts interval %d", cfg.Poll.AlertsInterval)
	}
	if cfg.Bridge.Enabled {
		t.Error("bridge should be off by default")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/opscon.yaml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.BaseURL != DefaultConfig().Backend.BaseURL {
		t.Error("missing file should fall back to defaults")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opscon.yaml")
	data := []byte("backend:\n  base_url: http://backend:9000/\npoll:\n  alerts_interval: 2\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend:9000" {
		t.Errorf("trailing slash not trimmed: %q", cfg.Backend.BaseURL)
	}
	if cfg.Poll.AlertsInterval != 2 {
		t.Errorf("alerts interval = %d", cfg.Poll.AlertsInterval)
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel())
	}
	// Unset sections keep defaults
	if cfg.Poll.TeamsInterval != 15 {
		t.Errorf("teams interval = %d, want default 15", cfg.Poll.TeamsInterval)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opscon.yaml")
	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "http://example:8000"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Backend.BaseURL != "http://example:8000" {
		t.Errorf("round trip lost base URL: %q", loaded.Backend.BaseURL)
	}
}

func TestConfig_IntervalFor(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.IntervalFor(KindTeams); got != 15 {
		t.Errorf("IntervalFor(teams) = %d", got)
	}
	cfg.Poll.AlertsInterval = 0
	if got := cfg.IntervalFor(KindAlerts); got != 5 {
		t.Errorf("zero interval should floor to 5, got %d", got)
	}
}

func TestNewOperator_RoleDerivation(t *testing.T) {
	cases := []struct {
		username string
		want     Role
	}{
		{"admin", RoleAdmin},
		{"city_admin_2", RoleAdmin},
		{"field_07", RoleField},
		{"Field.Officer", RoleField},
		{"jane", RoleOperator},
		{"", RoleOperator},
	}
	for _, tc := range cases {
		if got := NewOperator(tc.username).Role; got != tc.want {
			t.Errorf("NewOperator(%q).Role = %s, want %s", tc.username, got, tc.want)
		}
	}
}

func TestOperator_Actor(t *testing.T) {
	op := NewOperator("jane")
	a := op.Actor("")
	if a.Name != "jane" || a.Action != "reviewed" {
		t.Errorf("unexpected actor: %+v", a)
	}
	if got := op.Actor("dispatched team").Action; got != "dispatched team" {
		t.Errorf("action = %q", got)
	}
}
