package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"INSIGHT_PORT", "INSIGHT_METRICS_PORT", "INSIGHT_ADMIN_TOKEN",
		"INSIGHT_DATABASE_URL", "INSIGHT_DATASET_CSV", "INSIGHT_EVENTS_URL",
		"INSIGHT_CLASSIFIER_URL", "INSIGHT_COACH_URL", "INSIGHT_COACH_TOKEN",
		"INSIGHT_DETAIL_YEAR", "INSIGHT_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Dataset.CSVPath != "data.csv" {
		t.Errorf("expected default csv path, got %s", cfg.Dataset.CSVPath)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Analysis.DetailYear != 2018 {
		t.Errorf("expected detail year 2018, got %d", cfg.Analysis.DetailYear)
	}
	if cfg.Analysis.DefaultTopK != 5 {
		t.Errorf("expected default top k 5, got %d", cfg.Analysis.DefaultTopK)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if len(cfg.Barometer.Questions) != 0 {
		t.Error("barometer questions default to the built-in set, not config")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9000
  admin_token: secret
database:
  url: postgres://localhost/insight
analysis:
  detail_year: 2014
barometer:
  questions:
    - key: SWEETS
      max: 7
    - key: LIFESAT
      max: 10
      reversed: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("unset fields keep defaults, got metrics port %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.URL != "postgres://localhost/insight" {
		t.Errorf("unexpected database URL %s", cfg.Database.URL)
	}
	if cfg.Analysis.DetailYear != 2014 {
		t.Errorf("expected detail year 2014, got %d", cfg.Analysis.DetailYear)
	}
	if len(cfg.Barometer.Questions) != 2 || !cfg.Barometer.Questions[1].Reversed {
		t.Errorf("unexpected barometer questions: %+v", cfg.Barometer.Questions)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("INSIGHT_PORT", "9100")
	t.Setenv("INSIGHT_DATABASE_URL", "postgres://db/insight")
	t.Setenv("INSIGHT_DETAIL_YEAR", "2010")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://db/insight" {
		t.Errorf("expected env database URL, got %s", cfg.Database.URL)
	}
	if cfg.Analysis.DetailYear != 2010 {
		t.Errorf("expected env detail year 2010, got %d", cfg.Analysis.DetailYear)
	}
}
