package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Events     EventsConfig     `yaml:"events"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Coach      CoachConfig      `yaml:"coach"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Barometer  BarometerConfig  `yaml:"barometer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type DatasetConfig struct {
	// CSVPath backs the service with an in-memory CSV store when no
	// database URL is configured.
	CSVPath string `yaml:"csv_path"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type ClassifierConfig struct {
	URL string `yaml:"url"`
}

type CoachConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type AnalysisConfig struct {
	// DetailYear is the survey wave detailed breakdowns default to.
	DetailYear  int `yaml:"detail_year"`
	DefaultTopK int `yaml:"default_top_k"`
	// MaxRows caps how many records a single query pulls from the store.
	MaxRows int `yaml:"max_rows"`
}

type BarometerConfig struct {
	// Questions overrides the built-in barometer question set when present.
	Questions []QuestionConfig `yaml:"questions"`
}

type QuestionConfig struct {
	Key      string `yaml:"key"`
	Max      int    `yaml:"max"`
	Reversed bool   `yaml:"reversed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Dataset: DatasetConfig{
			CSVPath: "data.csv",
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Classifier: ClassifierConfig{
			URL: "http://localhost:8080",
		},
		Analysis: AnalysisConfig{
			DetailYear:  2018,
			DefaultTopK: 5,
			MaxRows:     500000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("INSIGHT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("INSIGHT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("INSIGHT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("INSIGHT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("INSIGHT_DATASET_CSV"); v != "" {
		cfg.Dataset.CSVPath = v
	}
	if v := os.Getenv("INSIGHT_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("INSIGHT_CLASSIFIER_URL"); v != "" {
		cfg.Classifier.URL = v
	}
	if v := os.Getenv("INSIGHT_COACH_URL"); v != "" {
		cfg.Coach.URL = v
	}
	if v := os.Getenv("INSIGHT_COACH_TOKEN"); v != "" {
		cfg.Coach.Token = v
	}
	if v := os.Getenv("INSIGHT_DETAIL_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.DetailYear = n
		}
	}
	if v := os.Getenv("INSIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
