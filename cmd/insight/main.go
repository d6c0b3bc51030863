package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hbsc-labs/insight/internal/api"
	"github.com/hbsc-labs/insight/internal/classifier"
	"github.com/hbsc-labs/insight/internal/coach"
	"github.com/hbsc-labs/insight/internal/config"
	"github.com/hbsc-labs/insight/internal/events"
	"github.com/hbsc-labs/insight/internal/riskcore"
	"github.com/hbsc-labs/insight/internal/store"
	"github.com/hbsc-labs/insight/internal/survey"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dataset store: Postgres when configured, otherwise the CSV export.
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		cs, err := store.NewCSVStore(cfg.Dataset.CSVPath)
		if err != nil {
			logger.Error("failed to load dataset", "error", err, "path", cfg.Dataset.CSVPath)
			os.Exit(1)
		}
		db = cs
		logger.Info("loaded dataset", "path", cfg.Dataset.CSVPath)
	}
	defer db.Close()

	// Barometer
	questions := riskcore.DefaultQuestions()
	if len(cfg.Barometer.Questions) > 0 {
		questions = questions[:0]
		for _, q := range cfg.Barometer.Questions {
			questions = append(questions, riskcore.Question{
				Key:   q.Key,
				Scale: survey.Scale{Max: q.Max, Reversed: q.Reversed},
			})
		}
	}
	barometer, err := riskcore.NewBarometer(questions)
	if err != nil {
		logger.Error("invalid barometer configuration", "error", err)
		os.Exit(1)
	}

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to events broker, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to events broker")
		}
	}

	// Classifier
	var classifierClient classifier.Client
	if cfg.Classifier.URL != "" {
		classifierClient = classifier.NewHTTPClient(cfg.Classifier.URL)
	}

	// Coach (optional)
	var coachClient coach.Client
	if cfg.Coach.URL != "" {
		coachClient = coach.NewHTTPClient(cfg.Coach.URL, cfg.Coach.Token)
	}

	// API server
	router := api.NewRouter(db, barometer, classifierClient, coachClient, eventsClient, cfg, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
