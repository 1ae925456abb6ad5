// Command monitor reconciles daily station report emails into the ledger.
//
// Usage:
//
//	monitor START_DATE [END_DATE]
//
// Dates are YYYY-MM-DD; the inclusive range is processed in ascending order,
// persisting after each day. Everything else comes from the environment
// (optionally via a .env file).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/javimendezpy/control-emails/internal/adapter/http"
	"github.com/javimendezpy/control-emails/internal/adapter/imap"
	kafkaadapter "github.com/javimendezpy/control-emails/internal/adapter/kafka"
	"github.com/javimendezpy/control-emails/internal/adapter/xlsx"
	"github.com/javimendezpy/control-emails/internal/config"
	"github.com/javimendezpy/control-emails/internal/domain"
	"github.com/javimendezpy/control-emails/internal/ledger"
	"github.com/javimendezpy/control-emails/internal/observability"
	"github.com/javimendezpy/control-emails/internal/pipeline"
	"github.com/javimendezpy/control-emails/internal/roster"
)

func main() {
	godotenv.Load() //nolint:errcheck // a missing .env is fine

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	start, end, err := parseDateArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: %s START_DATE [END_DATE] (YYYY-MM-DD)\n", os.Args[0])
		logger.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	stations, err := roster.Load(cfg.RosterPath)
	if err != nil {
		logger.Error("failed to load roster", "path", cfg.RosterPath, "error", err)
		os.Exit(1)
	}
	logger.Info("roster loaded", "path", cfg.RosterPath, "stations", len(stations))

	source, err := imap.Dial(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to mailbox", "error", err)
		os.Exit(1)
	}

	// Optional collaborators, feature-flagged through the environment.
	var publisher pipeline.OutcomePublisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = kafkaWriter
		logger.Info("outcome publishing enabled", "topic", cfg.KafkaOutcomeTopic)
	}
	var exporter pipeline.Exporter
	if cfg.XLSXEnabled() {
		exporter = xlsx.NewExporter(cfg.XLSXPath, logger)
		logger.Info("spreadsheet export enabled", "path", cfg.XLSXPath)
	}

	store := ledger.FileStore{Path: cfg.LedgerPath}
	runner := pipeline.New(source, store, stations, publisher, exporter, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, runner, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := runner.Run(ctx, start, end)
	if runErr != nil {
		logger.Error("run failed", "error", runErr)
	} else {
		logger.Info("run complete",
			"start", start.Format(domain.DateLayout),
			"end", end.Format(domain.DateLayout),
			"ledger", cfg.LedgerPath)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if err := source.Close(); err != nil {
		logger.Error("imap close error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// parseDateArgs reads the positional start date and optional end date. The
// end date defaults to the start date.
func parseDateArgs(args []string) (start, end time.Time, err error) {
	switch len(args) {
	case 1, 2:
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("expected 1 or 2 date arguments, got %d", len(args))
	}

	start, err = domain.ParseDate(args[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %q: %w", args[0], err)
	}
	end = start
	if len(args) == 2 {
		end, err = domain.ParseDate(args[1])
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end date %q: %w", args[1], err)
		}
	}
	return start, end, nil
}
