// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/imamik/fleetprov/internal/config"
	"github.com/imamik/fleetprov/internal/inventory"
	"github.com/imamik/fleetprov/internal/metrics"
	"github.com/imamik/fleetprov/internal/platform/provisioner"
	"github.com/imamik/fleetprov/internal/provisioning"
	"github.com/imamik/fleetprov/internal/ui"
)

// ErrUnreadableInventory marks the one fatal input condition: the inventory
// source could not be read at all. main maps it to exit code 2.
var ErrUnreadableInventory = errors.New("inventory unreadable")

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newAPIClient creates the remote API collaborator.
	newAPIClient = func(baseURL, token string, timeout time.Duration) provisioning.ProvisionCaller {
		return provisioner.NewClient(baseURL, token, timeout)
	}

	// parseInventoryFile parses the inventory source.
	parseInventoryFile = inventory.ParseFile

	// loadConfig resolves the configuration file.
	loadConfig = config.Load

	// newLogger builds the injected logging collaborator.
	newLogger = buildLogger

	// printSummary writes the rendered summary block.
	printSummary = func(s provisioning.Summary) {
		fmt.Println(ui.RenderSummary(s))
	}
)

// RunOptions carries the run command's arguments. Pointer fields are only set
// when the corresponding flag was given explicitly, so file values survive
// unless overridden.
type RunOptions struct {
	InventoryPath string
	ConfigPath    string
	DryRun        bool
	MetricsListen string

	APIURL      *string
	Retries     *int
	Concurrency *int
	Timeout     *time.Duration
}

// Run parses the inventory and provisions every valid record.
//
// Per-host failures are recorded in the summary and do not fail the run; the
// returned error is non-nil only for configuration problems or an unreadable
// inventory (wrapped as ErrUnreadableInventory).
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	log := newLogger(cfg.Log.Level)

	records, diags, err := parseInventoryFile(opts.InventoryPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableInventory, err)
	}

	log.Info("parsed inventory", "valid", len(records), "parseErrors", len(diags))
	for _, d := range diags {
		log.Info("parse error", "line", d.Line, "raw", d.Raw, "reason", d.Message)
	}

	rec := metrics.NewRecorder()
	rec.ParseErrors(len(diags))
	if opts.MetricsListen != "" {
		stop := serveMetrics(log, opts.MetricsListen, rec)
		defer stop()
	}

	if len(records) == 0 {
		log.Info("no valid entries to process")
	}

	token := os.Getenv(cfg.API.TokenEnv)
	if token == "" && !opts.DryRun {
		log.Info("no API credential set, calls may be rejected", "env", cfg.API.TokenEnv)
	}

	api := newAPIClient(cfg.API.URL, token, cfg.TimeoutDuration())
	worker := provisioning.NewWorker(api, log)
	dispatcher := provisioning.NewDispatcher(worker, log, rec)

	summary := dispatcher.Run(ctx, records, provisioning.Config{
		DryRun:         opts.DryRun,
		MaxRetries:     cfg.Retries(),
		Concurrency:    cfg.Run.Concurrency,
		BackoffInitial: cfg.BackoffInitialDuration(),
		BackoffMax:     cfg.BackoffMaxDuration(),
	})
	summary.ParseErrors = len(diags)

	printSummary(summary)
	return nil
}

func applyOverrides(cfg *config.Config, opts RunOptions) {
	if opts.APIURL != nil {
		cfg.API.URL = *opts.APIURL
	}
	if opts.Retries != nil {
		cfg.Run.Retries = opts.Retries
	}
	if opts.Concurrency != nil {
		cfg.Run.Concurrency = *opts.Concurrency
	}
	if opts.Timeout != nil {
		cfg.API.Timeout = opts.Timeout.String()
	}
}

// buildLogger constructs the zap-backed logr.Logger injected into the parser,
// dispatcher, and worker.
func buildLogger(level string) logr.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	zl, err := zapCfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}

// serveMetrics exposes the run's registry until the returned stop function is
// called.
func serveMetrics(log logr.Logger, addr string, rec *metrics.Recorder) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "metrics listener failed", "addr", addr)
		}
	}()

	return func() { _ = srv.Close() }
}
