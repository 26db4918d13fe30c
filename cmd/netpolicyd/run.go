package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"zerox/netpolicy/pkg/audit"
	"zerox/netpolicy/pkg/audit/retention"
	auditstorage "zerox/netpolicy/pkg/audit/storage"
	"zerox/netpolicy/pkg/config"
	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/policy/engine/source"
	"zerox/netpolicy/pkg/policy/manager"
	"zerox/netpolicy/pkg/policy/parser"
	"zerox/netpolicy/pkg/state"
	"zerox/netpolicy/pkg/telemetry/logging"
	"zerox/netpolicy/pkg/telemetry/metrics"
)

var runFlags struct {
	rulesPath string
	logLevel  string
	dryRun    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the policy decision daemon",
	Long: `Start the policy decision daemon with the specified configuration.

The daemon loads the configured rules file, keeps it hot-reloaded when
watching is enabled, serves Prometheus metrics, and records every decision
to the audit trail.

Examples:
  # Start with default config
  netpolicyd run

  # Start with custom config
  netpolicyd run --config /etc/netpolicy/config.yaml

  # Override the rules file
  netpolicyd run --rules ./policies.rules

  # Validate config and rules without starting
  netpolicyd run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.rulesPath, "rules", "r", "", "override rules file path")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and rules without starting")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	if runFlags.rulesPath != "" {
		cfg.Rules.Path = runFlags.rulesPath
	}
	if runFlags.logLevel != "" {
		cfg.Log.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the initial ruleset. A broken rules file at startup is fatal;
	// once running, a broken reload only keeps the previous set.
	ruleSource := newRuleSource(cfg, logger)
	initial, err := ruleSource.Load(ctx)
	if err != nil {
		if el := engine.AsErrorList(err); el != nil {
			fmt.Println(el.Error())
			return fmt.Errorf("rules file %q failed validation with %d errors", cfg.Rules.Path, el.Count())
		}
		return err
	}

	if runFlags.dryRun {
		fmt.Printf("configuration and rules valid (%d rules)\n", initial.Len())
		return nil
	}

	var opts []engine.Option

	var decisionMetrics *metrics.DecisionMetrics
	if cfg.Metrics.Enabled {
		decisionMetrics = metrics.NewDecisionMetrics(cfg.Metrics.Namespace)
		decisionMetrics.SetState(state.Normal)
		opts = append(opts, engine.WithObserver(decisionMetrics))
	}

	var auditStorage audit.Storage
	if cfg.Audit.Enabled {
		auditStorage, err = auditstorage.NewSQLiteStorage(&auditstorage.SQLiteConfig{
			Path:         cfg.Audit.Path,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			WALMode:      true,
			BusyTimeout:  5 * time.Second,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to open audit storage: %w", err)
		}
		defer auditStorage.Close()

		opts = append(opts, engine.WithObserver(audit.NewRecorder(auditStorage, logger)))
	}

	eng := engine.New(initial, state.NewHolder(), logger, opts...)
	mgr := manager.New(eng, ruleSource, logger)
	if decisionMetrics != nil {
		mgr.SetReloadHook(func(err error) {
			decisionMetrics.RecordReload(err == nil)
		})
	}

	logger.Info("daemon started",
		"rules_path", cfg.Rules.Path,
		"rule_count", initial.Len(),
		"watch", cfg.Rules.Watch,
		"metrics_enabled", cfg.Metrics.Enabled,
		"audit_enabled", cfg.Audit.Enabled,
	)

	group, ctx := errgroup.WithContext(ctx)

	if cfg.Rules.Watch {
		group.Go(func() error {
			watchConfig := manager.DefaultFileWatcherConfig()
			watchConfig.DebounceInterval = cfg.Rules.DebounceInterval
			return mgr.Watch(ctx, cfg.Rules.Path, watchConfig)
		})
	}

	if cfg.Metrics.Enabled {
		group.Go(func() error {
			return serveMetrics(ctx, cfg.Metrics.ListenAddress, decisionMetrics, logger)
		})
	}

	if cfg.Audit.Enabled {
		pruner := retention.NewPruner(auditStorage, &retention.Config{
			RetentionDays: cfg.Audit.RetentionDays,
			MaxRecords:    cfg.Audit.MaxRecords,
			PruneSchedule: cfg.Audit.PruneSchedule,
		}, logger)
		if err := pruner.Scheduler().Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("daemon stopped")
	return nil
}

// newRuleSource builds the file source, honoring a configured format
// override.
func newRuleSource(cfg *config.Config, logger *slog.Logger) *source.FileSource {
	switch cfg.Rules.Format {
	case "yaml":
		return source.NewFileSourceWithFormat(cfg.Rules.Path, parser.FormatYAML, logger)
	case "dsl":
		return source.NewFileSourceWithFormat(cfg.Rules.Path, parser.FormatDSL, logger)
	default:
		return source.NewFileSource(cfg.Rules.Path, logger)
	}
}

// serveMetrics runs the Prometheus endpoint until the context is cancelled.
func serveMetrics(ctx context.Context, addr string, m *metrics.DecisionMetrics, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server started", "address", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown failed: %w", err)
		}
		logger.Info("metrics server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server failed: %w", err)
	}
}
