// Command forminterp renders, runs, serves and lints form programs.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-forminterp/internal/config"
	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/orchestrator"
	"github.com/goliatone/go-forminterp/pkg/program"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

const fetchTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "forminterp",
	Short: "Interpret form programs into HTML, text or terminal sessions",
	Long: `forminterp turns a program (a JSON or YAML list of field descriptors) into
an interactive form and dispatches button clicks to named callbacks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(lintCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func newLoader() *program.Loader {
	return program.NewLoader(
		program.WithHTTPClient(&http.Client{}),
		program.WithRequestTimeout(fetchTimeout),
	)
}

// newOrchestrator wires the loader, theme registry and default value policy
// that every subcommand shares.
func newOrchestrator(cfg config.Config, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	themes, err := cfg.ThemeRegistry()
	if err != nil {
		return nil, err
	}
	base := []orchestrator.Option{
		orchestrator.WithLoader(newLoader()),
		orchestrator.WithLogger(currentLogger()),
		orchestrator.WithThemeProvider(themes, cfg.Theme.Name, cfg.Theme.Variant),
	}
	if cfg.DefaultValues {
		base = append(base, orchestrator.WithInterpOptions(interp.WithDefaultValues()))
	}
	return orchestrator.New(append(base, options...)...), nil
}

func loadProgram(ctx context.Context, raw string) (program.Program, error) {
	src, err := program.ParseSource(raw)
	if err != nil {
		return program.Program{}, err
	}
	return newLoader().Load(ctx, src)
}
