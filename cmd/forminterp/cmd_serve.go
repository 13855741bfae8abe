package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/internal/server"
	"github.com/goliatone/go-forminterp/pkg/program"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive form page",
	Long: `Serve a page with a program text box, a run button and the live form.
The text box is seeded with the configured program, or the login sample.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides the config file)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	seed := program.Sample()
	if cfg.ProgramPath != "" {
		if seed, err = loadProgram(ctx, cfg.ProgramPath); err != nil {
			return err
		}
	}

	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	srv, err := server.New(orch,
		server.WithLogger(currentLogger()),
		server.WithSeedProgram(seed),
		server.WithRenderer(cfg.Renderer),
		server.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
		server.WithMaxSessions(cfg.MaxSessions),
	)
	if err != nil {
		return err
	}

	currentLogger().Info("Starting server",
		zap.String("addr", cfg.Addr),
		zap.String("renderer", cfg.Renderer),
		zap.String("theme", cfg.Theme.Name),
	)
	return server.Run(ctx, cfg.Addr, srv.Handler(), cfg.ShutdownGrace, currentLogger())
}
