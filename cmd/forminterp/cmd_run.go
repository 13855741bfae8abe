package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/internal/server"
	"github.com/goliatone/go-forminterp/pkg/orchestrator"
	"github.com/goliatone/go-forminterp/pkg/renderers/tui"
)

var (
	runPretty bool

	// promptDriver replaces the survey prompts; tests inject a stub.
	promptDriver tui.PromptDriver
)

var runCmd = &cobra.Command{
	Use:   "run <program>",
	Short: "Fill and click a program's form in the terminal",
	Long: `Prompt for every input of the program, then offer its buttons until Done.
The sample login callback is bound; other callbacks raise the missing callback
notice. The session summary is printed when it ends.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runPretty, "pretty", false, "Print the summary as text instead of JSON")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	prog, err := loadProgram(ctx, args[0])
	if err != nil {
		return err
	}

	format := tui.OutputFormatJSON
	if runPretty {
		format = tui.OutputFormatPrettyText
	}
	options := []tui.Option{
		tui.WithOutputFormat(format),
		tui.WithRequiredInputs(tui.RequiredInputs(prog)),
	}
	if promptDriver != nil {
		options = append(options, tui.WithPromptDriver(promptDriver))
	}

	registry, err := orchestrator.DefaultRegistry()
	if err != nil {
		return err
	}
	session := tui.New(options...)
	if err := registry.Register(session); err != nil {
		return err
	}

	notices := session.Notifier()
	orch, err := newOrchestrator(cfg, orchestrator.WithRegistry(registry))
	if err != nil {
		return err
	}
	summary, err := orch.Generate(ctx, orchestrator.Request{
		Program:    &prog,
		Controller: server.LoginController(notices),
		Notifier:   notices,
		Renderer:   tui.Name,
	})
	if err != nil {
		return err
	}

	currentLogger().Debug("Session finished", zap.String("program", prog.Name))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(summary))
	return err
}
