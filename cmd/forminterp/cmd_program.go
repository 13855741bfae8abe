package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/pkg/program"
)

var sampleYAML bool

// errLintFindings makes lint exit non-zero once every file is reported.
var errLintFindings = errors.New("lint: findings reported")

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the login sample program",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProgram(cmd, program.Sample(), sampleYAML)
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint <program>...",
	Short: "Report likely mistakes in programs",
	Long: `Report unknown field types, duplicate names, stray callbacks and args that
name no rendered field. The interpreter tolerates all of them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	sampleCmd.Flags().BoolVar(&sampleYAML, "yaml", false, "Emit YAML instead of JSON")
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	found := false
	for _, raw := range args {
		prog, err := loadProgram(ctx, raw)
		if err != nil {
			return err
		}
		issues := program.Lint(prog)
		currentLogger().Debug("Linted program", zap.String("source", raw), zap.Int("issues", len(issues)))
		for _, issue := range issues {
			fmt.Fprintf(out, "%s: %s\n", raw, issue)
		}
		found = found || len(issues) > 0
	}
	if found {
		return errLintFindings
	}
	return nil
}
