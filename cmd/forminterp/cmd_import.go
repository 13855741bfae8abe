package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-forminterp/pkg/openapi"
	"github.com/goliatone/go-forminterp/pkg/program"
)

var (
	importOperation string
	importYAML      bool
	importValidate  bool
)

var importCmd = &cobra.Command{
	Use:   "import <openapi-document>",
	Short: "Build a program from an OpenAPI operation",
	Long: `Convert the request body of an OpenAPI 3 operation into a program: string
properties become inputs and a submit button passes them to a callback named
after the operation. Without --operation the available operations are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importOperation, "operation", "", "Operation id to import")
	importCmd.Flags().BoolVar(&importYAML, "yaml", false, "Emit YAML instead of JSON")
	importCmd.Flags().BoolVar(&importValidate, "validate", true, "Validate the document before importing")
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	options := []openapi.Option{openapi.WithValidation(importValidate)}
	if importOperation == "" {
		ops, err := openapi.Operations(ctx, data, options...)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, op := range ops {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
		}
		return tw.Flush()
	}

	prog, err := openapi.Import(ctx, data, importOperation, options...)
	if err != nil {
		return err
	}
	return printProgram(cmd, prog, importYAML)
}

func printProgram(cmd *cobra.Command, prog program.Program, asYAML bool) error {
	encode := program.Encode
	if asYAML {
		encode = program.EncodeYAML
	}
	out, err := encode(prog)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
