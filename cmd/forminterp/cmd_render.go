package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/pkg/orchestrator"
	"github.com/goliatone/go-forminterp/pkg/program"
)

var (
	renderRenderer string
	renderOut      string
	renderWatch    bool
	renderTheme    string
	renderVariant  string
)

const watchDebounce = 200 * time.Millisecond

var renderCmd = &cobra.Command{
	Use:   "render <program>",
	Short: "Render a program to HTML or text",
	Long: `Render a program file or URL with the html (default) or text renderer.
With --watch the file is rendered again every time it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderRenderer, "renderer", "r", "", "Renderer to use (html, text)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write output to a file instead of stdout")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render when the program file changes")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme name (defaults to the configured theme)")
	renderCmd.Flags().StringVar(&renderVariant, "variant", "", "Theme variant")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rendererName := renderRenderer
	if rendererName == "" {
		rendererName = cfg.Renderer
	}

	src, err := program.ParseSource(args[0])
	if err != nil {
		return err
	}
	if renderWatch && src.Kind() != program.SourceKindFile {
		return errors.New("--watch requires a program file")
	}
	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	req := orchestrator.Request{
		Source:       src,
		Renderer:     rendererName,
		ThemeName:    renderTheme,
		ThemeVariant: renderVariant,
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	generate := func() error {
		out, err := orch.Generate(ctx, req)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), renderOut, out)
	}
	if err := generate(); err != nil {
		return err
	}
	if !renderWatch {
		return nil
	}

	currentLogger().Info("Watching program", zap.String("path", src.Location()))
	return watchProgram(ctx, src.Location(), func() error {
		if err := generate(); err != nil {
			currentLogger().Warn("Render failed", zap.String("path", src.Location()), zap.Error(err))
			return nil
		}
		currentLogger().Info("Rendered", zap.String("path", src.Location()))
		return nil
	})
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// watchProgram calls onChange after each write to path until ctx is done or
// onChange fails. The parent directory is watched so editors that replace
// the file on save are still picked up.
func watchProgram(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	// Saves often arrive as several events; fire once they settle.
	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				settle.Reset(watchDebounce)
			}
		case <-settle.C:
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			currentLogger().Warn("Watcher error", zap.Error(err))
		}
	}
}
