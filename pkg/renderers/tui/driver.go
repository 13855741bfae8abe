package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the actual TUI implementation so render logic can be
// tested without a real terminal and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	in     terminal.FileReader
	out    terminal.FileWriter
	errOut io.Writer
}

func newSurveyDriver() PromptDriver {
	return &surveyDriver{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
}

// ask runs one survey prompt on the driver's terminal.
func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts = append(opts, survey.WithStdio(d.in, d.out, d.errOut))
	if err := survey.AskOne(prompt, response, opts...); err != nil {
		return translateSurveyErr(err)
	}
	return nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	prompt := &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	err := d.ask(ctx, prompt, &out, validatorOpts(cfg)...)
	return out, err
}

// Password never offers a default.
func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	prompt := &survey.Password{Message: cfg.Message, Help: cfg.Help}
	err := d.ask(ctx, prompt, &out, validatorOpts(cfg)...)
	return out, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	// The answer is stored as the option index.
	var idx int
	if err := d.ask(ctx, prompt, &idx); err != nil {
		return 0, err
	}
	return idx, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func validatorOpts(cfg InputConfig) []survey.AskOpt {
	if cfg.Validator == nil {
		return nil
	}
	validator := cfg.Validator
	return []survey.AskOpt{survey.WithValidator(func(ans any) error {
		value, _ := ans.(string)
		return validator(value)
	})}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
