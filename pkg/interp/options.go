package interp

import "go.uber.org/zap"

// Option customises a render call.
type Option func(*config)

type config struct {
	logger        *zap.Logger
	notifier      Notifier
	programName   string
	defaultValues bool
}

// WithLogger routes diagnostics (unknown field types) to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithNotifier sets the channel used for user-visible notices. Forms fall back
// to a LogNotifier over the configured logger.
func WithNotifier(notifier Notifier) Option {
	return func(cfg *config) {
		if notifier != nil {
			cfg.notifier = notifier
		}
	}
}

// WithProgramName overrides the name diagnostics use for the program.
func WithProgramName(name string) Option {
	return func(cfg *config) {
		cfg.programName = name
	}
}

// WithDefaultValues pre-populates string and password inputs from the
// descriptors' defaultValue. Without it defaultValue is ignored.
func WithDefaultValues() Option {
	return func(cfg *config) {
		cfg.defaultValues = true
	}
}

func newConfig(options []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.notifier == nil {
		cfg.notifier = LogNotifier{Logger: cfg.logger}
	}
	return cfg
}
