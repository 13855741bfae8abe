package openapi

// Option configures document loading.
type Option func(*config)

type config struct {
	externalRefs bool
	validate     bool
	mediaTypes   []string
}

// WithExternalRefs allows $ref to resolve against external documents.
func WithExternalRefs(enabled bool) Option {
	return func(cfg *config) {
		cfg.externalRefs = enabled
	}
}

// WithValidation validates the document before extracting operations.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.validate = enabled
	}
}

// WithMediaTypes sets the request body media types tried in order. The
// default prefers JSON, then form encodings.
func WithMediaTypes(types ...string) Option {
	return func(cfg *config) {
		if len(types) > 0 {
			cfg.mediaTypes = append([]string(nil), types...)
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		mediaTypes: []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
