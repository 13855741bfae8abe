// Package config loads the YAML configuration shared by the CLI and the page
// server. Flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Addr          string        `yaml:"addr"`
	Renderer      string        `yaml:"renderer"`
	ProgramPath   string        `yaml:"program"`
	ShutdownGrace time.Duration `yaml:"shutdownGrace"`
	MaxSessions   int           `yaml:"maxSessions"`
	DefaultValues bool          `yaml:"defaultValues"`
	Verbose       bool          `yaml:"verbose"`
	Theme         ThemeConfig   `yaml:"theme"`
}

// ThemeConfig selects a theme and optionally declares manifests inline.
type ThemeConfig struct {
	Name     string          `yaml:"name"`
	Variant  string          `yaml:"variant"`
	Manifest []ThemeManifest `yaml:"manifests"`
}

// ThemeManifest is the YAML shape of a theme manifest.
type ThemeManifest struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Assets   map[string]string            `yaml:"assets"`
	Prefix   string                       `yaml:"assetPrefix"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:          ":8383",
		Renderer:      "html",
		ShutdownGrace: 5 * time.Second,
		MaxSessions:   1024,
		Theme: ThemeConfig{
			Name:    "default",
			Variant: "light",
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if c.MaxSessions <= 0 {
		return errors.New("config: maxSessions must be positive")
	}
	if c.ShutdownGrace < 0 {
		return errors.New("config: shutdownGrace must not be negative")
	}
	for i, m := range c.Theme.Manifest {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("config: theme.manifests[%d]: name is required", i)
		}
	}
	return nil
}

// Manifests converts the inline theme declarations. A built-in "default"
// manifest is always present unless the file redefines it.
func (c Config) Manifests() []*theme.Manifest {
	out := []*theme.Manifest{DefaultManifest()}
	for _, m := range c.Theme.Manifest {
		manifest := &theme.Manifest{
			Name:    m.Name,
			Version: m.Version,
			Tokens:  copyMap(m.Tokens),
			Assets: theme.Assets{
				Prefix: m.Prefix,
				Files:  copyMap(m.Assets),
			},
		}
		if len(m.Variants) > 0 {
			manifest.Variants = make(map[string]theme.Variant, len(m.Variants))
			for name, tokens := range m.Variants {
				manifest.Variants[name] = theme.Variant{Tokens: copyMap(tokens)}
			}
		}
		if m.Name == out[0].Name {
			out[0] = manifest
			continue
		}
		out = append(out, manifest)
	}
	return out
}

// ThemeRegistry registers Manifests() into a go-theme registry. Manifests
// declared without a version are registered as DefaultThemeVersion.
func (c Config) ThemeRegistry() (*theme.MemoryRegistry, error) {
	registry := theme.NewRegistry()
	for _, manifest := range c.Manifests() {
		if strings.TrimSpace(manifest.Version) == "" {
			manifest.Version = DefaultThemeVersion
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("config: register theme %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}

// DefaultThemeVersion is assigned to inline manifests without a version.
const DefaultThemeVersion = "1.0.0"

// DefaultManifest is the built-in light/dark theme.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "default",
		Version: DefaultThemeVersion,
		Tokens: map[string]string{
			"spacing":       "0.75rem",
			"radius":        "4px",
			"color-primary": "#2563eb",
			"color-text":    "#1f2933",
			"color-border":  "#cbd2d9",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files:  map[string]string{"stylesheet": "forminterp.css"},
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {Tokens: map[string]string{
				"color-text":   "#e5e7eb",
				"color-border": "#4b5563",
			}},
		},
	}
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
