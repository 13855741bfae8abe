package program

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithFS configures the filesystem used for SourceKindFS sources.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithHTTPClient enables SourceKindURL sources using the provided client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithRequestTimeout bounds HTTP fetches.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// Loader resolves a Source into a Program.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader. HTTP sources stay disabled until a client is
// supplied.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load reads and decodes the program behind src. When the payload carries no
// name the source location is used so diagnostics can point at it.
func (l *Loader) Load(ctx context.Context, src Source) (Program, error) {
	if src == nil {
		return Program{}, errors.New("program loader: source is nil")
	}
	data, err := l.Read(ctx, src)
	if err != nil {
		return Program{}, err
	}
	p, err := parse(data, src.Location())
	if err != nil {
		return Program{}, err
	}
	if p.Name == "" {
		p.Name = programName(src)
	}
	return p, nil
}

// Read returns the raw payload behind src without decoding it.
func (l *Loader) Read(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("program loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindFile:
		return loadFile(src.Location())
	case SourceKindFS:
		return loadFromFS(l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return nil, errors.New("program loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case SourceKindBytes:
		bs, ok := src.(BytesSource)
		if !ok {
			return nil, fmt.Errorf("program loader: unexpected bytes source %T", src)
		}
		return bs.Data(), nil
	default:
		return nil, fmt.Errorf("program loader: unsupported source kind %q", src.Kind())
	}
}

func programName(src Source) string {
	switch src.Kind() {
	case SourceKindFile, SourceKindFS:
		base := filepath.Base(src.Location())
		return strings.TrimSuffix(base, filepath.Ext(base))
	default:
		return src.Location()
	}
}

func loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("program loader: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program loader: read %s: %w", path, err)
	}
	return data, nil
}

func loadFromFS(filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("program loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("program loader: fs path is required")
	}
	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, fmt.Errorf("program loader: read %s: %w", name, err)
	}
	return data, nil
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("program loader: unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}
