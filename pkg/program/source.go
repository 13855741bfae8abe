package program

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a serialized program originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindBytes SourceKind = "bytes"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside the loader's
// fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("program: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("program: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// BytesSource carries an in-memory payload, e.g. the contents of a text box.
type BytesSource struct {
	name string
	data []byte
}

func (s BytesSource) Location() string { return s.name }
func (s BytesSource) Kind() SourceKind { return SourceKindBytes }

// Data returns a copy of the payload.
func (s BytesSource) Data() []byte {
	return append([]byte(nil), s.data...)
}

// SourceFromBytes wraps an in-memory payload. Name is used in error messages
// and as the program name in diagnostics.
func SourceFromBytes(name string, data []byte) Source {
	if strings.TrimSpace(name) == "" {
		name = "inline"
	}
	return BytesSource{name: name, data: append([]byte(nil), data...)}
}

// ParseSource maps a CLI style argument onto a Source: "-" is not handled
// here, http(s) prefixes become URL sources and everything else a file.
func ParseSource(raw string) (Source, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("program: source is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if _, err := url.ParseRequestURI(trimmed); err != nil {
			return nil, fmt.Errorf("program: invalid URL %q: %w", trimmed, err)
		}
		return urlSource{raw: trimmed}, nil
	}
	return SourceFromFile(trimmed), nil
}
