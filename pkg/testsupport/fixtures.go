package testsupport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/program"
)

// LoginProgram returns the sample login program used across renderer tests.
func LoginProgram() program.Program {
	return program.Sample()
}

// MustParseProgram decodes a JSON or YAML fixture, failing the test on error.
func MustParseProgram(t *testing.T, payload string) program.Program {
	t.Helper()

	prog, err := program.Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse program: %v", err)
	}
	return prog
}

// MustRenderForm renders prog against controller, failing the test on error.
func MustRenderForm(t *testing.T, prog program.Program, controller *interp.Controller, opts ...interp.Option) *interp.Form {
	t.Helper()

	form, err := interp.Render(prog, controller, opts...)
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	return form
}

// Recorder is a controller callback that records every invocation.
type Recorder struct {
	Calls [][]string
	Err   error
}

// Callback returns the recording callback.
func (r *Recorder) Callback() interp.Callback {
	return func(args ...string) error {
		r.Calls = append(r.Calls, append([]string(nil), args...))
		return r.Err
	}
}

// MustParseHTML parses an HTML fragment into a document tree.
func MustParseHTML(t *testing.T, data []byte) *html.Node {
	t.Helper()

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// FindAll returns every element in document order matching match.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// FindFirst returns the first element matching match, or nil.
func FindFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	found := FindAll(root, match)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// HasClass matches elements whose class list contains class.
func HasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, token := range strings.Fields(Attr(n, "class")) {
			if token == class {
				return true
			}
		}
		return false
	}
}

// IsTag matches elements by tag name.
func IsTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag
	}
}

// Attr returns the named attribute of n.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether n carries the named attribute.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
