package interp

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := WriterNotifier{W: &buf}
	if err := n.Notify(context.Background(), "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := LogNotifier{Logger: zap.New(core)}
	if err := n.Notify(context.Background(), "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if logs.Len() != 1 || logs.All()[0].ContextMap()["message"] != "hello" {
		t.Fatalf("unexpected logs %#v", logs.All())
	}
}

func TestNotices_Drain(t *testing.T) {
	n := &Notices{}
	_ = n.Notify(context.Background(), "a")
	_ = NotifierFunc(n.Notify).Notify(context.Background(), "b")

	if diff := cmp.Diff([]string{"a", "b"}, n.Drain()); diff != "" {
		t.Fatalf("drain mismatch (-want +got):\n%s", diff)
	}
	if len(n.Messages()) != 0 {
		t.Fatalf("drain should clear messages")
	}
}

func TestRegion_ReplacesPriorMount(t *testing.T) {
	first, _ := Render(loginProgram(), nil)
	second, _ := Render(loginProgram(), nil)

	var region Region
	var mount Mount = &region
	if err := mount.Mount(first); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if err := mount.Mount(second); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if region.Current() != second {
		t.Fatalf("expected second form mounted")
	}
	region.Clear()
	if region.Current() != nil {
		t.Fatalf("expected empty region")
	}
}
