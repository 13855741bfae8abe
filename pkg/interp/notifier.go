package interp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier shows a message to the user, the way a page would raise an alert.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}

// WriterNotifier prints one message per line to W.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes message followed by a newline.
func (n WriterNotifier) Notify(_ context.Context, message string) error {
	if n.W == nil {
		return nil
	}
	_, err := fmt.Fprintln(n.W, message)
	return err
}

// LogNotifier routes notices to a zap logger at info level. It is the
// default when a host does not inject a Notifier.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify logs message.
func (n LogNotifier) Notify(_ context.Context, message string) error {
	if n.Logger == nil {
		return nil
	}
	n.Logger.Info("form notice", zap.String("message", message))
	return nil
}

// Notices collects messages in memory. Hosts that render after a click (the
// HTTP page, tests) drain it to show what the user would have seen.
type Notices struct {
	mu       sync.Mutex
	messages []string
}

// Notify records message.
func (n *Notices) Notify(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

// Messages returns a copy of the recorded messages.
func (n *Notices) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// Drain returns the recorded messages and clears the collector.
func (n *Notices) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.messages
	n.messages = nil
	return out
}
