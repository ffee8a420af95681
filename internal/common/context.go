package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithInterrupt returns a context that is cancelled on SIGINT or SIGTERM.
// Call the returned stop function (typically via defer) to restore default
// signal handling.
func WithInterrupt(parent context.Context) (context.Context, func()) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return ctx, func() { stop() }
}
