package osutil

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext builds the crawl's root context. It is cancelled on
// SIGINT/SIGTERM so a supervisor can stop the crawler between page
// fetches; flushed records stay durable because the sinks are
// append-only. The returned cancel releases the signal registration.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
