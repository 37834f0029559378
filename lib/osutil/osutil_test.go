package osutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignalContext(t *testing.T) {
	ctx, cancel := SignalContext()
	require.NoError(t, ctx.Err())

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not cancel")
	}
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
