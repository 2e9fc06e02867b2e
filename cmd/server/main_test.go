package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vuchint-sutapalli/pictionary/internal/config"
)

func TestRunStopsCleanlyOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, config.Config{Port: "0", RoundSeconds: 60, RoomCapacity: 8}, zap.NewNop())
	}()

	// give the listener a moment to come up, then ask for shutdown
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop after context cancellation")
	}
}
