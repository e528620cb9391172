package artifact

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWatchStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dir := t.TempDir()
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, dir, NewProvider(nil), nil)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after context cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/smsparse-artifacts", NewProvider(nil), nil)
	if err == nil {
		t.Error("expected error watching missing directory")
	}
}
