package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

// stubEngine records the last input it was handed.
type stubEngine struct{}

func (stubEngine) ProcessMessage(_ context.Context, raw string, _ string, _ domain.Options) domain.ProcessingResult {
	status := domain.StatusSuccess
	if raw == "" {
		status = domain.StatusParsingError
	}
	return domain.ProcessingResult{ID: "stub", Status: status}
}

func (stubEngine) ValidateMessage(context.Context, string, string) domain.ValidationReport {
	return domain.ValidationReport{}
}

func (stubEngine) ListSupportedTypes() []domain.MessageTypeDescriptor {
	return nil
}

type handled struct {
	path   string
	result domain.ProcessingResult
}

func TestWatch_ProcessesDroppedFile(t *testing.T) {
	dir := t.TempDir()
	w := New(stubEngine{}, domain.DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan handled, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, dir, func(path string, result domain.ProcessingResult) {
			results <- handled{path: path, result: result}
		})
	}()

	// Give the watcher a moment to register before dropping the file.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "order.edi")
	require.NoError(t, os.WriteFile(path, []byte("ISA*..."), 0644))

	select {
	case h := <-results:
		assert.Equal(t, path, h.path)
		assert.Equal(t, domain.StatusSuccess, h.result.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the dropped file to be processed")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestWatch_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w := New(stubEngine{}, domain.DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan handled, 8)
	go func() {
		_ = w.Watch(ctx, dir, func(path string, result domain.ProcessingResult) {
			results <- handled{path: path, result: result}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644))

	select {
	case h := <-results:
		t.Fatalf("unexpected processing of %s", h.path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	w := New(stubEngine{}, domain.DefaultOptions())

	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"), func(string, domain.ProcessingResult) {})
	assert.Error(t, err)
}

func TestSetRate(t *testing.T) {
	w := New(stubEngine{}, domain.DefaultOptions())
	w.SetRate(100)

	require.NotNil(t, w.limiter)
	assert.Equal(t, float64(100), float64(w.limiter.Limit()))
}
