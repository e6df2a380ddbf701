package sdr

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"
)

type shellHandler struct {
	script string
}

func (h shellHandler) Cmd(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, "sh", "-c", h.script)
}

func (h shellHandler) Device() string {
	return "test"
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTransmitter_Run(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))

	tx := NewTransmitter(shellHandler{"echo call 1/1; echo underrun >&2"}, WithLogger(logger))
	if err := tx.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tx.IsRunning() {
		t.Error("Expected transmitter to be stopped after Run")
	}

	logs := out.String()
	for _, want := range []string{"test >> call 1/1", "test >> underrun", "level=WARN"} {
		if !strings.Contains(logs, want) {
			t.Errorf("Expected logs to contain %q, got:\n%s", want, logs)
		}
	}
}

func TestTransmitter_ExitError(t *testing.T) {
	tx := NewTransmitter(shellHandler{"exit 3"})

	err := tx.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("Expected *exec.ExitError in chain, got %v", err)
	}
}

func TestTransmitter_Timeout(t *testing.T) {
	tx := NewTransmitter(shellHandler{"exec sleep 10"}, WithTimeout(100*time.Millisecond))

	start := time.Now()
	if err := tx.Run(context.Background()); err != nil {
		t.Fatalf("Expected timeout to stop cleanly, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Expected transmission to stop on timeout, took %s", elapsed)
	}
}

func TestTransmitter_AlreadyRunning(t *testing.T) {
	tx := NewTransmitter(shellHandler{"true"})
	tx.isRunning.Store(true)

	if err := tx.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
}
