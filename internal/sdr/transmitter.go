package sdr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrAlreadyRunning is returned when Run is called while a transmission is in progress
	ErrAlreadyRunning = errors.New("transmitter is already running")

	// ErrBrokenPipe is returned when there's an error reading from stdout or stderr
	ErrBrokenPipe = errors.New("broken pipe")
)

// Handler interface defines the methods required for driving a transmit tool
type Handler interface {
	Cmd(ctx context.Context) *exec.Cmd
	Device() string
}

// WithLogger sets the logger for the transmitter
func WithLogger(logger *slog.Logger) func(t *Transmitter) {
	return func(t *Transmitter) {
		t.logger = logger.With(slog.String("device", t.handler.Device()))
	}
}

// WithTimeout stops the transmission after the given duration. Zero disables it.
func WithTimeout(timeout time.Duration) func(t *Transmitter) {
	return func(t *Transmitter) {
		t.timeout = timeout
	}
}

// Transmitter runs an external tool that replays a sample file
type Transmitter struct {
	handler Handler
	timeout time.Duration

	isRunning atomic.Bool
	logger    *slog.Logger
}

// NewTransmitter creates a new Transmitter instance with a discard logger
func NewTransmitter(h Handler, options ...func(t *Transmitter)) *Transmitter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // nil logger

	t := Transmitter{
		handler: h,
		logger:  logger,
	}

	for _, option := range options {
		option(&t)
	}

	return &t
}

// IsRunning returns true while a transmission is in progress
func (t *Transmitter) IsRunning() bool {
	return t.isRunning.Load()
}

// Run starts the tool and blocks until it exits, the timeout elapses or ctx
// is cancelled. Output lines are forwarded to the logger. Stopping on
// timeout or cancellation is not an error.
func (t *Transmitter) Run(ctx context.Context) error {
	if !t.isRunning.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer t.isRunning.Store(false)

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	cmd := t.handler.Cmd(ctx)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error creating stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error creating stderr pipe: %w", err)
	}

	if err = cmd.Start(); err != nil {
		return fmt.Errorf("error starting command: %w", err)
	}

	t.logger.Info("transmission started", slog.String("cmd", strings.Join(cmd.Args, " ")))

	// Pipes must be drained before Wait closes them
	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = t.handleOutput(stdout, "stdout", slog.LevelInfo)
	}()
	go func() {
		defer wg.Done()
		errs[1] = t.handleOutput(stderr, "stderr", slog.LevelWarn)
	}()
	wg.Wait()

	waitErr := cmd.Wait()

	t.logger.Info("transmission stopped")

	if ctx.Err() != nil {
		return nil
	}
	if waitErr != nil {
		errs = append(errs, fmt.Errorf("command exited with error: %w", waitErr))
	}
	return errors.Join(errs...)
}

// handleOutput reads lines from r and logs them at the given level
func (t *Transmitter) handleOutput(r io.Reader, stream string, level slog.Level) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		t.logger.Log(context.Background(), level, fmt.Sprintf("%s >> %s", t.handler.Device(), line), slog.String("stream", stream))
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, fs.ErrClosed) {
		return fmt.Errorf("%w: error reading %s: %w", ErrBrokenPipe, stream, err)
	}

	return nil
}
