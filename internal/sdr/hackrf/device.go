package hackrf

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/roman-kulish/weather-tx/internal/sdr"
	"github.com/roman-kulish/weather-tx/internal/sdr/driver"
)

const (
	Runtime = "hackrf_transfer"
	Device  = "HackRF"
)

// handler struct represents a HackRF transmit handler
type handler struct {
	binPath string
	args    []string
}

// New creates a new HackRF handler that transmits file
func New(config *Config, file string) (sdr.Handler, error) {
	binPath, err := driver.FindRuntime(Runtime)
	if err != nil {
		return nil, fmt.Errorf("error finding runtime: %w", err)
	}

	args, err := config.Args(file)
	if err != nil {
		return nil, fmt.Errorf("error creating args: %w", err)
	}

	return &handler{binPath, args}, nil
}

// Cmd returns an exec.Cmd for the HackRF handler
func (h handler) Cmd(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, h.binPath, h.args...)
}

// Device returns the device type
func (h handler) Device() string {
	return Device
}
