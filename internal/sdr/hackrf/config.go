package hackrf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/weather-tx/internal/sdr/driver"
)

const (
	MinFrequency = 1_000_000
	MaxFrequency = 6_000_000_000
	MinRate      = 2_000_000
	MaxRate      = 20_000_000
	MaxTxVGAGain = 47
)

// Usage examples from man page:
// https://manpages.debian.org/bookworm/hackrf/hackrf_transfer.1.en.html

/*
	hackrfConfig := hackrf.Config{
        Frequency:  433_920_000, // 433.92 MHz
        SampleRate: 2_000_000,
        TxVGAGain:  &gain,       // 20
        EnableAmp:  true,
    }
    args, _ := hackrfConfig.Args("weather.cs8")
    // Executes: hackrf_transfer -t weather.cs8 -f 433920000 -s 2000000 -x 20 -a 1
*/

// TimeDuration is a time.Duration that (un)marshals as a Go duration string
type TimeDuration time.Duration

func (d *TimeDuration) UnmarshalYAML(value *yaml.Node) error {
	duration, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("hackrf.TimeDuration: failed to parse: %s", err)
	}

	*d = TimeDuration(duration)
	return nil
}

func (d TimeDuration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d TimeDuration) String() string {
	return time.Duration(d).String()
}

// Config is a struct for configuring the `hackrf_transfer` tool in transmit mode
type Config struct {
	// Required
	Frequency  int64 `yaml:"frequency" json:"frequency"`   // -f freq_hz Carrier frequency in Hz
	SampleRate int64 `yaml:"sampleRate" json:"sampleRate"` // -s sample_rate_hz Sample rate in Hz

	// Optional
	TxVGAGain    *int   `yaml:"txVgaGain" json:"txVgaGain"`       // -x gain_db TX VGA (IF) gain, 0-47dB, 1dB steps
	EnableAmp    bool   `yaml:"enableAmp" json:"enableAmp"`       // -a amp_enable RX/TX RF amplifier 1=Enable, 0=Disable
	AntennaPower bool   `yaml:"antennaPower" json:"antennaPower"` // -p antenna_enable Antenna port power, 1=Enable, 0=Disable
	Repeat       bool   `yaml:"repeat" json:"repeat"`             // -R Repeat TX mode
	SerialNumber string `yaml:"serialNumber" json:"serialNumber"` // -d serial_number Serial number of desired HackRF

	// Stop transmitting after this long; zero runs until the file ends (or forever with Repeat)
	Timeout TimeDuration `yaml:"timeout" json:"timeout"`
}

func (c *Config) Validate() error {
	if c.Frequency < MinFrequency || c.Frequency > MaxFrequency {
		return driver.NewConfigError(fmt.Sprintf("hackrf.Config: frequency must be between %d and %d Hz: %d given", MinFrequency, MaxFrequency, c.Frequency))
	}

	if c.SampleRate < MinRate || c.SampleRate > MaxRate {
		return driver.NewConfigError(fmt.Sprintf("hackrf.Config: sample rate must be between %d and %d Hz: %d given", MinRate, MaxRate, c.SampleRate))
	}

	if c.TxVGAGain != nil && (*c.TxVGAGain < 0 || *c.TxVGAGain > MaxTxVGAGain) {
		return driver.NewConfigError(fmt.Sprintf("hackrf.Config: TX VGA gain must be between 0 and %d dB: %d given", MaxTxVGAGain, *c.TxVGAGain))
	}

	if c.Timeout < 0 {
		return driver.NewConfigError(fmt.Sprintf("hackrf.Config: timeout must not be negative: %s given", c.Timeout))
	}

	return nil
}

// Args builds the command line arguments for `hackrf_transfer` to transmit
// the given cs8 file
func (c *Config) Args(file string) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if file == "" {
		return nil, driver.NewConfigError("hackrf.Config: transmit file is required")
	}

	args := []string{
		"-t", file,
		"-f", strconv.FormatInt(c.Frequency, 10),
		"-s", strconv.FormatInt(c.SampleRate, 10),
	}

	if c.SerialNumber != "" {
		args = append(args, "-d", c.SerialNumber)
	}

	if c.TxVGAGain != nil {
		args = append(args, "-x", strconv.Itoa(*c.TxVGAGain))
	}

	if c.EnableAmp {
		args = append(args, "-a", "1")
	}

	if c.AntennaPower {
		args = append(args, "-p", "1")
	}

	if c.Repeat {
		args = append(args, "-R")
	}

	return args, nil
}

// Command returns the full command line as a string, for display
func (c *Config) Command(file string) (string, error) {
	args, err := c.Args(file)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", Runtime, strings.Join(args, " ")), nil
}
