package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/weather-tx/internal/protocol"
	"github.com/roman-kulish/weather-tx/internal/publish"
	"github.com/roman-kulish/weather-tx/internal/sdr/hackrf"
	"github.com/roman-kulish/weather-tx/internal/sink"
)

const (
	MinTemperature = -204.7
	MaxTemperature = 204.7
	MinChannel     = 1
	MaxChannel     = 3
	MaxHumidity    = 100
	MaxStationID   = 255
)

// Config represents the main application configuration
type Config struct {
	Settings  Settings       `yaml:"settings"`
	Sensor    SensorConfig   `yaml:"sensor"`
	Output    OutputConfig   `yaml:"output"`
	Frequency int64          `yaml:"frequency"`
	Journal   JournalConfig  `yaml:"journal"`
	MQTT      MQTTConfig     `yaml:"mqtt"`
	Transmit  TransmitConfig `yaml:"transmit"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// SensorConfig holds the reading to encode
type SensorConfig struct {
	StationID   int     `yaml:"stationID"`
	Channel     int     `yaml:"channel"`
	Temperature float64 `yaml:"temperature"` // Degrees Celsius
	Humidity    int     `yaml:"humidity"`    // Percent
}

// OutputConfig describes the files written for a transmission
type OutputConfig struct {
	Base    string        `yaml:"base"` // Path without extension
	Formats []sink.Format `yaml:"formats"`
	Preview bool          `yaml:"preview"`
}

// JournalConfig enables the SQLite journal when Path is set
type JournalConfig struct {
	Path string `yaml:"path"`
}

// MQTTConfig wraps the broker settings with an enable switch
type MQTTConfig struct {
	Enabled        bool `yaml:"enabled"`
	publish.Config `yaml:",inline"`
}

// TransmitConfig replays the cs8 file through a HackRF when enabled
type TransmitConfig struct {
	Enabled bool          `yaml:"enabled"`
	HackRF  hackrf.Config `yaml:"hackrf"`
}

func NewConfig() *Config {
	return &Config{
		Settings:  Settings{LogLevel: slog.LevelInfo.String()},
		Sensor:    SensorConfig{Channel: MinChannel},
		Output:    OutputConfig{Formats: []sink.Format{sink.FormatSubGhz, sink.FormatCU8, sink.FormatCS8}},
		Frequency: protocol.DefaultFrequency,
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := NewConfig()
	if err = yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return c, nil
}

// ParseArgs builds the configuration from command line arguments. When
// -config is given the file is loaded first and explicitly set flags
// override its values.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("wxtx", flag.ContinueOnError)

	var (
		configPath string
		formats    string
		sensor     SensorConfig
		base       string
		frequency  int64
		preview    bool
		journal    string
		mqttServer string
		transmit   bool
		logLevel   string
	)
	fs.StringVar(&configPath, "config", "", "Path to the configuration file")
	fs.IntVar(&sensor.StationID, "id", 0, "Station ID (0-255)")
	fs.IntVar(&sensor.Channel, "channel", MinChannel, "Channel (1-3)")
	fs.Float64Var(&sensor.Temperature, "temp", 0, "Temperature in degrees Celsius (format nn.n)")
	fs.IntVar(&sensor.Humidity, "humidity", 0, "Relative humidity in percent (0-100)")
	fs.StringVar(&base, "o", "", "Output path without extension")
	fs.Int64Var(&frequency, "freq", protocol.DefaultFrequency, "Carrier frequency in Hz")
	fs.StringVar(&formats, "formats", "sub,cu8,cs8", "Comma separated output formats. [sub, cu8, cs8]")
	fs.BoolVar(&preview, "preview", false, "Render a PNG preview of one frame")
	fs.StringVar(&journal, "journal", "", "Path to the SQLite journal")
	fs.StringVar(&mqttServer, "mqtt", "", "MQTT broker to announce the transmission to, e.g. tcp://localhost:1883")
	fs.BoolVar(&transmit, "transmit", false, "Transmit the cs8 file with hackrf_transfer")
	fs.StringVar(&logLevel, "log-level", "", "Log level. [debug, info, warn, error]")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := NewConfig()
	if configPath != "" {
		var err error
		if c, err = LoadConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "id":
			c.Sensor.StationID = sensor.StationID
		case "channel":
			c.Sensor.Channel = sensor.Channel
		case "temp":
			c.Sensor.Temperature = sensor.Temperature
		case "humidity":
			c.Sensor.Humidity = sensor.Humidity
		case "o":
			c.Output.Base = base
		case "freq":
			c.Frequency = frequency
		case "formats":
			if c.Output.Formats, err = parseFormats(formats); err != nil {
				err = fmt.Errorf("invalid -formats: %w", err)
			}
		case "preview":
			c.Output.Preview = preview
		case "journal":
			c.Journal.Path = journal
		case "mqtt":
			c.MQTT.Enabled = mqttServer != ""
			c.MQTT.Server = mqttServer
		case "transmit":
			c.Transmit.Enabled = transmit
		case "log-level":
			c.Settings.LogLevel = logLevel
		}
	})
	if err != nil {
		return nil, err
	}

	if err = c.Validate(); err != nil {
		fs.Usage()
		return nil, err
	}

	return c, nil
}

// Validate checks the sensor input contract and the output settings
func (c *Config) Validate() error {
	switch {
	case c.Sensor.StationID < 0 || c.Sensor.StationID > MaxStationID:
		return fmt.Errorf("station id must be between 0 and %d: %d given", MaxStationID, c.Sensor.StationID)
	case c.Sensor.Channel < MinChannel || c.Sensor.Channel > MaxChannel:
		return fmt.Errorf("channel must be between %d and %d: %d given", MinChannel, MaxChannel, c.Sensor.Channel)
	case !(c.Sensor.Temperature >= MinTemperature && c.Sensor.Temperature <= MaxTemperature): // rejects NaN
		return fmt.Errorf("temperature must be between %.1f and %.1f: %g given", MinTemperature, MaxTemperature, c.Sensor.Temperature)
	case c.Sensor.Humidity < 0 || c.Sensor.Humidity > MaxHumidity:
		return fmt.Errorf("humidity must be between 0 and %d: %d given", MaxHumidity, c.Sensor.Humidity)
	case c.Frequency <= 0:
		return fmt.Errorf("frequency must be positive: %d given", c.Frequency)
	case c.Output.Base == "":
		return errors.New("output path is required")
	case len(c.Output.Formats) == 0 && !c.Output.Preview:
		return errors.New("at least one output format is required")
	}

	for _, f := range c.Output.Formats {
		if !f.Valid() {
			return fmt.Errorf("invalid output format: %s", f)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	if c.Transmit.Enabled {
		if !c.hasFormat(sink.FormatCS8) {
			return errors.New("transmit requires the cs8 output format")
		}

		hc := c.HackRFConfig()
		if err := hc.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Level parses the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.Settings.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Settings.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level: %s", c.Settings.LogLevel)
	}
	return level, nil
}

// Frame returns the sensor reading as a protocol frame
func (c *Config) Frame() protocol.SensorFrame {
	return protocol.NewSensorFrame(uint8(c.Sensor.StationID), c.Sensor.Channel, c.Sensor.Temperature, c.Sensor.Humidity)
}

// OutputPath returns the file path for the given extension
func (c *Config) OutputPath(ext string) string {
	return fmt.Sprintf("%s.%s", c.Output.Base, ext)
}

// HackRFConfig returns the transmit settings with the carrier frequency and
// sample rate defaulted from the encoder
func (c *Config) HackRFConfig() hackrf.Config {
	hc := c.Transmit.HackRF
	if hc.Frequency == 0 {
		hc.Frequency = c.Frequency
	}
	if hc.SampleRate == 0 {
		hc.SampleRate = protocol.SampleRate
	}
	return hc
}

func (c *Config) hasFormat(format sink.Format) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func parseFormats(s string) ([]sink.Format, error) {
	var formats []sink.Format
	seen := make(map[sink.Format]struct{})
	for _, part := range strings.Split(s, ",") {
		f := sink.Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if !f.Valid() {
			return nil, fmt.Errorf("unknown format '%s'", f)
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		formats = append(formats, f)
	}
	return formats, nil
}
