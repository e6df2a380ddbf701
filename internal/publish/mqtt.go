package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/roman-kulish/weather-tx/internal/protocol"
)

const (
	DefaultServer   = "tcp://localhost:1883"
	DefaultClientID = "weather-tx"
	DefaultTopic    = "weather-tx/%d"

	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

// Config holds the MQTT connection settings
type Config struct {
	Server   string `yaml:"server"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientID"`
	Topic    string `yaml:"topic"` // May contain a %d formatter for the station ID
	QoS      byte   `yaml:"qos"`
	Retained bool   `yaml:"retained"`
}

// Summary is the JSON payload announced for every generated transmission
type Summary struct {
	Timestamp   time.Time `json:"timestamp"`
	StationID   uint8     `json:"station_id"`
	Channel     int       `json:"channel"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
	Nibbles     string    `json:"nibbles"`
	Chips       int       `json:"chips"`
	Pulses      int       `json:"pulses"`
	DurationUs  int       `json:"duration_us"`
	Frequency   int64     `json:"frequency"`
	Files       []string  `json:"files,omitempty"`
}

// NewSummary builds the announcement payload for a transmission
func NewSummary(t *protocol.Transmission, frequency int64, files []string) Summary {
	return Summary{
		Timestamp:   time.Now().UTC(),
		StationID:   t.Frame.StationID,
		Channel:     t.Frame.Channel,
		Temperature: t.Frame.Temperature(),
		Humidity:    t.Frame.Humidity,
		Nibbles:     t.Nibbles.String(),
		Chips:       len(t.Chips),
		Pulses:      len(t.Pulses),
		DurationUs:  t.Duration(),
		Frequency:   frequency,
		Files:       files,
	}
}

// MQTTAnnouncer publishes transmission summaries to an MQTT broker
type MQTTAnnouncer struct {
	client   mqtt.Client
	topic    string
	qos      byte
	retained bool
}

// NewMQTT connects to the broker described by cfg
func NewMQTT(cfg Config) (*MQTTAnnouncer, error) {
	cfg = withDefaults(cfg)
	if cfg.QoS > 2 {
		return nil, fmt.Errorf("mqtt: invalid QoS %d", cfg.QoS)
	}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Server).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetConnectTimeout(connectTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		client.Disconnect(0)
		return nil, errors.New("mqtt connect: timed out")
	}
	if token.Error() != nil {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTAnnouncer{client: client, topic: cfg.Topic, qos: cfg.QoS, retained: cfg.Retained}, nil
}

// Announce publishes the summary as JSON
func (m *MQTTAnnouncer) Announce(s Summary) error {
	if m.client == nil {
		return errors.New("mqtt client not connected")
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	token := m.client.Publish(FormatTopic(m.topic, s.StationID), m.qos, m.retained, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("mqtt publish: %w", token.Error())
	}
	return nil
}

func (m *MQTTAnnouncer) Close() error {
	if m.client != nil {
		m.client.Disconnect(disconnectQuiesce)
	}
	return nil
}

// FormatTopic expands an optional %d formatter with the station ID
func FormatTopic(topic string, stationID uint8) string {
	if topic == "" {
		topic = DefaultTopic
	}
	if strings.Contains(topic, "%d") {
		return fmt.Sprintf(topic, stationID)
	}
	return topic
}

func withDefaults(cfg Config) Config {
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	return cfg
}
