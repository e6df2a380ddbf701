package publish

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/roman-kulish/weather-tx/internal/protocol"
)

func TestFormatTopic(t *testing.T) {
	testCases := []struct {
		name  string
		topic string
		id    uint8
		want  string
	}{
		{"default topic", "", 244, "weather-tx/244"},
		{"station formatter", "sensors/%d/raw", 7, "sensors/7/raw"},
		{"fixed topic", "sensors/all", 7, "sensors/all"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTopic(tc.topic, tc.id); got != tc.want {
				t.Errorf("Expected topic %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewSummary(t *testing.T) {
	tx := protocol.Build(protocol.NewSensorFrame(244, 1, -4.5, 55))
	s := NewSummary(tx, protocol.DefaultFrequency, []string{"out.sub"})

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Failed to marshal summary: %v", err)
	}

	var got map[string]any
	if err = json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Failed to unmarshal summary: %v", err)
	}

	if got["station_id"] != float64(244) {
		t.Errorf("Expected station_id 244, got %v", got["station_id"])
	}
	if got["temperature"] != -4.5 {
		t.Errorf("Expected temperature -4.5, got %v", got["temperature"])
	}
	if got["nibbles"] != tx.Nibbles.String() {
		t.Errorf("Expected nibbles %s, got %v", tx.Nibbles.String(), got["nibbles"])
	}
	if want := float64(len(tx.Chips) * protocol.ChipDuration); got["duration_us"] != want {
		t.Errorf("Expected duration_us %v, got %v", want, got["duration_us"])
	}
	if got["frequency"] != float64(protocol.DefaultFrequency) {
		t.Errorf("Expected frequency %d, got %v", protocol.DefaultFrequency, got["frequency"])
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := withDefaults(Config{})
	if cfg.Server != DefaultServer {
		t.Errorf("Expected server %s, got %s", DefaultServer, cfg.Server)
	}
	if cfg.ClientID != DefaultClientID {
		t.Errorf("Expected client ID %s, got %s", DefaultClientID, cfg.ClientID)
	}
	if cfg.Topic != DefaultTopic {
		t.Errorf("Expected topic %s, got %s", DefaultTopic, cfg.Topic)
	}

	cfg = withDefaults(Config{Server: "tcp://broker:1883"})
	if cfg.Server != "tcp://broker:1883" {
		t.Errorf("Expected server to be kept, got %s", cfg.Server)
	}
}

func TestNewMQTT_Errors(t *testing.T) {
	if _, err := NewMQTT(Config{QoS: 3}); err == nil {
		t.Error("Expected error for invalid QoS")
	}

	start := time.Now()
	m, err := NewMQTT(Config{Server: "tcp://127.0.0.1:1"})
	if err == nil {
		_ = m.Close()
		t.Fatal("Expected error connecting to a closed port")
	}
	if elapsed := time.Since(start); elapsed > connectTimeout+5*time.Second {
		t.Errorf("Expected connect to fail within %s, took %s", connectTimeout, elapsed)
	}
}

func TestAnnounceWithoutClient(t *testing.T) {
	var m MQTTAnnouncer
	if err := m.Announce(Summary{}); err == nil {
		t.Error("Expected error without client")
	}
}
