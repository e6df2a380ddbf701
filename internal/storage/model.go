package storage

import (
	"time"

	"github.com/roman-kulish/weather-tx/internal/protocol"
)

// TransmissionRecord is a journal entry describing one generated transmission
type TransmissionRecord struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"createdAt"`         // When the transmission was generated
	StationID         uint8     `json:"stationID"`         // Sensor station ID
	Channel           int       `json:"channel"`           // Sensor channel, 1 to 3
	TemperatureTenths int16     `json:"temperatureTenths"` // Temperature in tenths of a degree
	Humidity          int       `json:"humidity"`          // Relative humidity in percent
	Nibbles           string    `json:"nibbles"`           // Frame payload as nine hex digits
	Chips             int       `json:"chips"`             // Number of chips in the full sequence
	Pulses            int       `json:"pulses"`            // Number of entries in the pulse list
	Frequency         int64     `json:"frequency"`         // Carrier frequency in Hz
	Files             []string  `json:"files,omitempty"`   // Output files written for this transmission
}

// NewTransmissionRecord builds a record from a transmission and the files it
// was written to
func NewTransmissionRecord(t *protocol.Transmission, frequency int64, files []string) *TransmissionRecord {
	return &TransmissionRecord{
		CreatedAt:         time.Now().UTC(),
		StationID:         t.Frame.StationID,
		Channel:           t.Frame.Channel,
		TemperatureTenths: t.Frame.TemperatureTenths,
		Humidity:          t.Frame.Humidity,
		Nibbles:           t.Nibbles.String(),
		Chips:             len(t.Chips),
		Pulses:            len(t.Pulses),
		Frequency:         frequency,
		Files:             files,
	}
}
