// Package protocol implements the frame layout and pulse-position symbol
// code of a fixed-format 433 MHz OOK weather-station sensor.
package protocol

import (
	"math"

	"github.com/roman-kulish/weather-tx/internal/ook"
)

const (
	SampleRate = 2_000_000 // I/Q samples per second
	SymbolRate = 2_000     // Chips per second

	// SamplesPerChip is the oversampling ratio of the rendered I/Q buffers
	SamplesPerChip = SampleRate / SymbolRate

	// Repeats is the number of times a frame is sent, each preceded by a sync
	Repeats = 12

	// ChipDuration is the duration, in microseconds, of a single chip in the
	// pulse list. High and low chips last the same.
	ChipDuration = 500

	// DefaultFrequency is the carrier frequency in Hz (433.92 MHz)
	DefaultFrequency = 433_920_000

	NibbleCount  = 9
	BitsPerFrame = NibbleCount * 4

	channelOffset = 7
	separator     = 0x0f
)

var (
	syncPattern = []ook.Chip{ook.High, ook.Low, ook.Low, ook.Low, ook.Low, ook.Low, ook.Low, ook.Low, ook.Low}
	zeroPattern = []ook.Chip{ook.High, ook.Low, ook.Low}
	onePattern  = []ook.Chip{ook.High, ook.Low, ook.Low, ook.Low, ook.Low}
)

// PulseTiming is the chip timing of the sub-GHz replay file
var PulseTiming = ook.Timing{OneLen: ChipDuration, ZeroLen: ChipDuration}

// SensorFrame is the logical payload of a single transmission. Values are
// expected to be in range; NewSensorFrame does not validate them.
type SensorFrame struct {
	StationID         uint8 // Random ID assigned by the sensor on power up
	Channel           int   // Sensor channel switch, 1 to 3
	TemperatureTenths int16 // Temperature in tenths of a degree, -2047 to 2047
	Humidity          int   // Relative humidity in percent, 0 to 100
}

// NewSensorFrame builds a SensorFrame, scaling the temperature to tenths of
// a degree and truncating toward zero.
func NewSensorFrame(stationID uint8, channel int, temperature float64, humidity int) SensorFrame {
	return SensorFrame{
		StationID:         stationID,
		Channel:           channel,
		TemperatureTenths: TemperatureTenths(temperature),
		Humidity:          humidity,
	}
}

// Temperature returns the temperature in degrees
func (f SensorFrame) Temperature() float64 {
	return float64(f.TemperatureTenths) / 10
}

// TemperatureTenths scales a temperature by ten and truncates toward zero.
// The product is rounded to six decimals first so that values such as 2.3,
// which are not exactly representable, do not truncate to 22.
func TemperatureTenths(temperature float64) int16 {
	scaled := math.Round(temperature*10*1e6) / 1e6
	return int16(math.Trunc(scaled))
}
