package protocol

import (
	"sync"

	"github.com/roman-kulish/weather-tx/internal/ook"
)

// Transmission holds every artifact derived from a single SensorFrame. It is
// built once and is read-only afterward.
type Transmission struct {
	Frame   SensorFrame
	Nibbles NibbleFrame
	Chips   ook.ChipSequence
	Samples ook.SampleBuffer
	Pulses  ook.PulseList
}

// Build runs the encode pipeline: fields, symbols, then the sample and pulse
// renderings. The two renderings only read the chip sequence, so they are
// produced concurrently.
func Build(f SensorFrame) *Transmission {
	t := Transmission{
		Frame:   f,
		Nibbles: EncodeFields(f),
	}
	t.Chips = EncodeSymbols(t.Nibbles)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		t.Samples = ook.Render(t.Chips, SamplesPerChip)
	}()
	go func() {
		defer wg.Done()
		t.Pulses = ook.EncodePulses(t.Chips, PulseTiming)
	}()
	wg.Wait()

	return &t
}

// Duration returns the air time of the transmission in microseconds
func (t *Transmission) Duration() int {
	return len(t.Chips) * ChipDuration
}
