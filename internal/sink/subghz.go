package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/roman-kulish/weather-tx/internal/ook"
)

const (
	// SubGhzPreset is the Flipper Zero CC1101 preset for 650 kHz OOK
	SubGhzPreset = "FuriHalSubGhzPresetOok650Async"

	// RawDataPerLine is the maximum number of durations on a RAW_Data line
	RawDataPerLine = 512

	subGhzHeader = "Filetype: Flipper SubGhz RAW File\n" +
		"Version: 1\n" +
		"Frequency: %d\n" +
		"Preset: %s\n" +
		"Protocol: RAW"
)

// WriteSubGhz writes pulses as a Flipper Zero SubGhz RAW file. A new
// RAW_Data line is started every RawDataPerLine entries and every entry is
// followed by a single space.
func WriteSubGhz(w io.Writer, frequency int, pulses ook.PulseList) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, subGhzHeader, frequency, SubGhzPreset); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var num []byte
	for i, p := range pulses {
		if i%RawDataPerLine == 0 {
			if _, err := bw.WriteString("\nRAW_Data: "); err != nil {
				return fmt.Errorf("writing raw data: %w", err)
			}
		}

		num = strconv.AppendInt(num[:0], int64(p), 10)
		num = append(num, ' ')
		if _, err := bw.Write(num); err != nil {
			return fmt.Errorf("writing raw data: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing raw data: %w", err)
	}
	return nil
}
