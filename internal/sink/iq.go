package sink

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	FormatSubGhz Format = "sub"
	FormatCU8    Format = "cu8"
	FormatCS8    Format = "cs8"
)

// Format is an output file format, also used as the file extension
type Format string

func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is a known format
func (f Format) Valid() bool {
	switch f {
	case FormatSubGhz, FormatCU8, FormatCS8:
		return true
	}
	return false
}

// WriteCU8 writes interleaved unsigned 8-bit I/Q samples verbatim
func WriteCU8(w io.Writer, samples []byte) error {
	if _, err := w.Write(samples); err != nil {
		return fmt.Errorf("writing cu8 samples: %w", err)
	}
	return nil
}

// WriteCS8 writes interleaved signed 8-bit I/Q samples verbatim
func WriteCS8(w io.Writer, samples []int8) error {
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("writing cs8 samples: %w", err)
	}
	return nil
}
