package sink

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roman-kulish/weather-tx/internal/ook"
)

func TestWriteSubGhz(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubGhz(&buf, 433920000, ook.PulseList{500, -4000, 500, -1000}); err != nil {
		t.Fatalf("WriteSubGhz: %v", err)
	}

	want := "Filetype: Flipper SubGhz RAW File\n" +
		"Version: 1\n" +
		"Frequency: 433920000\n" +
		"Preset: FuriHalSubGhzPresetOok650Async\n" +
		"Protocol: RAW\n" +
		"RAW_Data: 500 -4000 500 -1000 "
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteSubGhz mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSubGhz_LineSplit(t *testing.T) {
	pulses := make(ook.PulseList, RawDataPerLine+1)
	for i := range pulses {
		if i%2 == 0 {
			pulses[i] = 500
		} else {
			pulses[i] = -500
		}
	}

	var buf bytes.Buffer
	if err := WriteSubGhz(&buf, 315000000, pulses); err != nil {
		t.Fatalf("WriteSubGhz: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	var raw []string
	for _, line := range lines {
		if strings.HasPrefix(line, "RAW_Data: ") {
			raw = append(raw, line)
		}
	}

	if len(raw) != 2 {
		t.Fatalf("Expected 2 RAW_Data lines, got %d", len(raw))
	}
	if n := len(strings.Fields(strings.TrimPrefix(raw[0], "RAW_Data: "))); n != RawDataPerLine {
		t.Errorf("Expected %d values on the first line, got %d", RawDataPerLine, n)
	}
	if raw[1] != "RAW_Data: 500 " {
		t.Errorf("Expected single value on the second line, got %q", raw[1])
	}
}

func TestWriteCS8(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCS8(&buf, []int8{127, 0, 0, 0, -1, 0}); err != nil {
		t.Fatalf("WriteCS8: %v", err)
	}

	want := []byte{0x7f, 0x00, 0x00, 0x00, 0xff, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Expected % x, got % x", want, buf.Bytes())
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.cu8")

	samples := []byte{255, 127, 127, 127}
	n, err := SaveFile(path, func(w io.Writer) error {
		return WriteCU8(w, samples)
	})
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if n != int64(len(samples)) {
		t.Errorf("Expected %d bytes written, got %d", len(samples), n)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !bytes.Equal(got, samples) {
		t.Errorf("Expected % x, got % x", samples, got)
	}
}

func TestSaveFile_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.sub")
		_, err := SaveFile(path, func(w io.Writer) error { return nil })

		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("Expected *IOError, got %v", err)
		}
		if ioErr.Op != "create" || ioErr.Path != path {
			t.Errorf("Expected create error for %s, got %s %s", path, ioErr.Op, ioErr.Path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected error to wrap os.ErrNotExist, got %v", err)
		}
	})

	t.Run("callback error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.sub")
		cause := errors.New("boom")
		_, err := SaveFile(path, func(w io.Writer) error { return cause })

		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("Expected *IOError, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("Expected error to wrap cause, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Errorf("Expected partial file to be removed, got %v", statErr)
		}
	})

	t.Run("partial write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.cs8")
		cause := errors.New("encoder failed")
		_, err := SaveFile(path, func(w io.Writer) error {
			if err := WriteCU8(w, make([]byte, 2*bufferSize)); err != nil {
				return err
			}
			return cause
		})

		if !errors.Is(err, cause) {
			t.Errorf("Expected error to wrap cause, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Errorf("Expected partial file to be removed, got %v", statErr)
		}
	})
}

func TestFormat_Valid(t *testing.T) {
	for _, f := range []Format{FormatSubGhz, FormatCU8, FormatCS8} {
		if !f.Valid() {
			t.Errorf("Expected %s to be valid", f)
		}
	}
	if Format("wav").Valid() {
		t.Error("Expected wav to be invalid")
	}
}
