package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/roman-kulish/weather-tx/internal/protocol"
)

func TestRenderer_Render(t *testing.T) {
	tx := protocol.Build(protocol.NewSensorFrame(244, 1, 26.3, 20))
	r := NewRenderer(Config{PixelsPerChip: 2})

	img, err := r.Render(tx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	frameLen := protocol.FrameChips(tx.Nibbles)
	wantWidth := defaultLeftBorder + frameLen*2 + defaultRightBorder
	if w := img.Bounds().Dx(); w != wantWidth {
		t.Errorf("Expected width %d, got %d", wantWidth, w)
	}
	wantHeight := defaultTopBorder + defaultWaveHeight + defaultBottomBorder
	if h := img.Bounds().Dy(); h != wantHeight {
		t.Errorf("Expected height %d, got %d", wantHeight, h)
	}

	// First chip is the high pulse of the sync pattern
	if c := img.RGBAAt(defaultLeftBorder, defaultTopBorder); c != waveColor {
		t.Errorf("Expected wave color at the first high chip, got %v", c)
	}

	// Third chip is low, so the high level is not drawn there
	if c := img.RGBAAt(defaultLeftBorder+2*2, defaultTopBorder); c == waveColor {
		t.Error("Expected no wave at the high level of a low chip")
	}

	var buf bytes.Buffer
	if err = Encode(&buf, img, ImagePNG); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestRenderer_EdgeCases(t *testing.T) {
	r := NewRenderer(Config{})

	if _, err := r.Render(nil); err == nil {
		t.Error("Expected error for nil transmission")
	}

	tx := protocol.Build(protocol.NewSensorFrame(1, 2, 0, 0))
	tx.Chips = tx.Chips[:5]
	if _, err := r.Render(tx); err == nil {
		t.Error("Expected error for truncated chip sequence")
	}

	if err := Encode(&bytes.Buffer{}, nil, ImageFormat("gif")); err == nil {
		t.Error("Expected error for unknown format")
	}
}
