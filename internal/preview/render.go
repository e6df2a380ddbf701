// Package preview draws a single frame of a transmission as a square wave,
// annotated with the decoded nibbles and the sensor values.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/roman-kulish/weather-tx/internal/ook"
	"github.com/roman-kulish/weather-tx/internal/protocol"
)

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"

	defaultPixelsPerChip = 4
	defaultWaveHeight    = 80
	defaultFontSize      = 14.0

	defaultTopBorder    = 40
	defaultLeftBorder   = 20
	defaultBottomBorder = 90
	defaultRightBorder  = 20

	lineWidth = 2
)

type ImageFormat string

var (
	backgroundColor = color.White
	waveColor       = color.RGBA{R: 0x1f, G: 0x4e, B: 0xb4, A: 0xff}
	syncColor       = color.RGBA{R: 0xe8, G: 0xee, B: 0xf8, A: 0xff}
	textColor       = color.Black
)

// BorderConfig defines the sizes of white space around the waveform
type BorderConfig struct {
	Top    int // Space for nibble labels
	Left   int
	Bottom int // Space for information lines
	Right  int
}

// Config holds the preview rendering options. Zero values select defaults.
type Config struct {
	PixelsPerChip int     // Horizontal pixels per chip
	WaveHeight    int     // Pixels between the low and high levels
	FontSize      float64 // Font size in points
	Frequency     int64   // Carrier frequency shown in the legend, in Hz
	BorderConfig  BorderConfig
}

// Renderer draws transmission previews
type Renderer struct {
	config Config
}

// NewRenderer creates a new preview renderer with the given configuration
func NewRenderer(config Config) *Renderer {
	if config.PixelsPerChip <= 0 {
		config.PixelsPerChip = defaultPixelsPerChip
	}
	if config.WaveHeight <= 0 {
		config.WaveHeight = defaultWaveHeight
	}
	if config.FontSize == 0 {
		config.FontSize = defaultFontSize
	}
	if config.Frequency == 0 {
		config.Frequency = protocol.DefaultFrequency
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	return &Renderer{config: config}
}

// Render draws the first frame of the transmission
func (r *Renderer) Render(t *protocol.Transmission) (*image.RGBA, error) {
	if t == nil {
		return nil, errors.New("cannot render nil transmission")
	}

	frameLen := protocol.FrameChips(t.Nibbles)
	if len(t.Chips) < frameLen {
		return nil, fmt.Errorf("chip sequence too short: %d chips, frame needs %d", len(t.Chips), frameLen)
	}
	frame := t.Chips[:frameLen]

	b := r.config.BorderConfig
	waveWidth := frameLen * r.config.PixelsPerChip
	img := image.NewRGBA(image.Rect(0, 0, b.Left+waveWidth+b.Right, b.Top+r.config.WaveHeight+b.Bottom))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	area := image.Rect(b.Left, b.Top, b.Left+waveWidth, b.Top+r.config.WaveHeight)

	// Shade the sync pattern
	syncArea := image.Rect(area.Min.X, area.Min.Y, area.Min.X+protocol.SyncChips()*r.config.PixelsPerChip, area.Max.Y)
	draw.Draw(img, syncArea, image.NewUniform(syncColor), image.Point{}, draw.Src)

	r.drawWave(img, frame, area)

	ann := newAnnotator(r.config.FontSize, textColor)
	if err := ann.annotate(img, t, r.config.Frequency, area, r.config.PixelsPerChip); err != nil {
		return nil, fmt.Errorf("drawing annotations: %w", err)
	}

	return img, nil
}

func (r *Renderer) drawWave(img *image.RGBA, chips ook.ChipSequence, area image.Rectangle) {
	high := area.Min.Y
	low := area.Max.Y - lineWidth

	prev := ook.Low
	for i, chip := range chips {
		x0 := area.Min.X + i*r.config.PixelsPerChip
		x1 := x0 + r.config.PixelsPerChip

		y := low
		if chip == ook.High {
			y = high
		}

		// Level
		draw.Draw(img, image.Rect(x0, y, x1, y+lineWidth), image.NewUniform(waveColor), image.Point{}, draw.Src)

		// Edge
		if i > 0 && chip != prev {
			draw.Draw(img, image.Rect(x0, high, x0+lineWidth, low+lineWidth), image.NewUniform(waveColor), image.Point{}, draw.Src)
		}
		prev = chip
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case ImagePNG, "":
		return png.Encode(w, img)

	case ImageJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{
			Quality: 98,
		})

	default:
		return fmt.Errorf("invalid image format: %s", format)
	}
}
