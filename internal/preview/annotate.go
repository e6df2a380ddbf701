package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/roman-kulish/weather-tx/internal/protocol"
)

const (
	dpi     float64 = 72
	spacing float64 = 1.3
)

var parsedFont *truetype.Font

func init() {
	var err error
	if parsedFont, err = freetype.ParseFont(gomono.TTF); err != nil {
		panic(fmt.Sprintf("preview: parsing embedded font: %s", err))
	}
}

type annotator struct {
	context  *freetype.Context
	fontSize float64
}

func newAnnotator(fontSize float64, ink color.Color) *annotator {
	context := freetype.NewContext()
	context.SetDPI(dpi)
	context.SetFont(parsedFont)
	context.SetFontSize(fontSize)
	context.SetSrc(image.NewUniform(ink))
	context.SetHinting(font.HintingFull)

	return &annotator{context: context, fontSize: fontSize}
}

func (a *annotator) annotate(img *image.RGBA, t *protocol.Transmission, frequency int64, area image.Rectangle, pxPerChip int) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	ops := []struct {
		msg string
		fn  func() error
	}{
		{"drawing nibble labels", func() error { return a.drawNibbles(t, area, pxPerChip) }},
		{"drawing info", func() error { return a.drawInfo(t, frequency, area) }},
	}
	for _, op := range ops {
		if err := op.fn(); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}

	return nil
}

// drawNibbles labels each nibble of the first frame above the waveform
func (a *annotator) drawNibbles(t *protocol.Transmission, area image.Rectangle, pxPerChip int) error {
	x := area.Min.X + protocol.SyncChips()*pxPerChip
	bits := t.Nibbles.Bits()

	for i, nibble := range t.Nibbles {
		pt := freetype.Pt(x+2, area.Min.Y-6)
		if _, err := a.context.DrawString(fmt.Sprintf("%X", nibble), pt); err != nil {
			return err
		}

		for _, bit := range bits[i*4 : i*4+4] {
			x += protocol.SymbolChips(bit) * pxPerChip
		}
	}

	return nil
}

func (a *annotator) drawInfo(t *protocol.Transmission, frequency int64, area image.Rectangle) error {
	f := t.Frame

	lines := []string{
		fmt.Sprintf("Station: %d  Channel: %d  Temperature: %.1f  Humidity: %d%%", f.StationID, f.Channel, f.Temperature(), f.Humidity),
		fmt.Sprintf("Frame: %s  Carrier: %s  Chip: %d us", t.Nibbles.String(), humanHz(float64(frequency)), protocol.ChipDuration),
		fmt.Sprintf("Chips: %s  Pulses: %s  Samples: %s  Repeats: %d",
			humanize.Comma(int64(len(t.Chips))),
			humanize.Comma(int64(len(t.Pulses))),
			humanize.Bytes(uint64(t.Samples.Len())),
			protocol.Repeats),
	}

	pt := freetype.Pt(area.Min.X, area.Max.Y+int(a.fontSize*2))
	for _, s := range lines {
		if _, err := a.context.DrawString(s, pt); err != nil {
			return err
		}
		pt.Y += a.context.PointToFixed(a.fontSize * spacing)
	}

	return nil
}

func humanHz(hz float64) string {
	v, suffix := humanize.ComputeSI(hz)
	return fmt.Sprintf("%0.2f %sHz", v, suffix)
}
