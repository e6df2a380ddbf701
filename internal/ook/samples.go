package ook

const (
	// Unsigned-offset (cu8) levels
	cu8On  byte = 255 // Carrier on
	cu8Off byte = 127 // Mid-scale, carrier off
	cu8Q   byte = 127 // Q is held constant

	// Signed (cs8) levels
	cs8On  int8 = 127 // Carrier on
	cs8Off int8 = 0   // Carrier off
	cs8Q   int8 = 0   // Q is held constant
)

// SampleBuffer holds two independent renderings of the same OOK waveform as
// interleaved I/Q pairs: unsigned-offset 8-bit (rtl_sdr style) and signed
// 8-bit (hackrf_transfer style).
type SampleBuffer struct {
	CU8 []byte
	CS8 []int8
}

// Len returns the number of bytes in each of the two renderings
func (b SampleBuffer) Len() int {
	return len(b.CU8)
}

// Pairs returns the number of I/Q sample pairs
func (b SampleBuffer) Pairs() int {
	return len(b.CU8) / 2
}

// Render expands every chip into samplesPerChip I/Q pairs. The waveform is a
// hard on/off square wave: no filtering or pulse shaping is applied and Q is
// held constant.
func Render(chips ChipSequence, samplesPerChip int) SampleBuffer {
	if samplesPerChip < 0 {
		samplesPerChip = 0
	}

	size := 2 * len(chips) * samplesPerChip
	buf := SampleBuffer{
		CU8: make([]byte, 0, size),
		CS8: make([]int8, 0, size),
	}

	for _, chip := range chips {
		u, s := cu8Off, cs8Off
		if chip == High {
			u, s = cu8On, cs8On
		}

		for j := 0; j < samplesPerChip; j++ {
			buf.CU8 = append(buf.CU8, u, cu8Q)
			buf.CS8 = append(buf.CS8, s, cs8Q)
		}
	}

	return buf
}
