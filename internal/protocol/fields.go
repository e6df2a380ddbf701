package protocol

import "encoding/hex"

// NibbleFrame is the frame payload as nine 4-bit fields:
//
//	0-1  station ID, high nibble first
//	2    7 + channel
//	3-5  temperature in tenths, 12-bit two's complement
//	6    0xF separator
//	7-8  humidity, high nibble first
type NibbleFrame [NibbleCount]uint8

// EncodeFields packs a SensorFrame into a NibbleFrame. Temperatures outside
// the 12-bit range wrap; callers are expected to keep them in range.
func EncodeFields(f SensorFrame) NibbleFrame {
	temp := uint16(f.TemperatureTenths)

	return NibbleFrame{
		(f.StationID >> 4) & 0x0f,
		f.StationID & 0x0f,
		uint8(channelOffset+f.Channel) & 0x0f,
		uint8(temp>>8) & 0x0f,
		uint8(temp>>4) & 0x0f,
		uint8(temp) & 0x0f,
		separator,
		uint8(f.Humidity>>4) & 0x0f,
		uint8(f.Humidity) & 0x0f,
	}
}

// StationID returns the station ID carried in nibbles 0-1
func (n NibbleFrame) StationID() uint8 {
	return n[0]<<4 | n[1]
}

// Channel returns the channel carried in nibble 2
func (n NibbleFrame) Channel() int {
	return int(n[2]) - channelOffset
}

// Temperature sign-extends nibbles 3-5 from 12 bits and returns the
// temperature in tenths of a degree.
func (n NibbleFrame) Temperature() int16 {
	v := int16(n[3])<<8 | int16(n[4])<<4 | int16(n[5])
	if v&0x800 != 0 {
		v -= 0x1000
	}
	return v
}

// Humidity returns the humidity carried in nibbles 7-8
func (n NibbleFrame) Humidity() int {
	return int(n[7])<<4 | int(n[8])
}

// Bits returns the frame bits, most significant bit of each nibble first
func (n NibbleFrame) Bits() []bool {
	bits := make([]bool, 0, BitsPerFrame)
	for _, nibble := range n {
		for mask := uint8(0x08); mask > 0; mask >>= 1 {
			bits = append(bits, nibble&mask != 0)
		}
	}
	return bits
}

// String returns the frame as nine hex digits
func (n NibbleFrame) String() string {
	buf := make([]byte, 0, NibbleCount)
	for _, nibble := range n {
		buf = append(buf, hexDigits[nibble&0x0f])
	}
	return string(buf)
}

// Bytes packs the frame into bytes, two nibbles per byte with the final
// nibble padded with zero.
func (n NibbleFrame) Bytes() []byte {
	out := make([]byte, (NibbleCount+1)/2)
	for i, nibble := range n {
		if i%2 == 0 {
			out[i/2] = nibble << 4
		} else {
			out[i/2] |= nibble & 0x0f
		}
	}
	return out
}

// Hex returns Bytes as a hex string
func (n NibbleFrame) Hex() string {
	return hex.EncodeToString(n.Bytes())
}

const hexDigits = "0123456789abcdef"
