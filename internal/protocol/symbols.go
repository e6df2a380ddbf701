package protocol

import "github.com/roman-kulish/weather-tx/internal/ook"

// SyncChips returns the number of chips in the sync pattern
func SyncChips() int {
	return len(syncPattern)
}

// SymbolChips returns the number of chips used to send a single bit
func SymbolChips(bit bool) int {
	if bit {
		return len(onePattern)
	}
	return len(zeroPattern)
}

// FrameChips returns the number of chips in a single sync + payload frame
func FrameChips(n NibbleFrame) int {
	count := SyncChips()
	for _, bit := range n.Bits() {
		count += SymbolChips(bit)
	}
	return count
}

// EncodeSymbols expands the frame into chips: Repeats back-to-back frames,
// each starting with the sync pattern. A zero bit is a short high followed
// by a short low, a one bit a short high followed by a long low.
func EncodeSymbols(n NibbleFrame) ook.ChipSequence {
	bits := n.Bits()
	chips := make(ook.ChipSequence, 0, Repeats*FrameChips(n))

	for range Repeats {
		chips = chips.Append(syncPattern...)
		for _, bit := range bits {
			if bit {
				chips = chips.Append(onePattern...)
			} else {
				chips = chips.Append(zeroPattern...)
			}
		}
	}

	return chips
}
