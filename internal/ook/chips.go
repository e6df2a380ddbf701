package ook

import "strings"

const (
	Low  Chip = 0
	High Chip = 1
)

// Chip is a single on/off unit of the physical-layer bitstream
type Chip uint8

// ChipSequence is an ordered run of chips. It is built by appending and
// treated as read-only once handed to a renderer.
type ChipSequence []Chip

// Append appends the given pattern to the sequence and returns the result
func (c ChipSequence) Append(pattern ...Chip) ChipSequence {
	return append(c, pattern...)
}

// Count returns the number of chips equal to level
func (c ChipSequence) Count(level Chip) int {
	var n int
	for _, chip := range c {
		if chip == level {
			n++
		}
	}
	return n
}

func (c ChipSequence) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, chip := range c {
		if chip == High {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseChips converts a string of '0' and '1' characters into a ChipSequence.
// Any other character is skipped, so patterns may be grouped with spaces.
func ParseChips(s string) ChipSequence {
	chips := make(ChipSequence, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			chips = append(chips, Low)
		case '1':
			chips = append(chips, High)
		}
	}
	return chips
}
