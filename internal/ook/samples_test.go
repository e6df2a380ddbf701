package ook

import "testing"

func TestRender(t *testing.T) {
	chips := ParseChips("1001")
	buf := Render(chips, 3)

	wantLen := 2 * len(chips) * 3
	if len(buf.CU8) != wantLen || len(buf.CS8) != wantLen {
		t.Fatalf("Expected %d bytes in each buffer, got cu8=%d cs8=%d", wantLen, len(buf.CU8), len(buf.CS8))
	}
	if buf.Len() != wantLen {
		t.Errorf("Expected Len() %d, got %d", wantLen, buf.Len())
	}
	if buf.Pairs() != len(chips)*3 {
		t.Errorf("Expected %d pairs, got %d", len(chips)*3, buf.Pairs())
	}

	for i := 0; i < buf.Pairs(); i++ {
		chip := chips[i/3]

		wantU, wantS := byte(127), int8(0)
		if chip == High {
			wantU, wantS = 255, 127
		}

		if buf.CU8[2*i] != wantU || buf.CU8[2*i+1] != 127 {
			t.Errorf("cu8 pair %d: expected (%d,127), got (%d,%d)", i, wantU, buf.CU8[2*i], buf.CU8[2*i+1])
		}
		if buf.CS8[2*i] != wantS || buf.CS8[2*i+1] != 0 {
			t.Errorf("cs8 pair %d: expected (%d,0), got (%d,%d)", i, wantS, buf.CS8[2*i], buf.CS8[2*i+1])
		}
	}
}

func TestRender_EdgeCases(t *testing.T) {
	if buf := Render(nil, 1000); buf.Len() != 0 {
		t.Errorf("Expected empty buffer for empty sequence, got %d bytes", buf.Len())
	}
	if buf := Render(ParseChips("101"), 0); buf.Len() != 0 {
		t.Errorf("Expected empty buffer for zero oversampling, got %d bytes", buf.Len())
	}
}

func TestChipSequence(t *testing.T) {
	chips := ParseChips("1 00 1x0")
	if got := chips.String(); got != "10010" {
		t.Errorf("Expected 10010, got %s", got)
	}
	if n := chips.Count(High); n != 2 {
		t.Errorf("Expected 2 high chips, got %d", n)
	}

	chips = chips.Append(High, Low)
	if len(chips) != 7 {
		t.Errorf("Expected 7 chips after append, got %d", len(chips))
	}
}
