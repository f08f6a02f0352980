package bitstring

import (
	"errors"
	"testing"
)

func TestDecodePreservesLeadingZeros(t *testing.T) {
	t.Parallel()
	t.Log("Decoding '0F' must yield 8 bits, not 4")
	b, err := Decode("0F")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b.Len() != 8 {
		t.Errorf("Len() = %d, want 8", b.Len())
	}
	if got := b.String(); got != "00001111" {
		t.Errorf("String() = %s, want 00001111", got)
	}
}

func TestDecodeCaseInsensitive(t *testing.T) {
	t.Parallel()
	lower, err := Decode("deadbeef")
	if err != nil {
		t.Fatalf("Decode lowercase failed: %v", err)
	}
	upper, err := Decode("DEADBEEF")
	if err != nil {
		t.Fatalf("Decode uppercase failed: %v", err)
	}
	if !lower.Equal(upper) {
		t.Error("lowercase and uppercase decodings differ")
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "xyz", "F0G0", "12 34"} {
		t.Run(in, func(t *testing.T) {
			if _, err := Decode(in); !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidEncoding", in, err)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()
	t.Log("encode(decode(s)) must reproduce s exactly, leading zeros included")
	for _, in := range []string{"0", "f", "00", "f0", "0123456789abcdef", "000a", "ffffffff"} {
		t.Run(in, func(t *testing.T) {
			b, err := Decode(in)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			out, err := b.Hex()
			if err != nil {
				t.Fatalf("Hex failed: %v", err)
			}
			if out != in {
				t.Errorf("round trip = %s, want %s", out, in)
			}
		})
	}
}

func TestHexRejectsUnalignedLength(t *testing.T) {
	t.Parallel()
	b := MustParseBinary("110")
	if _, err := b.Hex(); err == nil {
		t.Error("Hex() on 3 bits should fail")
	}
}

func TestGetOrdering(t *testing.T) {
	t.Parallel()
	t.Log("Bit 0 is the MSB of the first hex character")
	b, err := Decode("80")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !b.Get(0) {
		t.Error("bit 0 of 0x80 should be set")
	}
	for i := 1; i < 8; i++ {
		if b.Get(i) {
			t.Errorf("bit %d of 0x80 should be clear", i)
		}
	}
}

func TestOnesCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hex  string
		want int
	}{
		{"00", 0},
		{"ff", 8},
		{"f0", 4},
		{"deadbeef", 24},
	}
	for _, tt := range tests {
		b, err := Decode(tt.hex)
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", tt.hex, err)
		}
		if got := b.OnesCount(); got != tt.want {
			t.Errorf("OnesCount(%s) = %d, want %d", tt.hex, got, tt.want)
		}
	}
}

func TestPrefixClearsTail(t *testing.T) {
	t.Parallel()
	b, err := Decode("ff")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	p := b.Prefix(4)
	if p.Len() != 4 {
		t.Fatalf("Prefix len = %d, want 4", p.Len())
	}
	if got := p.OnesCount(); got != 4 {
		t.Errorf("Prefix OnesCount = %d, want 4", got)
	}
	// Packed form must not leak the truncated bits.
	if raw := p.Bytes(); raw[0] != 0xF0 {
		t.Errorf("Prefix packed byte = %02x, want f0", raw[0])
	}
}

func TestPrefixBeyondLength(t *testing.T) {
	t.Parallel()
	b, _ := Decode("f0")
	p := b.Prefix(100)
	if !p.Equal(b) {
		t.Error("Prefix beyond length should return the full sequence")
	}
}

func TestExtend(t *testing.T) {
	t.Parallel()
	b := MustParseBinary("1101")
	e := b.Extend(8)
	if e.Len() != 8 {
		t.Fatalf("Extend len = %d, want 8", e.Len())
	}
	if got := e.String(); got != "11010000" {
		t.Errorf("Extend = %s, want 11010000", got)
	}
	if got := e.OnesCount(); got != b.OnesCount() {
		t.Errorf("Extend changed popcount: %d vs %d", got, b.OnesCount())
	}
}

func TestDistance(t *testing.T) {
	t.Parallel()
	a, _ := Decode("f0")
	b, _ := Decode("0f")
	d, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 8 {
		t.Errorf("Distance(f0, 0f) = %d, want 8", d)
	}

	same, _ := Decode("f0")
	d, _ = Distance(a, same)
	if d != 0 {
		t.Errorf("Distance(f0, f0) = %d, want 0", d)
	}
}

func TestDistanceLengthMismatch(t *testing.T) {
	t.Parallel()
	a, _ := Decode("f0")
	b, _ := Decode("f000")
	if _, err := Distance(a, b); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Distance error = %v, want ErrLengthMismatch", err)
	}
}

func TestFromBytesClearsTail(t *testing.T) {
	t.Parallel()
	b, err := FromBytes([]byte{0xFF}, 5)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if got := b.OnesCount(); got != 5 {
		t.Errorf("OnesCount = %d, want 5", got)
	}
}

func TestMustParseBinary(t *testing.T) {
	t.Parallel()
	b := MustParseBinary("11110000")
	h, err := b.Hex()
	if err != nil {
		t.Fatalf("Hex failed: %v", err)
	}
	if h != "f0" {
		t.Errorf("Hex = %s, want f0", h)
	}
}
