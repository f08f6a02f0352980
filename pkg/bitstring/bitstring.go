package bitstring

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrInvalidEncoding indicates a malformed hexadecimal measurement encoding.
var ErrInvalidEncoding = errors.New("invalid hex encoding")

// ErrLengthMismatch indicates two bit-sequences that were required to have
// equal length do not.
var ErrLengthMismatch = errors.New("bit-sequence length mismatch")

// Bits is an immutable sequence of bits packed MSB-first into bytes.
// Bit 0 is the most significant bit of the first byte. Unused low-order
// bits of the final byte are always zero.
type Bits struct {
	data []byte
	n    int
}

// FromBytes builds a Bits of length n over a copy of the packed data.
// The caller supplies ceil(n/8) bytes; trailing bits beyond n are cleared.
func FromBytes(data []byte, n int) (Bits, error) {
	need := (n + 7) / 8
	if n < 0 || len(data) < need {
		return Bits{}, fmt.Errorf("need %d bytes for %d bits, got %d", need, n, len(data))
	}
	b := Bits{data: make([]byte, need), n: n}
	copy(b.data, data[:need])
	b.clearTail()
	return b, nil
}

func (b *Bits) clearTail() {
	if rem := b.n % 8; rem != 0 && len(b.data) > 0 {
		b.data[len(b.data)-1] &= byte(0xFF << (8 - rem))
	}
}

// Decode converts a hexadecimal string (case-insensitive) into a Bits of
// exactly 4*len(s) bits. Leading zeros are preserved: "0F" decodes to
// 00001111, not 1111.
func Decode(s string) (Bits, error) {
	if len(s) == 0 {
		return Bits{}, fmt.Errorf("%w: empty input", ErrInvalidEncoding)
	}
	b := Bits{data: make([]byte, (len(s)+1)/2), n: len(s) * 4}
	for i := 0; i < len(s); i++ {
		v, err := nibble(s[i])
		if err != nil {
			return Bits{}, err
		}
		if i%2 == 0 {
			b.data[i/2] |= v << 4
		} else {
			b.data[i/2] |= v
		}
	}
	return b, nil
}

func nibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("%w: %q is not a hex character", ErrInvalidEncoding, c)
}

// Hex encodes the sequence as lowercase hexadecimal, one character per
// 4 bits, zero-padded to the full bit width. The length must be a multiple
// of 4; challenge and mask lengths always are by construction.
func (b Bits) Hex() (string, error) {
	if b.n%4 != 0 {
		return "", fmt.Errorf("%d bits is not a whole number of hex characters", b.n)
	}
	const digits = "0123456789abcdef"
	var sb strings.Builder
	sb.Grow(b.n / 4)
	for i := 0; i < b.n/4; i++ {
		var v byte
		if i%2 == 0 {
			v = b.data[i/2] >> 4
		} else {
			v = b.data[i/2] & 0x0F
		}
		sb.WriteByte(digits[v])
	}
	return sb.String(), nil
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int { return b.n }

// Get reports whether bit i is set. Panics if i is out of range, matching
// slice indexing semantics.
func (b Bits) Get(i int) bool {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("bitstring: index %d out of range [0:%d]", i, b.n))
	}
	return b.data[i/8]&(1<<(7-i%8)) != 0
}

// Bytes returns a copy of the packed representation, ceil(Len()/8) bytes,
// MSB-first. Unused trailing bits are zero.
func (b Bits) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// OnesCount returns the number of set bits (the Hamming weight).
func (b Bits) OnesCount() int {
	var c int
	for _, v := range b.data {
		c += bits.OnesCount8(v)
	}
	return c
}

// Prefix returns the first n bits of the sequence. If n exceeds the length,
// the whole sequence is returned.
func (b Bits) Prefix(n int) Bits {
	if n >= b.n {
		return b
	}
	out, _ := FromBytes(b.data, n)
	return out
}

// Extend zero-pads the sequence to n bits. If n is not larger than the
// current length, the sequence is returned unchanged.
func (b Bits) Extend(n int) Bits {
	if n <= b.n {
		return b
	}
	out := Bits{data: make([]byte, (n+7)/8), n: n}
	copy(out.data, b.data)
	return out
}

// Equal reports whether two sequences have identical length and bits.
func (b Bits) Equal(o Bits) bool {
	if b.n != o.n {
		return false
	}
	for i, v := range b.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// Distance returns the Hamming distance between two equal-length sequences.
func Distance(a, b Bits) (int, error) {
	if a.n != b.n {
		return 0, fmt.Errorf("%w: %d vs %d bits", ErrLengthMismatch, a.n, b.n)
	}
	var d int
	for i, v := range a.data {
		d += bits.OnesCount8(v ^ b.data[i])
	}
	return d, nil
}

// String renders the sequence as a binary string, one character per bit.
// Intended for debug output and tests.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// MustParseBinary builds a Bits from a string of '0' and '1' characters.
// It panics on any other character and exists for tests and fixtures where
// the input is a literal.
func MustParseBinary(s string) Bits {
	b := Bits{data: make([]byte, (len(s)+7)/8), n: len(s)}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			b.data[i/8] |= 1 << (7 - i%8)
		case '0':
		default:
			panic(fmt.Sprintf("bitstring: %q is not a binary digit", s[i]))
		}
	}
	return b
}
