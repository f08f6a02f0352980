package stability

import (
	"errors"
	"fmt"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
)

// ErrInsufficientMeasurements indicates fewer than two measurements were
// supplied; stability cannot be assessed from a single reading.
var ErrInsufficientMeasurements = errors.New("need at least 2 measurements to assess stability")

// ErrLengthMismatch indicates the measurements in a session do not all have
// the same bit length.
var ErrLengthMismatch = errors.New("measurement length mismatch")

// ComputeMask scans each pair of consecutive measurements and returns a mask
// of the same bit length where a set bit marks a position that never flipped
// between any adjacent pair. The mask is a pure function of the ordered
// input: identical measurements in identical order always yield an identical
// mask.
func ComputeMask(measurements []bitstring.Bits) (bitstring.Bits, error) {
	if len(measurements) < 2 {
		return bitstring.Bits{}, fmt.Errorf("%w: got %d", ErrInsufficientMeasurements, len(measurements))
	}
	n := measurements[0].Len()
	for i, m := range measurements[1:] {
		if m.Len() != n {
			return bitstring.Bits{}, fmt.Errorf("%w: measurement %d has %d bits, expected %d", ErrLengthMismatch, i+1, m.Len(), n)
		}
	}

	// A flipped position is one where any consecutive pair XORs to 1.
	flipped := make([]byte, (n+7)/8)
	prev := measurements[0].Bytes()
	for _, m := range measurements[1:] {
		cur := m.Bytes()
		for i := range flipped {
			flipped[i] |= prev[i] ^ cur[i]
		}
		prev = cur
	}

	stable := make([]byte, len(flipped))
	for i, v := range flipped {
		stable[i] = ^v
	}
	return bitstring.FromBytes(stable, n)
}
