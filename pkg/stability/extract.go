package stability

import (
	"fmt"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
)

// Extract selects from the reference measurement the bit positions set in
// the challenge mask, in index order, and packs them MSB-first into bytes.
//
// The selected bit count is rarely a multiple of 8; the trailing incomplete
// group is discarded, never padded, so the output is always exactly
// floor(popcount(challenge)/8) bytes. Provisioned devices pack the same way,
// and padding here would silently derive a different secret.
func Extract(challenge, reference bitstring.Bits) ([]byte, error) {
	if challenge.Len() != reference.Len() {
		return nil, fmt.Errorf("%w: challenge has %d bits, reference %d", ErrLengthMismatch, challenge.Len(), reference.Len())
	}

	out := make([]byte, 0, challenge.OnesCount()/8)
	var acc byte
	var nacc int
	for i := 0; i < challenge.Len(); i++ {
		if !challenge.Get(i) {
			continue
		}
		acc <<= 1
		if reference.Get(i) {
			acc |= 1
		}
		if nacc++; nacc == 8 {
			out = append(out, acc)
			acc, nacc = 0, 0
		}
	}
	return out, nil
}
