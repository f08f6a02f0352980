package provision

import (
	"encoding/hex"
	"fmt"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/keyderive"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/stability"
)

// DefaultChallengeSize is the challenge bit count used when the operator
// does not override it.
const DefaultChallengeSize = 128

// Config carries the values that must be identical between the device
// firmware and every verifier instance.
type Config struct {
	// ChallengeSize is the requested challenge length in bits. It must be
	// a positive multiple of 4 so the challenge has an exact hex encoding.
	ChallengeSize int
	// KDF holds the key derivation parameters.
	KDF keyderive.Params
}

// DefaultConfig returns the configuration provisioned devices were built
// with: 128-bit challenge, default KDF parameters.
func DefaultConfig() Config {
	return Config{
		ChallengeSize: DefaultChallengeSize,
		KDF:           keyderive.DefaultParams(),
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.ChallengeSize < 4 || c.ChallengeSize%4 != 0 {
		return fmt.Errorf("provision: challenge size must be a positive multiple of 4, got %d", c.ChallengeSize)
	}
	return c.KDF.Validate()
}

// Result is the complete outcome of one pipeline run.
type Result struct {
	// Mask flags every stable bit position across the full measurement
	// width.
	Mask bitstring.Bits
	// Challenge is the mask truncated to the configured size. It is the
	// constant embedded in device firmware.
	Challenge bitstring.Bits
	// Secret is the 32-byte derived credential for the verifier.
	Secret []byte
	// Material is the byte-packed reference bits selected by the
	// challenge.
	Material []byte
	// StableBits and TotalBits summarize the stability analysis.
	StableBits int
	TotalBits  int
	// Truncated is set when fewer stable bits exist than the requested
	// challenge size. The run still succeeds; the caller decides whether
	// the shorter challenge clears its security margin.
	Truncated bool
}

// ChallengeHex returns the challenge as zero-padded lowercase hex, the form
// embedded in firmware.
func (r *Result) ChallengeHex() string {
	h, err := r.Challenge.Hex()
	if err != nil {
		// Challenge lengths are whole nibbles by construction.
		panic(fmt.Sprintf("provision: challenge not nibble-aligned: %v", err))
	}
	return h
}

// SecretHex returns the derived secret as 64 lowercase hex characters, the
// form stored in the verifier's credential table.
func (r *Result) SecretHex() string {
	return hex.EncodeToString(r.Secret)
}

// StabilityPercent returns the share of stable bits across the measurement
// width.
func (r *Result) StabilityPercent() float64 {
	if r.TotalBits == 0 {
		return 0
	}
	return float64(r.StableBits) / float64(r.TotalBits) * 100
}

// Run executes the pipeline over an ordered measurement set. The first
// measurement is the reference the material is extracted from, matching the
// firmware, which extracts from the live SRAM state its challenge was
// generated against.
//
// Fatal errors (fewer than two measurements, length mismatches) return nil
// and the error; nothing partial is emitted.
func Run(measurements []bitstring.Bits, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mask, err := stability.ComputeMask(measurements)
	if err != nil {
		return nil, err
	}

	challenge := mask.Prefix(cfg.ChallengeSize)
	// The extractor wants equal lengths; positions past the truncation
	// point are simply never selected.
	material, err := stability.Extract(challenge.Extend(mask.Len()), measurements[0])
	if err != nil {
		return nil, err
	}

	return &Result{
		Mask:       mask,
		Challenge:  challenge,
		Secret:     keyderive.Derive(material, cfg.KDF),
		Material:   material,
		StableBits: mask.OnesCount(),
		TotalBits:  mask.Len(),
		Truncated:  mask.OnesCount() < cfg.ChallengeSize,
	}, nil
}
