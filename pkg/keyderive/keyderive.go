package keyderive

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Default protocol parameters. Changing any of these breaks compatibility
// with already-provisioned devices and is a protocol version bump.
const (
	// DefaultIterations is the PBKDF2 iteration count.
	DefaultIterations = 10000
	// DefaultSalt provides domain separation for this application; it is
	// not a secret. It must match the firmware constant exactly.
	DefaultSalt = "ESP32-SRAM-PUF-Auth-v1"
	// SecretLength is the derived secret size in bytes.
	SecretLength = 32
)

// Params holds the key derivation parameters shared between the device and
// the verifier.
type Params struct {
	Salt       []byte
	Iterations int
}

// DefaultParams returns the parameters provisioned devices were built with.
func DefaultParams() Params {
	return Params{
		Salt:       []byte(DefaultSalt),
		Iterations: DefaultIterations,
	}
}

// Validate reports whether the parameters are usable.
func (p Params) Validate() error {
	if len(p.Salt) == 0 {
		return fmt.Errorf("keyderive: salt must not be empty")
	}
	if p.Iterations < 1 {
		return fmt.Errorf("keyderive: iteration count must be positive, got %d", p.Iterations)
	}
	return nil
}

// Derive computes the 32-byte secret for the given extracted material using
// PBKDF2 with HMAC-SHA256. It is deterministic: identical material and
// parameters always yield the identical secret.
func Derive(material []byte, p Params) []byte {
	return pbkdf2.Key(material, p.Salt, p.Iterations, SecretLength, sha256.New)
}
