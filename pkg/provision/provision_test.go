package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/keyderive"
)

func decodeAll(t *testing.T, hexes ...string) []bitstring.Bits {
	t.Helper()
	out := make([]bitstring.Bits, 0, len(hexes))
	for _, h := range hexes {
		b, err := bitstring.Decode(h)
		require.NoError(t, err, "decoding %s", h)
		out = append(out, b)
	}
	return out
}

// TestRunSpecVector walks the hand-computed F0/F0/D0 scenario end to end.
// Only bit 2 flips (between the second and third reading), the 4-bit
// challenge covers positions 0..3, three of which are stable, and three
// selected bits do not fill a byte, so the secret is derived from empty
// material.
func TestRunSpecVector(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ChallengeSize = 4

	res, err := Run(decodeAll(t, "F0", "F0", "D0"), cfg)
	require.NoError(t, err)

	assert.Equal(t, "11011111", res.Mask.String())
	assert.Equal(t, 7, res.StableBits)
	assert.Equal(t, 8, res.TotalBits)
	assert.Equal(t, "1101", res.Challenge.String())
	assert.Equal(t, "d", res.ChallengeHex())
	assert.Empty(t, res.Material)
	assert.False(t, res.Truncated)
	assert.Equal(t,
		"f8d8b8ae107e9317ce8e6aa25525e0507538616f8832d68e3a84f7be0899f8b7",
		res.SecretHex())
}

func TestRunCleanDevice(t *testing.T) {
	t.Parallel()
	t.Log("Two identical readings: every bit stable, material is the challenge-sized prefix")
	cfg := DefaultConfig()
	cfg.ChallengeSize = 16

	res, err := Run(decodeAll(t, "DEADBEEF", "DEADBEEF"), cfg)
	require.NoError(t, err)

	assert.Equal(t, 32, res.StableBits)
	assert.Equal(t, "ffff", res.ChallengeHex())
	assert.Equal(t, []byte{0xDE, 0xAD}, res.Material)
	assert.False(t, res.Truncated)
	assert.Equal(t,
		"8dd49eadb80ca13e548077ffbbe87364ea2dbd0f5596ef745fce9f965cb90d95",
		res.SecretHex())
}

func TestRunNoisyDevice(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ChallengeSize = 32

	res, err := Run(decodeAll(t,
		"0123456789ABCDEF",
		"0123456789ABCDEF",
		"0123456799ABCDEF",
		"0123456789ABCDEF",
	), cfg)
	require.NoError(t, err)

	assert.Equal(t, 63, res.StableBits)
	assert.Equal(t, 64, res.TotalBits)
	assert.InDelta(t, 98.4, res.StabilityPercent(), 0.1)
	assert.Equal(t, "ffffffff", res.ChallengeHex())
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67}, res.Material)
	assert.False(t, res.Truncated)
	assert.Equal(t,
		"d48d4902e316b8aa7e2b5430e1e19eea86333a2c5e94fadae4fe203a75905128",
		res.SecretHex())
}

func TestRunTruncatedChallenge(t *testing.T) {
	t.Parallel()
	t.Log("Requesting more bits than are stable succeeds with the Truncated flag set")
	cfg := DefaultConfig()
	cfg.ChallengeSize = 128

	res, err := Run(decodeAll(t, "F0", "F0", "D0"), cfg)
	require.NoError(t, err, "insufficient stable bits must not be fatal")

	assert.True(t, res.Truncated)
	assert.Equal(t, 8, res.Challenge.Len(), "challenge capped at the measurement width")
	assert.Equal(t, "df", res.ChallengeHex())
	assert.Len(t, res.Secret, keyderive.SecretLength)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()
	ms := decodeAll(t, "CAFEBABE", "CAFEBABE", "CAFEBEBE")
	cfg := DefaultConfig()
	cfg.ChallengeSize = 16

	first, err := Run(ms, cfg)
	require.NoError(t, err)
	second, err := Run(ms, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.SecretHex(), second.SecretHex())
	assert.Equal(t, first.ChallengeHex(), second.ChallengeHex())
}

func TestRunFatalErrors(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	t.Run("TooFewMeasurements", func(t *testing.T) {
		res, err := Run(decodeAll(t, "F0"), cfg)
		require.Error(t, err)
		assert.Nil(t, res, "no partial result on fatal error")
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		res, err := Run(decodeAll(t, "F0", "F0F0"), cfg)
		require.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.ChallengeSize = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.ChallengeSize = 130
	assert.Error(t, bad.Validate(), "challenge size must stay nibble-aligned for hex output")

	bad = DefaultConfig()
	bad.KDF.Iterations = 0
	assert.Error(t, bad.Validate())
}
