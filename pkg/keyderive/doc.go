// Package keyderive turns extracted PUF material into the fixed-length
// credential the verifier stores.
//
// The parameters are part of the provisioning protocol, not tuning knobs:
// the ESP32 firmware and every verifier instance must embed byte-identical
// salt, iteration count, and output length, or the two sides derive
// different secrets with no diagnostic. They are threaded explicitly as a
// Params value rather than hidden in package state so callers can inspect
// and test them.
package keyderive
