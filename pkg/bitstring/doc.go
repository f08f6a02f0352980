// Package bitstring provides the canonical bit-sequence representation for
// SRAM PUF measurements.
//
// A measurement arrives as a fixed-width hexadecimal string and is decoded
// into a Bits value of exactly 4 bits per hex character. Leading zero bits
// are physically meaningful measurement bits, never insignificant digits,
// so decoding preserves them and encoding restores the full width.
//
// Bit index 0 is the most significant bit of the first hex character. All
// downstream components (stability analysis, extraction, challenge output)
// address bits in this order; the device firmware scans its SRAM buffer the
// same way.
package bitstring
