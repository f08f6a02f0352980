// Package measure reads SRAM power-up measurement files.
//
// The format is plain text: one hexadecimal measurement per non-blank line,
// blank lines ignored, no header. All measurements in a file belong to one
// capture session on one device and must decode to the same bit length.
package measure
