// Package stability identifies the reproducible bit positions of a noisy
// SRAM PUF and selects them from a reference measurement.
//
// A bit position counts as stable when its value never changed between any
// pair of consecutive measurements in the order given. Only adjacent pairs
// are inspected: a bit that differs solely between non-adjacent measurements
// is still classified stable. The device firmware computes its mask the same
// way, and both sides must produce byte-identical masks, so this semantic is
// load-bearing and must not be "improved" into an all-pairs or majority
// comparison.
package stability
