// Package analysis computes PUF quality diagnostics over measurement sets:
// Hamming distances, Hamming weights, and stability percentages.
//
// These reports guide parameter choices — a healthy PUF shows roughly 50%
// inter-device distance, low intra-device distance, and near-50% Hamming
// weight — but they take no part in credential derivation and carry no
// obligation beyond faithful reporting.
package analysis
