// Package provision runs the full challenge-generation pipeline: measurement
// set in, challenge mask and derived secret out.
//
// The pipeline is a single synchronous pass with no retries and no partial
// output: ReadInputs, AnalyzeStability, SelectChallenge, ExtractMaterial,
// DeriveSecret, Emit. Any fatal input error aborts the run before anything
// downstream executes. Finding fewer stable bits than the requested
// challenge size is not fatal; the run completes with a truncated challenge
// and the result says so, leaving the call on the operator's security
// margin to the caller.
package provision
