// Package conformance validates serialized HPXML against the schema
// subset the translator targets.
//
// Validation is a pure function over document text: required structure,
// enumerated-value membership, numeric ranges, SystemIdentifier pattern
// and uniqueness, and closure of every idref. The rule tables live in an
// embedded CUE file compiled once at first use, so the Go code stays a
// generic rule engine and the schema knowledge stays declarative.
//
// The validator holds no state between calls and never mutates its
// input, so it serves both as the post-assembly gate and as a standalone
// check on externally produced documents.
package conformance
