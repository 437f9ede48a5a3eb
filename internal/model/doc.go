// Package model holds the mutable intermediate state of one translation
// run.
//
// A Model is created at run start, mutated by the reader bootstrap and
// the ordered processors, becomes read-only once assembly starts (except
// the warning log), and is discarded at run end. Nothing in this package
// is shared between runs: batch workers each own a Model, so thousands
// of documents can translate in parallel with no locking.
//
// The Model carries four kinds of state:
//   - Counters: one monotone counter per target entity class, backing
//     SystemIdentifier allocation.
//   - System registry: role -> generated identifier, with exclusive
//     roles rejecting a second registration.
//   - Building descriptors: flat, domain-checked facts derived early
//     (conditioned floor area, infiltration) and read by later stages
//     without re-derivation.
//   - Warnings: append-only ordered log. Warnings never substitute for
//     errors and never block a run.
package model
