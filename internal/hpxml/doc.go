// Package hpxml builds and serializes the target HPXML document.
//
// The document is a plain ordered tree of Nodes assembled by the
// translation stages. Entity-bearing nodes carry a SystemIdentifier
// child whose id is unique across the document and matches the HPXML
// lexical pattern (letters followed by digits, e.g. "Wall3").
//
// Cross-entity links are never written as guessed identifiers. A stage
// records a Reference against a role and the Registry rewrites every
// pending reference once all stages have run. The document is a tree
// with no reference cycles, so resolution order does not matter.
package hpxml
