// Package source provides typed, path-based read access to parsed H2K
// documents.
//
// H2K files are hierarchical XML with loosely typed leaves: numbers appear
// as text (sometimes empty, sometimes with a comma decimal separator) and
// enumerated values appear as a numeric "code" attribute with a bilingual
// label in the element body. Every access site states its own contract
// through a typed accessor:
//
//	area, err := node.Float("Measurements/Area")          // mandatory
//	ach := node.FloatOr("AirChanges/@value", 4.55)        // optional
//
// Mandatory accessors return a *ParseError naming the full path when the
// value is missing or malformed. Optional accessors return the caller's
// default for a missing path but still reject non-numeric text.
//
// Documents are immutable after Parse and safe for concurrent readers.
package source
