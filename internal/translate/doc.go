// Package translate turns a parsed H2K document into an HPXML document.
//
// Translation runs as a fixed sequence of stages, each a function of
// (source tree, semantic model, config) producing target fragments and
// model mutations:
//
//	building -> weather -> enclosure -> systems -> loads
//
// The order is load-bearing: systems sizing reads the conditioned floor
// area and infiltration facts the building stage derived, and loads
// scales plug loads by the same facts. Each stage declares the model
// facts it reads and writes; the pipeline asserts at startup that no
// stage reads a fact no earlier stage writes.
//
// Error policy, uniform across stages: a missing optional field gets its
// default plus a warning; a missing mandatory field or a code absent
// from a closed mapping table is fatal and carries the source path and
// offending value; an internally inconsistent derived value (negative
// area, zero window height) is fatal and never auto-corrected. Warnings
// never block a run; errors always do, and no partially inconsistent
// model flows into a later stage.
package translate
