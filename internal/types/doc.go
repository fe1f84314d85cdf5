// Package types is the catalog of built-in and derived type descriptors
// used by the semantic core: the Nature lattice used for generic-constraint
// matching, the tagged DataType/Information variants, and the
// rank/promotion rules the annotator and constant evaluator share.
//
// A DataType never holds another DataType by value or pointer for its
// "referenced type" fields — those are type *names*, resolved through
// internal/semantic.Index. This keeps the type graph, which can legitimately
// be cyclic (mutually recursive structs, pointer-to-self), representable
// without reference-counted cycles (spec §9 design notes).
package types
