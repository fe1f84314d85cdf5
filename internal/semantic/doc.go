// Package semantic is the semantic analysis core: it builds the Index
// (symbol table) from a parsed CompilationUnit, folds constant expressions
// to a fix-point, annotates every AST node with resolved types and symbols,
// and runs the structural validators — in that order, as a four-stage Pass
// pipeline (see pipeline.go), matching the teacher compiler's multi-pass
// architecture.
package semantic
