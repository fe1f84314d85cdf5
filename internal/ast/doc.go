// Package ast defines the syntactic data model handed to the semantic core
// by the parser: AstNode kinds, stable node IDs, source ranges, and the
// visitor/mapper protocol used to walk and rewrite the tree.
//
// The AST is a tree by construction: references between declarations are
// by name, never by pointer, so the node graph itself cannot cycle (only
// the type graph built from it can; see internal/types).
package ast
