package ast

// Test helper constructors that default SourceRange to its zero value, for
// tests that only care about shape, not source location. Mirrors the
// teacher's internal/ast/test_helpers.go convention of trimming
// struct-literal boilerplate to a single call per node.

func NewTestInt(p *IdProvider, text string) *IntegerLiteral {
	return NewIntegerLiteral(p, SourceRange{}, text, "")
}

func NewTestBool(p *IdProvider, v bool) *BoolLiteral {
	return NewBoolLiteral(p, SourceRange{}, v)
}

func NewTestIdent(p *IdProvider, name string) *Identifier {
	return NewIdentifier(p, SourceRange{}, name)
}

func NewTestBinary(p *IdProvider, left Expression, op BinaryOp, right Expression) *BinaryExpr {
	return NewBinaryExpr(p, SourceRange{}, left, op, right)
}

func NewTestNamedType(p *IdProvider, name string) *NamedTypeExpr {
	return NewNamedTypeExpr(p, SourceRange{}, name)
}

func NewTestVar(p *IdProvider, name, typeName string) VariableDecl {
	return VariableDecl{Name: name, Type: NewTestNamedType(p, typeName)}
}

func NewTestVarBlock(kind VariableBlockKind, vars ...VariableDecl) VariableBlock {
	return VariableBlock{Kind: kind, Variables: vars}
}

func NewTestAssign(p *IdProvider, left, right Expression) *AssignStatement {
	return NewAssignStatement(p, SourceRange{}, left, right)
}
