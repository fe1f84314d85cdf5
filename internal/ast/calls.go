package ast

// CallStatement invokes the operator (a reference to a POU, method, or
// function-valued expression) with an optional parameter node — typically
// an *ExpressionList, but a single bare expression is legal for
// single-argument calls.
type CallStatement struct {
	base
	Operator  Expression
	Parameter Expression // nil for no-argument calls
}

func NewCallStatement(p *IdProvider, rng SourceRange, operator, parameter Expression) *CallStatement {
	return &CallStatement{base: newBase(p, KindCallStatement, rng), Operator: operator, Parameter: parameter}
}

func (*CallStatement) statementNode() {}
func (*CallStatement) expressionNode() {}
