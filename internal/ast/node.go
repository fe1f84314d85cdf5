package ast

// Kind tags the variant of an AstNode. The core matches on Kind (or on the
// concrete Go type, which is equivalent and exhaustive-checkable by the
// compiler) rather than walking an open class hierarchy.
type Kind int

const (
	KindUnknown Kind = iota

	// Literals
	KindIntegerLiteral
	KindRealLiteral
	KindBoolLiteral
	KindStringLiteral
	KindTimeLiteral
	KindDateLiteral
	KindDateTimeLiteral
	KindTimeOfDayLiteral
	KindArrayLiteral
	KindNullLiteral

	// References
	KindIdentifier
	KindReferenceExpr

	// Expressions
	KindBinaryExpr
	KindUnaryExpr
	KindExpressionList
	KindRangeExpr
	KindVLARangeExpr
	KindParenExpr
	KindMultipliedExpr

	// Control
	KindIfStatement
	KindForStatement
	KindWhileStatement
	KindRepeatStatement
	KindCaseStatement

	// Assignments
	KindAssignStatement
	KindOutputAssignStatement
	KindRefAssignStatement

	// Calls
	KindCallStatement

	// Sentinels
	KindEmptyStatement
	KindDefaultValue
	KindCaseCondition
	KindExitStatement
	KindContinueStatement
	KindReturnStatement
	KindCastExpr
)

// Node is the common interface every AstNode implements: identity, source
// location, and its kind tag.
type Node interface {
	ID() NodeID
	Range() SourceRange
	Kind() Kind
}

// base is embedded by every concrete node to supply ID()/Range().
type base struct {
	id    NodeID
	rng   SourceRange
	kind  Kind
}

func newBase(p *IdProvider, kind Kind, rng SourceRange) base {
	return base{id: p.NextID(), rng: rng, kind: kind}
}

func (b base) ID() NodeID       { return b.id }
func (b base) Range() SourceRange { return b.rng }
func (b base) Kind() Kind       { return b.kind }

// excludedFromTypeMap reports whether a node kind is structurally excluded
// from needing a type_map entry (spec §8 invariant 1): empty statements,
// default-value sentinels, case-condition wrappers, and jump sentinels.
func excludedFromTypeMap(k Kind) bool {
	switch k {
	case KindEmptyStatement, KindDefaultValue, KindCaseCondition,
		KindExitStatement, KindContinueStatement, KindReturnStatement:
		return true
	default:
		return false
	}
}

// ExcludedFromTypeMap is the exported form of excludedFromTypeMap, used by
// validators outside this package.
func ExcludedFromTypeMap(n Node) bool {
	return excludedFromTypeMap(n.Kind())
}
