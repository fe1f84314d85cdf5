package ast

// VariableBlockKind tags which VAR...END_VAR flavor a block was declared
// with (spec §4.3 "Block-to-argument-kind mapping").
type VariableBlockKind int

const (
	BlockInput VariableBlockKind = iota
	BlockInputByRef
	BlockOutput
	BlockInOut
	BlockLocal
	BlockTemp
	BlockGlobal
)

// Dimension is one `start..end` bound of an array type. Start/End are
// expressions so they can be literals or const-expression references;
// either may be nil only transiently during parsing.
type Dimension struct {
	Start, End Expression
}

// EnumElement is one named member of an ENUM type, with its optional
// explicit initializer (defaulting to "previous + 1" when omitted, and to 0
// for the first element; the indexer synthesizes that expression).
type EnumElement struct {
	Name        string
	Initializer Expression // nil if implicit
	Range       SourceRange
}

// TypeExpression is the syntactic form of a type as written at a use site:
// either a bare name, or one of the inline/anonymous forms the index's
// pre-processor lifts into a synthesized named type (SPEC_FULL.md §C.4).
type TypeExpression interface {
	Node
	typeExpressionNode()
}

// NamedTypeExpr references a type by name (built-in or user-declared).
type NamedTypeExpr struct {
	base
	Name string
}

func NewNamedTypeExpr(p *IdProvider, rng SourceRange, name string) *NamedTypeExpr {
	return &NamedTypeExpr{base: newBase(p, KindUnknown, rng), Name: name}
}

func (*NamedTypeExpr) typeExpressionNode() {}

// StructTypeExpr is an inline or top-level STRUCT ... END_STRUCT.
type StructTypeExpr struct {
	base
	Members []VariableDecl
}

func NewStructTypeExpr(p *IdProvider, rng SourceRange, members []VariableDecl) *StructTypeExpr {
	return &StructTypeExpr{base: newBase(p, KindUnknown, rng), Members: members}
}

func (*StructTypeExpr) typeExpressionNode() {}

// ArrayTypeExpr is `ARRAY[dims] OF element`. A VLA dimension is represented
// by a Dimension whose Start/End are both nil and VLA set true.
type ArrayTypeExpr struct {
	base
	Dimensions []Dimension
	VLA        bool
	Element    TypeExpression
}

func NewArrayTypeExpr(p *IdProvider, rng SourceRange, dims []Dimension, vla bool, element TypeExpression) *ArrayTypeExpr {
	return &ArrayTypeExpr{base: newBase(p, KindUnknown, rng), Dimensions: dims, VLA: vla, Element: element}
}

func (*ArrayTypeExpr) typeExpressionNode() {}

// EnumTypeExpr is `(a, b, c)` or `(a, b, c) : BaseType`.
type EnumTypeExpr struct {
	base
	Elements []EnumElement
	BaseType string // numeric type backing the enum; "" means the default INT
}

func NewEnumTypeExpr(p *IdProvider, rng SourceRange, elements []EnumElement, baseType string) *EnumTypeExpr {
	return &EnumTypeExpr{base: newBase(p, KindUnknown, rng), Elements: elements, BaseType: baseType}
}

func (*EnumTypeExpr) typeExpressionNode() {}

// SubRangeTypeExpr is `BaseType (start..end)`.
type SubRangeTypeExpr struct {
	base
	BaseType   string
	Start, End Expression
}

func NewSubRangeTypeExpr(p *IdProvider, rng SourceRange, baseType string, start, end Expression) *SubRangeTypeExpr {
	return &SubRangeTypeExpr{base: newBase(p, KindUnknown, rng), BaseType: baseType, Start: start, End: end}
}

func (*SubRangeTypeExpr) typeExpressionNode() {}

// PointerTypeExpr is `POINTER TO Inner` or a REFERENCE TO.
type PointerTypeExpr struct {
	base
	Inner     TypeExpression
	AutoDeref bool
	IsRef     bool // REFERENCE TO, as opposed to POINTER TO
}

func NewPointerTypeExpr(p *IdProvider, rng SourceRange, inner TypeExpression, autoDeref, isRef bool) *PointerTypeExpr {
	return &PointerTypeExpr{base: newBase(p, KindUnknown, rng), Inner: inner, AutoDeref: autoDeref, IsRef: isRef}
}

func (*PointerTypeExpr) typeExpressionNode() {}

// StringTypeExpr is `STRING[n]` / `WSTRING[n]`.
type StringTypeExpr struct {
	base
	Size Expression // nil means the default length
	Wide bool
}

func NewStringTypeExpr(p *IdProvider, rng SourceRange, size Expression, wide bool) *StringTypeExpr {
	return &StringTypeExpr{base: newBase(p, KindUnknown, rng), Size: size, Wide: wide}
}

func (*StringTypeExpr) typeExpressionNode() {}

// HardwareAddress is a parsed `AT %IX1.0`-style binding.
type HardwareAddress struct {
	AccessType string // e.g. "I", "Q", "M"
	Direction  string // e.g. "X", "B", "W", "D", "L"
	Offsets    []Expression
}

// VariableDecl is one `name : type [:= init]` entry inside a VariableBlock.
type VariableDecl struct {
	Range       SourceRange
	Name        string
	Type        TypeExpression
	Initializer Expression // nil if omitted
	Address     *HardwareAddress
}

// VariableBlock is one VAR.../VAR_INPUT.../... END_VAR group.
type VariableBlock struct {
	Kind      VariableBlockKind
	Constant  bool
	ByVal     bool // meaningful only for BlockInput: VAR_INPUT vs VAR_IN_OUT-like by-ref input
	Variables []VariableDecl
}

// PouKind enumerates the Program Organization Unit kinds (GLOSSARY).
type PouKind int

const (
	PouProgram PouKind = iota
	PouFunction
	PouFunctionBlock
	PouClass
	PouMethod
	PouAction
)

func (k PouKind) String() string {
	switch k {
	case PouProgram:
		return "PROGRAM"
	case PouFunction:
		return "FUNCTION"
	case PouFunctionBlock:
		return "FUNCTION_BLOCK"
	case PouClass:
		return "CLASS"
	case PouMethod:
		return "METHOD"
	case PouAction:
		return "ACTION"
	default:
		return "UNKNOWN"
	}
}

// GenericParam is a generic (ANY_INT, ANY_NUM, ...) signature parameter of
// a generic function/function block.
type GenericParam struct {
	Name             string
	NatureConstraint string
}

// PouDecl is a Program/Function/FunctionBlock/Class/Method/Action header:
// its variable blocks plus signature metadata. The executable body lives
// in a separate Implementation (spec §4.3 step 4), mirroring how the
// parser may see the header and body in different translation units.
type PouDecl struct {
	Range        SourceRange
	Name         string
	Kind         PouKind
	Parent       string // enclosing POU's name, for Method/Action; "" otherwise
	ReturnType   TypeExpression // nil for Program/FunctionBlock/Class/procedure Function
	Blocks       []VariableBlock
	Generics     []GenericParam
	Linkage      string // e.g. "internal", "external" — opaque to the core beyond being recorded
}

// Implementation is the executable body attached to a POU by name.
type Implementation struct {
	Range SourceRange
	Name  string
	Body  []Statement
}

// UserType is a top-level TYPE name : <expr>; END_TYPE declaration.
type UserType struct {
	Range SourceRange
	Name  string
	Expr  TypeExpression
}

// NewLineEntry maps a byte offset to a 1-based (line, column) pair. The
// table is produced by the parser; the core only ever reads it when
// rendering a diagnostic.
type NewLineEntry struct {
	Offset uint32
	Line   int
	Column int
}

// CompilationUnit is exactly the parser->core contract described in spec §6.
type CompilationUnit struct {
	FileName       string
	GlobalVarBlocks []VariableBlock
	UserTypes      []UserType
	Pous           []PouDecl
	Implementations []Implementation
	NewLines       []NewLineEntry
	Ids            *IdProvider
}
