package types

// Information is the tagged variant carried by every DataType (spec §3.2).
// Each concrete Info type is a distinct Go type implementing this marker
// interface, matched exhaustively by callers via a type switch.
type Information interface {
	information()
}

type VoidInfo struct{}

func (VoidInfo) information() {}

// IntegerInfo describes a fixed-width integer. SemanticBitSize is the
// logical width alongside the storage BitSize; every built-in registers the
// same value for both (BOOL is 1 bit in each).
type IntegerInfo struct {
	Signed          bool
	BitSize         uint8
	SemanticBitSize uint8
}

func (IntegerInfo) information() {}

type FloatInfo struct {
	BitSize uint8
}

func (FloatInfo) information() {}

// StringSize is either a literal length or a reference to a const-expr
// handle (spec §3.2: "size (literal or const-handle)").
type StringSize struct {
	Literal uint32
	Handle  ConstHandle // zero value means "use Literal"
}

// Encoding tags a string type's character width.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16
)

type StringInfo struct {
	Size     StringSize
	Encoding Encoding
}

func (StringInfo) information() {}

type PointerInfo struct {
	InnerTypeName string
	AutoDeref     bool
	// IsRef distinguishes a REFERENCE TO declaration from POINTER TO: both
	// lower to the same Information shape, but REFERENCE TO carries its own
	// legality rules (spec §4.7 — no inline initializer, no referencing an
	// array, another pointer/reference, or a bit type).
	IsRef bool
}

func (PointerInfo) information() {}

// ArrayDimension is a single dimension's bound, either literal or deferred
// to a const-expression handle.
type ArrayDimension struct {
	Start, End ConstBound
}

// ConstBound is either a resolved literal bound or an unresolved
// const-expression handle.
type ConstBound struct {
	Literal int64
	Handle  ConstHandle // zero value means "use Literal"
}

type ArrayInfo struct {
	InnerTypeName string
	Dimensions    []ArrayDimension
	// VLA marks a variable-length array declaration ("ARRAY[*] OF t"),
	// whose dimensions are supplied by the caller rather than fixed at
	// declaration (spec §4.7's VLA legality matrix).
	VLA bool
}

func (ArrayInfo) information() {}

// StructSource tags where a struct's member layout originated, per spec
// §3.2's Struct variant.
type StructSource int

const (
	StructSourceOriginalDeclaration StructSource = iota
	StructSourcePouBody
	StructSourceInternalVLA
)

type StructInfo struct {
	MemberNames []string
	Source      StructSource
	PouKind     string // meaningful only when Source == StructSourcePouBody
}

func (StructInfo) information() {}

type EnumInfo struct {
	Elements         []string
	ReferencedTypeName string
}

func (EnumInfo) information() {}

type SubRangeInfo struct {
	ReferencedTypeName string
	Start, End          ConstBound
}

func (SubRangeInfo) information() {}

type AliasInfo struct {
	ReferencedTypeName string
}

func (AliasInfo) information() {}

type GenericInfo struct {
	SymbolicName     string
	NatureConstraint Nature
}

func (GenericInfo) information() {}

type VarArgsInfo struct {
	ReferencedTypeName string // "" means untyped varargs
	Sized               bool
}

func (VarArgsInfo) information() {}

// ConstHandle is an opaque key into the Index's const-expression arena
// (internal/semantic). Defined here, not there, so DataType/Information can
// reference it without an import cycle; semantic.Index is the sole owner of
// what a handle resolves to.
type ConstHandle uint64

// NoHandle is the zero value meaning "no const-expression handle".
const NoHandle ConstHandle = 0

// DataType is `{ name, nature, optional_initial_value_handle, information }`
// (spec §3.2). The Index is the exclusive owner of all DataType values for a
// compilation session (spec §3.3 "Ownership").
type DataType struct {
	Name               string
	Nature             Nature
	InitialValueHandle ConstHandle // NoHandle if none
	Information        Information
}

func (d *DataType) String() string { return d.Name }

// IsNumerical, IsReal, IsBit delegate to the Nature lattice.
func (d *DataType) IsNumerical() bool { return IsNumerical(d.Nature) }
func (d *DataType) IsReal() bool      { return IsReal(d.Nature) }
func (d *DataType) IsBit() bool       { return IsBit(d.Nature) }

// DirectAccessWidth is a fixed width (in bits) usable for bit/byte/word/
// dword/lword direct-memory access expressions. Only the five widths below
// are defined; there is no value for a "Template" (symbolic / unspecified)
// width.
type DirectAccessWidth uint8

const (
	WidthBit   DirectAccessWidth = 1
	WidthByte  DirectAccessWidth = 8
	WidthWord  DirectAccessWidth = 16
	WidthDWord DirectAccessWidth = 32
	WidthLWord DirectAccessWidth = 64
)
