package semantic

import (
	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/types"
)

// ArgumentKind is the (by-val/by-ref, input/output/...) classification of a
// VariableEntry, derived from its declaring block per spec §4.3's
// block-to-argument-kind table.
type ArgumentKind int

const (
	ArgByValInput ArgumentKind = iota
	ArgByRefInput
	ArgByValOutput
	ArgByRefOutput
	ArgByRefInOut
	ArgByValLocal
	ArgByValTemp
	ArgByValGlobal
	ArgReturn
)

func (k ArgumentKind) String() string {
	switch k {
	case ArgByValInput:
		return "VAR_INPUT"
	case ArgByRefInput:
		return "VAR_INPUT {ref}"
	case ArgByValOutput, ArgByRefOutput:
		return "VAR_OUTPUT"
	case ArgByRefInOut:
		return "VAR_IN_OUT"
	case ArgByValLocal:
		return "VAR"
	case ArgByValTemp:
		return "VAR_TEMP"
	case ArgByValGlobal:
		return "VAR_GLOBAL"
	default:
		return "RETURN"
	}
}

// VariableEntry describes one declared variable: parameter, local, global,
// member, or synthetic Return slot (spec §3.3).
type VariableEntry struct {
	QualifiedName  string
	TypeName       string
	Argument       ArgumentKind
	Constant       bool
	Address        *ast.HardwareAddress
	InitialValue   types.ConstHandle // types.NoHandle if none
	Range          ast.SourceRange
	PositionInPou  int
}

// PouEntry describes one Program/Function/FunctionBlock/Class/Method/Action.
type PouEntry struct {
	QualifiedName string
	Kind          ast.PouKind
	ReturnType    string // "" (void) unless Kind == PouFunction/PouMethod with a result
	Generics      []ast.GenericParam
	Linkage       string
	Range         ast.SourceRange
	ParentPou     string // for Method/Action
}

// ConstState is the monotonic lifecycle state of a ConstEntry (spec §3.3,
// §5 "entries transition monotonically").
type ConstState int

const (
	ConstUnresolved ConstState = iota
	ConstResolved
	ConstUnresolvable
)

// ConstEntry is one entry in the const-expression arena.
type ConstEntry struct {
	State  ConstState
	Stmt   ast.Expression // the deferred-evaluation expression
	Scope  string         // the POU name this expression is evaluated against, "" for global scope
	Result ast.Expression // set when State == ConstResolved: the folded literal node
	Reason string         // set when State == ConstUnresolvable
	// DeferredMetadata is set for entries marked Unresolvable with reason
	// "resolve during codegen" (spec §4.4 "Deferred addresses").
	DeferredMetadata *DeferredAddress
}

// DeferredAddress carries the structured metadata spec §4.4 requires for
// REF(x)/ADR(x)/REFERENCE TO pointer initializers so a downstream code
// generator can produce the pointer value later.
type DeferredAddress struct {
	Scope          string
	LHS            string
	TargetTypeName string
}

// Index owns every DataType, VariableEntry, PouEntry, and ConstEntry value
// for a compilation session (spec §3.3 "Ownership"). Its four primary maps
// are case-insensitive and insertion-order-preserving.
type Index struct {
	types   *orderedMap[*types.DataType]
	pous    *orderedMap[*PouEntry]
	globals *orderedMap[*VariableEntry]
	members *orderedMap[*orderedMap[*VariableEntry]]

	constExprs     []*ConstEntry // indexed by ConstHandle-1; handle 0 is NoHandle
	syntheticTypes *orderedMap[*types.DataType]
}

// NewIndex creates an empty Index pre-populated with the mandatory built-in
// types (spec §4.2).
func NewIndex() *Index {
	idx := &Index{
		types:          newOrderedMap[*types.DataType](),
		pous:           newOrderedMap[*PouEntry](),
		globals:        newOrderedMap[*VariableEntry](),
		members:        newOrderedMap[*orderedMap[*VariableEntry]](),
		syntheticTypes: newOrderedMap[*types.DataType](),
	}
	for _, t := range types.Builtins() {
		idx.types.Set(t.Name, t)
	}
	return idx
}

// RegisterType registers a named DataType, overwriting any existing entry
// of the same name.
func (idx *Index) RegisterType(t *types.DataType) { idx.types.Set(t.Name, t) }

// LookupType resolves a type by name, falling back to the synthesized-types
// sub-index (spec §3.3 "Auxiliary").
func (idx *Index) LookupType(name string) (*types.DataType, bool) {
	if t, ok := idx.types.Get(name); ok {
		return t, true
	}
	return idx.syntheticTypes.Get(name)
}

// RegisterSyntheticType adds a type to the auxiliary sub-index produced
// during annotation (spec §3.3 "Auxiliary", §4.5).
func (idx *Index) RegisterSyntheticType(t *types.DataType) {
	if idx.types.Has(t.Name) || idx.syntheticTypes.Has(t.Name) {
		return
	}
	idx.syntheticTypes.Set(t.Name, t)
}

// EffectiveInformation walks an Alias chain to the underlying
// non-alias Information, with cycle detection (SPEC_FULL.md §C.3).
func (idx *Index) EffectiveInformation(name string) (types.Information, bool) {
	seen := map[string]bool{}
	cur := name
	for {
		if seen[foldKey(cur)] {
			return nil, false
		}
		seen[foldKey(cur)] = true
		t, ok := idx.LookupType(cur)
		if !ok {
			return nil, false
		}
		alias, isAlias := t.Information.(types.AliasInfo)
		if !isAlias {
			return t.Information, true
		}
		cur = alias.ReferencedTypeName
	}
}

// RegisterPou registers a PouEntry under its qualified name.
func (idx *Index) RegisterPou(p *PouEntry) { idx.pous.Set(p.QualifiedName, p) }

// LookupPou resolves a POU by qualified name.
func (idx *Index) LookupPou(name string) (*PouEntry, bool) { return idx.pous.Get(name) }

// AllPous returns every registered POU in insertion order.
func (idx *Index) AllPous() []*PouEntry { return idx.pous.Values() }

// RegisterGlobal registers a global variable.
func (idx *Index) RegisterGlobal(v *VariableEntry) { idx.globals.Set(v.QualifiedName, v) }

// LookupGlobal resolves a global variable by bare name.
func (idx *Index) LookupGlobal(name string) (*VariableEntry, bool) { return idx.globals.Get(name) }

// AllGlobals returns every registered global variable in insertion order.
func (idx *Index) AllGlobals() []*VariableEntry { return idx.globals.Values() }

// RegisterMember registers a member of the given container (a POU or
// struct type), keyed by the member's bare name.
func (idx *Index) RegisterMember(container, memberName string, v *VariableEntry) {
	m, ok := idx.members.Get(container)
	if !ok {
		m = newOrderedMap[*VariableEntry]()
		idx.members.Set(container, m)
	}
	m.Set(memberName, v)
}

// LookupMember resolves a member of container by bare name.
func (idx *Index) LookupMember(container, memberName string) (*VariableEntry, bool) {
	m, ok := idx.members.Get(container)
	if !ok {
		return nil, false
	}
	return m.Get(memberName)
}

// Members returns every member of container in declaration order.
func (idx *Index) Members(container string) []*VariableEntry {
	m, ok := idx.members.Get(container)
	if !ok {
		return nil
	}
	return m.Values()
}

// NewConstHandle allocates a fresh Unresolved const-expression entry and
// returns its handle.
func (idx *Index) NewConstHandle(stmt ast.Expression, scope string) types.ConstHandle {
	idx.constExprs = append(idx.constExprs, &ConstEntry{State: ConstUnresolved, Stmt: stmt, Scope: scope})
	return types.ConstHandle(len(idx.constExprs))
}

// ConstEntryFor returns the entry for a handle. Panics on NoHandle or an
// out-of-range handle — both are internal invariant violations (spec §7).
func (idx *Index) ConstEntryFor(h types.ConstHandle) *ConstEntry {
	if h == types.NoHandle || int(h) > len(idx.constExprs) {
		panic("semantic: invalid const-expression handle")
	}
	return idx.constExprs[h-1]
}

// AllConstHandles returns every allocated handle in allocation order.
func (idx *Index) AllConstHandles() []types.ConstHandle {
	out := make([]types.ConstHandle, len(idx.constExprs))
	for i := range idx.constExprs {
		out[i] = types.ConstHandle(i + 1)
	}
	return out
}

// TypeNames returns every registered (non-synthetic) type name in
// insertion order.
func (idx *Index) TypeNames() []string { return idx.types.Keys() }
