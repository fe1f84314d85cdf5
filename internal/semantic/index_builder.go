package semantic

import (
	"fmt"
	"strings"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
	"github.com/iec61131/stcore/internal/types"
)

// BuildIndex performs the single structural pass described in spec §4.3:
// it registers every POU, type, member variable, global, and
// initializer-expression handle from unit into a fresh Index.
func BuildIndex(unit *ast.CompilationUnit, report *diagnostics.Report) *Index {
	b := &indexBuilder{idx: NewIndex(), provider: unit.Ids, report: report, fileName: unit.FileName}

	for _, ut := range unit.UserTypes {
		b.registerUserType(ut)
	}
	for _, pou := range unit.Pous {
		b.registerPou(pou)
	}
	for _, blk := range unit.GlobalVarBlocks {
		b.registerGlobalBlock(blk)
	}
	for _, impl := range unit.Implementations {
		b.registerImplementation(impl)
	}

	return b.idx
}

type indexBuilder struct {
	idx      *Index
	provider *ast.IdProvider
	report   *diagnostics.Report
	fileName string
}

// --- User types (spec §4.3 step 1) -----------------------------------------

func (b *indexBuilder) registerUserType(ut ast.UserType) {
	b.resolveNamedTypeExpr(ut.Name, ut.Expr, "")
}

// resolveNamedTypeExpr registers expr under exactly the name "name" and
// returns that name, recursing to synthesize names for any inline type
// expressions it contains (SPEC_FULL.md §C.4 pre-processor desugaring).
func (b *indexBuilder) resolveNamedTypeExpr(name string, expr ast.TypeExpression, containerHint string) string {
	switch t := expr.(type) {
	case *ast.NamedTypeExpr:
		b.idx.RegisterType(&types.DataType{Name: name, Nature: types.NatureDerived, Information: types.AliasInfo{ReferencedTypeName: t.Name}})
	case *ast.StructTypeExpr:
		b.registerStruct(name, t, types.StructSourceOriginalDeclaration, "")
	case *ast.ArrayTypeExpr:
		b.registerArray(name, t, containerHint)
	case *ast.EnumTypeExpr:
		b.registerEnum(name, t)
	case *ast.SubRangeTypeExpr:
		b.registerSubRange(name, t)
	case *ast.PointerTypeExpr:
		b.registerPointer(name, t)
	case *ast.StringTypeExpr:
		b.registerString(name, t)
	}
	return name
}

func (b *indexBuilder) registerStruct(name string, t *ast.StructTypeExpr, source types.StructSource, pouKind string) {
	memberNames := make([]string, 0, len(t.Members))
	for i, m := range t.Members {
		memberTypeName := b.inlineTypeName(name, m.Name, m.Type)
		var handle types.ConstHandle
		if m.Initializer != nil {
			handle = b.idx.NewConstHandle(m.Initializer, name)
		}
		b.idx.RegisterMember(name, m.Name, &VariableEntry{
			QualifiedName: name + "." + m.Name,
			TypeName:      memberTypeName,
			Argument:      ArgByValLocal,
			Address:       m.Address,
			InitialValue:  handle,
			Range:         m.Range,
			PositionInPou: i,
		})
		memberNames = append(memberNames, m.Name)
	}
	b.idx.RegisterType(&types.DataType{
		Name:   name,
		Nature: types.NatureDerived,
		Information: types.StructInfo{
			MemberNames: memberNames,
			Source:      source,
			PouKind:     pouKind,
		},
	})
}

func (b *indexBuilder) registerArray(name string, t *ast.ArrayTypeExpr, containerHint string) {
	elemName := b.inlineTypeName(name, "element", t.Element)
	dims := make([]types.ArrayDimension, 0, len(t.Dimensions))
	for _, d := range t.Dimensions {
		dims = append(dims, types.ArrayDimension{
			Start: b.constBound(d.Start, name),
			End:   b.constBound(d.End, name),
		})
	}
	b.idx.RegisterType(&types.DataType{
		Name:        name,
		Nature:      types.NatureDerived,
		Information: types.ArrayInfo{InnerTypeName: elemName, Dimensions: dims, VLA: t.VLA},
	})
}

func (b *indexBuilder) constBound(e ast.Expression, scope string) types.ConstBound {
	if e == nil {
		return types.ConstBound{}
	}
	if lit, ok := e.(*ast.IntegerLiteral); ok {
		var v int64
		fmt.Sscanf(lit.Text, "%d", &v)
		return types.ConstBound{Literal: v}
	}
	return types.ConstBound{Handle: b.idx.NewConstHandle(e, scope)}
}

func (b *indexBuilder) registerEnum(name string, t *ast.EnumTypeExpr) {
	base := t.BaseType
	if base == "" {
		base = "INT"
	}
	elements := make([]string, 0, len(t.Elements))
	for i, el := range t.Elements {
		qualified := name + "." + el.Name
		init := el.Initializer
		if init == nil {
			// An omitted initializer is the previous element plus one; the
			// first element defaults to 0.
			if i == 0 {
				init = ast.NewIntegerLiteral(b.provider, el.Range, "0", "")
			} else {
				prev := ast.NewReferenceExpr(b.provider, el.Range, ast.NewIdentifier(b.provider, el.Range, name), ast.AccessMember, ast.NewIdentifier(b.provider, el.Range, t.Elements[i-1].Name))
				init = ast.NewBinaryExpr(b.provider, el.Range, prev, ast.OpAdd, ast.NewIntegerLiteral(b.provider, el.Range, "1", ""))
			}
		}
		handle := b.idx.NewConstHandle(init, "")
		b.idx.RegisterGlobal(&VariableEntry{
			QualifiedName: qualified,
			TypeName:      name,
			Argument:      ArgByValGlobal,
			Constant:      true,
			InitialValue:  handle,
			Range:         el.Range,
		})
		elements = append(elements, el.Name)
	}
	b.idx.RegisterType(&types.DataType{
		Name:   name,
		Nature: types.NatureDerived,
		Information: types.EnumInfo{
			Elements:           elements,
			ReferencedTypeName: base,
		},
	})
}

func (b *indexBuilder) registerSubRange(name string, t *ast.SubRangeTypeExpr) {
	b.idx.RegisterType(&types.DataType{
		Name:   name,
		Nature: types.NatureDerived,
		Information: types.SubRangeInfo{
			ReferencedTypeName: t.BaseType,
			Start:              b.constBound(t.Start, ""),
			End:                b.constBound(t.End, ""),
		},
	})
}

func (b *indexBuilder) registerPointer(name string, t *ast.PointerTypeExpr) {
	inner := b.inlineTypeName(name, "inner", t.Inner)
	b.idx.RegisterType(&types.DataType{
		Name:   name,
		Nature: types.NatureDerived,
		Information: types.PointerInfo{
			InnerTypeName: inner,
			AutoDeref:     t.AutoDeref,
			IsRef:         t.IsRef,
		},
	})
}

func (b *indexBuilder) registerString(name string, t *ast.StringTypeExpr) {
	size := types.StringSize{Literal: types.DefaultStringLen + 1}
	if t.Size != nil {
		if lit, ok := t.Size.(*ast.IntegerLiteral); ok {
			var v int64
			fmt.Sscanf(lit.Text, "%d", &v)
			size = types.StringSize{Literal: uint32(v) + 1}
		} else {
			size = types.StringSize{Handle: b.idx.NewConstHandle(t.Size, "")}
		}
	}
	enc := types.EncodingUTF8
	if t.Wide {
		enc = types.EncodingUTF16
	}
	b.idx.RegisterType(&types.DataType{Name: name, Nature: types.NatureString, Information: types.StringInfo{Size: size, Encoding: enc}})
}

// inlineTypeName resolves a TypeExpression found nested inside a
// declaration: a NamedTypeExpr is used as-is; any other (inline/anonymous)
// form is lifted into a synthesized name "__container_member" and
// registered, per SPEC_FULL.md §C.4.
func (b *indexBuilder) inlineTypeName(container, member string, te ast.TypeExpression) string {
	if named, ok := te.(*ast.NamedTypeExpr); ok {
		return named.Name
	}
	synthetic := "__" + container + "_" + member
	return b.resolveNamedTypeExpr(synthetic, te, container)
}

// --- POUs (spec §4.3 step 2) ------------------------------------------------

func (b *indexBuilder) registerPou(p ast.PouDecl) {
	qualifiedName := p.Name
	if p.Kind == ast.PouMethod || p.Kind == ast.PouAction {
		qualifiedName = p.Parent + "." + p.Name
	}

	returnTypeName := ""
	if p.ReturnType != nil {
		returnTypeName = b.inlineTypeName(qualifiedName, "result", p.ReturnType)
	}

	b.idx.RegisterPou(&PouEntry{
		QualifiedName: qualifiedName,
		Kind:          p.Kind,
		ReturnType:    returnTypeName,
		Generics:      p.Generics,
		Linkage:       p.Linkage,
		Range:         p.Range,
		ParentPou:     p.Parent,
	})

	if returnTypeName != "" && p.Kind == ast.PouFunction {
		b.idx.RegisterMember(qualifiedName, p.Name, &VariableEntry{
			QualifiedName: qualifiedName + "." + p.Name,
			TypeName:      returnTypeName,
			Argument:      ArgReturn,
			Range:         p.Range,
			PositionInPou: -1,
		})
	}

	position := 0
	memberNames := []string{}
	for _, blk := range p.Blocks {
		if blk.Kind == ast.BlockGlobal {
			b.report.Errorf(diagnostics.CodeBadBlockModifier, p.Range, "VAR_GLOBAL is not legal inside POU %q", p.Name)
			continue
		}
		for _, v := range blk.Variables {
			argKind := blockToArgumentKind(blk, p.Kind)
			typeName := b.inlineTypeName(qualifiedName, v.Name, v.Type)
			typeName = b.maybeSynthesizeAutoPointer(typeName, argKind)

			var handle types.ConstHandle
			if v.Initializer != nil {
				handle = b.idx.NewConstHandle(v.Initializer, qualifiedName)
			}

			b.idx.RegisterMember(qualifiedName, v.Name, &VariableEntry{
				QualifiedName: qualifiedName + "." + v.Name,
				TypeName:      typeName,
				Argument:      argKind,
				Constant:      blk.Constant,
				Address:       v.Address,
				InitialValue:  handle,
				Range:         v.Range,
				PositionInPou: position,
			})
			memberNames = append(memberNames, v.Name)
			position++
		}
	}

	b.idx.RegisterType(&types.DataType{
		Name:   qualifiedName,
		Nature: types.NatureDerived,
		Information: types.StructInfo{
			MemberNames: memberNames,
			Source:      types.StructSourcePouBody,
			PouKind:     p.Kind.String(),
		},
	})
}

// blockToArgumentKind implements spec §4.3's block-to-argument-kind table.
func blockToArgumentKind(blk ast.VariableBlock, pouKind ast.PouKind) ArgumentKind {
	switch blk.Kind {
	case ast.BlockInOut:
		return ArgByRefInOut
	case ast.BlockInputByRef:
		return ArgByRefInput
	case ast.BlockInput:
		if blk.ByVal {
			return ArgByValInput
		}
		return ArgByRefInput
	case ast.BlockOutput:
		if pouKind == ast.PouFunction || pouKind == ast.PouMethod {
			return ArgByRefOutput
		}
		return ArgByValOutput
	case ast.BlockTemp:
		return ArgByValTemp
	case ast.BlockGlobal:
		return ArgByValGlobal
	default: // BlockLocal
		return ArgByValLocal
	}
}

// maybeSynthesizeAutoPointer implements spec §4.3's "Pointer-by-ref
// synthesis": a ByRef parameter referencing type T gets a synthetic
// auto_pointer_to_<T> type (auto-deref true), and that name becomes the
// parameter's recorded type.
func (b *indexBuilder) maybeSynthesizeAutoPointer(typeName string, kind ArgumentKind) string {
	if kind != ArgByRefInput && kind != ArgByRefOutput && kind != ArgByRefInOut {
		return typeName
	}
	ptrName := "auto_pointer_to_" + typeName
	if !b.idx.types.Has(ptrName) {
		b.idx.RegisterType(&types.DataType{
			Name:   ptrName,
			Nature: types.NatureDerived,
			Information: types.PointerInfo{
				InnerTypeName: typeName,
				AutoDeref:     true,
			},
		})
	}
	return ptrName
}

// --- Global var blocks (spec §4.3 step 3) -----------------------------------

func (b *indexBuilder) registerGlobalBlock(blk ast.VariableBlock) {
	for _, v := range blk.Variables {
		typeName := b.inlineTypeName("__global", v.Name, v.Type)
		var handle types.ConstHandle
		if v.Initializer != nil {
			handle = b.idx.NewConstHandle(v.Initializer, "")
		}
		b.idx.RegisterGlobal(&VariableEntry{
			QualifiedName: v.Name,
			TypeName:      typeName,
			Argument:      ArgByValGlobal,
			Constant:      blk.Constant,
			Address:       v.Address,
			InitialValue:  handle,
			Range:         v.Range,
		})
	}
}

// --- Implementations (spec §4.3 step 4) -------------------------------------

// registerImplementation registers an Action's PouEntry when it has none:
// unlike Programs, Function Blocks, Functions, and Methods (all declared via
// a PouDecl before their body is visited), an Action's only declaration site
// is its implementation (original_source's visit_implementation), named
// "<Parent>.<Action>". Its qualified name then aliases to the owning POU's
// struct type, so a reference to the Action resolves to an instance of the
// POU whose members it operates on.
func (b *indexBuilder) registerImplementation(impl ast.Implementation) {
	entry, ok := b.idx.LookupPou(impl.Name)
	if !ok {
		sep := strings.LastIndex(impl.Name, ".")
		if sep < 0 {
			return
		}
		parent := impl.Name[:sep]
		if _, ok := b.idx.LookupPou(parent); !ok {
			return
		}
		entry = &PouEntry{
			QualifiedName: impl.Name,
			Kind:          ast.PouAction,
			ParentPou:     parent,
			Range:         impl.Range,
		}
		b.idx.RegisterPou(entry)
	}
	if entry.Kind == ast.PouAction {
		b.idx.RegisterType(&types.DataType{Name: impl.Name, Nature: types.NatureDerived, Information: types.AliasInfo{ReferencedTypeName: entry.ParentPou}})
	}
}
