package semantic

import (
	"strings"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
	"github.com/iec61131/stcore/internal/types"
)

// Validate runs the structural validators (spec §4.7) against an already
// indexed, constant-folded, and annotated unit: const-expression integrity,
// recursive-aggregate detection, variable-block legality, array bound
// inversion, and REFERENCE TO declaration rules. Findings are appended to
// report; Validate never stops early on the first failure.
func Validate(idx *Index, report *diagnostics.Report) {
	validateConstants(idx, report)
	validateRecursiveAggregates(idx, report)
	validateVariableBlocks(idx, report)
	validateArrayRanges(idx, report)
	validateVLALegality(idx, report)
	validateReferenceDeclarations(idx, report)
}

// validateConstants re-asserts spec §4.7's const-expression integrity
// invariant: by the time validation runs, EvaluateConstants must have
// settled every handle to ConstResolved or ConstUnresolvable. A handle still
// ConstUnresolved here means Validate ran out of pipeline order — an
// internal invariant violation (spec §7), not a user-facing diagnostic.
func validateConstants(idx *Index, report *diagnostics.Report) {
	for _, h := range idx.AllConstHandles() {
		entry := idx.ConstEntryFor(h)
		if entry.State == ConstUnresolved {
			report.Errorf(diagnostics.CodeInternal, entry.Stmt.Range(),
				"const-expression handle reached validation unresolved; pipeline stages ran out of order")
		}
	}
}

// validateRecursiveAggregates walks every struct-like type's member graph
// depth-first, reporting CodeRecursiveAggregate the moment a cycle closes
// (spec §4.7 "Recursive aggregates"). A struct containing itself only
// through a pointer is not a cycle (spec §4.2: pointers break aggregation),
// so pointer members are not followed.
func validateRecursiveAggregates(idx *Index, report *diagnostics.Report) {
	visited := map[string]bool{}
	for _, name := range idx.TypeNames() {
		if !visited[foldKey(name)] {
			detectAggregateCycle(idx, name, map[string]bool{}, []string{}, visited, report)
		}
	}
}

func detectAggregateCycle(idx *Index, name string, onStack map[string]bool, path []string, visited map[string]bool, report *diagnostics.Report) {
	key := foldKey(name)
	if onStack[key] {
		report.Errorf(diagnostics.CodeRecursiveAggregate, ast.SourceRange{}, "recursive aggregate type detected: %s", cyclePath(append(path, name)))
		return
	}
	if visited[key] {
		return
	}
	visited[key] = true
	onStack[key] = true
	defer delete(onStack, key)

	t, ok := idx.LookupType(name)
	if !ok {
		return
	}
	structInfo, ok := t.Information.(types.StructInfo)
	if !ok {
		return
	}
	for _, memberName := range structInfo.MemberNames {
		m, ok := idx.LookupMember(name, memberName)
		if !ok {
			continue
		}
		memberType, ok := idx.LookupType(m.TypeName)
		if !ok {
			continue
		}
		switch info := memberType.Information.(type) {
		case types.PointerInfo:
			continue // pointers break the aggregate cycle.
		case types.ArrayInfo:
			detectAggregateCycle(idx, info.InnerTypeName, onStack, append(path, name), visited, report)
		default:
			detectAggregateCycle(idx, memberType.Name, onStack, append(path, name), visited, report)
		}
	}
}

func cyclePath(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}

// validateVariableBlocks enforces spec §4.7's block-legality rules: CONSTANT
// is only legal on VAR and VAR_GLOBAL blocks (CodeBadBlockModifier), and
// constant function-block-typed instances (VAR CONSTANT fb : SomeFB) are
// rejected (spec's CodeBadConstantFBInstance) since FB instances carry
// mutable state.
func validateVariableBlocks(idx *Index, report *diagnostics.Report) {
	for _, pou := range idx.AllPous() {
		for _, m := range idx.Members(pou.QualifiedName) {
			if !m.Constant {
				continue
			}
			if !isConstantLegalBlock(m.Argument) {
				report.Errorf(diagnostics.CodeBadBlockModifier, m.Range,
					"%s: this variable block does not support the CONSTANT modifier", m.QualifiedName)
			}
			if fb, isPou := idx.LookupPou(m.TypeName); isPou && fb.Kind == ast.PouFunctionBlock {
				report.Errorf(diagnostics.CodeBadConstantFBInstance, m.Range,
					"%s cannot be declared CONSTANT: function block instances carry mutable state", m.QualifiedName)
			}
		}
	}
}

// isConstantLegalBlock implements spec §4.7's "CONSTANT is legal only on
// Global/Local blocks" rule: Input, Output, InOut, and Temp variables may
// never carry the CONSTANT modifier.
func isConstantLegalBlock(kind ArgumentKind) bool {
	switch kind {
	case ArgByValLocal, ArgByValGlobal:
		return true
	default:
		return false
	}
}

// validateArrayRanges reports every array dimension whose resolved bounds
// are inverted (start > end), per spec §4.7's CodeInvertedRange.
func validateArrayRanges(idx *Index, report *diagnostics.Report) {
	for _, name := range idx.TypeNames() {
		t, ok := idx.LookupType(name)
		if !ok {
			continue
		}
		arrInfo, ok := t.Information.(types.ArrayInfo)
		if !ok {
			continue
		}
		for _, dim := range arrInfo.Dimensions {
			start, startOK := resolveBound(idx, dim.Start)
			end, endOK := resolveBound(idx, dim.End)
			if startOK && endOK && start > end {
				report.Errorf(diagnostics.CodeInvertedRange, ast.SourceRange{},
					"array type %q has an inverted dimension: %d..%d", name, start, end)
			}
		}
	}
}

// validateVLALegality enforces spec §4.7's Variable Length Array legality
// matrix (grounded on validate_vla in the original compiler): a VLA
// (ARRAY[*] OF t) may be declared as a by-reference Input or an InOut/Output
// parameter of a Function or Method, or as an InOut parameter of a Function
// Block. Every other placement, a by-value Method Input included, is illegal
// (CodeIllegalVLADeclaration); a by-value Function Input is merely
// downgraded to an advisory
// (CodeVLAByRefAdvisory), since VLAs are always passed by reference
// regardless of the block they're declared in.
func validateVLALegality(idx *Index, report *diagnostics.Report) {
	for _, g := range idx.AllGlobals() {
		if isVLAMember(idx, g.TypeName) {
			report.Errorf(diagnostics.CodeIllegalVLADeclaration, g.Range,
				"%s: Variable Length Arrays cannot be defined as global variables", g.QualifiedName)
		}
	}
	for _, pou := range idx.AllPous() {
		for _, m := range idx.Members(pou.QualifiedName) {
			if isVLAMember(idx, m.TypeName) {
				validateVLAPlacement(report, pou, m)
			}
		}
	}
}

func isVLAMember(idx *Index, typeName string) bool {
	dt, ok := idx.LookupType(typeName)
	if !ok {
		return false
	}
	dt = unwrapAutoPointer(idx, dt)
	arrInfo, ok := dt.Information.(types.ArrayInfo)
	return ok && arrInfo.VLA
}

// unwrapAutoPointer undoes the by-ref parameter synthesis performed by
// maybeSynthesizeAutoPointer, so a VLA/REFERENCE TO check inspects the
// member's own declared type rather than the synthetic auto_pointer_to_<T>
// wrapper around it.
func unwrapAutoPointer(idx *Index, dt *types.DataType) *types.DataType {
	if dt == nil {
		return nil
	}
	ptrInfo, ok := dt.Information.(types.PointerInfo)
	if !ok || !strings.HasPrefix(dt.Name, "auto_pointer_to_") {
		return dt
	}
	inner, ok := idx.LookupType(ptrInfo.InnerTypeName)
	if !ok {
		return dt
	}
	return inner
}

func validateVLAPlacement(report *diagnostics.Report, pou *PouEntry, m *VariableEntry) {
	switch pou.Kind {
	case ast.PouProgram:
		report.Errorf(diagnostics.CodeIllegalVLADeclaration, m.Range,
			"%s: Variable Length Arrays are not allowed to be defined inside a Program", m.QualifiedName)
		return
	case ast.PouFunction, ast.PouMethod:
		switch m.Argument {
		case ArgByRefInput, ArgByValOutput, ArgByRefOutput, ArgByRefInOut:
			return
		case ArgByValInput:
			if pou.Kind == ast.PouFunction {
				report.Warnf(diagnostics.CodeVLAByRefAdvisory, m.Range,
					"%s: Variable Length Arrays are always by-ref, even when declared in a by-value block", m.QualifiedName)
				return
			}
		}
	case ast.PouFunctionBlock:
		if m.Argument == ArgByRefInOut {
			return
		}
	}
	report.Errorf(diagnostics.CodeIllegalVLADeclaration, m.Range,
		"%s: Variable Length Arrays are not allowed to be defined as %s variables inside a %s", m.QualifiedName, m.Argument, pou.Kind)
}

// validateReferenceDeclarations enforces spec §4.7's REFERENCE TO rules
// (grounded on validate_reference_to_declaration in the original compiler):
// no inline initializer, and the referenced type may not itself name
// another variable, an array, a pointer/reference, or a bit type.
func validateReferenceDeclarations(idx *Index, report *diagnostics.Report) {
	for _, pou := range idx.AllPous() {
		for _, m := range idx.Members(pou.QualifiedName) {
			validateReferenceMember(idx, report, pou.QualifiedName, m)
		}
	}
	for _, g := range idx.AllGlobals() {
		validateReferenceMember(idx, report, "", g)
	}
}

func validateReferenceMember(idx *Index, report *diagnostics.Report, scope string, m *VariableEntry) {
	dt, ok := idx.LookupType(m.TypeName)
	if !ok {
		return
	}
	dt = unwrapAutoPointer(idx, dt)
	ptrInfo, ok := dt.Information.(types.PointerInfo)
	if !ok || !ptrInfo.IsRef {
		return
	}

	if m.InitialValue != types.NoHandle {
		report.Errorf(diagnostics.CodeBadReferenceToDecl, m.Range,
			"%s: REFERENCE TO variables cannot be initialized in their declaration", m.QualifiedName)
	}

	if _, ok := idx.LookupMember(scope, ptrInfo.InnerTypeName); ok {
		report.Errorf(diagnostics.CodeBadReferenceToDecl, m.Range,
			"%s: %q names a variable, not a type", m.QualifiedName, ptrInfo.InnerTypeName)
	}

	innerDT, ok := idx.LookupType(ptrInfo.InnerTypeName)
	if !ok {
		return
	}
	innerInfo, _ := idx.EffectiveInformation(ptrInfo.InnerTypeName)
	switch innerInfo.(type) {
	case types.ArrayInfo, types.PointerInfo:
		report.Errorf(diagnostics.CodeBadReferenceToDecl, m.Range,
			"%s: a REFERENCE TO target cannot be an array, pointer, or reference", m.QualifiedName)
	default:
		if innerDT.IsBit() {
			report.Errorf(diagnostics.CodeBadReferenceToDecl, m.Range,
				"%s: a REFERENCE TO target cannot be a bit type", m.QualifiedName)
		}
	}
}

func resolveBound(idx *Index, b types.ConstBound) (int64, bool) {
	if b.Handle == types.NoHandle {
		return b.Literal, true
	}
	entry := idx.ConstEntryFor(b.Handle)
	if entry.State != ConstResolved {
		return 0, false
	}
	lit, ok := entry.Result.(*ast.IntegerLiteral)
	if !ok {
		return 0, false
	}
	v, ok := parseBigInt(lit.Text)
	if !ok || !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}
