package semantic

import (
	"testing"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
	"github.com/iec61131/stcore/internal/types"
)

func TestBuildIndexRegistersUserStructType(t *testing.T) {
	p := ast.NewIdProvider()
	structExpr := ast.NewStructTypeExpr(p, ast.SourceRange{}, []ast.VariableDecl{
		ast.NewTestVar(p, "X", "INT"),
		ast.NewTestVar(p, "Y", "INT"),
	})
	unit := &ast.CompilationUnit{
		UserTypes: []ast.UserType{{Name: "Point", Expr: structExpr}},
		Ids:       p,
	}

	idx := BuildIndex(unit, &diagnostics.Report{})

	dt, ok := idx.LookupType("Point")
	if !ok {
		t.Fatal("expected Point to be registered as a type")
	}
	info, ok := dt.Information.(types.StructInfo)
	if !ok {
		t.Fatalf("expected StructInfo, got %T", dt.Information)
	}
	if len(info.MemberNames) != 2 || info.MemberNames[0] != "X" || info.MemberNames[1] != "Y" {
		t.Errorf("unexpected member names: %v", info.MemberNames)
	}

	if _, ok := idx.LookupMember("Point", "X"); !ok {
		t.Error("expected Point.X to be registered as a member")
	}
}

func TestBuildIndexSynthesizesInlineArrayType(t *testing.T) {
	p := ast.NewIdProvider()
	arrExpr := ast.NewArrayTypeExpr(p, ast.SourceRange{},
		[]ast.Dimension{{Start: ast.NewTestInt(p, "0"), End: ast.NewTestInt(p, "9")}},
		false, ast.NewTestNamedType(p, "INT"))

	pou := ast.PouDecl{
		Name: "Main",
		Kind: ast.PouProgram,
		Blocks: []ast.VariableBlock{
			{Kind: ast.BlockLocal, Variables: []ast.VariableDecl{{Name: "Buf", Type: arrExpr}}},
		},
	}
	unit := &ast.CompilationUnit{Pous: []ast.PouDecl{pou}, Ids: p}

	idx := BuildIndex(unit, &diagnostics.Report{})

	member, ok := idx.LookupMember("Main", "Buf")
	if !ok {
		t.Fatal("expected Main.Buf to be registered")
	}
	if member.TypeName != "__Main_Buf" {
		t.Errorf("expected a synthesized type name, got %q", member.TypeName)
	}
	dt, ok := idx.LookupType(member.TypeName)
	if !ok {
		t.Fatal("expected the synthesized array type to be registered")
	}
	arrInfo, ok := dt.Information.(types.ArrayInfo)
	if !ok {
		t.Fatalf("expected ArrayInfo, got %T", dt.Information)
	}
	if arrInfo.InnerTypeName != "INT" {
		t.Errorf("expected inner type INT, got %q", arrInfo.InnerTypeName)
	}
}

func TestBuildIndexRejectsGlobalBlockInsidePou(t *testing.T) {
	p := ast.NewIdProvider()
	pou := ast.PouDecl{
		Name: "Main",
		Kind: ast.PouProgram,
		Blocks: []ast.VariableBlock{
			{Kind: ast.BlockGlobal, Variables: []ast.VariableDecl{ast.NewTestVar(p, "X", "INT")}},
		},
	}
	unit := &ast.CompilationUnit{Pous: []ast.PouDecl{pou}, Ids: p}

	report := &diagnostics.Report{}
	BuildIndex(unit, report)

	found := false
	for _, d := range report.All() {
		if d.Code == diagnostics.CodeBadBlockModifier {
			found = true
		}
	}
	if !found {
		t.Error("expected a VAR_GLOBAL block nested in a POU to be reported")
	}
}

func TestBuildIndexSynthesizesAutoPointerForByRefParam(t *testing.T) {
	p := ast.NewIdProvider()
	pou := ast.PouDecl{
		Name: "Main",
		Kind: ast.PouFunctionBlock,
		Blocks: []ast.VariableBlock{
			ast.NewTestVarBlock(ast.BlockInputByRef, ast.NewTestVar(p, "Src", "INT")),
		},
	}
	unit := &ast.CompilationUnit{Pous: []ast.PouDecl{pou}, Ids: p}

	idx := BuildIndex(unit, &diagnostics.Report{})

	member, ok := idx.LookupMember("Main", "Src")
	if !ok {
		t.Fatal("expected Main.Src to be registered")
	}
	if member.TypeName != "auto_pointer_to_INT" {
		t.Errorf("expected a synthesized auto-pointer type, got %q", member.TypeName)
	}
	dt, ok := idx.LookupType("auto_pointer_to_INT")
	if !ok {
		t.Fatal("expected auto_pointer_to_INT to be registered")
	}
	ptrInfo, ok := dt.Information.(types.PointerInfo)
	if !ok {
		t.Fatalf("expected PointerInfo, got %T", dt.Information)
	}
	if !ptrInfo.AutoDeref {
		t.Error("a synthesized by-ref parameter pointer must auto-deref")
	}
}

func TestBuildIndexRegistersEnumElementsAsGlobals(t *testing.T) {
	p := ast.NewIdProvider()
	enumExpr := ast.NewEnumTypeExpr(p, ast.SourceRange{}, []ast.EnumElement{
		{Name: "Red"}, {Name: "Green"}, {Name: "Blue"},
	}, "")
	unit := &ast.CompilationUnit{UserTypes: []ast.UserType{{Name: "Color", Expr: enumExpr}}, Ids: p}

	idx := BuildIndex(unit, &diagnostics.Report{})

	if _, ok := idx.LookupGlobal("Color.Red"); !ok {
		t.Error("expected Color.Red to be registered as a global constant")
	}
	dt, ok := idx.LookupType("Color")
	if !ok {
		t.Fatal("expected Color to be registered as a type")
	}
	enumInfo, ok := dt.Information.(types.EnumInfo)
	if !ok {
		t.Fatalf("expected EnumInfo, got %T", dt.Information)
	}
	if enumInfo.ReferencedTypeName != "INT" {
		t.Errorf("expected the default backing type INT, got %q", enumInfo.ReferencedTypeName)
	}
}

func TestBuildIndexRegistersGlobalVarBlock(t *testing.T) {
	p := ast.NewIdProvider()
	unit := &ast.CompilationUnit{
		GlobalVarBlocks: []ast.VariableBlock{
			ast.NewTestVarBlock(ast.BlockGlobal, ast.NewTestVar(p, "Counter", "DINT")),
		},
		Ids: p,
	}

	idx := BuildIndex(unit, &diagnostics.Report{})

	g, ok := idx.LookupGlobal("Counter")
	if !ok {
		t.Fatal("expected Counter to be registered as a global")
	}
	if g.TypeName != "DINT" {
		t.Errorf("expected TypeName DINT, got %q", g.TypeName)
	}
}
