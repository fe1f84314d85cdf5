package semantic

import (
	"reflect"
	"testing"

	"github.com/iec61131/stcore/internal/ast"
)

func TestDependencyGraphDirectAndTransitive(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("A", "B") // duplicate, must not double up

	if got := g.DirectDependencies("A"); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("DirectDependencies(A) = %v, want [B]", got)
	}

	closure := g.TransitiveClosure("A")
	want := []string{"B", "C"}
	if !reflect.DeepEqual(closure, want) {
		t.Errorf("TransitiveClosure(A) = %v, want %v", closure, want)
	}
}

func TestDependencyGraphHasCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")

	if !g.HasCycle("A") {
		t.Error("expected A -> B -> A to be detected as a cycle")
	}
	if g.HasCycle("Isolated") {
		t.Error("a name with no edges must not be reported as cyclic")
	}
}

func TestBuildDependencyGraphTracksCallEdges(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	idx.RegisterPou(&PouEntry{QualifiedName: "Main", Kind: ast.PouProgram})
	idx.RegisterPou(&PouEntry{QualifiedName: "Helper", Kind: ast.PouFunction})

	call := ast.NewCallStatement(p, ast.SourceRange{}, ast.NewTestIdent(p, "Helper"), nil)
	unit := &ast.CompilationUnit{
		Pous: []ast.PouDecl{
			{Name: "Main", Kind: ast.PouProgram},
			{Name: "Helper", Kind: ast.PouFunction},
		},
		Implementations: []ast.Implementation{
			{Name: "Main", Body: []ast.Statement{call}},
		},
		Ids: p,
	}

	g := BuildDependencyGraph(unit, idx)
	if deps := g.DirectDependencies("Main"); len(deps) != 1 || deps[0] != "Helper" {
		t.Errorf("expected Main to depend on Helper via its call, got %v", deps)
	}
}
