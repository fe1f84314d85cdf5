package semantic

import (
	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/types"
)

// DependencyGraph records which POU/type names each POU body references
// (spec §4.6), so a downstream compilation stage can order codegen or
// detect unreachable units. Edges point from a dependent to its dependency.
type DependencyGraph struct {
	edges *orderedMap[[]string]
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{edges: newOrderedMap[[]string]()}
}

// AddEdge records that from depends on to. Duplicate edges are ignored.
func (g *DependencyGraph) AddEdge(from, to string) {
	existing, _ := g.edges.Get(from)
	for _, e := range existing {
		if foldKey(e) == foldKey(to) {
			return
		}
	}
	g.edges.Set(from, append(existing, to))
}

// DirectDependencies returns what "from" directly depends on, in the order
// edges were added.
func (g *DependencyGraph) DirectDependencies(from string) []string {
	deps, _ := g.edges.Get(from)
	return deps
}

// TransitiveClosure returns every name reachable from "from" by following
// dependency edges, in first-visit (breadth-first) order, excluding "from"
// itself (SPEC_FULL.md §C.5).
func (g *DependencyGraph) TransitiveClosure(from string) []string {
	seen := map[string]bool{foldKey(from): true}
	queue := append([]string{}, g.DirectDependencies(from)...)
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[foldKey(cur)] {
			continue
		}
		seen[foldKey(cur)] = true
		out = append(out, cur)
		queue = append(queue, g.DirectDependencies(cur)...)
	}
	return out
}

// HasCycle reports whether "from" transitively depends on itself.
func (g *DependencyGraph) HasCycle(from string) bool {
	for _, node := range append([]string{from}, g.TransitiveClosure(from)...) {
		for _, dep := range g.DirectDependencies(node) {
			if foldKey(dep) == foldKey(from) {
				return true
			}
		}
	}
	return false
}

// BuildDependencyGraph walks every registered POU's members looking up their
// declared types, then every implementation body's call statements, and
// records an edge to every other POU or user type named along the way.
func BuildDependencyGraph(unit *ast.CompilationUnit, idx *Index) *DependencyGraph {
	g := NewDependencyGraph()
	for _, pou := range idx.AllPous() {
		for _, m := range idx.Members(pou.QualifiedName) {
			typeName := baseTypeName(idx, m.TypeName)
			if typeName == "" || foldKey(typeName) == foldKey(pou.QualifiedName) {
				continue
			}
			if _, ok := idx.LookupPou(typeName); ok {
				g.AddEdge(pou.QualifiedName, typeName)
			} else if t, ok := idx.LookupType(typeName); ok && t.Nature == types.NatureDerived {
				g.AddEdge(pou.QualifiedName, typeName)
			}
		}
	}
	for _, impl := range unit.Implementations {
		walkCallEdges(impl.Body, impl.Name, idx, g)
	}
	return g
}

func walkCallEdges(body []ast.Statement, from string, idx *Index, g *DependencyGraph) {
	for _, s := range body {
		switch n := s.(type) {
		case *ast.CallStatement:
			if id, ok := n.Operator.(*ast.Identifier); ok {
				if _, ok := idx.LookupPou(id.Name); ok {
					g.AddEdge(from, id.Name)
				}
			}
		case *ast.IfStatement:
			for _, b := range n.Blocks {
				walkCallEdges(b.Body, from, idx, g)
			}
			walkCallEdges(n.ElseBody, from, idx, g)
		case *ast.ForStatement:
			walkCallEdges(n.Body, from, idx, g)
		case *ast.WhileStatement:
			walkCallEdges(n.Body, from, idx, g)
		case *ast.RepeatStatement:
			walkCallEdges(n.Body, from, idx, g)
		case *ast.CaseStatement:
			for _, b := range n.Blocks {
				walkCallEdges(b.Body, from, idx, g)
			}
			walkCallEdges(n.ElseBody, from, idx, g)
		}
	}
}

// baseTypeName strips any array/pointer indirection to find the underlying
// named type a dependency edge should point at.
func baseTypeName(idx *Index, name string) string {
	seen := map[string]bool{}
	cur := name
	for !seen[foldKey(cur)] {
		seen[foldKey(cur)] = true
		t, ok := idx.LookupType(cur)
		if !ok {
			return cur
		}
		switch info := t.Information.(type) {
		case types.ArrayInfo:
			cur = info.InnerTypeName
		case types.PointerInfo:
			cur = info.InnerTypeName
		default:
			return t.Name
		}
	}
	return cur
}
