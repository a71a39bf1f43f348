// Package depgraph exposes the dependency edges between generated entities
// as a gonum graph for export and ordering.
package depgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/seitarof/gen-cstruct/internal/entity"
)

type node struct {
	id   int64
	name string
}

func (n *node) ID() int64      { return n.id }
func (n *node) DOTID() string  { return n.name }
func (n *node) String() string { return n.name }

// Graph has one node per entity and an edge from each entity to every
// entity it depends on. Dependencies on non-entities are not represented.
type Graph struct {
	g     *simple.DirectedGraph
	nodes map[string]*node
	self  map[string]bool
}

// New builds the graph of es. Node IDs follow name order so exports are
// stable across runs.
func New(es entity.Entities) *Graph {
	g := &Graph{
		g:     simple.NewDirectedGraph(),
		nodes: map[string]*node{},
		self:  map[string]bool{},
	}
	for i, name := range es.Names() {
		n := &node{id: int64(i), name: name}
		g.nodes[name] = n
		g.g.AddNode(n)
	}
	for _, name := range es.Names() {
		from := g.nodes[name]
		for _, dep := range es[name].Deps {
			to, ok := g.nodes[dep]
			if !ok {
				continue
			}
			// simple graphs reject self loops.
			if to == from {
				g.self[name] = true
				continue
			}
			g.g.SetEdge(g.g.NewEdge(from, to))
		}
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// DOT encodes the graph in Graphviz format.
func (g *Graph) DOT(name string) ([]byte, error) {
	return dot.Marshal(g.g, name, "", "  ")
}

// Cycles returns every group of mutually dependent entities, including
// entities that reference themselves. Names are sorted within and across
// groups.
func (g *Graph) Cycles() [][]string {
	var out [][]string
	for _, scc := range topo.TarjanSCC(g.g) {
		if len(scc) == 1 && !g.self[scc[0].(*node).name] {
			continue
		}
		names := nodeNames(scc)
		sort.Strings(names)
		out = append(out, names)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

// Order returns the entity names with every dependency before its users.
// Self references are tolerated; longer cycles are an error.
func (g *Graph) Order() ([]string, error) {
	sorted, err := topo.SortStabilized(g.g, byName)
	if err != nil {
		return nil, fmt.Errorf("order entities: %w", err)
	}
	names := nodeNames(sorted)
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names, nil
}

func byName(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].(*node).name < nodes[j].(*node).name
	})
}

func nodeNames(nodes []graph.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.(*node).name)
	}
	return names
}
