// Package dot renders bone graphs and search paths as Graphviz DOT text.
// The output is a one-way diagnostic view: node labels are cell index
// tuples, edge labels are visit counts and weights.
package dot

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	gdot "gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/search"
)

const indent = "  "

// labeled is a DOT node with a fixed ID prefix and a label attribute.
type labeled struct {
	prefix string
	id     int64
	label  string
}

func (n labeled) ID() int64     { return n.id }
func (n labeled) DOTID() string { return fmt.Sprintf("%s%d", n.prefix, n.id) }
func (n labeled) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: n.label}}
}

// countLine is one bone graph edge; uid is the core edge ID, so parallel
// edges and self-loops stay distinct.
type countLine struct {
	from, to graph.Node
	uid      int64
	label    string
}

func (l countLine) From() graph.Node { return l.from }
func (l countLine) To() graph.Node   { return l.to }
func (l countLine) ID() int64        { return l.uid }
func (l countLine) ReversedLine() graph.Line {
	l.from, l.to = l.to, l.from
	return l
}
func (l countLine) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: l.label}}
}

// withGraphAttrs adds top-level graph attributes to a multigraph.
type withGraphAttrs struct {
	*multi.DirectedGraph
	attrs encoding.Attributes
}

func (g withGraphAttrs) DOTAttributers() (encoding.Attributer, encoding.Attributer, encoding.Attributer) {
	return &g.attrs, nil, nil
}

func write(w io.Writer, g graph.Multigraph, name string) error {
	b, err := gdot.MarshalMulti(g, name, "", indent)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteBoneGraph writes bg as a digraph, nodes and edges ordered by ID.
// Self-loops and parallel edges are kept.
func WriteBoneGraph(w io.Writer, bg *cspace.BoneGraph) error {
	g := withGraphAttrs{
		DirectedGraph: multi.NewDirectedGraph(),
		attrs:         encoding.Attributes{{Key: "interval", Value: fmt.Sprint(bg.Interval)}},
	}
	nodes := make(map[cspace.CellID]labeled)
	for _, id := range bg.Nodes() {
		cell, _ := bg.Cell(id)
		n := labeled{prefix: "n", id: int64(id), label: cell.String()}
		nodes[id] = n
		g.AddNode(n)
	}
	for _, e := range bg.Edges() {
		g.SetLine(countLine{
			from:  nodes[e.From],
			to:    nodes[e.To],
			uid:   int64(e.ID),
			label: fmt.Sprintf("%d (%.3f)", e.Count, e.Weight),
		})
	}
	return write(w, g, bg.Name)
}

// WritePath writes p as a chain of numbered steps labeled by node. Repeated
// nodes get one DOT node per step.
func WritePath[N interface {
	comparable
	fmt.Stringer
}](w io.Writer, name string, p search.Path[N]) error {
	g := withGraphAttrs{
		DirectedGraph: multi.NewDirectedGraph(),
		attrs:         encoding.Attributes{{Key: "rankdir", Value: "LR"}},
	}
	var prev graph.Node
	for i, n := range p.Nodes {
		step := labeled{prefix: "s", id: int64(i), label: n.String()}
		g.AddNode(step)
		if prev != nil {
			g.SetLine(multi.Line{F: prev, T: step, UID: int64(i)})
		}
		prev = step
	}
	return write(w, g, name)
}
