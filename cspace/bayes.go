package cspace

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/choreo/motion"
)

// CellPair keys a Bayes table entry.
type CellPair struct {
	Parent CellID
	Child  CellID
}

// BayesTable estimates P(child cell | parent cell) from co-occurring poses
// of a parent bone and one of its children.
type BayesTable struct {
	Parent string
	Child  string

	parent *BoneGraph
	child  *BoneGraph
	counts map[CellPair]int
	totals map[CellID]int
	probs  map[CellPair]float64

	restored bool
}

// BayesEntry is one exported row, keyed by cell index tuples so it stays
// meaningful outside the interning table that produced it.
type BayesEntry struct {
	Parent      []int   `msgpack:"parent" yaml:"parent"`
	Child       []int   `msgpack:"child" yaml:"child"`
	Probability float64 `msgpack:"p" yaml:"p"`
}

// NewBayesTable returns an empty table over two built graphs.
func NewBayesTable(parent, child *BoneGraph) *BayesTable {
	return &BayesTable{
		Parent: parent.Name,
		Child:  child.Name,
		parent: parent,
		child:  child,
		counts: make(map[CellPair]int),
		totals: make(map[CellID]int),
	}
}

// Observe counts one simultaneous (parent, child) pose. Both cells must have
// been interned while the graphs were built.
func (t *BayesTable) Observe(parentAngles, childAngles []float64) error {
	if t.restored {
		return fmt.Errorf("bayes %s/%s is restored: %w", t.Parent, t.Child, ErrSealed)
	}
	p, err := t.parent.locate(parentAngles)
	if err != nil {
		return err
	}
	c, err := t.child.locate(childAngles)
	if err != nil {
		return err
	}
	t.counts[CellPair{p, c}]++
	t.totals[p]++
	t.probs = nil
	return nil
}

// Normalize turns counts into conditional probabilities.
func (t *BayesTable) Normalize() {
	if t.restored {
		return
	}
	t.probs = make(map[CellPair]float64, len(t.counts))
	for k, n := range t.counts {
		t.probs[k] = float64(n) / float64(t.totals[k.Parent])
	}
}

// Probability returns P(child | parent), zero when never observed.
func (t *BayesTable) Probability(parent, child CellID) float64 {
	if t.probs == nil {
		t.Normalize()
	}
	return t.probs[CellPair{parent, child}]
}

// Len reports the number of (parent, child) pairs with a probability.
func (t *BayesTable) Len() int {
	if t.probs != nil {
		return len(t.probs)
	}
	return len(t.counts)
}

// Entries exports the table sorted by parent tuple then child tuple.
func (t *BayesTable) Entries() []BayesEntry {
	if t.probs == nil {
		t.Normalize()
	}
	out := make([]BayesEntry, 0, len(t.probs))
	for k, p := range t.probs {
		pc, _ := t.parent.Cell(k.Parent)
		cc, _ := t.child.Cell(k.Child)
		out = append(out, BayesEntry{Parent: pc.Index, Child: cc.Index, Probability: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := slices.Compare(out[i].Parent, out[j].Parent); c != 0 {
			return c < 0
		}
		return slices.Compare(out[i].Child, out[j].Child) < 0
	})
	return out
}

// RestoreBayes rebuilds a table from exported entries over the given graphs.
// Entries whose cells are unknown to either graph are rejected. A restored
// table is read-only: it carries probabilities, not counts.
func RestoreBayes(parent, child *BoneGraph, entries []BayesEntry) (*BayesTable, error) {
	t := NewBayesTable(parent, child)
	t.probs = make(map[CellPair]float64, len(entries))
	t.restored = true
	for _, e := range entries {
		p, ok := parent.Cells.Lookup(e.Parent)
		if !ok {
			return nil, fmt.Errorf("bayes %s/%s parent [%s]: %w", parent.Name, child.Name, indexKey(e.Parent), ErrCellNotFound)
		}
		c, ok := child.Cells.Lookup(e.Child)
		if !ok {
			return nil, fmt.Errorf("bayes %s/%s child [%s]: %w", parent.Name, child.Name, indexKey(e.Child), ErrCellNotFound)
		}
		t.probs[CellPair{p, c}] = e.Probability
	}
	return t, nil
}

// BuildBayesTables builds a table for every parent/child bone pair that both
// have graphs, observing every frame of every clip.
func BuildBayesTables(skel motion.Skeleton, clips []motion.Clip, graphs map[string]*BoneGraph) ([]*BayesTable, error) {
	var out []*BayesTable
	for _, child := range skel.Bones {
		cg, ok := graphs[child.Name]
		if !ok || child.Parent == "" {
			continue
		}
		pg, ok := graphs[child.Parent]
		if !ok {
			continue
		}
		parent, _ := skel.Bone(child.Parent)
		t := NewBayesTable(pg, cg)
		for _, clip := range clips {
			pa, err := clip.Angles(parent)
			if err != nil {
				return nil, err
			}
			ca, err := clip.Angles(child)
			if err != nil {
				return nil, err
			}
			for i := range pa {
				if err := t.Observe(pa[i], ca[i]); err != nil {
					return nil, fmt.Errorf("clip %q frame %d: %w", clip.Name, i, err)
				}
			}
		}
		t.Normalize()
		out = append(out, t)
	}
	return out, nil
}
