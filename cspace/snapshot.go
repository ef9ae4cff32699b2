package cspace

import (
	"fmt"

	"github.com/katalvlaran/choreo/core"
)

// Snapshot is the serializable form of a BoneGraph. Cells lists the cell
// table in ID order; edges reference cells by index tuple and keep ID order.
type Snapshot struct {
	Name     string       `msgpack:"name"`
	DOF      int          `msgpack:"dof"`
	Interval float64      `msgpack:"interval"`
	Cells    [][]int      `msgpack:"cells"`
	Edges    []EdgeRecord `msgpack:"edges"`
}

// EdgeRecord is one serialized transition.
type EdgeRecord struct {
	From   []int   `msgpack:"from"`
	To     []int   `msgpack:"to"`
	Count  int     `msgpack:"count"`
	Weight float64 `msgpack:"weight"`
}

// Snapshot exports bg deterministically.
func (bg *BoneGraph) Snapshot() Snapshot {
	s := Snapshot{Name: bg.Name, DOF: bg.DOF, Interval: bg.Interval}
	n := bg.Cells.Len()
	for id := CellID(0); int(id) < n; id++ {
		c, _ := bg.Cells.Cell(id)
		if len(c.Index) == bg.DOF {
			s.Cells = append(s.Cells, c.Index)
		}
	}
	for _, e := range bg.Edges() {
		from, _ := bg.Cells.Cell(e.From)
		to, _ := bg.Cells.Cell(e.To)
		s.Edges = append(s.Edges, EdgeRecord{From: from.Index, To: to.Index, Count: e.Count, Weight: e.Weight})
	}
	return s
}

// Restore rebuilds a BoneGraph from a snapshot without renormalizing.
func Restore(s Snapshot) (*BoneGraph, error) {
	if s.DOF <= 0 {
		return nil, fmt.Errorf("snapshot %q: %w", s.Name, ErrZeroDOF)
	}
	if !(s.Interval > 0 && s.Interval <= fullTurn) {
		return nil, fmt.Errorf("snapshot %q: interval %g: %w", s.Name, s.Interval, core.ErrPrecondition)
	}
	cells := NewCellTable()
	for _, idx := range s.Cells {
		cells.Intern(idx)
	}
	ix := core.NewIndexed[CellID]()
	for i, r := range s.Edges {
		if len(r.From) != s.DOF || len(r.To) != s.DOF {
			return nil, fmt.Errorf("snapshot %q edge %d: %w", s.Name, i, core.ErrPrecondition)
		}
		_, err := ix.Graph.Add(core.Edge[CellID]{
			From:   cells.Intern(r.From),
			To:     cells.Intern(r.To),
			Count:  r.Count,
			Weight: r.Weight,
		})
		if err != nil {
			return nil, err
		}
	}
	return &BoneGraph{Name: s.Name, DOF: s.DOF, Interval: s.Interval, Cells: cells, Index: ix}, nil
}
