// Package combinatoric exposes the joint pose space of several bones as one
// lazily enumerated product graph.
//
// A Node holds one cell per bone. Its successors are the cross product of
// the per-bone successors and are never materialized: Successors walks an
// odometer over the per-bone successor lists each time it is called. The
// graph satisfies search.Graph[Node], so every search in package search
// runs on it unchanged.
package combinatoric

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
)

// Sentinel errors, all preconditions.
var (
	ErrNoBones     = fmt.Errorf("combinatoric: no bone graphs: %w", core.ErrPrecondition)
	ErrNilGraph    = fmt.Errorf("combinatoric: nil bone graph: %w", core.ErrPrecondition)
	ErrUnknownBone = fmt.Errorf("combinatoric: bone not in graph: %w", core.ErrPrecondition)
	ErrMissingBone = fmt.Errorf("combinatoric: node lacks a bone: %w", core.ErrPrecondition)
	ErrForeignNode = fmt.Errorf("combinatoric: node belongs to another graph: %w", core.ErrPrecondition)
)

// boneSet is shared by every node of one Graph.
type boneSet struct {
	names  []string
	graphs []*cspace.BoneGraph
	pos    map[string]int
}

// Node is one joint pose: a cell per bone, in lexical bone order. It is a
// comparable value usable as a map key.
type Node struct {
	bones *boneSet
	cells string // big-endian uint32 per bone
}

func pack(ids []cspace.CellID) string {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}

// Cell returns the cell of the named bone.
func (n Node) Cell(bone string) (cspace.CellID, bool) {
	if n.bones == nil {
		return 0, false
	}
	i, ok := n.bones.pos[bone]
	if !ok {
		return 0, false
	}
	return n.at(i), true
}

func (n Node) at(i int) cspace.CellID {
	return cspace.CellID(binary.BigEndian.Uint32([]byte(n.cells[4*i : 4*i+4])))
}

// Cells returns bone → cell.
func (n Node) Cells() map[string]cspace.CellID {
	if n.bones == nil {
		return nil
	}
	out := make(map[string]cspace.CellID, len(n.bones.names))
	for i, name := range n.bones.names {
		out[name] = n.at(i)
	}
	return out
}

// String renders the node as "{elbow:[2] knee:[7,1]}".
func (n Node) String() string {
	if n.bones == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range n.bones.names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		id := n.at(i)
		if cell, ok := n.bones.graphs[i].Cell(id); ok {
			fmt.Fprintf(&sb, "%s:[%s]", name, cell)
		} else {
			fmt.Fprintf(&sb, "%s:#%d", name, id)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
