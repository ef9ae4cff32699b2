// SPDX-License-Identifier: MIT
// Package cspace - cell interning.

package cspace

import "sync"

// CellTable interns cell index tuples so that cells quantized from different
// clips compare equal by ID. One table normally lives for one graph build;
// pass it to several builders with WithCellTable to share IDs.
type CellTable struct {
	mu    sync.RWMutex
	byKey map[string]CellID
	cells []Cell
}

// NewCellTable returns an empty table.
func NewCellTable() *CellTable {
	return &CellTable{byKey: make(map[string]CellID)}
}

// Intern returns the ID of idx, allocating one on first sight.
func (t *CellTable) Intern(idx []int) CellID {
	key := indexKey(idx)
	t.mu.RLock()
	id, ok := t.byKey[key]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byKey[key]; ok {
		return id
	}
	id = CellID(len(t.cells))
	t.cells = append(t.cells, Cell{ID: id, Index: append([]int(nil), idx...)})
	t.byKey[key] = id
	return id
}

// Lookup returns the ID of idx without allocating.
func (t *CellTable) Lookup(idx []int) (CellID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byKey[indexKey(idx)]
	return id, ok
}

// Cell returns the cell with the given ID.
func (t *CellTable) Cell(id CellID) (Cell, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.cells) {
		return Cell{}, false
	}
	return t.cells[id], true
}

// Len reports the number of interned cells.
func (t *CellTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cells)
}
