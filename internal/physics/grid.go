package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CellKey addresses one cell of the uniform spatial grid.
type CellKey struct {
	X, Y, Z int
}

func cellForPosition(pos rl.Vector3, cellSize float32) CellKey {
	return CellKey{
		X: int(pos.X / cellSize),
		Y: int(pos.Y / cellSize),
		Z: int(pos.Z / cellSize),
	}
}

// bodyPair is the canonical unordered pair key: smaller body ID first.
type bodyPair struct {
	a, b uint64
}

func makePair(a, b *Body) bodyPair {
	if a.ID > b.ID {
		return bodyPair{a: b.ID, b: a.ID}
	}
	return bodyPair{a: a.ID, b: b.ID}
}

// rebuildGrid clears and repopulates the spatial hash grid. Each body lands
// in exactly one cell, the one holding its center. A body whose AABB spans a
// cell boundary can therefore be missed by a neighbor bucketed next door;
// that is a known trade-off of this grid, not an oversight to patch here.
func (w *World) rebuildGrid() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, b := range w.bodies {
		cell := cellForPosition(b.Position, w.GridSize)
		w.grid[cell] = append(w.grid[cell], b)
	}
}

// gridPairs enumerates unordered same-cell candidate pairs. Bodies are
// visited in insertion order and each bucket is filled in insertion order,
// so the resulting pair sequence is deterministic across runs.
func (w *World) gridPairs(visit func(a, b *Body)) {
	checked := make(map[bodyPair]bool)

	for _, b := range w.bodies {
		cell := cellForPosition(b.Position, w.GridSize)
		for _, other := range w.grid[cell] {
			if b == other {
				continue
			}
			key := makePair(b, other)
			if checked[key] {
				continue
			}
			checked[key] = true
			visit(b, other)
		}
	}
}
