// Package hexgrid implements the fixed-size occupancy map that backs unit
// placement and movement queries. Grounded on the teacher's
// Battle.occupied()/inBounds helpers (mini_bot_yml.go), generalized from a
// square R/C grid to axial hex coordinates.
package hexgrid

import "hexbattle/internal/hexcoord"

// Width and Height are fixed per spec.md §4.1.
const (
	Width  = 7
	Height = 8
)

// UnitID identifies the occupant of a hex. Defined here (not imported from
// internal/unit) to avoid a dependency cycle; internal/unit.ID is this
// same underlying type.
type UnitID string

// Grid is a mapping from hex coordinate to occupant. At most one live unit
// may occupy a hex at a time.
type Grid struct {
	occupants map[hexcoord.Coord]UnitID
	positions map[UnitID]hexcoord.Coord
}

func New() *Grid {
	return &Grid{
		occupants: make(map[hexcoord.Coord]UnitID),
		positions: make(map[UnitID]hexcoord.Coord),
	}
}

// InBounds reports whether c lies within the fixed grid rectangle. The
// rectangle is expressed in offset coordinates derived from axial (q, r);
// columns run 0..Width-1, rows 0..Height-1.
func InBounds(c hexcoord.Coord) bool {
	col := c.Q + (c.R-(c.R&1))/2
	row := c.R
	return col >= 0 && col < Width && row >= 0 && row < Height
}

// InBounds is the method form, for callers that only hold a *Grid.
func (g *Grid) InBounds(c hexcoord.Coord) bool { return InBounds(c) }

// Occupant returns the unit occupying c, or ("", false) if empty.
func (g *Grid) Occupant(c hexcoord.Coord) (UnitID, bool) {
	id, ok := g.occupants[c]
	return id, ok
}

// IsWalkable reports whether c is in bounds and unoccupied.
func (g *Grid) IsWalkable(c hexcoord.Coord) bool {
	if !InBounds(c) {
		return false
	}
	_, occupied := g.occupants[c]
	return !occupied
}

// PositionOf returns the current hex of a placed unit.
func (g *Grid) PositionOf(id UnitID) (hexcoord.Coord, bool) {
	c, ok := g.positions[id]
	return c, ok
}

// Place puts id at c. Returns false if c is already occupied by a
// different unit (invariant violation — callers must check IsWalkable
// first for anything but initial placement).
func (g *Grid) Place(id UnitID, c hexcoord.Coord) bool {
	if occ, ok := g.occupants[c]; ok && occ != id {
		return false
	}
	if old, ok := g.positions[id]; ok {
		delete(g.occupants, old)
	}
	g.occupants[c] = id
	g.positions[id] = c
	return true
}

// Move relocates id from its current hex to c atomically. Returns false if
// c is occupied by a different unit.
func (g *Grid) Move(id UnitID, c hexcoord.Coord) bool {
	return g.Place(id, c)
}

// Vacate removes id from the grid (death).
func (g *Grid) Vacate(id UnitID) {
	if c, ok := g.positions[id]; ok {
		delete(g.occupants, c)
		delete(g.positions, id)
	}
}

// FreeNeighbor returns the first unoccupied in-bounds neighbor of c, in
// clockwise-from-East order, or (zero, false) if none is free.
func FreeNeighbor(g *Grid, c hexcoord.Coord) (hexcoord.Coord, bool) {
	for _, n := range c.Neighbors() {
		if g.IsWalkable(n) {
			return n, true
		}
	}
	return hexcoord.Coord{}, false
}
