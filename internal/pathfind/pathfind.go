// Package pathfind implements reactive A* pathfinding over the hex grid,
// returning only the single next step rather than a full route, since the
// grid's occupancy changes every tick and a cached multi-step path would
// go stale (spec.md §4.5 "movement"). Grounded on
// original_source/src/core/pathfinding.py's A* implementation and the
// teacher's tryMoveTowards greedy-step approach, generalized from a
// square grid onto hexcoord.Coord with the stdlib container/heap as the
// open-set priority queue — no priority-queue library exists anywhere in
// the retrieved corpus, so this one concern stays on the standard
// library by design.
package pathfind

import (
	"container/heap"

	"hexbattle/internal/hexcoord"
	"hexbattle/internal/hexgrid"
)

type openItem struct {
	coord hexcoord.Coord
	f     int
}

type openQueue []openItem

func (q openQueue) Len() int            { return len(q) }
func (q openQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q openQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x interface{}) { *q = append(*q, x.(openItem)) }
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// NextStep returns the hex the unit at start should move into this tick
// to make progress toward goal, or false if no path exists (goal
// unreachable, or start==goal already). It walks the grid fresh every
// call rather than caching, so moving units are always routed around the
// latest occupancy.
func NextStep(g *hexgrid.Grid, start, goal hexcoord.Coord) (hexcoord.Coord, bool) {
	if start == goal {
		return start, false
	}

	cameFrom := map[hexcoord.Coord]hexcoord.Coord{}
	gScore := map[hexcoord.Coord]int{start: 0}
	open := &openQueue{{coord: start, f: start.Distance(goal)}}
	visited := map[hexcoord.Coord]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(openItem).coord
		if visited[cur] {
			continue
		}
		visited[cur] = true

		if cur == goal {
			return firstStep(cameFrom, start, goal), true
		}

		for _, n := range cur.Neighbors() {
			if !g.InBounds(n) {
				continue
			}
			if n != goal && !g.IsWalkable(n) {
				continue
			}
			tentative := gScore[cur] + 1
			if existing, ok := gScore[n]; ok && existing <= tentative {
				continue
			}
			gScore[n] = tentative
			cameFrom[n] = cur
			heap.Push(open, openItem{coord: n, f: tentative + n.Distance(goal)})
		}
	}
	return hexcoord.Coord{}, false
}

// firstStep walks cameFrom backward from goal to find the hex adjacent to
// start on the reconstructed path.
func firstStep(cameFrom map[hexcoord.Coord]hexcoord.Coord, start, goal hexcoord.Coord) hexcoord.Coord {
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok || prev == start {
			return cur
		}
		cur = prev
	}
}
