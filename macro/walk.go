package macro

import (
	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/internal/search"
)

// walkState is one player position during an obstacle-aware walk query.
// It reuses the generic internal/search engine the same way the
// teacher's sokoban example farms player path-finding out to a nested
// BFS sub-search: boxes (all of them, including the one mid-push) are
// fixed obstacles, and the goal is simply "arrived at target".
type walkState struct {
	b      *board.Board
	boxes  map[board.Cell]bool
	cell   board.Cell
	target board.Cell
	depth  int
}

func (w walkState) Cost(search.Context) float64 { return float64(w.depth) }
func (w walkState) Heuristic(search.Context) float64 {
	return float64(w.b.ManhattanDistance(w.cell, w.target))
}
func (w walkState) IsGoal(search.Context) bool { return w.cell == w.target }
func (w walkState) Id() interface{}            { return w.cell }

func (w walkState) Expand(search.Context) []search.State {
	var out []search.State
	for _, d := range board.Directions() {
		n, ok := w.b.Neighbor(w.cell, d)
		if !ok || !w.b.IsFloor(n) || w.boxes[n] {
			continue
		}
		out = append(out, walkState{w.b, w.boxes, n, w.target, w.depth + 1})
	}
	return out
}

// cellCPMap is a CPMap keyed directly by board.Cell (a Go map, not a
// dense array), rather than by the interface{} value of State.Id().
type cellCPMap map[board.Cell]search.CPNode

func (m cellCPMap) Get(s search.State) (search.CPNode, bool) {
	v, ok := m[s.(walkState).cell]
	return v, ok
}
func (m cellCPMap) Put(s search.State, v search.CPNode) { m[s.(walkState).cell] = v }
func (m cellCPMap) Clear() {
	for k := range m {
		delete(m, k)
	}
}

// canWalk reports whether the player can reach `to` from `from` without
// stepping onto any cell in boxes (spec §4.3: "the player can reach
// c-d without crossing a box").
func canWalk(b *board.Board, boxes map[board.Cell]bool, from, to board.Cell) bool {
	if from == to {
		return true
	}
	if !b.IsFloor(to) || boxes[to] {
		return false
	}
	root := walkState{b, boxes, from, to, 0}
	result := search.NewSolver(root).
		Algorithm(search.Astar).
		Constraint(search.CheapestPathConstraint(cellCPMap{})).
		Solve()
	return result.Solved()
}
