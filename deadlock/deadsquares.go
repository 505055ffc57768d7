// Package deadlock implements the four-check deadlock detector of
// spec §4.2: static dead squares, the per-move freeze check, the
// bounded corral side-search, and the bipartite feasibility check.
package deadlock

import "github.com/jnoundu89/sokoban-fess/board"

// ComputeDeadSquares performs the static retrograde flood fill of
// spec §4.2(a): starting from every target, it repeatedly marks every
// floor cell from which a box could be pulled to the current frontier
// (the reverse of pushing a box onto an already-reachable cell). Any
// floor cell never marked is a dead square — a box placed there can
// never reach any target by any sequence of pushes, ignoring all other
// boxes on the board.
func ComputeDeadSquares(b *board.Board) map[board.Cell]bool {
	reachable := make(map[board.Cell]bool)
	var queue []board.Cell
	for _, t := range b.Targets {
		reachable[t] = true
		queue = append(queue, t)
	}

	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, d := range board.Directions() {
			// p is the cell a box would sit at before being pushed, in
			// direction d, onto the already-reachable q.
			p, ok := b.Neighbor(q, d.Opposite())
			if !ok || reachable[p] || !b.IsFloor(p) {
				continue
			}
			// The player must be able to stand on the far side of p
			// (opposite the push direction) to perform that push.
			standing, ok := b.Neighbor(p, d.Opposite())
			if !ok || !b.IsFloor(standing) {
				continue
			}
			reachable[p] = true
			queue = append(queue, p)
		}
	}

	dead := make(map[board.Cell]bool)
	for c := 0; c < b.Size(); c++ {
		cell := board.Cell(c)
		if b.IsFloor(cell) && !reachable[cell] {
			dead[cell] = true
		}
	}
	return dead
}
