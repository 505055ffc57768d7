package feature

import "github.com/jnoundu89/sokoban-fess/board"

// pushSources returns every cell c from which some direction's push
// lands a box on p, ignoring any box occupancy — only wall/floor
// geometry matters. Used by the single-box distance table below; the
// packing-order analysis in packing.go applies the same geometry in its
// own pullable helper, with a box-occupancy check on top.
func pushSources(b *board.Board, p board.Cell) []board.Cell {
	var out []board.Cell
	for _, d := range board.Directions() {
		c, ok := b.Neighbor(p, d.Opposite())
		if !ok || !b.IsFloor(c) {
			continue
		}
		standing, ok := b.Neighbor(c, d.Opposite())
		if !ok || !b.IsFloor(standing) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ComputeDistances fills board.Board.DistanceToTarget: for every floor
// cell c, the minimum number of pushes needed to move a single box
// from c to each target t, ignoring every other box on the board
// (spec §4.1's `DistanceToTarget[c][t]` comment). Computed once by a
// retrograde BFS seeded at each target, walking pushSources backward,
// then transposed from the per-target BFS result into the per-cell
// shape callers (bipartite.go, advisors.go) index by box cell first.
func ComputeDistances(b *board.Board) map[board.Cell]map[board.Cell]int {
	result := make(map[board.Cell]map[board.Cell]int)
	for _, t := range b.Targets {
		dist := map[board.Cell]int{t: 0}
		queue := []board.Cell{t}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, c := range pushSources(b, cur) {
				if _, seen := dist[c]; seen {
					continue
				}
				dist[c] = dist[cur] + 1
				queue = append(queue, c)
			}
		}
		for cell := 0; cell < b.Size(); cell++ {
			c := board.Cell(cell)
			if !b.IsFloor(c) {
				continue
			}
			d, ok := dist[c]
			if !ok {
				d = board.Unreachable
			}
			if result[c] == nil {
				result[c] = make(map[board.Cell]int, len(b.Targets))
			}
			result[c][t] = d
		}
	}
	return result
}
