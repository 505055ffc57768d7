// Package macro implements the macro-move generator of spec §4.3: for
// a given state, every legal single-box push sequence reachable
// from it, each expressed as the box's source cell, destination cell,
// and the resulting board state.
package macro

import (
	"sort"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/samber/lo"
)

// MacroMove is one (box, destination) pair reachable by pushing a
// single box one or more times, with player repositioning between
// pushes, ending with the player on the pushing side of the box's new
// position. Result is the already-canonicalized state that applying
// the move produces.
type MacroMove struct {
	Box         board.Cell
	Destination board.Cell
	PushCount   int
	Result      board.State

	// Path lists the box's cell after each individual push in the
	// sequence, in order; Path[len(Path)-1] == Destination. Together
	// with Box (the position before the first push) this lets a caller
	// reconstruct the primitive (box_cell, direction) pushes a macro
	// move compresses (spec §6's `moves` field).
	Path []board.Cell
}

type boxKey struct {
	box  board.Cell
	zone board.Cell
}

// Generate returns every macro move available from s, ordered ascending
// by the destination's Manhattan distance to the nearest unfilled
// target (stable among ties), per spec §4.3. It is a pure function of
// (b, s); invoking it again restarts the enumeration from scratch.
func Generate(b *board.Board, s board.State) []MacroMove {
	var moves []MacroMove
	for _, box := range s.Boxes {
		moves = append(moves, generateForBox(b, s, box)...)
	}

	unfilled := unfilledTargets(b, s)
	sort.SliceStable(moves, func(i, j int) bool {
		return nearestTargetDistance(b, unfilled, moves[i].Destination) <
			nearestTargetDistance(b, unfilled, moves[j].Destination)
	})
	return moves
}

type pushNode struct {
	boxCell   board.Cell
	state     board.State
	pushCount int
	path      []board.Cell
}

// generateForBox performs the breadth-first push expansion described in
// spec §4.3 for a single box: from each reached box position, try all
// four push directions, requiring the destination be free floor and
// the player able to reach the pushing-side cell without crossing any
// box (canWalk, which reuses internal/search). Duplicates are
// suppressed by (box_cell, player_zone_after_push), exactly as spec §4.3
// specifies.
func generateForBox(b *board.Board, s board.State, box board.Cell) []MacroMove {
	otherBoxes := make(map[board.Cell]bool, len(s.Boxes)-1)
	for _, c := range s.Boxes {
		if c != box {
			otherBoxes[c] = true
		}
	}

	visited := map[boxKey]bool{{box, s.Player}: true}
	queue := []pushNode{{boxCell: box, state: s, pushCount: 0}}
	var moves []MacroMove

	extendPath := func(p []board.Cell, dest board.Cell) []board.Cell {
		next := make([]board.Cell, len(p)+1)
		copy(next, p)
		next[len(p)] = dest
		return next
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		obstacles := make(map[board.Cell]bool, len(otherBoxes)+1)
		for c := range otherBoxes {
			obstacles[c] = true
		}
		obstacles[cur.boxCell] = true

		for _, d := range board.Directions() {
			dest, ok := b.Neighbor(cur.boxCell, d)
			if !ok || !b.IsFloor(dest) || otherBoxes[dest] {
				continue
			}
			standing, ok := b.Neighbor(cur.boxCell, d.Opposite())
			if !ok || !b.IsFloor(standing) || otherBoxes[standing] {
				continue
			}
			if !canWalk(b, obstacles, cur.state.Player, standing) {
				continue
			}

			next := cur.state.WithBoxMoved(b, cur.boxCell, dest, standing)
			key := boxKey{dest, next.Player}
			if visited[key] {
				continue
			}
			visited[key] = true

			path := extendPath(cur.path, dest)
			node := pushNode{boxCell: dest, state: next, pushCount: cur.pushCount + 1, path: path}
			moves = append(moves, MacroMove{
				Box:         box,
				Destination: dest,
				PushCount:   node.pushCount,
				Result:      next,
				Path:        path,
			})
			queue = append(queue, node)
		}
	}
	return moves
}

func unfilledTargets(b *board.Board, s board.State) []board.Cell {
	return lo.Filter(b.Targets, func(t board.Cell, _ int) bool {
		return !s.HasBox(t)
	})
}

func nearestTargetDistance(b *board.Board, unfilled []board.Cell, c board.Cell) int {
	if len(unfilled) == 0 {
		return 0
	}
	distances := lo.Map(unfilled, func(t board.Cell, _ int) int {
		return b.ManhattanDistance(c, t)
	})
	return lo.Min(distances)
}
