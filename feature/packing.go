package feature

import "github.com/jnoundu89/sokoban-fess/board"

// ComputePackingOrder runs the retrograde analysis of spec §4.4.1:
// starting from the fully-packed goal (a box on every target), boxes
// are peeled off one at a time in the order they become pullable —
// each removal using the reverse of the push legality check (a box at
// p came from c = p-d with the player ending at p-2d, both of which
// must be floor and free of any box still waiting to be removed).
// Easy, open targets come off first; cramped, single-approach targets
// survive to the end. Reversing that removal order gives the packing
// order: the hardest target is planned first.
func ComputePackingOrder(b *board.Board) []board.Cell {
	remaining := make(map[board.Cell]bool, len(b.Targets))
	order := make([]board.Cell, len(b.Targets))
	copy(order, b.Targets)
	for _, t := range b.Targets {
		remaining[t] = true
	}

	var removal []board.Cell
	for len(remaining) > 0 {
		progressed := false
		for _, t := range order {
			if !remaining[t] {
				continue
			}
			if pullable(b, t, remaining) {
				removal = append(removal, t)
				delete(remaining, t)
				progressed = true
			}
		}
		if !progressed {
			// Mutually blocking targets: break the tie deterministically
			// by removing the first remaining one in input order rather
			// than looping forever.
			for _, t := range order {
				if remaining[t] {
					removal = append(removal, t)
					delete(remaining, t)
					break
				}
			}
		}
	}

	packingOrder := make([]board.Cell, len(removal))
	for i, t := range removal {
		packingOrder[len(removal)-1-i] = t
	}
	return packingOrder
}

// pullable reports whether the box sitting on target p can be pulled
// back to some neighboring cell without crossing any other
// still-remaining target box.
func pullable(b *board.Board, p board.Cell, remaining map[board.Cell]bool) bool {
	for _, d := range board.Directions() {
		c, ok := b.Neighbor(p, d.Opposite())
		if !ok || !b.IsFloor(c) || remaining[c] {
			continue
		}
		standing, ok := b.Neighbor(c, d.Opposite())
		if !ok || !b.IsFloor(standing) || remaining[standing] {
			continue
		}
		return true
	}
	return false
}
