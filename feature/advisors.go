package feature

import (
	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/macro"
	"github.com/samber/lo"
)

// Weighted pairs a candidate macro move with its advisor-assigned
// weight (spec §4.4.3: 0 for an advisor-nominated move, 1 otherwise).
type Weighted struct {
	Move   macro.MacroMove
	Weight int
}

// advisor is the shared shape of the seven move-weighting heuristics:
// given the state before the move, its feature coordinate, the
// candidate list and each candidate's resulting coordinate, nominate
// at most one candidate by index.
type advisor interface {
	consider(b *board.Board, s board.State, before Coord, moves []macro.MacroMove, afters []Coord) (int, bool)
}

// WeighMoves implements spec §4.4.3/§4.4.4's weight_moves: every
// candidate starts at weight 1; each advisor runs in its fixed order
// (1→7) and, if it nominates a move, that move's weight drops to 0.
// The seventh advisor (Forcer) only runs if advisors 1–6 nominated
// nothing at all, per the Open Question resolution in this package's
// design notes.
func WeighMoves(b *board.Board, s board.State, moves []macro.MacroMove) []Weighted {
	before := Project(b, s)
	afters := make([]Coord, len(moves))
	for i, m := range moves {
		afters[i] = Project(b, m.Result)
	}

	weights := make([]int, len(moves))
	for i := range weights {
		weights[i] = 1
	}

	primary := []advisor{
		packer{}, connectivityOpener{}, roomOpener{},
		outOfPlanReducer{}, hotspotResolver{}, clearer{},
	}
	anyFired := false
	for _, a := range primary {
		if idx, ok := a.consider(b, s, before, moves, afters); ok {
			weights[idx] = 0
			anyFired = true
		}
	}
	if !anyFired {
		if idx, ok := (forcer{}).consider(b, s, before, moves, afters); ok {
			weights[idx] = 0
		}
	}

	out := make([]Weighted, len(moves))
	for i, m := range moves {
		out[i] = Weighted{Move: m, Weight: weights[i]}
	}
	return out
}

// packer (advisor 1): a move that increases f_pack, preferring the
// one that fills the next-in-order packing target exactly.
type packer struct{}

func (packer) consider(b *board.Board, _ board.State, before Coord, moves []macro.MacroMove, afters []Coord) (int, bool) {
	next := board.Invalid
	if before.Pack < len(b.PackingOrder) {
		next = b.PackingOrder[before.Pack]
	}
	candidates := lo.Filter(lo.Range(len(moves)), func(i, _ int) bool {
		return afters[i].Pack > before.Pack
	})
	if len(candidates) == 0 {
		return -1, false
	}
	if i, found := lo.Find(candidates, func(i int) bool { return moves[i].Destination == next }); found {
		return i, true
	}
	return candidates[0], true
}

// connectivityOpener (advisor 2): a move that reduces f_conn.
type connectivityOpener struct{}

func (connectivityOpener) consider(_ *board.Board, _ board.State, before Coord, _ []macro.MacroMove, afters []Coord) (int, bool) {
	_, idx, ok := lo.FindIndexOf(afters, func(c Coord) bool { return c.Conn < before.Conn })
	return idx, ok
}

// roomOpener (advisor 3): a move that reduces f_room by clearing an
// obstructed room link.
type roomOpener struct{}

func (roomOpener) consider(_ *board.Board, _ board.State, before Coord, _ []macro.MacroMove, afters []Coord) (int, bool) {
	_, idx, ok := lo.FindIndexOf(afters, func(c Coord) bool { return c.Room < before.Room })
	return idx, ok
}

// outOfPlanReducer (advisor 4): a move that reduces f_oop.
type outOfPlanReducer struct{}

func (outOfPlanReducer) consider(_ *board.Board, _ board.State, before Coord, _ []macro.MacroMove, afters []Coord) (int, bool) {
	_, idx, ok := lo.FindIndexOf(afters, func(c Coord) bool { return c.OOP < before.OOP })
	return idx, ok
}

// hotspotResolver (advisor 5): a box sitting on another box's straight
// line to its nearest unfilled target blocks that box; nominate any
// candidate that moves the blocking box.
type hotspotResolver struct{}

func (hotspotResolver) consider(b *board.Board, s board.State, _ Coord, moves []macro.MacroMove, _ []Coord) (int, bool) {
	hotspot, ok := findHotspot(b, s)
	if !ok {
		return -1, false
	}
	for i, m := range moves {
		if m.Box == hotspot {
			return i, true
		}
	}
	return -1, false
}

// clearer (advisor 6): a move that reduces f_conn by pushing a box
// that sits directly on the boundary of the player's current zone —
// narrower than connectivityOpener, which fires for any f_conn drop
// regardless of where the moved box started.
type clearer struct{}

func (clearer) consider(b *board.Board, s board.State, before Coord, moves []macro.MacroMove, afters []Coord) (int, bool) {
	zone := s.PlayerZone(b)
	for i, m := range moves {
		if afters[i].Conn >= before.Conn {
			continue
		}
		if adjacentToZone(b, zone, m.Box) {
			return i, true
		}
	}
	return -1, false
}

// forcer (advisor 7): when nothing else fires, push any box that
// gains the player new reachable cells.
type forcer struct{}

func (forcer) consider(b *board.Board, s board.State, _ Coord, moves []macro.MacroMove, _ []Coord) (int, bool) {
	before := len(s.PlayerZone(b))
	zoneSizes := lo.Map(moves, func(m macro.MacroMove, _ int) int {
		return len(m.Result.PlayerZone(b))
	})
	_, idx, ok := lo.FindIndexOf(zoneSizes, func(n int) bool { return n > before })
	return idx, ok
}

func adjacentToZone(b *board.Board, zone map[board.Cell]bool, box board.Cell) bool {
	for _, d := range board.Directions() {
		n, ok := b.Neighbor(box, d)
		if ok && zone[n] {
			return true
		}
	}
	return false
}

// findHotspot returns a box that lies on the straight-line path
// between some other box and that other box's nearest unfilled
// target. The first match in box (cell) order wins.
func findHotspot(b *board.Board, s board.State) (board.Cell, bool) {
	for _, boxed := range s.Boxes {
		if b.IsTarget(boxed) {
			continue
		}
		target, ok := nearestTarget(b, s, boxed)
		if !ok {
			continue
		}
		for _, other := range s.Boxes {
			if other == boxed {
				continue
			}
			if onStraightLineBetween(b, boxed, other, target) {
				return other, true
			}
		}
	}
	return board.Invalid, false
}

func nearestTarget(b *board.Board, s board.State, box board.Cell) (board.Cell, bool) {
	best := board.Invalid
	bestDist := board.Unreachable
	for _, t := range b.Targets {
		if s.HasBox(t) {
			continue
		}
		d := b.ManhattanDistance(box, t)
		if dists, ok := b.DistanceToTarget[box]; ok {
			if pd, ok := dists[t]; ok {
				d = pd
			}
		}
		if d < bestDist {
			bestDist, best = d, t
		}
	}
	return best, best != board.Invalid
}

// onStraightLineBetween reports whether mid lies strictly between from
// and to on the same row or column.
func onStraightLineBetween(b *board.Board, from, mid, to board.Cell) bool {
	fx, fy := b.XY(from)
	mx, my := b.XY(mid)
	tx, ty := b.XY(to)
	if fx == tx && mx == fx {
		return between(fy, my, ty)
	}
	if fy == ty && my == fy {
		return between(fx, mx, tx)
	}
	return false
}

func between(lo, v, hi int) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo < v && v < hi
}
