package board

import (
	"sort"

	"github.com/pkg/errors"
)

// State is the mutable puzzle configuration: the set of box cells plus
// the player's canonical cell (spec §3). Two States with the same
// Boxes whose Player cells lie in the same reachability zone are
// equivalent for search purposes and canonicalize to the same Hash.
type State struct {
	// Boxes is the sorted list of cells occupied by boxes.
	Boxes []Cell
	// Player is the canonical player cell: the lexicographically
	// smallest cell in the player's reachability zone.
	Player Cell

	hash uint64
}

// HasBox reports whether c is occupied by a box.
func (s State) HasBox(c Cell) bool {
	_, ok := search(s.Boxes, c)
	return ok
}

// Hash returns the state's stable 64-bit Zobrist fingerprint. It is a
// pure function of Boxes and the canonical Player cell.
func (s State) Hash() uint64 { return s.hash }

// BoxesOnTarget counts boxes currently sitting on a target cell.
func (s State) BoxesOnTarget(b *Board) int {
	n := 0
	for _, box := range s.Boxes {
		if b.IsTarget(box) {
			n++
		}
	}
	return n
}

// IsGoal reports whether every box occupies a target cell.
func (s State) IsGoal(b *Board) bool {
	for _, box := range s.Boxes {
		if !b.IsTarget(box) {
			return false
		}
	}
	return true
}

// Equal reports whether two states have identical box sets and
// canonical player cells. Used by the transposition table to verify
// an apparent hash collision is a genuine duplicate (spec §9).
func (s State) Equal(o State) bool {
	if s.Player != o.Player || len(s.Boxes) != len(o.Boxes) {
		return false
	}
	for i, c := range s.Boxes {
		if o.Boxes[i] != c {
			return false
		}
	}
	return true
}

// NewState builds and canonicalizes a state from an unsorted box list
// and the player's actual (not yet canonical) cell.
func NewState(b *Board, boxes []Cell, player Cell) State {
	sorted := append([]Cell(nil), boxes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	s := State{Boxes: sorted, Player: player}
	return s.canonicalize(b)
}

// WithBoxMoved returns a new State with the box at `from` moved to `to`
// and the player placed at `playerAt` (the cell the box was pushed
// from), canonicalized. The receiver is left unmodified.
func (s State) WithBoxMoved(b *Board, from, to, playerAt Cell) State {
	next := make([]Cell, len(s.Boxes))
	copy(next, s.Boxes)
	idx, ok := search(next, from)
	if !ok {
		panic(errors.Wrap(ErrInvariant, "WithBoxMoved: no box at source cell"))
	}
	next[idx] = to
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	ns := State{Boxes: next, Player: playerAt}
	return ns.canonicalize(b)
}

// canonicalize computes the reachability zone of the player (boxes act
// as walls, 4-connected flood fill), replaces Player with the
// lexicographically smallest cell in that zone, and derives Hash. This
// is the one authoritative place State.Player/Hash are assigned.
func (s State) canonicalize(b *Board) State {
	zoneRep := floodFillRepresentative(b, s)
	s.Player = zoneRep
	s.hash = b.zobristHash(s)
	return s
}

// PlayerZone returns every cell reachable by the player without
// pushing, starting from s.Player (already canonical, or any cell in
// the same zone — the flood fill is zone-invariant).
func (s State) PlayerZone(b *Board) map[Cell]bool {
	zone := make(map[Cell]bool)
	floodFill(b, s, s.Player, zone)
	return zone
}

// CanReach reports whether the player can walk to c without pushing
// any box, starting from the state's current zone.
func (s State) CanReach(b *Board, c Cell) bool {
	if !b.IsFloor(c) || s.HasBox(c) {
		return false
	}
	return s.PlayerZone(b)[c]
}

func floodFillRepresentative(b *Board, s State) Cell {
	zone := make(map[Cell]bool)
	floodFill(b, s, s.Player, zone)
	best := s.Player
	first := true
	for c := range zone {
		if first || c < best {
			best = c
			first = false
		}
	}
	return best
}

// floodFill performs a 4-connected flood fill from start over floor cells
// not occupied by a box, recording every visited cell into zone. It is a
// tight, allocation-light routine deliberately kept separate from the
// generic internal/search engine: canonicalize runs on every single
// search node, so this hot path is a plain stack-of-cells walk rather
// than a State/Context-shaped search.
func floodFill(b *Board, s State, start Cell, zone map[Cell]bool) {
	if !b.IsFloor(start) || s.HasBox(start) {
		return
	}
	queue := []Cell{start}
	zone[start] = true
	for len(queue) > 0 {
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, d := range Directions() {
			n, ok := b.Neighbor(c, d)
			if !ok || zone[n] || !b.IsFloor(n) || s.HasBox(n) {
				continue
			}
			zone[n] = true
			queue = append(queue, n)
		}
	}
}
