// Package board implements the static puzzle geometry and the dynamic
// per-state representation described in spec §3/§4.1: the immutable
// Board, the compact hashable State, and level-text parsing.
package board

import "fmt"

// Cell is a linear index into a Board's cell grid (y*Width+x). A
// negative Cell is never valid and is used as a sentinel.
type Cell int32

// Invalid marks the absence of a cell (no player found yet, a
// neighbor that falls outside the grid, ...).
const Invalid Cell = -1

// Kind classifies a single cell of the static board.
type Kind uint8

const (
	// Outside marks unreachable exterior; it is not part of the playing field.
	Outside Kind = iota
	Wall
	Floor
)

// Direction is one of the four push/walk directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directions = [4]Direction{Up, Down, Left, Right}

// Directions returns all four directions in a fixed, deterministic order.
func Directions() [4]Direction { return directions }

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "?"
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("invalid direction %d", d))
}

func (d Direction) dx() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	}
	return 0
}

func (d Direction) dy() int {
	switch d {
	case Up:
		return -1
	case Down:
		return 1
	}
	return 0
}

// Board is the immutable geometry of a puzzle, plus the results of the
// one-time pre-analysis described in spec §4.1/§4.4.1. The geometry
// fields are set once by Load and never change; the pre-analysis
// fields (DeadSquares, Rooms, PackingOrder, DistanceToTarget) start
// nil/empty and are filled in exactly once by Prepare (see the root
// sokoban package), which is the only place spec §4.2/§4.4.1's
// algorithms are invoked — this package only stores their results, to
// keep board free of a dependency on the deadlock/feature packages
// that compute them.
type Board struct {
	Width, Height int
	kind          []Kind

	// Targets is the sorted list of target cells.
	Targets []Cell

	// PlayerStart is the player cell found while parsing.
	PlayerStart Cell

	// DeadSquares is the set of floor cells from which no box can ever
	// reach any target (spec §4.2(a)). Filled in once by Prepare.
	DeadSquares map[Cell]bool

	// Rooms is the room/tunnel decomposition (spec §4.4.1). Filled in
	// once by Prepare.
	Rooms *Rooms

	// PackingOrder is the preferred target-fill order (spec §4.4.1).
	// Filled in once by Prepare.
	PackingOrder []Cell

	// DistanceToTarget[c][t] is the minimum single-box push distance
	// from c to target t, ignoring all other boxes; math.MaxInt32 (via
	// Unreachable) if unreachable. Filled in once by Prepare.
	DistanceToTarget map[Cell]map[Cell]int

	zobrist *zobristTable
}

// Unreachable is the sentinel distance for a cell/target pair with no
// single-box path (spec §3's "∞").
const Unreachable = 1<<31 - 1

// New builds a Board from parsed geometry. It does not run the
// pre-analysis (dead squares, rooms, packing order, distances) — call
// Prepare for that.
func New(width, height int, kind []Kind, targets []Cell, playerStart Cell) *Board {
	return &Board{
		Width:       width,
		Height:      height,
		kind:        kind,
		Targets:     targets,
		PlayerStart: playerStart,
	}
}

// Size returns Width*Height, the number of cells (including Outside ones).
func (b *Board) Size() int { return b.Width * b.Height }

// At returns the static kind of c, or Outside if c is out of range.
func (b *Board) At(c Cell) Kind {
	if c < 0 || int(c) >= len(b.kind) {
		return Outside
	}
	return b.kind[c]
}

// IsFloor reports whether c is playable floor (a box or the player may stand there).
func (b *Board) IsFloor(c Cell) bool { return b.At(c) == Floor }

// IsWall reports whether c is a wall.
func (b *Board) IsWall(c Cell) bool { return b.At(c) == Wall }

// IsTarget reports whether c is one of the target cells.
func (b *Board) IsTarget(c Cell) bool {
	_, ok := search(b.Targets, c)
	return ok
}

// IsDead reports whether c is a statically dead square. Always false
// before Prepare has run.
func (b *Board) IsDead(c Cell) bool {
	return b.DeadSquares != nil && b.DeadSquares[c]
}

// XY decomposes a Cell into (x, y).
func (b *Board) XY(c Cell) (x, y int) {
	return int(c) % b.Width, int(c) / b.Width
}

// CellAt composes (x, y) into a Cell. It does not check bounds.
func (b *Board) CellAt(x, y int) Cell {
	return Cell(y*b.Width + x)
}

// InBounds reports whether (x, y) lies within the grid (may still be Outside/Wall).
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Neighbor returns the cell adjacent to c in direction d, and whether
// that cell is within the grid bounds at all (it may still be Outside/Wall).
func (b *Board) Neighbor(c Cell, d Direction) (Cell, bool) {
	x, y := b.XY(c)
	nx, ny := x+d.dx(), y+d.dy()
	if !b.InBounds(nx, ny) {
		return Invalid, false
	}
	return b.CellAt(nx, ny), true
}

// DirectionTo returns the direction d such that Neighbor(from, d) == to,
// and whether to is in fact adjacent to from.
func (b *Board) DirectionTo(from, to Cell) (Direction, bool) {
	for _, d := range Directions() {
		if n, ok := b.Neighbor(from, d); ok && n == to {
			return d, true
		}
	}
	return Up, false
}

// ManhattanDistance returns |x1-x2|+|y1-y2| between two cells.
func (b *Board) ManhattanDistance(a, c Cell) int {
	ax, ay := b.XY(a)
	cx, cy := b.XY(c)
	return absInt(ax-cx) + absInt(ay-cy)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// search is a tiny binary search helper over a Board's sorted Cell slices
// (Targets, and State.Boxes elsewhere), mirroring the sorted-slice
// representation the teacher's sokoban example uses for box sets.
func search(sorted []Cell, c Cell) (int, bool) {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(sorted) && sorted[lo] == c {
		return lo, true
	}
	return lo, false
}
