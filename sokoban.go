// Package sokoban is the external shell of the FESS Sokoban solver: it
// composes board loading, the board pre-analysis (dead squares, room
// decomposition, packing order, single-box distances), the deadlock
// detector, and the fess search engine behind one Solve entry point.
package sokoban

import (
	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/deadlock"
	"github.com/jnoundu89/sokoban-fess/feature"
)

// Re-exported core types, so a caller only needs to import this one
// package for the common case.
type (
	Board     = board.Board
	State     = board.State
	Cell      = board.Cell
	Direction = board.Direction
)

const (
	Up    = board.Up
	Down  = board.Down
	Left  = board.Left
	Right = board.Right
)

// Load parses level text into a Board plus its initial box placement
// (spec §4.1/§6). The returned Board has not yet been through Prepare.
func Load(levelText string) (*Board, []Cell, error) {
	return board.Load(levelText)
}

// Prepare runs the one-time pre-analysis spec §4.2(a) and §4.4.1
// require before the board can be searched: static dead squares, the
// room/tunnel decomposition, the preferred target packing order, and
// single-box push distances. It also seeds the board's Zobrist table,
// since dead-square/feature computation doesn't need it but every
// State built afterward does.
func Prepare(b *Board, zobristSeed int64) {
	b.InitZobrist(zobristSeed)
	b.DeadSquares = deadlock.ComputeDeadSquares(b)
	b.Rooms = feature.ComputeRooms(b)
	b.PackingOrder = feature.ComputePackingOrder(b)
	b.DistanceToTarget = feature.ComputeDistances(b)
}
