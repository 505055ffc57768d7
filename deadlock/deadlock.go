package deadlock

import (
	"time"

	"github.com/jnoundu89/sokoban-fess/board"
)

// Result classifies the outcome of ClassifyMove.
type Result int

const (
	OK Result = iota
	DeadSquareResult
	FreezeResult
	CorralResult
	BipartiteResult
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case DeadSquareResult:
		return "dead-square"
	case FreezeResult:
		return "freeze"
	case CorralResult:
		return "corral"
	case BipartiteResult:
		return "bipartite"
	}
	return "unknown"
}

// Blocks reports whether r represents a pruned (non-OK) move.
func (r Result) Blocks() bool { return r != OK }

// Checker runs the four deadlock checks of spec §4.2 against a board
// whose DeadSquares/DistanceToTarget have already been computed (see
// the root package's Prepare).
type Checker struct {
	Board *board.Board

	EnableCorral    bool
	EnableBipartite bool

	CorralNodeBudget int
	CorralTimeBudget time.Duration

	corralCache map[string]bool
}

// NewChecker builds a Checker with the default budgets from spec §4.2(c):
// on the order of 10^3 nodes and 10ms per corral.
func NewChecker(b *board.Board, enableCorral, enableBipartite bool) *Checker {
	return &Checker{
		Board:            b,
		EnableCorral:     enableCorral,
		EnableBipartite:  enableBipartite,
		CorralNodeBudget: 2000,
		CorralTimeBudget: 10 * time.Millisecond,
		corralCache:      make(map[string]bool),
	}
}

// ClassifyMove runs the mandatory cheap checks ((a) dead square, (b)
// freeze) and, budget permitting, the optional expensive ones ((c)
// corral, (d) bipartite), against `after` — the state produced by
// pushing `box` there. `nodeBudgetRemaining` only gates (c)/(d): when
// it is zero or negative both are skipped, otherwise both run in full
// (the corral search under its own CorralNodeBudget/CorralTimeBudget).
// The time spent pruning is not tracked per search node.
func (c *Checker) ClassifyMove(after board.State, box board.Cell, nodeBudgetRemaining time.Duration) Result {
	if c.Board.IsDead(box) && !c.Board.IsTarget(box) {
		return DeadSquareResult
	}
	if c.isFrozenAndMisplaced(after, box) {
		return FreezeResult
	}
	if nodeBudgetRemaining <= 0 {
		return OK
	}
	if c.EnableCorral {
		if c.corralDeadlock(after) {
			return CorralResult
		}
	}
	if c.EnableBipartite {
		if c.bipartiteDeadlock(after) {
			return BipartiteResult
		}
	}
	return OK
}
