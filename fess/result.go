package fess

import "github.com/jnoundu89/sokoban-fess/board"

// Outcome classifies how a Run terminated (spec §4.5 failure semantics
// / §6 SolveResult variants).
type Outcome int

const (
	Solved Outcome = iota
	Unsolvable
	LimitExceeded
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Unsolvable:
		return "unsolvable"
	case LimitExceeded:
		return "limit-exceeded"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// LimitKind names which configured limit a LimitExceeded result hit
// (spec §6's `reason ∈ {nodes, time, memory}`).
type LimitKind int

const (
	NoLimit LimitKind = iota
	NodesLimit
	TimeLimit
	MemoryLimit
)

// Push is one primitive (box_cell, direction) push (spec §6's `moves`).
type Push struct {
	Box       board.Cell
	Direction board.Direction
}

// MacroSummary is one compressed (box_from, box_to) macro-move (spec
// §6's `macro_moves`).
type MacroSummary struct {
	From board.Cell
	To   board.Cell
}

// Stats accumulates the search counters spec §6 requires a SolveResult
// to carry.
type Stats struct {
	NodesExpanded         int
	NodesGenerated        int
	DeadSquaresPruned     int
	FreezesPruned         int
	CorralsPruned         int
	BipartitePruned       int
	FeatureCellsPopulated int
	ElapsedMillis         int64
}

// Result is the engine's outcome of one Run.
type Result struct {
	Outcome     Outcome
	LimitReason LimitKind
	Moves       []Push
	MacroMoves  []MacroSummary
	Stats       Stats
}
