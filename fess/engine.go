// Package fess implements the FESS search engine of spec §4.5: an
// arena of search nodes keyed into an append-only feature-cell map
// (spec §9), cyclically expanded one move at a time, deduplicated
// against a transposition table that verifies box-set/player equality
// on every hit rather than trusting the Zobrist hash alone.
package fess

import (
	"context"
	"time"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/deadlock"
	"github.com/jnoundu89/sokoban-fess/feature"
	"github.com/jnoundu89/sokoban-fess/macro"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// featureCell groups every node currently projected to one feature
// coordinate (spec §4.4.2). cells is append-only and never reordered,
// so the cyclic iterator in nextLiveCell stays stable across
// insertions (spec §9).
type featureCell struct {
	coord feature.Coord
	nodes []int32
}

// Options configures one Engine.Run. Defaults (max node/time budgets,
// Zobrist seed, corral/bipartite toggles) live on the root sokoban
// package's SolveOptions; this is the lower-level engine contract.
type Options struct {
	// MaxNodes caps the arena size; 0 means unbounded.
	MaxNodes int
	// MaxElapsed caps wall-clock run time; 0 means unbounded.
	MaxElapsed time.Duration
	// ProgressInterval is how many expansions pass between polling
	// ctx.Done() and calling ProgressCallback. Defaults to 256.
	ProgressInterval int
	// ProgressCallback, if non-nil, may return false to cancel the run
	// (spec §9: "a callback returning stop is treated identically to
	// the external cancel flag").
	ProgressCallback func(Stats) bool
}

// Engine runs one FESS search over a fixed Board using a Checker
// already configured with the corral/bipartite toggles and budgets of
// spec §4.2(c)/(d).
type Engine struct {
	Board   *board.Board
	Checker *deadlock.Checker
	Options Options
	Logger  zerolog.Logger

	nodes      []node
	cells      []featureCell
	cellIndex  map[feature.Coord]int
	cellCursor int

	// transposition maps a state's Zobrist hash to every arena node
	// sharing it; a hit must still be verified with board.State.Equal
	// (spec §9's hash-identity-vs-equality note).
	transposition map[uint64][]int32

	stats Stats
}

// NewEngine builds an Engine ready to Run against b, using checker for
// the deadlock battery.
func NewEngine(b *board.Board, checker *deadlock.Checker, opts Options) *Engine {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 256
	}
	return &Engine{
		Board:         b,
		Checker:       checker,
		Options:       opts,
		Logger:        zerolog.Nop(),
		cellIndex:     make(map[feature.Coord]int),
		transposition: make(map[uint64][]int32),
	}
}

// Run executes the main loop of spec §4.5 from the given initial
// state until a solution is found or a limit/cancellation trips.
func (e *Engine) Run(ctx context.Context, initial board.State) Result {
	started := time.Now()

	if initial.IsGoal(e.Board) {
		return Result{Outcome: Solved, Stats: e.stats}
	}

	root := e.createNode(-1, macro.MacroMove{}, false, initial, 0)
	e.insertIntoCell(root)
	e.insertIntoTransposition(root)
	e.stats.NodesExpanded++

	expansions := 0
	for {
		if expansions%e.Options.ProgressInterval == 0 {
			select {
			case <-ctx.Done():
				e.Logger.Debug().Msg("search cancelled via context")
				return e.finish(Cancelled, NoLimit, started)
			default:
			}
			if e.Options.ProgressCallback != nil {
				e.updateElapsed(started)
				if !e.Options.ProgressCallback(e.stats) {
					e.Logger.Debug().Msg("search cancelled via progress callback")
					return e.finish(Cancelled, NoLimit, started)
				}
			}
		}

		if e.Options.MaxNodes > 0 && len(e.nodes) >= e.Options.MaxNodes {
			return e.finish(LimitExceeded, NodesLimit, started)
		}
		if e.Options.MaxElapsed > 0 && time.Since(started) >= e.Options.MaxElapsed {
			return e.finish(LimitExceeded, TimeLimit, started)
		}

		cellIdx, ok := e.nextLiveCell()
		if !ok {
			return e.finish(Unsolvable, NoLimit, started)
		}

		nodeIdx, moveIdx, ok := e.chooseMove(cellIdx)
		if !ok {
			continue
		}

		weighted := e.nodes[nodeIdx].unexpanded[moveIdx]
		e.removeUnexpanded(nodeIdx, moveIdx)
		e.markExhaustedIfDone(nodeIdx)

		classification := e.Checker.ClassifyMove(weighted.Move.Result, weighted.Move.Destination, e.corralBudget(started))
		if classification.Blocks() {
			e.countPrune(classification)
			e.Logger.Debug().Str("result", classification.String()).Msg("move pruned")
			expansions++
			continue
		}

		e.stats.NodesGenerated++
		accumulated := e.nodes[nodeIdx].weight + weighted.Weight
		child := weighted.Move.Result

		if existing, found := e.lookupTransposition(child); found {
			if e.nodes[existing].weight > accumulated {
				e.nodes[existing].weight = accumulated
				e.nodes[existing].parent = nodeIdx
				e.nodes[existing].hasParent = true
				e.nodes[existing].moveFromParent = weighted.Move
				e.reproject(existing)
			}
			expansions++
			continue
		}

		childIdx := e.createNode(nodeIdx, weighted.Move, true, child, accumulated)
		e.insertIntoCell(childIdx)
		e.insertIntoTransposition(childIdx)
		e.stats.NodesExpanded++

		if child.IsGoal(e.Board) {
			return e.solved(childIdx, started)
		}
		expansions++
	}
}

// nextLiveCell advances the cyclic iterator (spec §4.5 step 1) to the
// next cell holding at least one Live node, wrapping around the
// append-only cells slice. It returns false once no cell has any
// remaining live move — the search has exhausted every reachable
// state.
func (e *Engine) nextLiveCell() (int, bool) {
	n := len(e.cells)
	if n == 0 {
		return 0, false
	}
	for i := 0; i < n; i++ {
		idx := (e.cellCursor + i) % n
		if e.cellHasLiveNode(idx) {
			e.cellCursor = (idx + 1) % n
			if idx == 0 {
				e.Logger.Debug().Msg("feature-cell cyclic iterator wrapped")
			}
			return idx, true
		}
	}
	return 0, false
}

func (e *Engine) cellHasLiveNode(cellIdx int) bool {
	for _, ni := range e.cells[cellIdx].nodes {
		if e.nodes[ni].status == statusLive && len(e.nodes[ni].unexpanded) > 0 {
			return true
		}
	}
	return false
}

// chooseMove implements spec §4.5 step 2: over every node mapped to
// cellIdx, pick the single unexpanded move with the least
// accumulated_weight + move.weight, ties broken by FIFO node
// insertion (e.cells[cellIdx].nodes is itself insertion-ordered) then
// by move ordering (e.nodes[n].unexpanded is already macro.Generate's
// order). Both tie-breaks fall out of only ever replacing best on a
// strict improvement while scanning in that order.
func (e *Engine) chooseMove(cellIdx int) (nodeIdx int32, moveIdx int, ok bool) {
	best := 0
	bestNode := int32(-1)
	bestMove := -1
	for _, ni := range e.cells[cellIdx].nodes {
		n := &e.nodes[ni]
		if n.status != statusLive {
			continue
		}
		for mi, w := range n.unexpanded {
			total := n.weight + w.Weight
			if bestNode == -1 || total < best {
				best, bestNode, bestMove = total, ni, mi
			}
		}
	}
	if bestNode == -1 {
		return 0, 0, false
	}
	return bestNode, bestMove, true
}

func (e *Engine) removeUnexpanded(nodeIdx int32, moveIdx int) {
	n := &e.nodes[nodeIdx]
	n.unexpanded = append(n.unexpanded[:moveIdx], n.unexpanded[moveIdx+1:]...)
}

func (e *Engine) markExhaustedIfDone(nodeIdx int32) {
	n := &e.nodes[nodeIdx]
	if len(n.unexpanded) == 0 {
		n.status = statusExhausted
	}
}

// createNode allocates a new arena slot (spec §4.5 steps 2/5): it
// projects the state into feature space and pre-computes its weighted
// macro-moves, per the Initialization/Insert steps.
func (e *Engine) createNode(parent int32, move macro.MacroMove, hasParent bool, s board.State, weight int) int32 {
	coord := feature.Project(e.Board, s)
	candidates := macro.Generate(e.Board, s)
	weighted := feature.WeighMoves(e.Board, s, candidates)

	st := statusLive
	if len(weighted) == 0 {
		st = statusExhausted
	}

	idx := int32(len(e.nodes))
	e.nodes = append(e.nodes, node{
		parent:         parent,
		hasParent:      hasParent,
		moveFromParent: move,
		state:          s,
		weight:         weight,
		coord:          coord,
		unexpanded:     weighted,
		status:         st,
	})
	return idx
}

func (e *Engine) insertIntoCell(idx int32) {
	n := &e.nodes[idx]
	cellIdx, ok := e.cellIndex[n.coord]
	if !ok {
		cellIdx = len(e.cells)
		e.cells = append(e.cells, featureCell{coord: n.coord})
		e.cellIndex[n.coord] = cellIdx
		e.stats.FeatureCellsPopulated++
	}
	e.cells[cellIdx].nodes = append(e.cells[cellIdx].nodes, idx)
	n.cellIdx = cellIdx
}

func (e *Engine) insertIntoTransposition(idx int32) {
	h := e.nodes[idx].state.Hash()
	e.transposition[h] = append(e.transposition[h], idx)
}

// lookupTransposition finds an existing node with the same box set and
// canonical player cell as s, verifying equality beyond the hash match
// (spec §9).
func (e *Engine) lookupTransposition(s board.State) (int32, bool) {
	for _, idx := range e.transposition[s.Hash()] {
		if e.nodes[idx].state.Equal(s) {
			return idx, true
		}
	}
	return 0, false
}

// reproject recomputes a node's feature coordinate after its weight
// was lowered by a cheaper transposition hit. The coordinate is a pure
// function of state, and the state itself is unchanged (same hash,
// verified equal), so this is a no-op in practice — it exists to keep
// the "projecting twice yields the same tuple" invariant honest rather
// than assume it.
func (e *Engine) reproject(idx int32) {
	e.nodes[idx].coord = feature.Project(e.Board, e.nodes[idx].state)
}

func (e *Engine) countPrune(r deadlock.Result) {
	switch r {
	case deadlock.DeadSquareResult:
		e.stats.DeadSquaresPruned++
	case deadlock.FreezeResult:
		e.stats.FreezesPruned++
	case deadlock.CorralResult:
		e.stats.CorralsPruned++
	case deadlock.BipartiteResult:
		e.stats.BipartitePruned++
	}
}

// corralBudget returns what remains of the run's overall deadline,
// capped at the Checker's CorralTimeBudget. ClassifyMove uses it only to
// decide whether the corral/bipartite checks run at all: they are
// skipped once the deadline has passed, and otherwise run in full.
func (e *Engine) corralBudget(started time.Time) time.Duration {
	if e.Options.MaxElapsed <= 0 {
		return e.Checker.CorralTimeBudget
	}
	remaining := e.Options.MaxElapsed - time.Since(started)
	if remaining <= 0 {
		return 0
	}
	if remaining < e.Checker.CorralTimeBudget {
		return remaining
	}
	return e.Checker.CorralTimeBudget
}

func (e *Engine) updateElapsed(started time.Time) {
	e.stats.ElapsedMillis = time.Since(started).Milliseconds()
}

func (e *Engine) finish(outcome Outcome, reason LimitKind, started time.Time) Result {
	e.updateElapsed(started)
	e.Logger.Info().Str("outcome", outcome.String()).Int("nodes_expanded", e.stats.NodesExpanded).
		Int64("elapsed_ms", e.stats.ElapsedMillis).Msg("search finished")
	return Result{Outcome: outcome, LimitReason: reason, Stats: e.stats}
}

// solved walks the parent chain from the goal node back to the root,
// reverses it, and concatenates each macro-move's primitive pushes
// into the final solution (spec §4.5 step 6).
func (e *Engine) solved(goalIdx int32, started time.Time) Result {
	var chain []macro.MacroMove
	for cur := goalIdx; e.nodes[cur].hasParent; cur = e.nodes[cur].parent {
		chain = append(chain, e.nodes[cur].moveFromParent)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var pushes []Push
	var macroMoves []MacroSummary
	for _, m := range chain {
		macroMoves = append(macroMoves, MacroSummary{From: m.Box, To: m.Destination})
		pushes = append(pushes, expandPushes(e.Board, m)...)
	}

	e.updateElapsed(started)
	e.Logger.Info().Int("pushes", len(pushes)).Int("macro_moves", len(macroMoves)).Msg("search finished: solved")
	return Result{Outcome: Solved, Moves: pushes, MacroMoves: macroMoves, Stats: e.stats}
}

// expandPushes decompresses one macro-move into its primitive
// (box_cell, direction) pushes, using m.Box as the position before the
// first push and m.Path for every position after.
func expandPushes(b *board.Board, m macro.MacroMove) []Push {
	pushes := make([]Push, 0, len(m.Path))
	from := m.Box
	for _, to := range m.Path {
		d, ok := b.DirectionTo(from, to)
		if !ok {
			panic(errors.Wrap(board.ErrInvariant, "macro move path is not a chain of adjacent pushes"))
		}
		pushes = append(pushes, Push{Box: from, Direction: d})
		from = to
	}
	return pushes
}
