package sokoban

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/deadlock"
	"github.com/jnoundu89/sokoban-fess/fess"
	"github.com/rs/zerolog"
)

// Re-exported engine-level result types, so callers of Solve never need
// to import the fess package directly.
type (
	Outcome      = fess.Outcome
	LimitKind    = fess.LimitKind
	Push         = fess.Push
	MacroMove    = fess.MacroSummary
	EngineStats  = fess.Stats
	ProgressFunc = func(Stats) bool
)

const (
	Solved        = fess.Solved
	Unsolvable    = fess.Unsolvable
	LimitExceeded = fess.LimitExceeded
	Cancelled     = fess.Cancelled

	NoLimit     = fess.NoLimit
	NodesLimit  = fess.NodesLimit
	TimeLimit   = fess.TimeLimit
	MemoryLimit = fess.MemoryLimit
)

// SolveOptions configures one Solve call. The zero value is a valid,
// if minimal, configuration: MaxNodes/MaxMillis/ZobristSeed default to
// spec.md §6's documented values whenever left at zero, but
// EnableCorralCheck/EnableBipartiteCheck are plain bools and so come
// out false on a bare SolveOptions{} — start from DefaultSolveOptions
// to get the spec's "on by default" checks.
type SolveOptions struct {
	MaxNodes             int
	MaxMillis            int
	EnableCorralCheck    bool
	EnableBipartiteCheck bool
	ZobristSeed          int64

	// ProgressCallback, if set, is polled periodically during the
	// search and may return false to cancel it early (spec §9).
	ProgressCallback ProgressFunc

	// Logger receives structured search/termination events. Nil means
	// no logging.
	Logger *zerolog.Logger
}

// DefaultSolveOptions returns the spec.md §6 documented defaults:
// a two-million-node budget, a ten-minute wall clock, both deadlock
// checks enabled, and the board's default Zobrist seed.
func DefaultSolveOptions() SolveOptions {
	nop := zerolog.Nop()
	return SolveOptions{
		MaxNodes:             2_000_000,
		MaxMillis:            600_000,
		EnableCorralCheck:    true,
		EnableBipartiteCheck: true,
		ZobristSeed:          board.DefaultZobristSeed,
		Logger:               &nop,
	}
}

func (o SolveOptions) withZeroDefaults() SolveOptions {
	if o.MaxNodes == 0 {
		o.MaxNodes = 2_000_000
	}
	if o.MaxMillis == 0 {
		o.MaxMillis = 600_000
	}
	if o.ZobristSeed == 0 {
		o.ZobristSeed = board.DefaultZobristSeed
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// Stats is the engine's search counters plus a run identifier, so a
// caller logging or persisting results can correlate them across a
// long-running solve (SPEC_FULL.md's ambient-stack section).
type Stats struct {
	EngineStats
	RunID uuid.UUID
}

// SolveResult is the outcome of one Solve call.
type SolveResult struct {
	Outcome     Outcome
	LimitReason LimitKind
	Moves       []Push
	MacroMoves  []MacroMove
	Stats       Stats
}

// Solve parses levelText, runs the board pre-analysis, and searches
// for a solution per spec.md §4.5, honoring ctx cancellation and the
// budgets/toggles in opts. The only error path is a malformed level
// (board.Load's *board.LevelError); every other outcome — solved,
// proven unsolvable, limit exceeded, or cancelled — comes back as a
// SolveResult, never an error.
func Solve(ctx context.Context, levelText string, opts SolveOptions) (SolveResult, error) {
	b, boxes, err := board.Load(levelText)
	if err != nil {
		return SolveResult{}, err
	}
	opts = opts.withZeroDefaults()
	runID := uuid.New()

	Prepare(b, opts.ZobristSeed)
	initial := board.NewState(b, boxes, b.PlayerStart)

	checker := deadlock.NewChecker(b, opts.EnableCorralCheck, opts.EnableBipartiteCheck)
	engine := fess.NewEngine(b, checker, fess.Options{
		MaxNodes:   opts.MaxNodes,
		MaxElapsed: time.Duration(opts.MaxMillis) * time.Millisecond,
		ProgressCallback: func(s fess.Stats) bool {
			if opts.ProgressCallback == nil {
				return true
			}
			return opts.ProgressCallback(Stats{EngineStats: s, RunID: runID})
		},
	})
	engine.Logger = *opts.Logger

	result := engine.Run(ctx, initial)

	opts.Logger.Info().
		Str("run_id", runID.String()).
		Str("outcome", result.Outcome.String()).
		Msg("solve finished")

	return SolveResult{
		Outcome:     result.Outcome,
		LimitReason: result.LimitReason,
		Moves:       result.Moves,
		MacroMoves:  result.MacroMoves,
		Stats:       Stats{EngineStats: result.Stats, RunID: runID},
	}, nil
}
