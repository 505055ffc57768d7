package board

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the taxonomy in spec §7. Use errors.Is against
// these, or errors.Cause, to recover the kind from a wrapped *LevelError.
var (
	// ErrMalformedLevel is the cause of a *LevelError for bad symbols,
	// a missing or duplicated player, no targets, etc.
	ErrMalformedLevel = errors.New("malformed level")

	// ErrUnsolvableShape is the cause of a *LevelError for a level that
	// is trivially unsolvable by its shape alone: Load reports it when
	// the box count differs from the target count.
	ErrUnsolvableShape = errors.New("unsolvable level shape")

	// ErrInvariant marks an InvariantViolation: a programmer error, not
	// a caller-recoverable condition (spec §7). Code that detects one
	// should panic with it wrapped via errors.Wrap, not return it.
	ErrInvariant = errors.New("invariant violation")
)

// LevelError reports a problem found while parsing level text (spec
// §4.1, §7). Position is a 1-based (line, column) into the source
// text when known, or the zero value when the problem is global (e.g.
// "no player found").
type LevelError struct {
	cause error
	Msg   string
	Line  int
	Col   int
}

func (e *LevelError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, col %d): %s", e.cause, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.cause, e.Msg)
}

func (e *LevelError) Unwrap() error { return e.cause }

// Cause returns the sentinel kind, for github.com/pkg/errors.Cause.
func (e *LevelError) Cause() error { return e.cause }

func newLevelError(cause error, line, col int, format string, args ...interface{}) *LevelError {
	return &LevelError{
		cause: cause,
		Msg:   fmt.Sprintf(format, args...),
		Line:  line,
		Col:   col,
	}
}
