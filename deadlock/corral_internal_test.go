package deadlock

import (
	"testing"
	"time"

	"github.com/jnoundu89/sokoban-fess/board"
)

// buildLine constructs a single-row board from a slice of Kind values,
// used to pin down corral geometry exactly without going through level
// text parsing (whose own invariants - matched box/target counts - are
// orthogonal to what's being tested here).
func buildLine(kinds []board.Kind, targets []board.Cell, player board.Cell) *board.Board {
	return board.New(len(kinds), 1, kinds, targets, player)
}

func TestCorralDeadlockWhenBoxHasNoEscapingPush(t *testing.T) {
	// Wall Floor(player) Wall Floor Floor Wall
	// the box at index 3 has no legal push: pushing it left would move it
	// into the wall at index 2, and pushing it right needs the player to
	// stand at index 2, which is a wall.
	b := buildLine([]board.Kind{board.Wall, board.Floor, board.Wall, board.Floor, board.Floor, board.Wall}, nil, 1)
	s := board.NewState(b, []board.Cell{3}, 1)

	c := NewChecker(b, true, false)
	if !c.corralDeadlock(s) {
		t.Error("expected a corral deadlock when the boundary box has no escaping push")
	}
}

func TestCorralNotADeadlockWhenBoxCanEscape(t *testing.T) {
	// Wall Floor(player) Floor(box) Floor(pocket) Wall
	// the box at index 2 blocks the only path to the pocket at index 3,
	// but it can still be pushed left out of the pocket's boundary.
	b := buildLine([]board.Kind{board.Wall, board.Floor, board.Floor, board.Floor, board.Wall}, nil, 1)
	s := board.NewState(b, []board.Cell{2}, 1)

	c := NewChecker(b, true, false)
	if c.corralDeadlock(s) {
		t.Error("expected no corral deadlock when the boundary box can still be pushed clear")
	}
}

func TestCorralCacheIsKeyedBySignature(t *testing.T) {
	b := buildLine([]board.Kind{board.Wall, board.Floor, board.Wall, board.Floor, board.Floor, board.Wall}, nil, 1)
	s := board.NewState(b, []board.Cell{3}, 1)

	c := NewChecker(b, true, false)
	if len(c.corralCache) != 0 {
		t.Fatal("expected an empty cache on a fresh Checker")
	}
	c.corralDeadlock(s)
	if len(c.corralCache) != 1 {
		t.Fatalf("expected exactly one cached corral signature, got %d", len(c.corralCache))
	}
	c.corralDeadlock(s)
	if len(c.corralCache) != 1 {
		t.Error("expected the second identical call to hit the cache, not grow it")
	}
}

func TestCorralDeadlockSkipsEmptyUnreachablePockets(t *testing.T) {
	// findCorrals still reports an unreachable pocket with no box on its
	// boundary, but corralDeadlock skips it: it is never a deadlock.
	b := buildLine([]board.Kind{board.Wall, board.Floor, board.Wall, board.Floor, board.Wall}, nil, 1)
	s := board.NewState(b, nil, 1)

	c := NewChecker(b, true, false)
	if c.corralDeadlock(s) {
		t.Error("an unreachable pocket with no boundary boxes must never be a deadlock")
	}
}

func TestClassifyMoveSkipsCorralCheckWhenNodeBudgetExhausted(t *testing.T) {
	// the box here passes both mandatory checks (not dead, not frozen,
	// since it can still be pushed clear) - whether the corral check
	// itself runs is visible only through whether it populates the cache.
	b := buildLine([]board.Kind{board.Wall, board.Floor, board.Floor, board.Floor, board.Wall}, nil, 1)
	s := board.NewState(b, []board.Cell{2}, 1)

	c := NewChecker(b, true, false)
	result := c.ClassifyMove(s, 2, 0)
	if result != OK {
		t.Errorf("expected OK with no node budget remaining, got %v", result)
	}
	if len(c.corralCache) != 0 {
		t.Error("a skipped corral check must not populate the cache")
	}

	result = c.ClassifyMove(s, 2, time.Second)
	if result != OK {
		t.Errorf("expected OK once the corral check actually runs and finds an escape, got %v", result)
	}
	if len(c.corralCache) != 1 {
		t.Errorf("expected the corral check to run and cache its (non-deadlock) verdict, got %d entries", len(c.corralCache))
	}
}
