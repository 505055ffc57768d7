package deadlock_test

import (
	"testing"
	"time"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/deadlock"
)

func TestComputeDeadSquaresMarksCornerWithNoTarget(t *testing.T) {
	// a small room with a single target; the bottom-left corner has no
	// cell with standing room behind it, so no box can ever be pulled
	// there from the target.
	level := "#####\n#@ .#\n#   #\n#####"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	dead := deadlock.ComputeDeadSquares(b)
	corner := b.CellAt(1, 2)
	if !dead[corner] {
		t.Errorf("expected bottom-left corner %v to be a dead square", corner)
	}
	if dead[b.Targets[0]] {
		t.Error("a target itself must never be dead")
	}
}

func TestComputeDeadSquaresLeavesMidCorridorAlive(t *testing.T) {
	// a long corridor with the target in the middle and three free cells
	// of clearance on each side: cells close to the target must stay
	// reachable even though the very ends of the corridor are dead.
	level := "#########\n#   .   #\n#########"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	dead := deadlock.ComputeDeadSquares(b)
	for _, x := range []int{2, 3, 4, 5, 6} {
		c := b.CellAt(x, 1)
		if dead[c] {
			t.Errorf("cell (%d,1) has standing room on both sides and must not be dead", x)
		}
	}
}

func TestClassifyMoveDetectsDeadSquare(t *testing.T) {
	level := "#####\n#@ .#\n#   #\n#####"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	b.DeadSquares = deadlock.ComputeDeadSquares(b)

	checker := deadlock.NewChecker(b, false, false)
	corner := b.CellAt(1, 2)
	s := board.NewState(b, []board.Cell{corner}, b.PlayerStart)
	result := checker.ClassifyMove(s, corner, time.Second)
	if result != deadlock.DeadSquareResult {
		t.Errorf("expected DeadSquareResult, got %v", result)
	}
	if !result.Blocks() {
		t.Error("DeadSquareResult must block the move")
	}
}

func TestFreezeDetectsCornerFreeze(t *testing.T) {
	level := "#####\n#@  #\n# $ #\n#  .#\n#####"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	checker := deadlock.NewChecker(b, false, false)

	// a box sitting where both axes border a wall is frozen, and since
	// it isn't on the level's one target, it is also misplaced.
	corner := b.CellAt(1, 1)
	s := board.NewState(b, []board.Cell{corner}, b.CellAt(2, 2))
	result := checker.ClassifyMove(s, corner, time.Second)
	if result != deadlock.FreezeResult {
		t.Errorf("expected FreezeResult for a box pinned in a corner, got %v", result)
	}
}

func TestFreezeAllowsBoxOnTarget(t *testing.T) {
	level := "#####\n#@$.#\n#####"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	checker := deadlock.NewChecker(b, false, false)
	target := b.Targets[0]
	s := board.NewState(b, []board.Cell{target}, b.PlayerStart)
	result := checker.ClassifyMove(s, target, time.Second)
	if result != deadlock.OK {
		t.Errorf("a box delivered onto its target must never be flagged, got %v", result)
	}
}

func TestBipartiteDeadlockWhenABoxHasNoReachableTarget(t *testing.T) {
	level := "########\n#@  .  #\n#    $ #\n########"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	target := b.Targets[0]
	reachable := b.CellAt(2, 1)
	stuck := b.CellAt(5, 2)

	b.DistanceToTarget = map[board.Cell]map[board.Cell]int{
		reachable: {target: 2},
		stuck:     {target: board.Unreachable},
	}

	checker := deadlock.NewChecker(b, false, true)
	s := board.NewState(b, []board.Cell{reachable, stuck}, b.PlayerStart)
	result := checker.ClassifyMove(s, reachable, time.Second)
	if result != deadlock.BipartiteResult {
		t.Errorf("expected BipartiteResult when a box has no path to any target, got %v", result)
	}
}

func TestBipartiteAllowsPerfectMatching(t *testing.T) {
	level := "#@$ .  #\n#    $.#\n########"
	b, _, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	t1, t2 := b.Targets[0], b.Targets[1]
	box1 := b.CellAt(2, 0)
	box2 := b.CellAt(5, 1)

	b.DistanceToTarget = map[board.Cell]map[board.Cell]int{
		box1: {t1: 2, t2: board.Unreachable},
		box2: {t1: board.Unreachable, t2: 1},
	}

	checker := deadlock.NewChecker(b, false, true)
	s := board.NewState(b, []board.Cell{box1, box2}, b.PlayerStart)
	result := checker.ClassifyMove(s, box1, time.Second)
	if result != deadlock.OK {
		t.Errorf("expected OK when a perfect matching exists, got %v", result)
	}
}
