package macro_test

import (
	"testing"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/macro"
)

func TestGenerateEnumeratesEveryPushAlongACorridor(t *testing.T) {
	b, boxes, err := board.Load("######\n#@$ .#\n######")
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	s := board.NewState(b, boxes, b.PlayerStart)

	moves := macro.Generate(b, s)
	if len(moves) != 2 {
		t.Fatalf("expected exactly 2 reachable pushes, got %d: %+v", len(moves), moves)
	}

	target := b.Targets[0]
	// ordered ascending by destination distance to the nearest unfilled
	// target: the on-target push (distance 0) must come before the
	// one-step push (distance 1).
	if moves[0].Destination != target {
		t.Errorf("expected the first move to land on the target, got %v", moves[0].Destination)
	}
	if moves[0].PushCount != 2 {
		t.Errorf("expected the on-target move to take 2 pushes, got %d", moves[0].PushCount)
	}
	if !moves[0].Result.IsGoal(b) {
		t.Error("expected the on-target move's result to be a goal state")
	}

	if moves[1].PushCount != 1 {
		t.Errorf("expected the second move to take 1 push, got %d", moves[1].PushCount)
	}
	if moves[1].Destination == target {
		t.Error("expected the second move to stop short of the target")
	}
}

func TestGenerateFindsNoPushesWhenBoxIsBoxedIn(t *testing.T) {
	// a single floor cell walled in on all four sides: the box sitting
	// there has no legal push in any direction.
	kinds := []board.Kind{
		board.Wall, board.Wall, board.Wall,
		board.Wall, board.Floor, board.Wall,
		board.Wall, board.Wall, board.Wall,
	}
	b := board.New(3, 3, kinds, nil, 4)
	s := board.NewState(b, []board.Cell{4}, 4)

	moves := macro.Generate(b, s)
	if len(moves) != 0 {
		t.Errorf("expected no moves for a fully enclosed box, got %+v", moves)
	}
}

func TestGenerateRespectsOtherBoxesAsObstacles(t *testing.T) {
	b, boxes, err := board.Load("########\n#@$ $..#\n########")
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	s := board.NewState(b, boxes, b.PlayerStart)

	moves := macro.Generate(b, s)
	leftBox := b.CellAt(2, 1)
	rightBox := b.CellAt(4, 1)
	for _, m := range moves {
		if m.Box == leftBox && m.Destination == rightBox {
			t.Error("the left box must not be able to push through the right box's cell")
		}
	}
}
