package feature_test

import (
	"testing"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/feature"
	"github.com/jnoundu89/sokoban-fess/macro"
)

func TestWeighMovesNominatesThePackerMoveWithZeroWeight(t *testing.T) {
	b, boxes, err := board.Load("######\n#@$ .#\n######")
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	b.PackingOrder = feature.ComputePackingOrder(b)
	s := board.NewState(b, boxes, b.PlayerStart)

	moves := macro.Generate(b, s)
	if len(moves) != 2 {
		t.Fatalf("expected 2 candidate moves, got %d", len(moves))
	}

	weighted := feature.WeighMoves(b, s, moves)
	target := b.Targets[0]

	var onTargetWeight, otherWeight = -1, -1
	for _, w := range weighted {
		if w.Move.Destination == target {
			onTargetWeight = w.Weight
		} else {
			otherWeight = w.Weight
		}
	}

	if onTargetWeight != 0 {
		t.Errorf("expected the on-target move to carry weight 0, got %d", onTargetWeight)
	}
	if otherWeight != 1 {
		t.Errorf("expected the non-packing move to carry weight 1, got %d", otherWeight)
	}
}

func TestWeighMovesNeverAssignsZeroWeightToMoreThanOneOfASingleCandidate(t *testing.T) {
	// A single legal push in a 1-wide dead-end corridor, with no
	// targets/rooms/packing order at all: f_pack, f_room and f_oop are
	// structurally frozen at 0, but pushing the box still opens the
	// corridor's middle cell, so f_conn drops and the Connectivity
	// opener (or Forcer, had nothing else fired) claims the only move.
	kinds := []board.Kind{
		board.Wall, board.Wall, board.Wall, board.Wall, board.Wall,
		board.Wall, board.Floor, board.Floor, board.Floor, board.Wall,
		board.Wall, board.Wall, board.Wall, board.Wall, board.Wall,
	}
	b := board.New(5, 3, kinds, nil, board.Cell(1*5+1))
	s := board.NewState(b, []board.Cell{board.Cell(1*5 + 2)}, board.Cell(1*5+1))

	moves := macro.Generate(b, s)
	if len(moves) == 0 {
		t.Fatal("expected at least one candidate move")
	}
	weighted := feature.WeighMoves(b, s, moves)

	zeroCount := 0
	for _, w := range weighted {
		if w.Weight == 0 {
			zeroCount++
		}
	}
	if zeroCount > 1 {
		t.Errorf("expected at most one move to win weight 0, got %d", zeroCount)
	}
}
