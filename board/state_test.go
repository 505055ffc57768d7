package board_test

import (
	"testing"

	"github.com/jnoundu89/sokoban-fess/board"
)

func mustLoad(t *testing.T, level string) (*board.Board, board.State) {
	t.Helper()
	b, boxes, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected error loading level: %v", err)
	}
	return b, board.NewState(b, boxes, b.PlayerStart)
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	b, s := mustLoad(t, "#####\n#@$.#\n#####")
	h1 := s.Hash()
	again := board.NewState(b, s.Boxes, s.Player)
	if again.Hash() != h1 {
		t.Errorf("re-canonicalizing an already-canonical state changed its hash: %v vs %v", h1, again.Hash())
	}
	if !again.Equal(s) {
		t.Errorf("re-canonicalizing an already-canonical state changed it")
	}
}

func TestTwoStatesWithSamePlayerZoneHashEqual(t *testing.T) {
	level := "#######\n#@    #\n# $ . #\n#######"
	b, boxes, err := board.Load(level)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s1 := board.NewState(b, boxes, b.PlayerStart)
	// move the player to a different cell within the same reachable zone
	otherCell := b.CellAt(5, 1)
	s2 := board.NewState(b, boxes, otherCell)
	if s1.Hash() != s2.Hash() {
		t.Errorf("expected equal hashes for states sharing a player zone, got %v vs %v", s1.Hash(), s2.Hash())
	}
	if !s1.Equal(s2) {
		t.Errorf("expected canonicalized states to compare equal")
	}
}

func TestIsGoal(t *testing.T) {
	b, s := mustLoad(t, "#####\n#@$.#\n#####")
	if s.IsGoal(b) {
		t.Fatal("fresh state should not be the goal")
	}
	goalState := board.NewState(b, []board.Cell{b.Targets[0]}, b.PlayerStart)
	if !goalState.IsGoal(b) {
		t.Fatal("expected state with box on target to be the goal")
	}
}

func TestHammingDistanceOfAPush(t *testing.T) {
	b, s := mustLoad(t, "#####\n#@$.#\n#####")
	box := s.Boxes[0]
	target := b.Targets[0]
	next := s.WithBoxMoved(b, box, target, box)

	diff := 0
	for _, c := range next.Boxes {
		if !s.HasBox(c) {
			diff++
		}
	}
	for _, c := range s.Boxes {
		if !next.HasBox(c) {
			diff++
		}
	}
	if diff != 2 {
		t.Errorf("expected hamming distance 2 for a single box move, got %d", diff)
	}
}

func TestCanReach(t *testing.T) {
	b, s := mustLoad(t, "#####\n#@$.#\n#####")
	if !s.CanReach(b, b.PlayerStart) {
		t.Error("player should be able to reach its own cell")
	}
	if s.CanReach(b, s.Boxes[0]) {
		t.Error("player should not be able to reach a cell occupied by a box")
	}
}
