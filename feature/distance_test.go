package feature_test

import (
	"testing"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/feature"
)

// A short corridor x1..x4 with the target at x4 and no standing room
// behind x1 (x0 is a wall), plus an isolated, disconnected floor cell
// at x6 to exercise both ways a cell can be push-unreachable.
func corridorWithTarget() (b *board.Board, target, mid, deadStart, isolated board.Cell) {
	w, h := 7, 3
	kinds := make([]board.Kind, w*h)
	for i := range kinds {
		kinds[i] = board.Wall
	}
	for x := 1; x <= 4; x++ {
		kinds[1*w+x] = board.Floor
	}
	kinds[1*w+6] = board.Floor
	target = board.Cell(1*w + 4)
	mid = board.Cell(1*w + 3)
	deadStart = board.Cell(1*w + 1)
	isolated = board.Cell(1*w + 6)
	b = board.New(w, h, kinds, []board.Cell{target}, board.Cell(1*w+2))
	return
}

func TestComputeDistancesCountsPushesAlongTheCorridor(t *testing.T) {
	b, target, mid, deadStart, isolated := corridorWithTarget()
	distances := feature.ComputeDistances(b)

	if d := distances[target][target]; d != 0 {
		t.Errorf("expected distance 0 at the target itself, got %d", d)
	}
	if d := distances[mid][target]; d != 1 {
		t.Errorf("expected distance 1 one cell back, got %d", d)
	}
	if d := distances[deadStart][target]; d != board.Unreachable {
		t.Errorf("expected the wall-backed cell to be unreachable, got %d", d)
	}
	if d := distances[isolated][target]; d != board.Unreachable {
		t.Errorf("expected the disconnected cell to be unreachable, got %d", d)
	}
}
