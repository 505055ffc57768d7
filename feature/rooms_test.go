package feature_test

import (
	"testing"

	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/feature"
)

// Two 2x3 blocks of floor joined by a single corridor cell: a textbook
// dumbbell, the simplest shape that exercises both room classification
// (corner/edge cells of a block have two perpendicular floor
// neighbors, not two opposite ones) and tunnel classification (the
// joining cell has exactly two floor neighbors, straight through).
func dumbbellBoard() *board.Board {
	w, h := 7, 5
	kinds := make([]board.Kind, w*h)
	for i := range kinds {
		kinds[i] = board.Wall
	}
	floor := func(x, y int) { kinds[y*w+x] = board.Floor }
	for _, y := range []int{1, 2, 3} {
		floor(1, y)
		floor(2, y)
		floor(4, y)
		floor(5, y)
	}
	floor(3, 2)
	return board.New(w, h, kinds, nil, board.Cell(1*w+1))
}

func TestComputeRoomsSplitsTwoBlocksAcrossATunnel(t *testing.T) {
	b := dumbbellBoard()
	rooms := feature.ComputeRooms(b)

	tunnel := b.CellAt(3, 2)
	if !rooms.Tunnels[tunnel] {
		t.Fatalf("expected (3,2) to be classified as a tunnel cell")
	}

	left := b.CellAt(1, 1)
	right := b.CellAt(4, 1)
	leftRoom, ok := rooms.RoomOf[left]
	if !ok {
		t.Fatalf("expected (1,1) to belong to a room")
	}
	rightRoom, ok := rooms.RoomOf[right]
	if !ok {
		t.Fatalf("expected (4,1) to belong to a room")
	}
	if leftRoom == rightRoom {
		t.Fatalf("expected the two blocks to be different rooms, got the same %v", leftRoom)
	}

	found := false
	for _, r := range rooms.Adjacency[leftRoom] {
		if r == rightRoom {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the left room's adjacency to include the right room via the tunnel")
	}
}

func TestComputeRoomsKeepsAllSixCellsOfOneBlockInTheSameRoom(t *testing.T) {
	b := dumbbellBoard()
	rooms := feature.ComputeRooms(b)

	want := rooms.RoomOf[b.CellAt(1, 1)]
	for _, y := range []int{1, 2, 3} {
		for _, x := range []int{1, 2} {
			c := b.CellAt(x, y)
			if rooms.RoomOf[c] != want {
				t.Errorf("expected (%d,%d) in the same room as (1,1), got %v want %v", x, y, rooms.RoomOf[c], want)
			}
		}
	}
}

func TestComputeRoomsDoesNotClassifyRoomCellsAsTunnels(t *testing.T) {
	b := dumbbellBoard()
	rooms := feature.ComputeRooms(b)

	for _, y := range []int{1, 2, 3} {
		for _, x := range []int{1, 2, 4, 5} {
			c := b.CellAt(x, y)
			if rooms.Tunnels[c] {
				t.Errorf("did not expect (%d,%d) to be classified as a tunnel", x, y)
			}
		}
	}
}
