package feature

import "github.com/jnoundu89/sokoban-fess/board"

// ComputeRooms runs the room/tunnel decomposition of spec §4.4.1. A
// floor cell is a tunnel cell when it has exactly two floor
// neighbors and they sit on opposite sides (a straight corridor cell
// with no room to turn); every other floor cell belongs to a room.
// Rooms are the maximal connected components of non-tunnel floor
// cells (4-connectivity through non-tunnel cells only); each tunnel
// cell then links the room(s) touching it.
func ComputeRooms(b *board.Board) *board.Rooms {
	tunnels := make(map[board.Cell]bool)
	for cell := 0; cell < b.Size(); cell++ {
		c := board.Cell(cell)
		if b.IsFloor(c) && isTunnelCell(b, c) {
			tunnels[c] = true
		}
	}

	roomOf := make(map[board.Cell]board.RoomID)
	var next board.RoomID
	for cell := 0; cell < b.Size(); cell++ {
		start := board.Cell(cell)
		if !b.IsFloor(start) || tunnels[start] {
			continue
		}
		if _, ok := roomOf[start]; ok {
			continue
		}
		floodRoom(b, start, tunnels, roomOf, next)
		next++
	}

	adjacency := make(map[board.RoomID][]board.RoomID)
	for tunnel := range tunnels {
		touched := map[board.RoomID]bool{}
		for _, d := range board.Directions() {
			n, ok := b.Neighbor(tunnel, d)
			if !ok {
				continue
			}
			if r, isRoom := roomOf[n]; isRoom {
				touched[r] = true
			}
		}
		var rooms []board.RoomID
		for r := range touched {
			rooms = append(rooms, r)
		}
		for _, r := range rooms {
			for _, other := range rooms {
				if other == r {
					continue
				}
				if !containsRoom(adjacency[r], other) {
					adjacency[r] = append(adjacency[r], other)
				}
			}
		}
	}

	return &board.Rooms{RoomOf: roomOf, Tunnels: tunnels, Adjacency: adjacency}
}

func isTunnelCell(b *board.Board, c board.Cell) bool {
	var floorNeighbors []board.Direction
	for _, d := range board.Directions() {
		n, ok := b.Neighbor(c, d)
		if ok && b.IsFloor(n) {
			floorNeighbors = append(floorNeighbors, d)
		}
	}
	if len(floorNeighbors) != 2 {
		return false
	}
	return floorNeighbors[0].Opposite() == floorNeighbors[1]
}

func floodRoom(b *board.Board, start board.Cell, tunnels map[board.Cell]bool, roomOf map[board.Cell]board.RoomID, id board.RoomID) {
	queue := []board.Cell{start}
	roomOf[start] = id
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, d := range board.Directions() {
			n, ok := b.Neighbor(cur, d)
			if !ok || !b.IsFloor(n) || tunnels[n] {
				continue
			}
			if _, visited := roomOf[n]; visited {
				continue
			}
			roomOf[n] = id
			queue = append(queue, n)
		}
	}
}

func containsRoom(rooms []board.RoomID, target board.RoomID) bool {
	for _, r := range rooms {
		if r == target {
			return true
		}
	}
	return false
}
