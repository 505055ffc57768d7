package feature

import "github.com/jnoundu89/sokoban-fess/board"

// Project computes the four-tuple feature coordinate of spec §4.4.2
// for state s.
func Project(b *board.Board, s board.State) Coord {
	return Coord{
		Pack: packCount(b, s),
		Conn: connComponents(b, s),
		Room: obstructedLinks(b, s),
		OOP:  outOfPlanCount(b, s),
	}
}

// packCount returns the largest k such that the first k entries of
// b.PackingOrder each currently hold a box.
func packCount(b *board.Board, s board.State) int {
	k := 0
	for _, t := range b.PackingOrder {
		if !s.HasBox(t) {
			break
		}
		k++
	}
	return k
}

// connComponents counts the 4-connected components of floor cells not
// occupied by a box, across the whole board (unlike board.State's
// player-zone flood fill, which only walks cells the player can
// currently step on).
func connComponents(b *board.Board, s board.State) int {
	visited := make(map[board.Cell]bool)
	components := 0
	for cell := 0; cell < b.Size(); cell++ {
		start := board.Cell(cell)
		if !b.IsFloor(start) || s.HasBox(start) || visited[start] {
			continue
		}
		components++
		queue := []board.Cell{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, d := range board.Directions() {
				n, ok := b.Neighbor(cur, d)
				if !ok || !b.IsFloor(n) || s.HasBox(n) || visited[n] {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return components
}

// obstructedLinks counts room-link (tunnel) cells currently occupied
// by a box.
func obstructedLinks(b *board.Board, s board.State) int {
	if b.Rooms == nil {
		return 0
	}
	n := 0
	for link := range b.Rooms.Tunnels {
		if s.HasBox(link) {
			n++
		}
	}
	return n
}

// outOfPlanCount counts boxes sitting in cells that would become
// unreachable to the player if the next target in the packing order
// were filled along its approach. For each box, the question is asked
// as if that box itself were not there (a box's own cell is never
// "player-reachable" while the box occupies it): flood-fill with the
// box's cell open and every other box in place, once with the next
// target left clear and once with it blocked, and flag the box if its
// cell falls out of the reachable region when the target is filled.
func outOfPlanCount(b *board.Board, s board.State) int {
	k := packCount(b, s)
	if k >= len(b.PackingOrder) {
		return 0
	}
	next := b.PackingOrder[k]

	n := 0
	for _, box := range s.Boxes {
		without := withoutBox(s, box)
		before := without.PlayerZone(b)
		after := reachableExcluding(b, without, next)
		if before[box] && !after[box] {
			n++
		}
	}
	return n
}

// withoutBox returns a copy of s with box removed from its box set,
// for reachability queries only (not canonicalized: Hash is left
// unset and must not be relied on).
func withoutBox(s board.State, box board.Cell) board.State {
	boxes := make([]board.Cell, 0, len(s.Boxes)-1)
	for _, c := range s.Boxes {
		if c != box {
			boxes = append(boxes, c)
		}
	}
	return board.State{Boxes: boxes, Player: s.Player}
}

// reachableExcluding flood-fills the player's zone treating extra as
// an additional obstacle, alongside the state's real boxes.
func reachableExcluding(b *board.Board, s board.State, extra board.Cell) map[board.Cell]bool {
	zone := make(map[board.Cell]bool)
	if s.HasBox(extra) || !b.IsFloor(s.Player) || s.Player == extra {
		return zone
	}
	queue := []board.Cell{s.Player}
	zone[s.Player] = true
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, d := range board.Directions() {
			n, ok := b.Neighbor(cur, d)
			if !ok || !b.IsFloor(n) || s.HasBox(n) || n == extra || zone[n] {
				continue
			}
			zone[n] = true
			queue = append(queue, n)
		}
	}
	return zone
}
