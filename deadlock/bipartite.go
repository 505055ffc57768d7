package deadlock

import "github.com/jnoundu89/sokoban-fess/board"

// bipartiteDeadlock implements spec §4.2(d): build a bipartite graph
// between every box not already on a target and every target not yet
// covered, with an edge wherever the precomputed distance-to-target
// table says the box can reach that target at all (finite distance).
// If no perfect matching of boxes to targets exists, every completion
// of the position is unreachable and it is a deadlock.
func (c *Checker) bipartiteDeadlock(s board.State) bool {
	var boxes []board.Cell
	for _, b := range s.Boxes {
		if !c.Board.IsTarget(b) {
			boxes = append(boxes, b)
		}
	}
	if len(boxes) == 0 {
		return false
	}

	var targets []board.Cell
	for _, t := range c.Board.Targets {
		if !s.HasBox(t) {
			targets = append(targets, t)
		}
	}

	adj := make([][]int, len(boxes))
	for i, b := range boxes {
		dist := c.Board.DistanceToTarget[b]
		for j, t := range targets {
			if d, ok := dist[t]; ok && d < board.Unreachable {
				adj[i] = append(adj[i], j)
			}
		}
	}

	matchTarget := make([]int, len(targets))
	for i := range matchTarget {
		matchTarget[i] = -1
	}

	var tryMatch func(box int, visited []bool) bool
	tryMatch = func(box int, visited []bool) bool {
		for _, t := range adj[box] {
			if visited[t] {
				continue
			}
			visited[t] = true
			if matchTarget[t] == -1 || tryMatch(matchTarget[t], visited) {
				matchTarget[t] = box
				return true
			}
		}
		return false
	}

	matched := 0
	for i := range boxes {
		visited := make([]bool, len(targets))
		if tryMatch(i, visited) {
			matched++
		}
	}
	return matched < len(boxes)
}
