package deadlock

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jnoundu89/sokoban-fess/board"
)

// corral is a region of floor cells unreachable by the player in the
// current state, together with the boxes on its boundary (spec §4.2(c)
// and GLOSSARY).
type corral struct {
	cells   map[board.Cell]bool
	boxes   []board.Cell
}

// findCorrals partitions floor∖boxes∖playerZone into its connected
// components and attaches each component's boundary boxes.
func (c *Checker) findCorrals(s board.State) []corral {
	zone := s.PlayerZone(c.Board)
	visited := make(map[board.Cell]bool)
	var corrals []corral

	for cell := 0; cell < c.Board.Size(); cell++ {
		start := board.Cell(cell)
		if !c.Board.IsFloor(start) || s.HasBox(start) || zone[start] || visited[start] {
			continue
		}
		region := map[board.Cell]bool{start: true}
		queue := []board.Cell{start}
		visited[start] = true
		boxSet := map[board.Cell]bool{}
		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, d := range board.Directions() {
				n, ok := c.Board.Neighbor(cur, d)
				if !ok || !c.Board.IsFloor(n) {
					continue
				}
				if s.HasBox(n) {
					boxSet[n] = true
					continue
				}
				if zone[n] || visited[n] {
					continue
				}
				visited[n] = true
				region[n] = true
				queue = append(queue, n)
			}
		}
		boxes := make([]board.Cell, 0, len(boxSet))
		for b := range boxSet {
			boxes = append(boxes, b)
		}
		sort.Slice(boxes, func(i, j int) bool { return boxes[i] < boxes[j] })
		corrals = append(corrals, corral{cells: region, boxes: boxes})
	}
	return corrals
}

func signature(cr corral) string {
	var sb strings.Builder
	cells := make([]board.Cell, 0, len(cr.cells))
	for c := range cr.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })
	for _, c := range cells {
		fmt.Fprintf(&sb, "%d,", c)
	}
	sb.WriteByte('|')
	for _, b := range cr.boxes {
		fmt.Fprintf(&sb, "%d,", b)
	}
	return sb.String()
}

// corralDeadlock runs the bounded side-search of spec §4.2(c) for
// every corral present in s: within CorralNodeBudget pushes and
// CorralTimeBudget wall-clock, try to push some boundary box out of
// its corral or onto a target. A corral where no boundary box has any
// such push is declared a deadlock and the result is cached by the
// corral's signature (boxes ∪ boundary), since many states share the
// same corral.
func (c *Checker) corralDeadlock(s board.State) bool {
	for _, cr := range c.findCorrals(s) {
		if len(cr.boxes) == 0 {
			continue // an unreachable region with no boxes on it is not a deadlock by itself
		}
		sig := signature(cr)
		if dead, ok := c.corralCache[sig]; ok {
			if dead {
				return true
			}
			continue
		}
		dead := c.searchCorralEscape(s, cr)
		c.corralCache[sig] = dead
		if dead {
			return true
		}
	}
	return false
}

// searchCorralEscape looks, within budget, for a single push of a
// boundary box that either lands it outside the corral region or onto
// a target. Deeper multi-push escapes are not explored — this is a
// deliberately bounded, one-ply approximation of the general
// side-search the spec describes, traded for predictable cost; see
// DESIGN.md.
func (c *Checker) searchCorralEscape(s board.State, cr corral) bool {
	deadline := time.Now().Add(c.CorralTimeBudget)
	nodes := 0
	for _, box := range cr.boxes {
		for _, d := range board.Directions() {
			nodes++
			if nodes > c.CorralNodeBudget || time.Now().After(deadline) {
				return true // budget exhausted without finding an escape
			}
			dest, ok := c.Board.Neighbor(box, d)
			if !ok || !c.Board.IsFloor(dest) || s.HasBox(dest) {
				continue
			}
			standing, ok := c.Board.Neighbor(box, d.Opposite())
			if !ok || !c.Board.IsFloor(standing) || s.HasBox(standing) {
				continue
			}
			escapes := !cr.cells[dest]
			onTarget := c.Board.IsTarget(dest)
			if escapes || onTarget {
				if c.Board.IsDead(dest) && !onTarget {
					continue
				}
				return false
			}
		}
	}
	return true
}
