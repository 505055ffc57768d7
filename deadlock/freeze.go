package deadlock

import "github.com/jnoundu89/sokoban-fess/board"

// isFrozenAndMisplaced reports whether box is frozen (immobile on both
// axes) and not sitting on a target — a freeze deadlock per spec
// §4.2(b).
func (c *Checker) isFrozenAndMisplaced(s board.State, box board.Cell) bool {
	if c.Board.IsTarget(box) {
		return false
	}
	visiting := map[board.Cell]bool{box: true}
	return c.frozenOnAxis(s, box, board.Left, board.Right, visiting) &&
		c.frozenOnAxis(s, box, board.Up, board.Down, visiting)
}

// frozenOnAxis reports whether `box` is blocked along the axis spanned
// by (neg, pos) (Left/Right or Up/Down). A box is blocked on an axis
// iff: a wall (or the board edge) borders it on that axis, or dead
// squares border both sides of that axis, or an adjacent box on that
// axis is itself frozen on the *other* axis. `visiting` holds the set
// of boxes already being tested along the current recursion chain; a
// box in `visiting` is treated as an immovable wall for the purposes
// of this sub-check, which both breaks cycles and matches the spec's
// "treat the caller box as a wall" rule.
func (c *Checker) frozenOnAxis(s board.State, box board.Cell, neg, pos board.Direction, visiting map[board.Cell]bool) bool {
	negCell, negOK := c.Board.Neighbor(box, neg)
	posCell, posOK := c.Board.Neighbor(box, pos)

	negBlocked := !negOK || c.Board.IsWall(negCell)
	posBlocked := !posOK || c.Board.IsWall(posCell)
	if negBlocked || posBlocked {
		return true
	}
	if c.Board.IsDead(negCell) && c.Board.IsDead(posCell) {
		return true
	}

	otherNeg, otherPos := orthogonal(neg, pos)

	if s.HasBox(negCell) && !visiting[negCell] {
		visiting[negCell] = true
		frozen := c.frozenOnAxis(s, negCell, otherNeg, otherPos, visiting)
		delete(visiting, negCell)
		if frozen {
			return true
		}
	}
	if s.HasBox(posCell) && !visiting[posCell] {
		visiting[posCell] = true
		frozen := c.frozenOnAxis(s, posCell, otherNeg, otherPos, visiting)
		delete(visiting, posCell)
		if frozen {
			return true
		}
	}
	return false
}

// orthogonal returns the direction pair perpendicular to (neg, pos).
func orthogonal(neg, pos board.Direction) (board.Direction, board.Direction) {
	if neg == board.Left || pos == board.Left || neg == board.Right || pos == board.Right {
		return board.Up, board.Down
	}
	return board.Left, board.Right
}
