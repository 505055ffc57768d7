package fess

import (
	"github.com/jnoundu89/sokoban-fess/board"
	"github.com/jnoundu89/sokoban-fess/feature"
	"github.com/jnoundu89/sokoban-fess/macro"
)

// status is the per-node state machine of spec §4.5.
type status uint8

const (
	// statusLive nodes have unexpanded moves and are eligible in cell
	// selection.
	statusLive status = iota
	// statusExhausted nodes have had every move expanded or pruned;
	// they remain in the feature cell and transposition table so
	// lookups still find them, but cell selection skips them.
	statusExhausted
	// statusDead is reserved for a node whose entire subtree has
	// proven childless (spec §4.5); nothing in this engine marks a
	// node Dead.
	statusDead
)

// node is one arena slot of the search tree (spec §9: indices, not
// pointers). parent/hasParent identify the node's predecessor; the
// root node has hasParent == false.
type node struct {
	parent         int32
	hasParent      bool
	moveFromParent macro.MacroMove

	state  board.State
	weight int
	coord  feature.Coord

	cellIdx    int
	unexpanded []feature.Weighted
	status     status
}
