// Package feature implements the board pre-analysis and per-state
// feature projection of spec §4.4: packing order, room decomposition,
// single-box push distances, the four-tuple feature coordinate, and
// the seven move-weighting advisors.
package feature

// Coord is the four-tuple feature coordinate (f_pack, f_conn, f_room,
// f_oop) of spec §4.4.2 that keys a FeatureCell in the search engine.
type Coord struct {
	Pack int
	Conn int
	Room int
	OOP  int
}
