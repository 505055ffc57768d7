package board

import "math/rand"

// zobristTable holds one random 64-bit key per (cell, box-present) pair
// and one per (cell, canonical-player) pair, the same technique used
// throughout board-game search engines for transposition keys (e.g. the
// zobrist tables in the corpus's chess/board engines), generalized here
// to Sokoban's two independent bit-vectors (box occupancy, player zone
// representative).
type zobristTable struct {
	boxKey    []uint64
	playerKey []uint64
}

// InitZobrist (re)seeds the board's Zobrist table from seed. Must be
// called once after New, before any State is constructed — changing
// the seed after states exist would silently desynchronize their
// hashes. Two boards built with the same geometry and seed produce
// identical hashes for identical states (spec §5 determinism).
func (b *Board) InitZobrist(seed int64) {
	r := rand.New(rand.NewSource(seed))
	n := b.Size()
	t := &zobristTable{
		boxKey:    make([]uint64, n),
		playerKey: make([]uint64, n),
	}
	for i := 0; i < n; i++ {
		t.boxKey[i] = r.Uint64()
		t.playerKey[i] = r.Uint64()
	}
	b.zobrist = t
}

func (b *Board) zobristHash(s State) uint64 {
	if b.zobrist == nil {
		b.InitZobrist(DefaultZobristSeed)
	}
	var h uint64
	for _, box := range s.Boxes {
		h ^= b.zobrist.boxKey[box]
	}
	h ^= b.zobrist.playerKey[s.Player]
	return h
}

// DefaultZobristSeed is used when SolveOptions.ZobristSeed is left at
// its zero value, giving reproducible runs out of the box (spec §5/§6).
const DefaultZobristSeed int64 = 0x536f6b6f62616e // "Sokoban" in hex, arbitrary but fixed
