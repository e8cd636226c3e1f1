// Package perft counts leaf nodes of the legal move tree, the standard
// move-generation correctness and benchmarking tool described in
// https://www.chessprogramming.org/Perft.
package perft

import "github.com/kavanagh/corechess/internal/board"

// Counters breaks a perft leaf count down by move category, counted only
// at the final ply so a mismatch against known results narrows down which
// part of move generation is wrong.
type Counters struct {
	Nodes      int64
	Captures   int64
	EnPassant  int64
	Castles    int64
	Promotions int64
}

// Add accumulates other into co.
func (co *Counters) Add(other Counters) {
	co.Nodes += other.Nodes
	co.Captures += other.Captures
	co.EnPassant += other.EnPassant
	co.Castles += other.Castles
	co.Promotions += other.Promotions
}

// Count walks the legal move tree to depth and returns the leaf count
// broken down by category. depth 0 returns a single node with no category
// counted.
func Count(pos *board.Position, depth int) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}

	moves := pos.GenerateLegalMoves()
	var result Counters

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)

		if depth == 1 {
			switch {
			case m.IsEnPassant():
				result.EnPassant++
				result.Captures++
			case m.IsCastling():
				result.Castles++
			case m.IsCapture():
				result.Captures++
			}
			if m.IsPromotion() {
				result.Promotions++
			}
		}

		pos.MakeMove(m)
		result.Add(Count(pos, depth-1))
		pos.UnmakeMove(m)
	}

	return result
}

// Nodes returns the total leaf count only, without Count's per-category
// breakdown, for callers that need just that — the common case for
// correctness tests. It is a separate recursion and does not call Count.
func Nodes(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		nodes += Nodes(pos, depth-1)
		pos.UnmakeMove(m)
	}
	return nodes
}

// Split runs perft one ply at a time, returning a node count per root
// move. Used by cmd/perft's -split flag to isolate which root move
// diverges from an expected count.
func Split(pos *board.Position, depth int) map[string]int64 {
	moves := pos.GenerateLegalMoves()
	result := make(map[string]int64, moves.Len())

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		result[m.String()] = Nodes(pos, depth-1)
		pos.UnmakeMove(m)
	}

	return result
}
