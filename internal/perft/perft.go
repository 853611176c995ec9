// Package perft counts leaf nodes of the legal-move tree to a fixed
// depth, the standard move-generator correctness/regression check
// (spec.md §8's "Perft determinism" property). It consumes only
// internal/board's exported API — GenerateAll, MakeMove, UnmakeMove,
// and FormatMove for Divide's labels — the same boundary the teacher's own perft_test.go crosses.
package perft

import "github.com/kervinck/rookiegen/internal/board"

// Count returns the number of leaf positions reachable from pos in
// exactly depth plies. depth 0 counts the position itself (one node),
// matching spec.md §6.1's position_perft.
func Count(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var moves board.MoveList
	pos.GenerateAll(&moves)
	if depth == 1 {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		pos.MakeMove(m)
		nodes += Count(pos, depth-1)
		pos.UnmakeMove()
	}
	return nodes
}

// DivideEntry is one root move's perft(depth-1) subtree count, as
// reported by Divide.
type DivideEntry struct {
	Move  string
	Nodes int64
}

// Divide breaks perft(depth) down by root move, the standard debugging
// tool for isolating which root move's subtree disagrees with a known
// count: run Divide at increasing depth and compare each entry against
// a trusted engine until the first divergent move is found.
func Divide(pos *board.Position, depth int) ([]DivideEntry, int64) {
	var moves board.MoveList
	pos.GenerateAll(&moves)
	entries := make([]DivideEntry, 0, moves.Len())
	var total int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		label := pos.FormatMove(m)
		pos.MakeMove(m)
		n := Count(pos, depth-1)
		pos.UnmakeMove()
		entries = append(entries, DivideEntry{Move: label, Nodes: n})
		total += n
	}
	return entries, total
}
