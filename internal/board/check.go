package board

// CheckInvariants is the expensive half of position_check_invariants
// (spec.md §6.1): it rebuilds both sides' attack maps and piece lists,
// and every incremental hash/material key, entirely from Squares, and
// reports the first divergence from the live incrementally-maintained
// state. Intended for debug builds and tests, not the hot path —
// checkSetupInvariants (position.go) is the cheap check always run
// after loading untrusted input.
func (pos *Position) CheckInvariants() error {
	if err := pos.checkSetupInvariants(); err != nil {
		return err
	}

	var tmp [2]Side
	tmp[White].reset(White)
	tmp[Black].reset(Black)
	var listIndex [64]int8
	for sq := range listIndex {
		listIndex[sq] = -1
	}
	for sq := Square(0); sq < 64; sq++ {
		p := pos.Squares[sq]
		if p == Empty {
			continue
		}
		side := &tmp[p.Colour()]
		side.addToList(p.Kind(), sq, &listIndex)
		if p.Kind() == KindKnight {
			side.addKnight(sq)
		} else {
			side.toggleNonKnightAttacks(&pos.Squares, p, sq)
		}
		if p.Kind() == KindBishop {
			side.BishopDiagonals ^= bishopDiagonalMask(sq)
		}
		if p == WhitePawnRank7 {
			side.setLastRankPawn(sq.File(), true)
		}
		if p == BlackPawnRank2 {
			side.setLastRankPawn(sq.File(), true)
		}
	}

	for c := Colour(0); c < 2; c++ {
		live := &pos.Sides[c]
		want := &tmp[c]
		if live.Attacks != want.Attacks {
			return invariantErrorf("%s attack map diverged from a from-scratch recompute", c)
		}
		if live.BishopDiagonals != want.BishopDiagonals {
			return invariantErrorf("%s bishop-diagonal mask diverged from a from-scratch recompute", c)
		}
		if live.LastRankPawns != want.LastRankPawns {
			return invariantErrorf("%s last-rank-pawn mask diverged from a from-scratch recompute", c)
		}
		if live.NrPieces != want.NrPieces || live.NrKnights != want.NrKnights {
			return invariantErrorf("%s piece-list size diverged: have %d pieces/%d knights, want %d/%d",
				c, live.NrPieces, live.NrKnights, want.NrPieces, want.NrKnights)
		}
		if !sameSquareMultiset(live.Pieces[:live.NrPieces], want.Pieces[:want.NrPieces]) {
			return invariantErrorf("%s piece list diverged from a from-scratch recompute", c)
		}
		if live.Pieces[0] != want.Pieces[0] {
			return invariantErrorf("%s king square diverged from a from-scratch recompute", c)
		}
	}

	var boardHash, pawnKingHash, materialKey uint64
	for sq := Square(0); sq < 64; sq++ {
		p := pos.Squares[sq]
		if p == Empty {
			continue
		}
		boardHash ^= zobrist(p, sq)
		pawnKingHash ^= pawnKingZobrist(p, sq)
		materialKey += materialAddend(p)
	}
	if pos.SideToMove == Black {
		boardHash = ^boardHash
	}
	if boardHash != pos.Hash() {
		return invariantErrorf("board hash diverged: incremental %#016x, recomputed %#016x", pos.Hash(), boardHash)
	}
	if pawnKingHash != pos.PawnKingHash() {
		return invariantErrorf("pawn/king hash diverged: incremental %#016x, recomputed %#016x", pos.PawnKingHash(), pawnKingHash)
	}
	if materialKey != pos.MaterialKey() {
		return invariantErrorf("material key diverged: incremental %#016x, recomputed %#016x", pos.MaterialKey(), materialKey)
	}
	return nil
}

// sameSquareMultiset reports whether a and b contain the same squares,
// ignoring order: the piece list's internal ordering among knights or
// among "other" pieces is unspecified beyond king-first/knights-
// contiguous, so a from-scratch rebuild need not match slot-for-slot.
func sameSquareMultiset(a, b []Square) bool {
	if len(a) != len(b) {
		return false
	}
	var seen [64]int8
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		seen[s]--
		if seen[s] < 0 {
			return false
		}
	}
	for _, v := range seen {
		if v != 0 {
			return false
		}
	}
	return true
}
