package board

// sqPiece pairs a square with the piece to be written there; used by
// applyChange to describe the squares one move creates.
type sqPiece struct {
	sq    Square
	piece Piece
}

// removePieceDirect removes p's own attack contribution at sq, using
// the board exactly as it stands (sq must still hold p). It does not
// touch Squares or ListIndex; callers clear the square separately.
func (pos *Position) removePieceDirect(sq Square) {
	p := pos.Squares[sq]
	if p == Empty {
		return
	}
	side := &pos.Sides[p.Colour()]
	if p.Kind() == KindKnight {
		side.subKnight(sq)
	} else {
		side.toggleNonKnightAttacks(&pos.Squares, p, sq)
	}
	if p.Kind() == KindBishop {
		side.BishopDiagonals ^= bishopDiagonalMask(sq)
	}
}

// addPieceDirect adds p's own attack contribution at sq, using the
// board exactly as it stands (sq must already hold p).
func (pos *Position) addPieceDirect(sq Square, p Piece) {
	side := &pos.Sides[p.Colour()]
	if p.Kind() == KindKnight {
		side.addKnight(sq)
	} else {
		side.toggleNonKnightAttacks(&pos.Squares, p, sq)
	}
	if p.Kind() == KindBishop {
		side.BishopDiagonals ^= bishopDiagonalMask(sq)
	}
}

// toggleRayDeltaBeyond XORs side's ray bit d onto every square strictly
// beyond sq along direction d, stopping after the first occupied
// square (inclusive) — the delta a ray gains or loses when sq flips
// between empty and occupied, without re-walking the unaffected part
// of the ray nearer to the slider.
func (pos *Position) toggleRayDeltaBeyond(side *Side, sq Square, d int) {
	if rayLen[sq][d] == 0 {
		return
	}
	cur := Square(int(sq) + dirOffset[d])
	for {
		side.Attacks[cur] ^= attackWord(dirBit(d))
		if pos.Squares[cur] != Empty {
			break
		}
		if rayLen[cur][d] == 0 {
			break
		}
		cur = Square(int(cur) + dirOffset[d])
	}
}

// fixupRaysThrough corrects every other slider's ray that passes
// through sq, after sq has just flipped between empty and occupied
// (spec.md §4.B: attack maps are maintained incrementally, not
// recomputed). For each of the 8 directions it finds the nearest piece
// beyond sq; if that piece is a slider whose rays reach back through
// sq, its ray bit is extended or truncated at sq's boundary to match
// sq's new occupancy. Must be called while the attack maps match the
// board on every square except sq, whose occupancy changes just before
// (vacating) or just after (placing) this call.
func (pos *Position) fixupRaysThrough(sq Square) {
	for d := 0; d < numDirs; d++ {
		if rayLen[sq][d] == 0 {
			continue
		}
		cur := Square(int(sq) + dirOffset[d])
		other := NoSquare
		for {
			if pos.Squares[cur] != Empty {
				other = cur
				break
			}
			if rayLen[cur][d] == 0 {
				break
			}
			cur = Square(int(cur) + dirOffset[d])
		}
		if other == NoSquare {
			continue
		}
		op := pos.Squares[other]
		if !op.IsSlider() {
			continue
		}
		rd := (d + 4) % numDirs
		if op.rayDirs()&dirBit(rd) == 0 {
			continue
		}
		pos.toggleRayDeltaBeyond(&pos.Sides[op.Colour()], sq, rd)
	}
}

// applyChange performs the full, order-correct update for a set of
// squares being vacated (removed) and a set of squares receiving a new
// occupant (placed), including every other slider's second-order ray
// exposure (spec.md §4.B). It never touches piece lists, hashes, or
// the halfmove clock — callers handle those alongside it.
//
// Calling applyChange(placed-as-removed-with-original-pieces,
// removed-as-placed-with-original-pieces) exactly reverses a prior
// applyChange(removed, placed) call: both the direct per-piece
// contribution and every second-order ray fixup are self-inverse XOR
// operations applied against matching board snapshots.
func (pos *Position) applyChange(removed []Square, placed []sqPiece) {
	for _, sq := range removed {
		pos.removePieceDirect(sq)
		pos.Squares[sq] = Empty
		pos.fixupRaysThrough(sq)
	}
	for _, pl := range placed {
		pos.fixupRaysThrough(pl.sq)
		pos.Squares[pl.sq] = pl.piece
		pos.addPieceDirect(pl.sq, pl.piece)
	}
}

// moveAnalysis decodes a raw Move against the current board: which
// squares it touches, whether it is a capture/en-passant/castle/
// promotion, and the piece tags before and after (spec.md §3.7,
// original_source/Source/move.c).
type moveAnalysis struct {
	kind moveKind

	from, to           Square
	originalMoverPiece Piece
	newMoverPiece      Piece

	capturedSquare Square
	capturedPiece  Piece

	rookFrom, rookTo  Square
	originalRookPiece Piece
	newRookPiece      Piece
}

func (pos *Position) analyzeMove(m Move) moveAnalysis {
	from := m.rawFrom()
	raw := m.rawTo()
	moving := pos.Squares[from]
	colour := moving.Colour()

	a := moveAnalysis{from: from, originalMoverPiece: moving, capturedSquare: NoSquare, rookFrom: NoSquare, rookTo: NoSquare}

	if moving == WhitePawnRank7 || moving == BlackPawnRank2 {
		to, promoKind, ok := decodePromotionTarget(from, raw)
		if ok {
			a.kind = kindPromotion
			a.to = to
			a.capturedPiece = pos.Squares[to]
			if a.capturedPiece != Empty {
				a.capturedSquare = to
			}
			a.newMoverPiece = newPromotedPiece(colour, to, promoKind)
			return a
		}
	}

	to := raw
	a.to = to

	if moving == WhiteKingCastle || moving == BlackKingCastle {
		if to == from+16 { // king-side: e1->g1 is +2 files = +16 in file-major index
			a.kind = kindCastle
			a.rookFrom = from + 24 // h-file rook, 3 files over
			a.rookTo = from + 8
			a.originalRookPiece = pos.Squares[a.rookFrom]
			a.newRookPiece = newRook(colour, false)
			a.newMoverPiece = newKing(colour, false)
			return a
		}
		if to == from-16 { // queen-side: e1->c1
			a.kind = kindCastle
			a.rookFrom = from - 32 // a-file rook, 4 files over
			a.rookTo = from - 8
			a.originalRookPiece = pos.Squares[a.rookFrom]
			a.newRookPiece = newRook(colour, false)
			a.newMoverPiece = newKing(colour, false)
			return a
		}
	}

	if moving.Kind() == KindPawn && from.File() != to.File() && pos.Squares[to] == Empty {
		a.kind = kindEnPassant
		a.capturedSquare = NewSquare(to.File(), from.Rank())
		a.capturedPiece = pos.Squares[a.capturedSquare]
		a.newMoverPiece = newPawn(colour, to)
		return a
	}

	captured := pos.Squares[to]
	if captured != Empty {
		a.kind = kindCapture
		a.capturedSquare = to
		a.capturedPiece = captured
	} else {
		a.kind = kindQuiet
	}
	a.newMoverPiece = retaggedAfterMove(moving, colour, to)
	return a
}

// retaggedAfterMove returns the piece tag a non-promoting mover carries
// after arriving at to: kings and rooks lose their castle tag the
// instant they move, pawns get re-tagged for their new rank, and every
// other kind is unaffected by the move itself.
func retaggedAfterMove(moving Piece, colour Colour, to Square) Piece {
	switch moving.Kind() {
	case KindKing:
		return newKing(colour, false)
	case KindRook:
		return newRook(colour, false)
	case KindPawn:
		return newPawn(colour, to)
	case KindBishop:
		return newBishop(colour, to)
	default:
		return moving
	}
}

func newPromotedPiece(colour Colour, to Square, kind Kind) Piece {
	switch kind {
	case KindQueen:
		return newQueen(colour)
	case KindRook:
		return newRook(colour, false)
	case KindBishop:
		return newBishop(colour, to)
	case KindKnight:
		return newKnight(colour)
	}
	return Empty
}

// isDoublePawnPush reports whether a is a two-square pawn advance,
// which opens an en-passant target square behind it.
func isDoublePawnPush(a moveAnalysis) bool {
	if a.kind != kindQuiet {
		return false
	}
	switch a.originalMoverPiece {
	case WhitePawnRank2:
		return a.to == a.from+2
	case BlackPawnRank7:
		return a.to == a.from-2
	}
	return false
}

// MakeMove applies m to pos, pushing a new Frame. m is assumed legal;
// the move generator (movegen.go) is the only source of trustworthy
// moves. Call UnmakeMove to reverse it.
func (pos *Position) MakeMove(m Move) {
	a := pos.analyzeMove(m)
	mover := pos.SideToMove
	opp := mover.Other()

	prev := &pos.Frames[pos.Current]
	pos.Current++
	f := &pos.Frames[pos.Current]
	*f = Frame{}
	f.Mover = mover
	f.Kind = a.kind
	f.From, f.To = a.from, a.to
	f.OriginalMoverPiece, f.NewMoverPiece = a.originalMoverPiece, a.newMoverPiece
	f.CapturedSquare, f.CapturedPiece = a.capturedSquare, a.capturedPiece
	f.RookFrom, f.RookTo = a.rookFrom, a.rookTo
	f.OriginalRookPiece, f.NewRookPiece = a.originalRookPiece, a.newRookPiece
	f.NodeCounter = prev.NodeCounter + 1
	f.EnPassantLazy = NoSquare
	f.EnPassantNodeCounter = f.NodeCounter - 1

	activeSide := &pos.Sides[mover]
	passiveSide := &pos.Sides[opp]

	var boardHashDelta, pawnKingHashDelta uint64
	materialKey := prev.MaterialKey

	switch a.kind {
	case kindCastle:
		f.pushListEdit(activeSide.relocate(&pos.ListIndex, a.from, a.to))
		f.pushListEdit(activeSide.relocate(&pos.ListIndex, a.rookFrom, a.rookTo))
		pos.applyChange(
			[]Square{a.from, a.rookFrom},
			[]sqPiece{{a.to, a.newMoverPiece}, {a.rookTo, a.newRookPiece}},
		)
		boardHashDelta = zobrist(a.originalMoverPiece, a.from) ^ zobrist(a.newMoverPiece, a.to) ^
			zobrist(a.originalRookPiece, a.rookFrom) ^ zobrist(a.newRookPiece, a.rookTo)
		pawnKingHashDelta = pawnKingZobrist(a.originalMoverPiece, a.from) ^ pawnKingZobrist(a.newMoverPiece, a.to)

	case kindEnPassant:
		f.pushListEdit(activeSide.relocate(&pos.ListIndex, a.from, a.to))
		f.pushListEdit(passiveSide.removeAt(a.capturedSquare, &pos.ListIndex))
		pos.applyChange(
			[]Square{a.from, a.capturedSquare},
			[]sqPiece{{a.to, a.newMoverPiece}},
		)
		boardHashDelta = zobrist(a.originalMoverPiece, a.from) ^ zobrist(a.newMoverPiece, a.to) ^
			zobrist(a.capturedPiece, a.capturedSquare)
		pawnKingHashDelta = pawnKingZobrist(a.originalMoverPiece, a.from) ^ pawnKingZobrist(a.newMoverPiece, a.to) ^
			pawnKingZobrist(a.capturedPiece, a.capturedSquare)
		materialKey -= materialAddend(a.capturedPiece)

	case kindPromotion:
		f.pushListEdit(activeSide.removeAt(a.from, &pos.ListIndex))
		if a.capturedPiece != Empty {
			f.pushListEdit(passiveSide.removeAt(a.capturedSquare, &pos.ListIndex))
		}
		f.pushListEdit(activeSide.addToListUndo(a.newMoverPiece.Kind(), a.to, &pos.ListIndex))
		removed := []Square{a.from}
		if a.capturedPiece != Empty {
			removed = append(removed, a.capturedSquare)
		}
		pos.applyChange(removed, []sqPiece{{a.to, a.newMoverPiece}})
		boardHashDelta = zobrist(a.originalMoverPiece, a.from) ^ zobrist(a.newMoverPiece, a.to) ^
			zobrist(a.capturedPiece, a.capturedSquare)
		pawnKingHashDelta = pawnKingZobrist(a.originalMoverPiece, a.from) ^ pawnKingZobrist(a.capturedPiece, a.capturedSquare)
		materialKey = materialKey - materialAddend(a.originalMoverPiece) + materialAddend(a.newMoverPiece) - materialAddend(a.capturedPiece)

	default: // kindQuiet, kindCapture
		removed := []Square{a.from}
		if a.capturedPiece != Empty {
			f.pushListEdit(passiveSide.removeAt(a.capturedSquare, &pos.ListIndex))
			removed = append(removed, a.capturedSquare)
			materialKey -= materialAddend(a.capturedPiece)
		}
		f.pushListEdit(activeSide.relocate(&pos.ListIndex, a.from, a.to))
		pos.applyChange(removed, []sqPiece{{a.to, a.newMoverPiece}})
		boardHashDelta = zobrist(a.originalMoverPiece, a.from) ^ zobrist(a.newMoverPiece, a.to) ^
			zobrist(a.capturedPiece, a.capturedSquare)
		pawnKingHashDelta = pawnKingZobrist(a.originalMoverPiece, a.from) ^ pawnKingZobrist(a.newMoverPiece, a.to) ^
			pawnKingZobrist(a.capturedPiece, a.capturedSquare)
	}

	clearLastRankPawnTag(activeSide, a.originalMoverPiece, a.from)
	setLastRankPawnTagIfNeeded(activeSide, a.newMoverPiece, a.to)
	clearLastRankPawnTag(passiveSide, a.capturedPiece, a.capturedSquare)

	f.BoardHash = ^(prev.BoardHash ^ boardHashDelta)
	f.PawnKingHash = prev.PawnKingHash ^ pawnKingHashDelta
	f.MaterialKey = materialKey

	if a.capturedPiece != Empty || a.originalMoverPiece.Kind() == KindPawn {
		f.HalfmoveClock = 0
	} else {
		f.HalfmoveClock = prev.HalfmoveClock + 1
	}

	if isDoublePawnPush(a) {
		f.EnPassantLazy = Square((int(a.from) + int(a.to)) / 2)
		f.EnPassantNodeCounter = f.NodeCounter
	}

	if mover == Black {
		pos.FullMoveNumber++
	}
	pos.SideToMove = opp
}

// clearLastRankPawnTag unsets the pending-promotion bit for p's file
// when the piece leaving sq was itself on the pre-promotion rank (the
// only move such a pawn can make is to promote away from it).
func clearLastRankPawnTag(side *Side, p Piece, sq Square) {
	if p == WhitePawnRank7 || p == BlackPawnRank2 {
		side.setLastRankPawn(sq.File(), false)
	}
}

// setLastRankPawnTagIfNeeded sets the pending-promotion bit for p's
// file when the piece arriving at sq is now on the pre-promotion rank.
func setLastRankPawnTagIfNeeded(side *Side, p Piece, sq Square) {
	if p == WhitePawnRank7 || p == BlackPawnRank2 {
		side.setLastRankPawn(sq.File(), true)
	}
}

// addToListUndo is addToList's undo-returning counterpart, used by
// promotions: the new piece is always a fresh list entry (the pawn it
// replaces was already removed by a separate removeAt call).
func (s *Side) addToListUndo(k Kind, sq Square, listIndex *[64]int8) listEdit {
	if k == KindKnight {
		return s.insertKnight(sq, listIndex)
	}
	return s.appendOther(sq, listIndex)
}

// UnmakeMove reverses the most recent MakeMove. It must be called with
// the position in exactly the state MakeMove left it in.
func (pos *Position) UnmakeMove() {
	f := &pos.Frames[pos.Current]
	mover := f.Mover
	opp := mover.Other()
	activeSide := &pos.Sides[mover]
	passiveSide := &pos.Sides[opp]

	for i := f.ListEditsLen - 1; i >= 0; i-- {
		e := f.ListEdits[i]
		if e.colour == mover {
			activeSide.undoListEdit(e, &pos.ListIndex)
		} else {
			passiveSide.undoListEdit(e, &pos.ListIndex)
		}
	}

	switch f.Kind {
	case kindCastle:
		pos.applyChange(
			[]Square{f.To, f.RookTo},
			[]sqPiece{{f.From, f.OriginalMoverPiece}, {f.RookFrom, f.OriginalRookPiece}},
		)
	case kindEnPassant:
		pos.applyChange(
			[]Square{f.To},
			[]sqPiece{{f.From, f.OriginalMoverPiece}, {f.CapturedSquare, f.CapturedPiece}},
		)
	case kindPromotion:
		placed := []sqPiece{{f.From, f.OriginalMoverPiece}}
		if f.CapturedPiece != Empty {
			placed = append(placed, sqPiece{f.CapturedSquare, f.CapturedPiece})
		}
		pos.applyChange([]Square{f.To}, placed)
	default: // kindQuiet, kindCapture
		placed := []sqPiece{{f.From, f.OriginalMoverPiece}}
		if f.CapturedPiece != Empty {
			placed = append(placed, sqPiece{f.CapturedSquare, f.CapturedPiece})
		}
		pos.applyChange([]Square{f.To}, placed)
	}

	setLastRankPawnTagIfNeeded(passiveSide, f.CapturedPiece, f.CapturedSquare)
	clearLastRankPawnTag(activeSide, f.NewMoverPiece, f.To)
	setLastRankPawnTagIfNeeded(activeSide, f.OriginalMoverPiece, f.From)

	if mover == Black {
		pos.FullMoveNumber--
	}
	pos.SideToMove = mover
	pos.Current--
}

// MakeNull applies the null move: side to move passes without moving a
// piece. Only the side-to-move flip and the lazily-evaluated
// en-passant state change; the halfmove clock is set to 1, not 0 (see
// DESIGN.md). The en-passant token is left stale, so no en-passant
// capture is offered after a null move.
func (pos *Position) MakeNull() {
	prev := &pos.Frames[pos.Current]
	pos.Current++
	f := &pos.Frames[pos.Current]
	*f = Frame{
		Mover:                pos.SideToMove,
		Kind:                 kindQuiet,
		From:                 NoSquare,
		To:                   NoSquare,
		CapturedSquare:       NoSquare,
		RookFrom:             NoSquare,
		RookTo:               NoSquare,
		NodeCounter:          prev.NodeCounter + 1,
		HalfmoveClock:        1,
		MaterialKey:          prev.MaterialKey,
		PawnKingHash:         prev.PawnKingHash,
		EnPassantLazy:        NoSquare,
		EnPassantNodeCounter: prev.NodeCounter,
	}
	f.BoardHash = ^prev.BoardHash
	if pos.SideToMove == Black {
		pos.FullMoveNumber++
	}
	pos.SideToMove = pos.SideToMove.Other()
}

// UnmakeNull reverses MakeNull.
func (pos *Position) UnmakeNull() {
	f := &pos.Frames[pos.Current]
	if f.Mover == Black {
		pos.FullMoveNumber--
	}
	pos.SideToMove = f.Mover
	pos.Current--
}
