package board

// Side is the per-colour bundle of book-keeping kept current across
// every make/unmake (spec.md §3.3): an attack map, a compact piece
// list with ordering invariants, the bishop-diagonal occupancy mask,
// and the set of own pawns one push from promotion. Unlike Frame, a
// Side is live, mutated in place by MakeMove and restored exactly by
// UnmakeMove — never snapshotted wholesale.
type Side struct {
	Attacks         [64]attackWord
	BishopDiagonals uint32
	// Pieces is -1 (NoSquare) terminated. Index 0 is always the king;
	// indices 1..NrKnights are knights; the rest, in any order, follow.
	Pieces        [17]Square
	NrPieces      int
	NrKnights     int
	Colour        Colour
	LastRankPawns uint8
}

func bishopDiagonalMask(sq Square) uint32 {
	f, r := sq.File(), sq.Rank()
	return uint32(1)<<uint(14-f-r) | uint32(1)<<uint(22+f-r)
}

func (s *Side) reset(colour Colour) {
	*s = Side{Colour: colour}
	s.Pieces[0] = NoSquare
}

// King returns the square of this side's king (list index 0).
func (s *Side) King() Square { return s.Pieces[0] }

// setLastRankPawn sets or clears file f's pending-promotion bit.
func (s *Side) setLastRankPawn(file int, pending bool) {
	bit := uint8(1) << uint(file)
	if pending {
		s.LastRankPawns |= bit
	} else {
		s.LastRankPawns &^= bit
	}
}

// listEditKind tags which structural edit a listEdit reverses.
type listEditKind uint8

const (
	editRelocate listEditKind = iota
	editRemove
	editInsertKnight
	editInsertOther
)

// listEdit carries exactly enough information to invert one structural
// edit to a Side's piece list (spec.md §4.D: "splices piece list ...").
// Each move produces at most three of these (a promotion-with-capture:
// remove the pawn, insert the new piece, remove the captured piece), so
// Frame holds a short fixed array rather than a dynamic log.
type listEdit struct {
	kind   listEditKind
	colour Colour

	// editRelocate
	index    int
	from, to Square

	// editRemove
	rmWasKnight     bool
	rmBoundarySwap  bool
	rmOrigIndex     int
	rmHoleIndex     int
	rmLastIndex     int
	rmRemovedSq     Square
	rmContentAtHole Square
	rmMovedSq       Square

	// editInsertKnight / editInsertOther
	insPos       int
	insSq        Square
	insDisplaced Square
}

// setKing places the king (always list index 0); it has no undo
// counterpart because a king is never removed or re-added, only
// relocated.
func (s *Side) setKing(sq Square, listIndex *[64]int8) {
	s.Pieces[0] = sq
	listIndex[sq] = 0
	if s.NrPieces == 0 {
		s.NrPieces = 1
		s.Pieces[1] = NoSquare
	}
}

// relocate moves the piece already on from to to, keeping its list
// slot. Used for every move that neither creates nor destroys a list
// entry: quiet moves, ordinary captures' mover, and castling's king
// and rook.
func (s *Side) relocate(listIndex *[64]int8, from, to Square) listEdit {
	idx := int(listIndex[from])
	s.Pieces[idx] = to
	listIndex[to] = int8(idx)
	listIndex[from] = -1
	return listEdit{kind: editRelocate, colour: s.Colour, index: idx, from: from, to: to}
}

func (s *Side) undoRelocate(e listEdit, listIndex *[64]int8) {
	s.Pieces[e.index] = e.from
	listIndex[e.from] = int8(e.index)
	listIndex[e.to] = -1
}

// insertKnight inserts sq right after the existing knight block,
// displacing whatever non-knight piece was there to the end of the
// list, so that knights remain contiguous starting at index 1.
func (s *Side) insertKnight(sq Square, listIndex *[64]int8) listEdit {
	pos := s.NrKnights + 1
	e := listEdit{kind: editInsertKnight, colour: s.Colour, insPos: pos, insSq: sq, insDisplaced: NoSquare}
	if pos <= s.NrPieces-1 {
		displaced := s.Pieces[pos]
		e.insDisplaced = displaced
		s.Pieces[s.NrPieces] = displaced
		listIndex[displaced] = int8(s.NrPieces)
	}
	s.Pieces[pos] = sq
	listIndex[sq] = int8(pos)
	s.NrKnights++
	s.NrPieces++
	s.Pieces[s.NrPieces] = NoSquare
	return e
}

func (s *Side) undoInsertKnight(e listEdit, listIndex *[64]int8) {
	s.NrPieces--
	s.NrKnights--
	if e.insDisplaced != NoSquare {
		s.Pieces[e.insPos] = e.insDisplaced
		listIndex[e.insDisplaced] = int8(e.insPos)
		s.Pieces[s.NrPieces] = NoSquare
	} else {
		s.Pieces[e.insPos] = NoSquare
	}
	listIndex[e.insSq] = -1
}

// appendOther appends a non-king, non-knight piece to the end of the list.
func (s *Side) appendOther(sq Square, listIndex *[64]int8) listEdit {
	idx := s.NrPieces
	s.Pieces[idx] = sq
	listIndex[sq] = int8(idx)
	s.NrPieces++
	s.Pieces[s.NrPieces] = NoSquare
	return listEdit{kind: editInsertOther, colour: s.Colour, insPos: idx, insSq: sq}
}

func (s *Side) undoInsertOther(e listEdit, listIndex *[64]int8) {
	s.NrPieces--
	s.Pieces[e.insPos] = NoSquare
	listIndex[e.insSq] = -1
}

// addToList adds sq (occupied by a piece of kind k) to the piece list,
// preserving the king-first / knights-contiguous invariant. Used by
// SetupFromScratch and CheckInvariants, which have no need for the
// returned undo info.
func (s *Side) addToList(k Kind, sq Square, listIndex *[64]int8) {
	if k != KindKing && s.NrPieces == 0 {
		s.NrPieces = 1 // index 0 stays reserved for the king
	}
	switch k {
	case KindKing:
		s.setKing(sq, listIndex)
	case KindKnight:
		s.insertKnight(sq, listIndex)
	default:
		s.appendOther(sq, listIndex)
	}
}

// removeAt removes the piece occupying sq from the list, preserving
// invariants: a removed knight is first swapped to the boundary of the
// knight block, then the true last list entry is moved into the
// resulting hole (spec.md §4.D). The returned listEdit records every
// slot this touched so undoListEdit can restore them exactly.
func (s *Side) removeAt(sq Square, listIndex *[64]int8) listEdit {
	p := int(listIndex[sq])
	e := listEdit{kind: editRemove, colour: s.Colour, rmOrigIndex: p, rmRemovedSq: sq}

	if p >= 1 && p <= s.NrKnights {
		e.rmWasKnight = true
		if p != s.NrKnights {
			e.rmBoundarySwap = true
			lastKnight := s.Pieces[s.NrKnights]
			e.rmContentAtHole = lastKnight
			s.Pieces[p] = lastKnight
			listIndex[lastKnight] = int8(p)
			p = s.NrKnights
		} else {
			e.rmContentAtHole = sq
		}
		s.NrKnights--
	} else {
		e.rmContentAtHole = sq
	}

	last := s.NrPieces - 1
	e.rmHoleIndex = p
	e.rmLastIndex = last
	if p != last {
		moved := s.Pieces[last]
		e.rmMovedSq = moved
		s.Pieces[p] = moved
		listIndex[moved] = int8(p)
	} else {
		e.rmMovedSq = NoSquare
	}
	s.Pieces[last] = NoSquare
	s.NrPieces--
	listIndex[sq] = -1
	return e
}

func (s *Side) undoRemove(e listEdit, listIndex *[64]int8) {
	s.NrPieces++
	if e.rmHoleIndex != e.rmLastIndex {
		s.Pieces[e.rmLastIndex] = e.rmMovedSq
		listIndex[e.rmMovedSq] = int8(e.rmLastIndex)
	}
	s.Pieces[e.rmHoleIndex] = e.rmContentAtHole
	listIndex[e.rmContentAtHole] = int8(e.rmHoleIndex)
	if e.rmWasKnight {
		s.NrKnights++
		if e.rmBoundarySwap {
			s.Pieces[e.rmOrigIndex] = e.rmRemovedSq
			listIndex[e.rmRemovedSq] = int8(e.rmOrigIndex)
		}
	}
}

// undoListEdit reverses e, whichever kind it is. Edits for a single
// move must be undone in reverse of the order they were applied.
func (s *Side) undoListEdit(e listEdit, listIndex *[64]int8) {
	switch e.kind {
	case editRelocate:
		s.undoRelocate(e, listIndex)
	case editRemove:
		s.undoRemove(e, listIndex)
	case editInsertKnight:
		s.undoInsertKnight(e, listIndex)
	case editInsertOther:
		s.undoInsertOther(e, listIndex)
	}
}
