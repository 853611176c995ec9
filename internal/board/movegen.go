package board

import "math/bits"

// Move pre-scores (spec.md §3.7): a plain integer comparison over the
// high 16 bits of ScoredMove sorts good captures first, quiets in the
// middle, losing captures last.
const (
	scoreNeutral   = 0x0800
	scoreGoodBase  = 0xF000
	scoreGoodMax   = 0xFEFF
	scoreLoseMin   = 0x0000
	scoreLoseMax   = 0x0EFF
	scoreCastle    = 0xF800
	scoreEnPassant = 0xF900
)

var promoKinds = [4]Kind{KindQueen, KindRook, KindBishop, KindKnight}

// promoBonusUnits adds extra weight to a promotion's pre-score so that
// queen promotions sort above lesser ones, in SEE's 0x100-unit scale.
func promoBonusUnits(k Kind) int {
	switch k {
	case KindQueen:
		return 0x800
	case KindRook:
		return 0x400
	case KindBishop:
		return 0x200
	default:
		return 0
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scoreCaptureMove pre-scores a capture (and, if promo != KindNone, a
// capturing promotion) using SEE (spec.md §4.F): good captures occupy
// the top nibble, losing captures fall below the neutral quiet band.
func (pos *Position) scoreCaptureMove(from, to Square, promo Kind) uint16 {
	gain := pos.seeForMove(from, to)
	if promo != KindNone {
		gain += promoBonusUnits(promo)
	}
	if gain >= 0 {
		return uint16(clampInt(scoreGoodBase+gain, scoreGoodBase, scoreGoodMax))
	}
	return uint16(clampInt(scoreNeutral+gain, scoreLoseMin, scoreLoseMax))
}

// scorePromotionMove pre-scores a promotion that does not capture
// (isCapture tells the caller whether to go through scoreCaptureMove
// instead, since a capturing promotion's value already folds in SEE).
func (pos *Position) scorePromotionMove(from, to Square, promo Kind, isCapture bool) uint16 {
	if isCapture {
		return pos.scoreCaptureMove(from, to, promo)
	}
	gain := promoBonusUnits(promo)
	return uint16(clampInt(scoreGoodBase+gain, scoreGoodBase, scoreGoodMax))
}

// scoreQuietMove pre-scores a non-capturing move: neutral unless it
// walks into a square the opponent attacks, in which case it is biased
// down by the moving piece's own value (spec.md §4.F).
func (pos *Position) scoreQuietMove(from, to Square) uint16 {
	moving := pos.Squares[from]
	if pos.IsAttackedBy(pos.SideToMove.Other(), to) {
		return uint16(clampInt(scoreNeutral-pieceValueUnits(moving), 0, 0x0FFF))
	}
	return scoreNeutral
}

// squareAttackedBy reports whether side attacks sq, optionally treating
// `ignore` as vacated. Used for king-move/castling legality, where the
// maintained attack map (computed with the king still on its origin
// square) cannot answer "is the destination safe once the king has
// actually left" — a slider could extend through the vacated square.
func (pos *Position) squareAttackedBy(side Colour, sq, ignore Square) bool {
	oppFwd := 1
	if side == Black {
		oppFwd = -1
	}
	pr := sq.Rank() - oppFwd
	if pr >= 0 && pr <= 7 {
		for _, df := range [2]int{-1, 1} {
			f := sq.File() + df
			if f < 0 || f > 7 {
				continue
			}
			s2 := NewSquare(f, pr)
			if s2 == ignore {
				continue
			}
			p := pos.Squares[s2]
			if p.Kind() == KindPawn && p.Colour() == side {
				return true
			}
		}
	}

	sd := &pos.Sides[side]
	for i := 1; i <= sd.NrKnights; i++ {
		s2 := sd.Pieces[i]
		if s2 == ignore {
			continue
		}
		if sq2sq[s2][sq]&sq2sqKnight != 0 {
			return true
		}
	}

	for d := 0; d < numDirs; d++ {
		if kingDirs[sq]&dirBit(d) == 0 {
			continue
		}
		s2 := Square(int(sq) + dirOffset[d])
		if s2 == ignore {
			continue
		}
		p := pos.Squares[s2]
		if p.Kind() == KindKing && p.Colour() == side {
			return true
		}
	}

	for d := 0; d < numDirs; d++ {
		n := int(rayLen[sq][d])
		cur := sq
		for k := 0; k < n; k++ {
			cur = Square(int(cur) + dirOffset[d])
			if cur == ignore {
				continue
			}
			p := pos.Squares[cur]
			if p == Empty {
				continue
			}
			if p.Colour() == side && p.rayDirs()&dirBit((d+numDirs/2)%numDirs) != 0 {
				return true
			}
			break
		}
	}
	return false
}

// GenerateAll produces every fully legal move in the current position
// (spec.md §4.F, §6.1): escapes when the side to move is in check,
// otherwise every non-evasion. The list is in generation order (king
// moves, castling, knights, the other pieces, en passant), not sorted;
// each entry carries its pre-score.
func (pos *Position) GenerateAll(out *MoveList) {
	out.Clear()
	if pos.InCheck() {
		pos.generateEscapes(out)
		return
	}
	pos.generateNonEvasions(out)
}

// GenerateCapturesAndPromotions returns captures, promotions (quiet or
// capturing), and en-passant; no castling (spec.md §4.F #2). It is
// expressed as a filter over GenerateAll rather than a separate walk:
// duplicating the per-piece/pin/check machinery here would add a
// second copy of identical legality logic with no behavioural
// difference, only a (small, un-benchmarked) generation-cost saving —
// see DESIGN.md.
func (pos *Position) GenerateCapturesAndPromotions(out *MoveList) {
	var all MoveList
	pos.GenerateAll(&all)
	out.Clear()
	for i := 0; i < all.Len(); i++ {
		sm := all.Get(i)
		a := pos.analyzeMove(sm.Move())
		if a.kind != kindQuiet && a.kind != kindCastle {
			out.Add(sm)
		}
	}
}

// GenerateQuiet returns non-captures excluding promotions, including
// castling (spec.md §4.F #3). See GenerateCapturesAndPromotions for why
// this filters GenerateAll rather than re-implementing the walk.
func (pos *Position) GenerateQuiet(out *MoveList) {
	var all MoveList
	pos.GenerateAll(&all)
	out.Clear()
	for i := 0; i < all.Len(); i++ {
		sm := all.Get(i)
		a := pos.analyzeMove(sm.Move())
		if a.kind == kindQuiet || a.kind == kindCastle {
			out.Add(sm)
		}
	}
}

// GenerateEscapes returns only the legal moves available while in
// check (captures of the checker, blocks, king moves); it is empty
// when the side to move is not in check (spec.md §4.F #4).
func (pos *Position) GenerateEscapes(out *MoveList) {
	out.Clear()
	if !pos.InCheck() {
		return
	}
	pos.generateEscapes(out)
}

// GenerateRegularChecks returns quiet moves that give check (direct or
// discovered), for quiescence-search check extensions (spec.md §4.F
// #5). Implemented by probing each candidate quiet move with
// make/unmake rather than static discovered-check geometry: this repo
// has no search consuming the result, so correctness-by-construction
// is preferred over the teacher/original's hot-path shortcut — see
// DESIGN.md.
func (pos *Position) GenerateRegularChecks(out *MoveList) {
	out.Clear()
	if pos.InCheck() {
		return
	}
	var quiets MoveList
	pos.GenerateQuiet(&quiets)
	for i := 0; i < quiets.Len(); i++ {
		sm := quiets.Get(i)
		pos.MakeMove(sm.Move())
		gives := pos.InCheck()
		pos.UnmakeMove()
		if gives {
			out.Add(sm)
		}
	}
}

func (pos *Position) generateNonEvasions(out *MoveList) {
	side := pos.SideToMove
	s := &pos.Sides[side]

	pos.genKingMoves(out, s)
	pos.genCastling(out)

	for i := 1; i <= s.NrKnights; i++ {
		from := s.Pieces[i]
		if pos.pinDirsOf(side, from) != 0 {
			continue // a pinned knight has no legal move
		}
		pos.genKnightMovesFrom(out, from)
	}

	for i := s.NrKnights + 1; i < s.NrPieces; i++ {
		from := s.Pieces[i]
		pinDirs := pos.pinDirsOf(side, from)
		switch pos.Squares[from].Kind() {
		case KindPawn:
			pos.genPawnMovesFrom(out, from, pinDirs)
		case KindBishop, KindRook, KindQueen:
			pos.genSliderMovesFrom(out, from, pinDirs)
		}
	}

	pos.genEnPassant(out)
}

func (pos *Position) genKingMoves(out *MoveList, s *Side) {
	from := s.King()
	side := pos.SideToMove
	opp := side.Other()
	for d := 0; d < numDirs; d++ {
		if kingDirs[from]&dirBit(d) == 0 {
			continue
		}
		to := Square(int(from) + dirOffset[d])
		occ := pos.Squares[to]
		if occ != Empty && occ.Colour() == side {
			continue
		}
		if pos.squareAttackedBy(opp, to, from) {
			continue
		}
		if occ != Empty {
			out.Add(NewScoredMove(NewMove(from, to), pos.scoreCaptureMove(from, to, KindNone)))
		} else {
			out.Add(NewScoredMove(NewMove(from, to), pos.scoreQuietMove(from, to)))
		}
	}
}

// genCastling emits legal castling moves (spec.md §4.F): both the
// "with rights" tag on king and rook and an empty, unattacked path are
// required; castling out of check is illegal (checked by the InCheck
// guards in GenerateAll and IsStalemate, the only callers of
// generateNonEvasions, so this is only reached when not in check) and
// never needs a pin check (the king and its own rook
// are never pinned against each other).
func (pos *Position) genCastling(out *MoveList) {
	side := pos.SideToMove
	opp := side.Other()
	if side == White {
		if pos.Squares[E1] == WhiteKingCastle && pos.Squares[H1] == WhiteRookCastle &&
			pos.Squares[F1] == Empty && pos.Squares[G1] == Empty &&
			!pos.squareAttackedBy(opp, F1, NoSquare) && !pos.squareAttackedBy(opp, G1, NoSquare) {
			out.Add(NewScoredMove(NewMove(E1, G1), scoreCastle))
		}
		if pos.Squares[E1] == WhiteKingCastle && pos.Squares[A1] == WhiteRookCastle &&
			pos.Squares[B1] == Empty && pos.Squares[C1] == Empty && pos.Squares[D1] == Empty &&
			!pos.squareAttackedBy(opp, D1, NoSquare) && !pos.squareAttackedBy(opp, C1, NoSquare) {
			out.Add(NewScoredMove(NewMove(E1, C1), scoreCastle))
		}
		return
	}
	if pos.Squares[E8] == BlackKingCastle && pos.Squares[H8] == BlackRookCastle &&
		pos.Squares[F8] == Empty && pos.Squares[G8] == Empty &&
		!pos.squareAttackedBy(opp, F8, NoSquare) && !pos.squareAttackedBy(opp, G8, NoSquare) {
		out.Add(NewScoredMove(NewMove(E8, G8), scoreCastle))
	}
	if pos.Squares[E8] == BlackKingCastle && pos.Squares[A8] == BlackRookCastle &&
		pos.Squares[B8] == Empty && pos.Squares[C8] == Empty && pos.Squares[D8] == Empty &&
		!pos.squareAttackedBy(opp, D8, NoSquare) && !pos.squareAttackedBy(opp, C8, NoSquare) {
		out.Add(NewScoredMove(NewMove(E8, C8), scoreCastle))
	}
}

func (pos *Position) genKnightMovesFrom(out *MoveList, from Square) {
	side := pos.SideToMove
	jumps := knightJumps[from]
	for j := 0; j < 8; j++ {
		if jumps&(1<<uint(j)) == 0 {
			continue
		}
		to := knightTarget(from, j)
		occ := pos.Squares[to]
		if occ != Empty {
			if occ.Colour() == side {
				continue
			}
			out.Add(NewScoredMove(NewMove(from, to), pos.scoreCaptureMove(from, to, KindNone)))
		} else {
			out.Add(NewScoredMove(NewMove(from, to), pos.scoreQuietMove(from, to)))
		}
	}
}

func (pos *Position) genSliderMovesFrom(out *MoveList, from Square, pinDirs dirSet) {
	side := pos.SideToMove
	dirs := pos.Squares[from].rayDirs()
	for d := 0; d < numDirs; d++ {
		if dirs&dirBit(d) == 0 {
			continue
		}
		n := int(rayLen[from][d])
		cur := from
		for k := 0; k < n; k++ {
			cur = Square(int(cur) + dirOffset[d])
			occ := pos.Squares[cur]
			if occ == Empty {
				if isMoveAlongPin(pinDirs, from, cur) {
					out.Add(NewScoredMove(NewMove(from, cur), pos.scoreQuietMove(from, cur)))
				}
				continue
			}
			if occ.Colour() != side && isMoveAlongPin(pinDirs, from, cur) {
				out.Add(NewScoredMove(NewMove(from, cur), pos.scoreCaptureMove(from, cur, KindNone)))
			}
			break
		}
	}
}

func isPromotionRank(side Colour, sq Square) bool {
	if side == White {
		return sq.Rank() == 7
	}
	return sq.Rank() == 0
}

func (pos *Position) genPawnMovesFrom(out *MoveList, from Square, pinDirs dirSet) {
	side := pos.SideToMove
	p := pos.Squares[from]
	fwd := 1
	if side == Black {
		fwd = -1
	}

	single := Square(int(from) + fwd)
	if single.IsValid() && pos.Squares[single] == Empty && isMoveAlongPin(pinDirs, from, single) {
		if isPromotionRank(side, single) {
			for _, k := range promoKinds {
				out.Add(NewScoredMove(NewPromotion(from, single, k), pos.scorePromotionMove(from, single, k, false)))
			}
		} else {
			out.Add(NewScoredMove(NewMove(from, single), pos.scoreQuietMove(from, single)))
			if p == WhitePawnRank2 || p == BlackPawnRank7 {
				double := Square(int(from) + 2*fwd)
				if pos.Squares[double] == Empty && isMoveAlongPin(pinDirs, from, double) {
					out.Add(NewScoredMove(NewMove(from, double), pos.scoreQuietMove(from, double)))
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		f := from.File() + df
		if f < 0 || f > 7 {
			continue
		}
		to := NewSquare(f, from.Rank()+fwd)
		occ := pos.Squares[to]
		if occ == Empty || occ.Colour() == side {
			continue
		}
		if !isMoveAlongPin(pinDirs, from, to) {
			continue
		}
		if isPromotionRank(side, to) {
			for _, k := range promoKinds {
				out.Add(NewScoredMove(NewPromotion(from, to, k), pos.scorePromotionMove(from, to, k, true)))
			}
		} else {
			out.Add(NewScoredMove(NewMove(from, to), pos.scoreCaptureMove(from, to, KindNone)))
		}
	}
}

// genEnPassant emits the (at most two) legal en-passant captures
// available this ply (spec.md §4.F): gated by the lazy freshness token,
// and individually pin-checked via epLegal's board simulation, which
// correctly rejects the "two pawns abreast of a rook, both vacating
// their squares" discovered-check corner case (spec.md §8 scenario 6).
func (pos *Position) genEnPassant(out *MoveList) {
	f := pos.frame()
	if f.EnPassantNodeCounter != f.NodeCounter || f.EnPassantLazy == NoSquare {
		return
	}
	target := f.EnPassantLazy
	side := pos.SideToMove
	fwd := 1
	if side == Black {
		fwd = -1
	}
	capturedSq := Square(int(target) - fwd)
	for _, df := range [2]int{-1, 1} {
		fFile := target.File() + df
		if fFile < 0 || fFile > 7 {
			continue
		}
		from := NewSquare(fFile, capturedSq.Rank())
		p := pos.Squares[from]
		if p.Kind() != KindPawn || p.Colour() != side {
			continue
		}
		if !pos.epLegal(side, from, target, capturedSq) {
			continue
		}
		out.Add(NewScoredMove(NewMove(from, target), scoreEnPassant))
	}
}

// epLegal simulates the en-passant capture directly on the board (both
// vacated squares and the new occupant), checks whether the side's own
// king is left in check, then restores the board exactly. Single
// position, single goroutine: the transient mutation is safe.
func (pos *Position) epLegal(side Colour, from, to, capturedSq Square) bool {
	king := pos.Sides[side].King()
	origFrom := pos.Squares[from]
	origCaptured := pos.Squares[capturedSq]
	origTo := pos.Squares[to]
	pos.Squares[from] = Empty
	pos.Squares[capturedSq] = Empty
	pos.Squares[to] = origFrom
	attacked := pos.squareAttackedBy(side.Other(), king, NoSquare)
	pos.Squares[from] = origFrom
	pos.Squares[capturedSq] = origCaptured
	pos.Squares[to] = origTo
	return !attacked
}

func (pos *Position) knightReaches(from, to Square) bool {
	return sq2sq[from][to]&sq2sqKnight != 0
}

func (pos *Position) sliderReaches(from, to Square) bool {
	rel := dirSet(sq2sq[from][to] & sq2sqDirMask)
	if rel == 0 {
		return false
	}
	d := dirIndexOf(rel)
	if d < 0 || pos.Squares[from].rayDirs()&dirBit(d) == 0 {
		return false
	}
	cur := from
	for {
		cur = Square(int(cur) + dirOffset[d])
		if cur == to {
			return true
		}
		if pos.Squares[cur] != Empty {
			return false
		}
	}
}

func (pos *Position) scoredNonKingEscapeMove(from, to Square) ScoredMove {
	if pos.Squares[to] != Empty {
		return NewScoredMove(NewMove(from, to), pos.scoreCaptureMove(from, to, KindNone))
	}
	return NewScoredMove(NewMove(from, to), pos.scoreQuietMove(from, to))
}

// generateEscapes implements spec.md §4.F's escape generator: king
// moves are always considered; if exactly one enemy unit checks the
// king, captures of it and (for a slider) blocks on the squares
// between are added from every unpinned own piece; a double check
// leaves only king moves.
func (pos *Position) generateEscapes(out *MoveList) {
	side := pos.SideToMove
	opp := side.Other()
	s := &pos.Sides[side]
	kingSq := s.King()

	pos.genKingMoves(out, s)

	atk := pos.Sides[opp].Attacks[kingSq]
	rays := atk.rays()
	numRayCheckers := bits.OnesCount8(uint8(rays))
	knightCount := atk.knightCount()
	pawnChecks := 0
	if atk.hasPawnWest() {
		pawnChecks++
	}
	if atk.hasPawnEast() {
		pawnChecks++
	}
	if numRayCheckers+knightCount+pawnChecks != 1 {
		return
	}

	var checkerSq Square
	blockDir := -1
	switch {
	case rays != 0:
		// A ray bit is the direction the attack travels; the checker
		// sits the opposite way from the king.
		d := (dirIndexOf(rays) + numDirs/2) % numDirs
		blockDir = d
		checkerSq = pos.firstOccupiedBeyond(kingSq, d)
	case knightCount > 0:
		os := &pos.Sides[opp]
		for i := 1; i <= os.NrKnights; i++ {
			sq := os.Pieces[i]
			if sq2sq[sq][kingSq]&sq2sqKnight != 0 {
				checkerSq = sq
				break
			}
		}
	default:
		oppFwd := 1
		if opp == Black {
			oppFwd = -1
		}
		rank := kingSq.Rank() - oppFwd
		if atk.hasPawnWest() {
			checkerSq = NewSquare(kingSq.File()-1, rank)
		} else {
			checkerSq = NewSquare(kingSq.File()+1, rank)
		}
	}

	targets := []Square{checkerSq}
	if blockDir >= 0 {
		n := int(rayLen[kingSq][blockDir])
		cur := kingSq
		for k := 0; k < n; k++ {
			cur = Square(int(cur) + dirOffset[blockDir])
			if cur == checkerSq {
				break
			}
			targets = append(targets, cur)
		}
	}

	for i := 1; i <= s.NrKnights; i++ {
		from := s.Pieces[i]
		if pos.pinDirsOf(side, from) != 0 {
			continue
		}
		for _, to := range targets {
			if pos.knightReaches(from, to) {
				out.Add(pos.scoredNonKingEscapeMove(from, to))
			}
		}
	}

	for i := s.NrKnights + 1; i < s.NrPieces; i++ {
		from := s.Pieces[i]
		pinDirs := pos.pinDirsOf(side, from)
		switch pos.Squares[from].Kind() {
		case KindBishop, KindRook, KindQueen:
			for _, to := range targets {
				if isMoveAlongPin(pinDirs, from, to) && pos.sliderReaches(from, to) {
					out.Add(pos.scoredNonKingEscapeMove(from, to))
				}
			}
		case KindPawn:
			pos.genPawnEscapes(out, from, pinDirs, targets, checkerSq)
		}
	}

	pos.genEnPassantEscape(out, checkerSq)
}

func (pos *Position) genPawnEscapes(out *MoveList, from Square, pinDirs dirSet, targets []Square, checkerSq Square) {
	side := pos.Squares[from].Colour()
	fwd := 1
	if side == Black {
		fwd = -1
	}

	for _, df := range [2]int{-1, 1} {
		f := from.File() + df
		r := from.Rank() + fwd
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		to := NewSquare(f, r)
		if to != checkerSq || pos.Squares[to] == Empty {
			continue
		}
		if !isMoveAlongPin(pinDirs, from, to) {
			continue
		}
		if isPromotionRank(side, to) {
			for _, k := range promoKinds {
				out.Add(NewScoredMove(NewPromotion(from, to, k), pos.scorePromotionMove(from, to, k, true)))
			}
		} else {
			out.Add(NewScoredMove(NewMove(from, to), pos.scoreCaptureMove(from, to, KindNone)))
		}
	}

	single := Square(int(from) + fwd)
	for _, to := range targets {
		if to == checkerSq {
			continue
		}
		if to == single && pos.Squares[single] == Empty && isMoveAlongPin(pinDirs, from, to) {
			if isPromotionRank(side, to) {
				for _, k := range promoKinds {
					out.Add(NewScoredMove(NewPromotion(from, to, k), pos.scorePromotionMove(from, to, k, false)))
				}
			} else {
				out.Add(NewScoredMove(NewMove(from, to), pos.scoreQuietMove(from, to)))
			}
			continue
		}
		p := pos.Squares[from]
		if (p == WhitePawnRank2 || p == BlackPawnRank7) && pos.Squares[single] == Empty {
			double := Square(int(from) + 2*fwd)
			if to == double && pos.Squares[double] == Empty && isMoveAlongPin(pinDirs, from, to) {
				out.Add(NewScoredMove(NewMove(from, to), pos.scoreQuietMove(from, to)))
			}
		}
	}
}

func (pos *Position) genEnPassantEscape(out *MoveList, checkerSq Square) {
	f := pos.frame()
	if f.EnPassantNodeCounter != f.NodeCounter || f.EnPassantLazy == NoSquare {
		return
	}
	target := f.EnPassantLazy
	side := pos.SideToMove
	fwd := 1
	if side == Black {
		fwd = -1
	}
	capturedSq := Square(int(target) - fwd)
	if capturedSq != checkerSq {
		return
	}
	for _, df := range [2]int{-1, 1} {
		fFile := target.File() + df
		if fFile < 0 || fFile > 7 {
			continue
		}
		from := NewSquare(fFile, capturedSq.Rank())
		p := pos.Squares[from]
		if p.Kind() != KindPawn || p.Colour() != side {
			continue
		}
		if !pos.epLegal(side, from, target, capturedSq) {
			continue
		}
		out.Add(NewScoredMove(NewMove(from, target), scoreEnPassant))
	}
}

// IsStalemate reports whether the side to move has no legal move and
// is not in check (spec.md §8: exactly one of in-check/stalemate/has a
// legal move holds).
func (pos *Position) IsStalemate() bool {
	if pos.InCheck() {
		return false
	}
	var ml MoveList
	pos.generateNonEvasions(&ml)
	return ml.Len() == 0
}

// IsCheckmate reports in-check with no legal response.
func (pos *Position) IsCheckmate() bool {
	if !pos.InCheck() {
		return false
	}
	var ml MoveList
	pos.generateEscapes(&ml)
	return ml.Len() == 0
}
