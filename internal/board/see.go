package board

// Static-exchange evaluation (spec.md §4.E): given a capture that is
// about to be made, compute the net material the capturing side gains
// once the capture sequence on that square has run its course,
// assuming each side always recaptures with its cheapest remaining
// piece and stops when going on would lose material. Values are in
// units of 0x100 (pawn=1, minor=3, rook=5, royal=9 units), matching the
// pre-score packing in move.go/movegen.go.
const (
	seeUnit       = 0x100
	seePawnValue  = 1 * seeUnit
	seeMinorValue = 3 * seeUnit
	seeRookValue  = 5 * seeUnit
	seeRoyalValue = 9 * seeUnit
	seeMaxGain    = 14 * seeUnit // upper clip of a SEE result; there is no lower clip
)

// seeKindValue is indexed by Kind.seeKind() (pawn=0, minor=1, rook=2, royal=3).
var seeKindValue = [4]int{seePawnValue, seeMinorValue, seeRookValue, seeRoyalValue}

func pieceValueUnits(p Piece) int {
	if p == Empty {
		return 0
	}
	return seeKindValue[p.Kind().seeKind()]
}

// lastRankFor reports whether sq is the promotion rank for side's pawns
// (spec.md §4.E's LAST_RANK bit): a capture landing there by a pawn of
// side promotes as part of the exchange.
func lastRankFor(side Colour, sq Square) bool {
	if side == White {
		return sq.Rank() == 7
	}
	return sq.Rank() == 0
}

// seeCacheEntry memoises one (position, from, to) result. Unlike
// spec.md §4.E's literal packed-multiset cache key (a pure function of
// the two attacker/defender multisets, independent of which concrete
// board produced them), this mailbox representation's exchange walk
// depends on pins and x-ray stacking that a bare piece-count multiset
// cannot capture soundly (see DESIGN.md): the cache here is keyed by
// the board hash together with the two squares instead. It keeps the
// same safety property spec.md asks for — a stale or colliding entry
// only ever costs a recompute, never an incorrect answer — since the
// key is checked on every lookup and overwritten on every miss.
type seeCacheEntry struct {
	key    uint64
	result int32
}

const seeCacheSize = 1 << 15 // 32K entries, per spec.md §4.E

var seeCache [seeCacheSize]seeCacheEntry

func seeCacheKey(boardHash uint64, from, to Square) uint64 {
	return boardHash ^ uint64(from)<<1 ^ uint64(to)<<9
}

func seeCacheIndex(key uint64) uint32 {
	// Fibonacci hashing down to 15 bits.
	return uint32((key * 0x9E3779B97F4A7C15) >> 49)
}

// see returns the static-exchange evaluation of the not yet made
// capture from `from` to `to`: the mover is read from `from` and the
// initial victim from `to`, and the result is the mover's signed net
// gain, clipped above at seeMaxGain. The move generator reaches it
// through seeForMove.
func (pos *Position) see(from, to Square) int {
	key := seeCacheKey(pos.Hash(), from, to)
	idx := seeCacheIndex(key)
	if e := seeCache[idx]; e.key == key {
		return int(e.result)
	}

	mover := pos.Squares[from]
	victim := pos.Squares[to]
	moverSide := mover.Colour()

	var removed [64]bool
	removed[from] = true

	gain := [40]int{}
	capValue := pieceValueUnits(victim)
	promoting := mover.Kind() == KindPawn && lastRankFor(moverSide, to)
	if promoting {
		capValue += seeRoyalValue - seePawnValue
	}
	gain[0] = capValue

	attackerValue := pieceValueUnits(mover)
	if promoting {
		attackerValue = seeRoyalValue
	}
	side := moverSide.Other()

	d := 0
	for d < len(gain)-1 {
		d++
		gain[d] = attackerValue - gain[d-1]
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}
		sq, p := pos.seeFindAttacker(to, side, &removed)
		if sq == NoSquare {
			break
		}
		removed[sq] = true
		attackerValue = pieceValueUnits(p)
		if p.Kind() == KindPawn && lastRankFor(side, to) {
			attackerValue = seeRoyalValue
		}
		side = side.Other()
	}
	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}

	// gain[0] is already the signed net exchange value: the unwind loop
	// above applies the "may stand pat" clip (max(-gain[d-1], gain[d]))
	// at every ply, so a losing capture correctly comes out negative
	// here and must stay negative — scoreCaptureMove relies on the sign
	// to place losing captures below the neutral quiet band (spec.md
	// §3.7/§4.F). Only the upper bound is clamped, matching the spec's
	// packable-magnitude ceiling for good captures.
	result := gain[0]
	if result > seeMaxGain {
		result = seeMaxGain
	}

	seeCache[idx] = seeCacheEntry{key: key, result: int32(result)}
	return result
}

// seeFindAttacker scans for side's cheapest piece attacking `to`,
// skipping any square marked in removed (pieces already consumed
// earlier in the exchange, so sliders stacked behind them are
// correctly revealed) and any piece pinned against its own king along a
// line that does not pass through `to` (it cannot legally join the
// exchange). Scan order is value order, so the first hit is the
// cheapest: pawn, knight, bishop, rook, queen, king.
func (pos *Position) seeFindAttacker(to Square, side Colour, removed *[64]bool) (Square, Piece) {
	pr := to.Rank() - 1
	if side == Black {
		pr = to.Rank() + 1
	}
	if pr >= 0 && pr <= 7 {
		for _, df := range [2]int{-1, 1} {
			f := to.File() + df
			if f < 0 || f > 7 {
				continue
			}
			sq := NewSquare(f, pr)
			if removed[sq] {
				continue
			}
			p := pos.Squares[sq]
			if p.Kind() == KindPawn && p.Colour() == side && pos.seeCanJoin(side, sq, to) {
				return sq, p
			}
		}
	}

	s := &pos.Sides[side]
	for i := 1; i <= s.NrKnights; i++ {
		sq := s.Pieces[i]
		if removed[sq] {
			continue
		}
		if sq2sq[sq][to]&sq2sqKnight != 0 && pos.seeCanJoin(side, sq, to) {
			return sq, pos.Squares[sq]
		}
	}

	if sq, p, ok := pos.seeScanDirs(to, side, KindBishop, []int{1, 3, 5, 7}, removed); ok {
		return sq, p
	}
	if sq, p, ok := pos.seeScanDirs(to, side, KindRook, []int{0, 2, 4, 6}, removed); ok {
		return sq, p
	}
	if sq, p, ok := pos.seeScanDirs(to, side, KindQueen, []int{0, 1, 2, 3, 4, 5, 6, 7}, removed); ok {
		return sq, p
	}

	for d := 0; d < numDirs; d++ {
		if kingDirs[to]&dirBit(d) == 0 {
			continue
		}
		sq := Square(int(to) + dirOffset[d])
		if removed[sq] {
			continue
		}
		p := pos.Squares[sq]
		if p.Kind() == KindKing && p.Colour() == side {
			return sq, p
		}
	}
	return NoSquare, Empty
}

// seeScanDirs checks, for each direction in dirs, the first non-removed
// occupied square starting from `to`; if it is a piece of `side` and
// `kind`, and it can legally join the exchange (not pinned away from
// the line to `to`), it is returned.
func (pos *Position) seeScanDirs(to Square, side Colour, kind Kind, dirs []int, removed *[64]bool) (Square, Piece, bool) {
	for _, d := range dirs {
		sq := pos.firstAlongSkipping(to, d, removed)
		if sq == NoSquare {
			continue
		}
		p := pos.Squares[sq]
		if p.Kind() == kind && p.Colour() == side && pos.seeCanJoin(side, sq, to) {
			return sq, p, true
		}
	}
	return NoSquare, Empty, false
}

// firstAlongSkipping walks from `to` in direction d, treating every
// square marked in removed as empty, and returns the first square that
// is genuinely occupied.
func (pos *Position) firstAlongSkipping(to Square, d int, removed *[64]bool) Square {
	n := int(rayLen[to][d])
	cur := to
	for k := 0; k < n; k++ {
		cur = Square(int(cur) + dirOffset[d])
		if removed[cur] {
			continue
		}
		if pos.Squares[cur] != Empty {
			return cur
		}
	}
	return NoSquare
}

// seeCanJoin reports whether the piece on sq is free to capture on to
// without exposing its own king: either it is not pinned at all, or its
// pin line runs through to.
func (pos *Position) seeCanJoin(side Colour, sq, to Square) bool {
	pinDirs := pos.pinDirsOf(side, sq)
	return isMoveAlongPin(pinDirs, sq, to)
}

// seeForMove is the entry point the move generator uses to pre-score a
// pseudo-legal capture or promotion: the net material swing for the
// side to move, from making the move at (from,to).
func (pos *Position) seeForMove(from, to Square) int {
	return pos.see(from, to)
}
