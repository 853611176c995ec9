package board

import "fmt"

// Move is a 16-bit move word: (from<<6)|to (spec.md §3.7). Promotions
// are encoded by XOR-ing the `to` field with one of four fixed
// constants, chosen (per original_source/Source/promote.c) so that the
// XOR-decoded square is never itself a reachable non-promotion
// destination from a pre-promotion-rank pawn, which makes (from,to)
// unique across all legal moves including promotions.
type Move uint16

// NullMove is both the zero Move and the move "a1a1" (spec.md §6.3):
// no piece can ever legally move to its own square, so the all-zero
// word is safe to reserve.
const NullMove Move = 0

// NoMove is an alias for NullMove used where "no move" (rather than
// "the null move") is the intended reading; the two are the same word.
const NoMove Move = NullMove

// Promotion XOR constants. All four flip the same file bits and differ
// only in their rank bits, so in this file-major layout a wrong
// constant always decodes to a square off the last rank: no two
// promotions from one square share a move word.
const (
	promoXorQueen  = 32
	promoXorRook   = 34
	promoXorBishop = 35
	promoXorKnight = 39
)

func promoXorForKind(k Kind) int {
	switch k {
	case KindQueen:
		return promoXorQueen
	case KindRook:
		return promoXorRook
	case KindBishop:
		return promoXorBishop
	case KindKnight:
		return promoXorKnight
	}
	return 0
}

// NewMove builds a non-promoting move word.
func NewMove(from, to Square) Move {
	return Move(from)<<6 | Move(to&0x3F)
}

// NewPromotion builds a promotion move word: the real target square is
// XOR-encoded with promoKind's constant.
func NewPromotion(from, to Square, promoKind Kind) Move {
	encoded := int(to) ^ promoXorForKind(promoKind)
	return Move(from)<<6 | Move(encoded&0x3F)
}

// rawFrom returns the from-square bits, always meaningful.
func (m Move) rawFrom() Square {
	return Square((m >> 6) & 0x3F)
}

// rawTo returns the to-square bits as stored in the word: for a
// promotion this is XOR-encoded and is NOT the real destination square.
// Use Position.MoveInfo / position-aware decoding for the real square.
func (m Move) rawTo() Square {
	return Square(m & 0x3F)
}

// decodePromotionTarget tries every promotion constant and returns the
// first that decodes to a geometrically valid promotion destination
// for a pawn standing on `from`. ok is false if none match, meaning the
// move is not a promotion and rawTo() is already the real square.
func decodePromotionTarget(from Square, raw Square) (real Square, kind Kind, ok bool) {
	consts := [4]struct {
		x int
		k Kind
	}{
		{promoXorQueen, KindQueen},
		{promoXorRook, KindRook},
		{promoXorBishop, KindBishop},
		{promoXorKnight, KindKnight},
	}
	for _, c := range consts {
		cand := Square(int(raw) ^ c.x)
		if !cand.IsValid() {
			continue
		}
		if isPromotionTarget(from, cand) {
			return cand, c.k, true
		}
	}
	return NoSquare, KindNone, false
}

// isPromotionTarget reports whether cand is a geometrically valid
// promotion destination (push or diagonal capture to the last rank)
// for a pawn standing on the pre-promotion rank at from.
func isPromotionTarget(from, cand Square) bool {
	switch from.Rank() {
	case 6: // white pre-promotion rank
		if cand.Rank() != 7 {
			return false
		}
		return cand == from+1 || sq2sq[from][cand]&sq2sqPawnWhite != 0
	case 1: // black pre-promotion rank
		if cand.Rank() != 0 {
			return false
		}
		return cand == from-1 || sq2sq[from][cand]&sq2sqPawnBlack != 0
	}
	return false
}

// String returns long algebraic notation from the raw bits, e.g. "e2e4",
// or "a1a1" for the null move. Promotion decoding requires board context
// (see Position.MoveInfo), so for a promotion String prints the
// XOR-encoded to-square and no promotion letter (most callers go through
// Position.FormatMove instead).
func (m Move) String() string {
	return m.rawFrom().String() + m.rawTo().String()
}

// ParseMove parses long algebraic notation into a Move, given the kind
// of piece making the move is not needed: the caller supplies the
// promotion letter directly if present.
func ParseMove(s string) (Move, error) {
	if len(s) < 4 {
		return NoMove, parseErrorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 4 {
		return NewMove(from, to), nil
	}
	if len(s) != 5 {
		return NoMove, parseErrorf("invalid move %q", s)
	}
	var kind Kind
	switch s[4] {
	case 'q', 'Q':
		kind = KindQueen
	case 'r', 'R':
		kind = KindRook
	case 'b', 'B':
		kind = KindBishop
	case 'n', 'N':
		kind = KindKnight
	default:
		return NoMove, parseErrorf("invalid promotion piece %q", s[4])
	}
	return NewPromotion(from, to, kind), nil
}

// ScoredMove packs a Move with its 16-bit move-ordering pre-score
// (spec.md §3.7): low 16 bits the move, high 16 bits the score, so
// that plain integer comparison sorts by (score, move).
type ScoredMove uint32

func NewScoredMove(m Move, score uint16) ScoredMove {
	return ScoredMove(score)<<16 | ScoredMove(m)
}

func (sm ScoredMove) Move() Move {
	return Move(sm & 0xFFFF)
}

func (sm ScoredMove) Score() uint16 {
	return uint16(sm >> 16)
}

func (sm ScoredMove) String() string {
	return fmt.Sprintf("%s(%#04x)", sm.Move(), sm.Score())
}

// MoveList is a fixed-size, non-allocating collector for generated
// moves: the generator writes directly into caller-owned space, per
// spec.md §6.1 ("out_array ... must hold at least 256 entries").
type MoveList struct {
	moves [256]ScoredMove
	n     int
}

func (ml *MoveList) Add(sm ScoredMove) {
	ml.moves[ml.n] = sm
	ml.n++
}

func (ml *MoveList) Len() int { return ml.n }

func (ml *MoveList) Get(i int) ScoredMove { return ml.moves[i] }

func (ml *MoveList) Clear() { ml.n = 0 }

func (ml *MoveList) Slice() []ScoredMove { return ml.moves[:ml.n] }

// Contains reports whether m appears (with any score) in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i].Move() == m {
			return true
		}
	}
	return false
}
