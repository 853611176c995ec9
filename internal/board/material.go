package board

// Material-key addends, one per non-king piece kind and colour. Each
// addend bumps a 4-bit counter in the low 48 bits and a slice of a
// 16-bit hash in the high 16 bits simultaneously, by construction: the
// counter nibbles never carry into each other because no side can ever
// have more than 10 of one piece kind (spec.md §3.4), and the constants
// are lifted verbatim from original_source/Source/board.h's
// BOARD_MATERIAL_KEY_* macros, which were built so that collisions in
// the hash portion are harmless (only used for endgame recognition).
const (
	matKeyWhitePawn        uint64 = 0x514e000000000001
	matKeyWhiteKnight      uint64 = 0x6ab5000000000010
	matKeyWhiteBishopLight uint64 = 0x2081000000000100
	matKeyWhiteBishopDark  uint64 = 0xb589000000001000
	matKeyWhiteRook        uint64 = 0xae45000000010000
	matKeyWhiteQueen       uint64 = 0x9ac3000000100000
	matKeyBlackPawn        uint64 = 0x696d000001000000
	matKeyBlackKnight      uint64 = 0xd903000010000000
	matKeyBlackBishopLight uint64 = 0x3d15000100000000
	matKeyBlackBishopDark  uint64 = 0x67f5001000000000
	matKeyBlackRook        uint64 = 0x7de9010000000000
	matKeyBlackQueen       uint64 = 0xa96f100000000000
)

// materialKeyCountsMask isolates the low 48 bits: twelve 4-bit counters.
const materialKeyCountsMask uint64 = (1 << 48) - 1

// materialAddend returns the per-piece addend used to add or remove p
// from a material key. Kings contribute nothing: each side always has
// exactly one, so tracking it would be redundant.
func materialAddend(p Piece) uint64 {
	switch p {
	case WhitePawnRank2, WhitePawn, WhitePawnRank7:
		return matKeyWhitePawn
	case BlackPawnRank7, BlackPawn, BlackPawnRank2:
		return matKeyBlackPawn
	case WhiteKnight:
		return matKeyWhiteKnight
	case BlackKnight:
		return matKeyBlackKnight
	case WhiteBishopLight:
		return matKeyWhiteBishopLight
	case WhiteBishopDark:
		return matKeyWhiteBishopDark
	case BlackBishopLight:
		return matKeyBlackBishopLight
	case BlackBishopDark:
		return matKeyBlackBishopDark
	case WhiteRook, WhiteRookCastle:
		return matKeyWhiteRook
	case BlackRook, BlackRookCastle:
		return matKeyBlackRook
	case WhiteQueen:
		return matKeyWhiteQueen
	case BlackQueen:
		return matKeyBlackQueen
	default:
		return 0
	}
}

// materialKeyCounts returns just the counter bits of key, for
// insufficient-material checks (draw.go).
func materialKeyCounts(key uint64) uint64 {
	return key & materialKeyCountsMask
}
