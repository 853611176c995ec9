package board

import "github.com/cespare/xxhash/v2"

// pawnKingKey[piece][square] is the reduced pawn/king hash primitive,
// restricted to pawns and kings (spec.md §4.A: "a second, smaller
// incremental hash covering only pawns and kings, maintained the same
// way as the board hash"). Unlike the full board hash, whose keys come
// from the reproducible Park-Miller stream (zobrist.go), this table is
// seeded from xxhash so the two hashes can never accidentally agree.
var pawnKingKey [24][64]uint64

func initPawnKingHash() {
	for p := 0; p < 24; p++ {
		for sq := 0; sq < 64; sq++ {
			buf := [2]byte{byte(p), byte(sq)}
			pawnKingKey[p][sq] = xxhash.Sum64(buf[:])
		}
	}
}

// pawnKingZobrist returns the reduced-hash key for p on sq, or 0 if p is
// Empty or neither a pawn nor a king.
func pawnKingZobrist(p Piece, sq Square) uint64 {
	if p == Empty {
		return 0
	}
	switch p.Kind() {
	case KindPawn, KindKing:
		return pawnKingKey[p][sq]
	}
	return 0
}
