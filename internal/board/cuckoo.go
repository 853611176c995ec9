package board

// cuckooEntry pairs a verification key with the reversible move that
// produced it. A lookup hit is only trusted once Move round-trips back
// to the same key (cuckoo.go never claims certainty by itself).
type cuckooEntry struct {
	key  uint64
	move Move
}

const cuckooTableSize = 4096 // 12-bit index

// cuckooTable holds two 4096-slot open-addressed tables (spec.md §4.A).
// Entries are `~(Z[p,a] ^ Z[p,b])` for every pair of squares reachable
// by one reversible move of a non-pawn piece p, keyed by two 12-bit
// slices of that value.
var cuckooTable [2][cuckooTableSize]cuckooEntry

// cuckooGenericPieces lists, for each non-pawn kind/colour, the Piece
// whose zobrist key stands in for "a piece of this kind and colour on
// this square" regardless of castle tag — a castle-tagged rook and a
// plain rook reach the same squares, and a repetition involving either
// still round-trips the board hash the same way once the tag itself is
// accounted for separately by the hash formula in make.go.
var cuckooGenericPieces = []Piece{
	WhiteKing, BlackKing,
	WhiteQueen, BlackQueen,
	WhiteRook, BlackRook,
	WhiteBishopLight, BlackBishopLight,
	WhiteBishopDark, BlackBishopDark,
	WhiteKnight, BlackKnight,
}

func cuckooSlices(key uint64) (uint32, uint32) {
	return uint32(key & 0xFFF), uint32((key >> 12) & 0xFFF)
}

// dirIndexOf returns the bit index of the single set bit in s, or -1.
func dirIndexOf(s dirSet) int {
	for i := 0; i < numDirs; i++ {
		if s == dirBit(i) {
			return i
		}
	}
	return -1
}

func initCuckoo() {
	for _, p := range cuckooGenericPieces {
		for a := Square(0); a < 64; a++ {
			for b := a + 1; b < 64; b++ {
				var ok bool
				if p.Kind() == KindKing {
					// King reachability: adjacent squares only (one ray step).
					d := dirIndexOf(dirSet(sq2sq[a][b] & sq2sqDirMask))
					ok = d >= 0 && int(a)+dirOffset[d] == int(b)
				} else if p.Kind() == KindKnight {
					ok = sq2sq[a][b]&sq2sqKnight != 0
				} else {
					ok = sq2sq[a][b]&sq2sqWord(p.rayDirs()) != 0
				}
				if !ok {
					continue
				}
				key := ^(zobrist(p, a) ^ zobrist(p, b))
				insertCuckoo(cuckooEntry{key: key, move: NewMove(a, b)})
			}
		}
	}
}

// insertCuckoo performs a bounded cuckoo insertion, evicting an
// existing occupant to its alternate table/slot on collision. Table
// sizing (2*4096 slots for a few thousand candidate moves) makes this
// terminate quickly in practice; the iteration cap is a safety net, not
// a correctness requirement — a dropped entry only means one fewer
// move is recognized by UpcomingRepetition, never a wrong answer.
func insertCuckoo(e cuckooEntry) {
	table := 0
	for i := 0; i < 64; i++ {
		var slot uint32
		h1, h2 := cuckooSlices(e.key)
		if table == 0 {
			slot = h1
		} else {
			slot = h2
		}
		if cuckooTable[table][slot] == (cuckooEntry{}) {
			cuckooTable[table][slot] = e
			return
		}
		cuckooTable[table][slot], e = e, cuckooTable[table][slot]
		table = 1 - table
	}
}

// cuckooLookup reports whether delta equals `~(Z[p,a]^Z[p,b])` for some
// reversible single-piece move recorded at init time, returning that move.
func cuckooLookup(delta uint64) (Move, bool) {
	h1, h2 := cuckooSlices(delta)
	if e := cuckooTable[0][h1]; e.key == delta && e != (cuckooEntry{}) {
		return e.move, true
	}
	if e := cuckooTable[1][h2]; e.key == delta && e != (cuckooEntry{}) {
		return e.move, true
	}
	return NoMove, false
}
