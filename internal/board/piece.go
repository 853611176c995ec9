package board

// Piece is a tagged piece code: besides kind and colour it also carries
// state that the move generator needs close at hand, so dispatch never
// has to consult a second flag (spec.md §3.2):
//   - king / king-with-castle-rights
//   - rook / rook-with-castle-rights
//   - pawn-on-starting-rank / pawn-mid-board / pawn-on-pre-promotion-rank
//   - bishop-on-light-square / bishop-on-dark-square
//   - knight, queen
//
// The codes are lifted from original_source/Source/board.h's
// `enum board_piece` so that the low bit of every non-empty code is the
// colour (white=0, black=1), matching spec.md §3.2 exactly.
type Piece int8

const (
	Empty Piece = 0

	WhiteKing       Piece = 2
	BlackKing       Piece = 3
	WhiteKingCastle Piece = 4 // king has not moved, castle rights may exist
	BlackKingCastle Piece = 5

	WhiteKnight Piece = 6
	BlackKnight Piece = 7

	WhitePawnRank2 Piece = 8 // can advance two squares
	BlackPawnRank7 Piece = 9
	WhitePawn      Piece = 10
	BlackPawn      Piece = 11
	WhitePawnRank7 Piece = 12 // next push promotes
	BlackPawnRank2 Piece = 13

	WhiteBishopLight Piece = 14
	BlackBishopLight Piece = 15
	WhiteBishopDark  Piece = 16
	BlackBishopDark  Piece = 17

	WhiteRook       Piece = 18
	BlackRook       Piece = 19
	WhiteRookCastle Piece = 20 // rook has not moved, castle rights may exist
	BlackRookCastle Piece = 21

	WhiteQueen Piece = 22
	BlackQueen Piece = 23
)

// Colour is a side: White (0) or Black (1). The numeric values double as
// an index into any [2]T per-side array.
type Colour int8

const (
	White Colour = 0
	Black Colour = 1
)

// Other returns the opposing colour.
func (c Colour) Other() Colour {
	return c ^ 1
}

func (c Colour) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Colour returns p's colour. Only meaningful for p != Empty.
func (p Piece) Colour() Colour {
	return Colour(p & 1)
}

// Kind is a piece kind stripped of the extra state baked into Piece.
type Kind int8

const (
	KindNone Kind = iota
	KindKing
	KindQueen
	KindRook
	KindBishop
	KindKnight
	KindPawn
)

// Kind returns p's generic kind.
func (p Piece) Kind() Kind {
	switch p {
	case Empty:
		return KindNone
	case WhiteKing, BlackKing, WhiteKingCastle, BlackKingCastle:
		return KindKing
	case WhiteQueen, BlackQueen:
		return KindQueen
	case WhiteRook, BlackRook, WhiteRookCastle, BlackRookCastle:
		return KindRook
	case WhiteBishopLight, BlackBishopLight, WhiteBishopDark, BlackBishopDark:
		return KindBishop
	case WhiteKnight, BlackKnight:
		return KindKnight
	case WhitePawnRank2, BlackPawnRank7, WhitePawn, BlackPawn, WhitePawnRank7, BlackPawnRank2:
		return KindPawn
	}
	return KindNone
}

// IsSlider reports whether p moves along rays (queen, rook, or bishop).
func (p Piece) IsSlider() bool {
	switch p.Kind() {
	case KindQueen, KindRook, KindBishop:
		return true
	}
	return false
}

// CanCastle reports whether p is a king or rook still carrying castle rights.
func (p Piece) CanCastle() bool {
	switch p {
	case WhiteKingCastle, BlackKingCastle, WhiteRookCastle, BlackRookCastle:
		return true
	}
	return false
}

// rayDirs returns the bitset of king-directions (see geometry.go) that p
// slides along, or 0 for non-sliders.
func (p Piece) rayDirs() dirSet {
	switch p.Kind() {
	case KindQueen:
		return dirSetQueen
	case KindRook:
		return dirSetRook
	case KindBishop:
		return dirSetBishop
	}
	return 0
}

// seeKind buckets a kind into SEE's 4-way classification: pawn=0,
// minor=1, rook=2, royal=3 (spec.md §4.E). Queen and king share the
// "royal" bucket: a king is never actually consumed in an exchange (the
// generator never emits a move leaving it in check), so its presence in
// the royal bucket only ever affects the terminal "side to move may
// stand pat" clip, not a real capture.
func (k Kind) seeKind() int {
	switch k {
	case KindPawn:
		return 0
	case KindKnight, KindBishop:
		return 1
	case KindRook:
		return 2
	case KindQueen, KindKing:
		return 3
	}
	return 0
}

// char returns the FEN/SAN letter for p ('P','N','B','R','Q','K'),
// lower-cased for black.
func (p Piece) char() byte {
	var c byte
	switch p.Kind() {
	case KindPawn:
		c = 'P'
	case KindKnight:
		c = 'N'
	case KindBishop:
		c = 'B'
	case KindRook:
		c = 'R'
	case KindQueen:
		c = 'Q'
	case KindKing:
		c = 'K'
	default:
		return ' '
	}
	if p.Colour() == Black {
		c += 'a' - 'A'
	}
	return c
}

// newPawn returns a pawn of colour c tagged for square sq's rank.
func newPawn(c Colour, sq Square) Piece {
	rank := sq.Rank()
	if c == White {
		switch rank {
		case 1:
			return WhitePawnRank2
		case 6:
			return WhitePawnRank7
		default:
			return WhitePawn
		}
	}
	switch rank {
	case 6:
		return BlackPawnRank7
	case 1:
		return BlackPawnRank2
	default:
		return BlackPawn
	}
}

// newKing returns a king of colour c, tagged with castle rights if castle is true.
func newKing(c Colour, castle bool) Piece {
	if c == White {
		if castle {
			return WhiteKingCastle
		}
		return WhiteKing
	}
	if castle {
		return BlackKingCastle
	}
	return BlackKing
}

// newRook returns a rook of colour c, tagged with castle rights if castle is true.
func newRook(c Colour, castle bool) Piece {
	if c == White {
		if castle {
			return WhiteRookCastle
		}
		return WhiteRook
	}
	if castle {
		return BlackRookCastle
	}
	return BlackRook
}

// newBishop returns a bishop of colour c on square sq, tagged by the
// colour of sq.
func newBishop(c Colour, sq Square) Piece {
	light := sq.IsLight()
	if c == White {
		if light {
			return WhiteBishopLight
		}
		return WhiteBishopDark
	}
	if light {
		return BlackBishopLight
	}
	return BlackBishopDark
}

func newKnight(c Colour) Piece {
	if c == White {
		return WhiteKnight
	}
	return BlackKnight
}

func newQueen(c Colour) Piece {
	if c == White {
		return WhiteQueen
	}
	return BlackQueen
}
