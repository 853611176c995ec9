package board

import "strings"

// ANSI SGR codes for a coloured terminal board, grounded on
// original_source/Source/format.c's ANSI_* definitions: background
// colour for the square, foreground for the piece, bold for White.
const (
	ansiEscape   = "\033["
	ansiLight    = "46"
	ansiDark     = "44"
	ansiWhiteFg  = "37"
	ansiBlackFg  = "30"
	ansiBold     = "1"
	ansiReset    = "0"
	ansiEnd      = "m"
)

// Format renders the board as an 8-rank by 8-file text grid (spec.md
// §6.1's position_format): rank 8 at the top unless flip is true, in
// which case the board is shown from Black's point of view (rank 1 on
// top, files h..a left to right). With ansi, each square gets the
// original's light/dark background and bold-white/plain-black
// foreground; without, pieces print as FEN letters and empty squares as
// '-', matching a plain-terminal fallback the original's own ANSI
// scheme degrades to.
func (pos *Position) Format(flip, ansi bool) string {
	var b strings.Builder
	ranks := [8]int{7, 6, 5, 4, 3, 2, 1, 0}
	files := [8]int{0, 1, 2, 3, 4, 5, 6, 7}
	if flip {
		ranks = [8]int{0, 1, 2, 3, 4, 5, 6, 7}
		files = [8]int{7, 6, 5, 4, 3, 2, 1, 0}
	}
	for _, rank := range ranks {
		for _, file := range files {
			sq := NewSquare(file, rank)
			p := pos.Squares[sq]
			if ansi {
				b.WriteString(formatSquareANSI(sq, p))
			} else {
				b.WriteByte(formatSquarePlain(p))
			}
		}
		if ansi {
			b.WriteString(ansiEscape + ansiReset + ansiEnd)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatSquarePlain(p Piece) byte {
	if p == Empty {
		return '-'
	}
	return p.char()
}

func formatSquareANSI(sq Square, p Piece) string {
	bg := ansiDark
	if sq.IsLight() {
		bg = ansiLight
	}
	if p == Empty {
		return ansiEscape + bg + ansiEnd + " "
	}
	fg := ansiBlackFg
	weight := ""
	if p.Colour() == White {
		fg = ansiWhiteFg
		weight = ";" + ansiBold
	}
	return ansiEscape + bg + ";" + fg + weight + ansiEnd + string(p.char())
}

// MoveInfo decodes a move word against the current board without
// applying it (spec.md §6.1's move_info): the moving and (if any)
// captured piece, whether it is a castle or en-passant capture, and
// the promotion kind, or KindNone if it is not a promotion.
type MoveInfo struct {
	From, To    Square
	Moving      Piece
	Captured    Piece
	Promotion   Kind
	IsCastle    bool
	IsEnPassant bool
}

// MoveInfo decodes m against the position as it stands right now: m
// must be a move the move generator could have produced in this exact
// position (the from-square's piece is what determines how the move
// word is interpreted, same as MakeMove's own analyzeMove).
func (pos *Position) MoveInfo(m Move) MoveInfo {
	a := pos.analyzeMove(m)
	info := MoveInfo{
		From:        a.from,
		To:          a.to,
		Moving:      a.originalMoverPiece,
		Captured:    a.capturedPiece,
		IsCastle:    a.kind == kindCastle,
		IsEnPassant: a.kind == kindEnPassant,
	}
	if a.kind == kindPromotion {
		info.Promotion = a.newMoverPiece.Kind()
	}
	return info
}

func promoLetter(k Kind) byte {
	switch k {
	case KindQueen:
		return 'q'
	case KindRook:
		return 'r'
	case KindBishop:
		return 'b'
	case KindKnight:
		return 'n'
	}
	return 0
}

// FormatMove renders m in long algebraic notation with a lowercase
// promotion suffix when applicable, e.g. "e7e8q". Requires the same
// board-context precondition as MoveInfo.
func (pos *Position) FormatMove(m Move) string {
	info := pos.MoveInfo(m)
	s := info.From.String() + info.To.String()
	if l := promoLetter(info.Promotion); l != 0 {
		s += string(l)
	}
	return s
}
