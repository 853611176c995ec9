package board

import (
	"strconv"
	"strings"
)

// ParseFEN parses a FEN or EPD string (spec.md §6.2) into a fresh
// Position. Only the first four fields (placement, side to move,
// castling, en-passant) are required, matching EPD; halfmove clock and
// fullmove number default to 0 and 1 when absent.
func ParseFEN(s string) (*Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, parseErrorf("fen %q: want at least 4 fields, got %d", s, len(fields))
	}

	squares, err := parsePlacement(fields[0])
	if err != nil {
		return nil, err
	}

	sideToMove, err := parseSideToMove(fields[1])
	if err != nil {
		return nil, err
	}

	if err := applyCastlingRights(&squares, fields[2]); err != nil {
		return nil, err
	}

	epSquare, err := parseEnPassant(fields[3], sideToMove, squares)
	if err != nil {
		return nil, err
	}

	halfmove := 0
	if len(fields) >= 5 {
		halfmove, err = strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, parseErrorf("fen %q: invalid halfmove clock %q", s, fields[4])
		}
	}
	fullmove := 1
	if len(fields) >= 6 {
		fullmove, err = strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, parseErrorf("fen %q: invalid fullmove number %q", s, fields[5])
		}
	}

	pos := &Position{}
	if err := pos.SetupFromScratch(squares, sideToMove, fullmove, halfmove, epSquare); err != nil {
		return nil, err
	}
	return pos, nil
}

func parsePlacement(field string) ([64]Piece, error) {
	var squares [64]Piece
	for i := range squares {
		squares[i] = Empty
	}
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return squares, parseErrorf("fen placement %q: want 8 ranks, got %d", field, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for _, c := range rankStr {
			if file >= 8 {
				return squares, parseErrorf("fen placement %q: rank %d overflows", field, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, err := pieceFromFENChar(byte(c), NewSquare(file, rank))
			if err != nil {
				return squares, err
			}
			squares[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return squares, parseErrorf("fen placement %q: rank %d has %d files, want 8", field, rank+1, file)
		}
	}
	return squares, nil
}

func pieceFromFENChar(c byte, sq Square) (Piece, error) {
	colour := White
	lower := c
	if c >= 'a' && c <= 'z' {
		colour = Black
	} else {
		lower = c - 'A' + 'a'
	}
	switch lower {
	case 'p':
		return newPawn(colour, sq), nil
	case 'n':
		return newKnight(colour), nil
	case 'b':
		return newBishop(colour, sq), nil
	case 'r':
		return newRook(colour, false), nil
	case 'q':
		return newQueen(colour), nil
	case 'k':
		return newKing(colour, false), nil
	}
	return Empty, parseErrorf("fen placement: invalid piece letter %q", string(c))
}

func parseSideToMove(field string) (Colour, error) {
	switch field {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return White, parseErrorf("fen side-to-move %q: want \"w\" or \"b\"", field)
}

// applyCastlingRights upgrades kings/rooks on their home squares to the
// castle-tagged Piece variant for every right named in field. Rights
// whose king or rook is not actually on its home square are rejected:
// a FEN claiming a right that cannot exist is malformed input, not a
// position to silently normalize (spec.md §6.2).
func applyCastlingRights(squares *[64]Piece, field string) error {
	if field == "-" {
		return nil
	}
	type right struct {
		letter   byte
		colour   Colour
		kingSq   Square
		rookSq   Square
	}
	rights := []right{
		{'K', White, E1, H1},
		{'Q', White, E1, A1},
		{'k', Black, E8, H8},
		{'q', Black, E8, A8},
	}
	for _, c := range field {
		found := false
		for _, r := range rights {
			if byte(c) != r.letter {
				continue
			}
			found = true
			if squares[r.kingSq].Kind() != KindKing || squares[r.kingSq].Colour() != r.colour {
				return parseErrorf("fen castling %q: no %s king on %s for %q", field, r.colour, r.kingSq, string(c))
			}
			if squares[r.rookSq].Kind() != KindRook || squares[r.rookSq].Colour() != r.colour {
				return parseErrorf("fen castling %q: no %s rook on %s for %q", field, r.colour, r.rookSq, string(c))
			}
			squares[r.kingSq] = newKing(r.colour, true)
			squares[r.rookSq] = newRook(r.colour, true)
		}
		if !found {
			return parseErrorf("fen castling %q: invalid right %q", field, string(c))
		}
	}
	return nil
}

// parseEnPassant validates the ep target square against board
// occupancy (spec.md §6.2's update_after_edit rule: "ep target is
// inconsistent with board occupancy"), not just its rank: the target
// square and the square behind it (where the double-pushing pawn
// started) must both be empty, and the square in front of it (where
// that pawn now stands) must hold an opposing pawn.
func parseEnPassant(field string, sideToMove Colour, squares [64]Piece) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq, err := ParseSquare(field)
	if err != nil {
		return NoSquare, parseErrorf("fen en-passant %q: %v", field, err)
	}
	wantRank, capturedRank, originRank := 5, 4, 6 // White to move: Black just played ..7-..5
	if sideToMove == Black {
		wantRank, capturedRank, originRank = 2, 3, 1
	}
	if sq.Rank() != wantRank {
		return NoSquare, parseErrorf("fen en-passant %q: wrong rank for side to move", field)
	}
	if squares[sq] != Empty {
		return NoSquare, parseErrorf("fen en-passant %q: target square is occupied", field)
	}
	originSq := NewSquare(sq.File(), originRank)
	if squares[originSq] != Empty {
		return NoSquare, parseErrorf("fen en-passant %q: double-push origin square %s is occupied", field, originSq)
	}
	capturedSq := NewSquare(sq.File(), capturedRank)
	capturedPiece := squares[capturedSq]
	if capturedPiece.Kind() != KindPawn || capturedPiece.Colour() == sideToMove {
		return NoSquare, parseErrorf("fen en-passant %q: no opposing pawn on %s", field, capturedSq)
	}
	return sq, nil
}

// FEN renders pos as a FEN string (spec.md §6.2), inverse of ParseFEN.
func (pos *Position) FEN() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		run := 0
		for file := 0; file < 8; file++ {
			p := pos.Squares[NewSquare(file, rank)]
			if p == Empty {
				run++
				continue
			}
			if run > 0 {
				b.WriteByte(byte('0' + run))
				run = 0
			}
			b.WriteByte(p.char())
		}
		if run > 0 {
			b.WriteByte(byte('0' + run))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	b.WriteByte(' ')
	if pos.SideToMove == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}
	b.WriteByte(' ')
	b.WriteString(pos.castlingFENField())
	b.WriteByte(' ')
	b.WriteString(pos.enPassantFENField())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.HalfmoveClock()))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(pos.FullMoveNumber))
	return b.String()
}

func (pos *Position) castlingFENField() string {
	var b strings.Builder
	if pos.Squares[H1] == WhiteRookCastle && pos.Squares[E1] == WhiteKingCastle {
		b.WriteByte('K')
	}
	if pos.Squares[A1] == WhiteRookCastle && pos.Squares[E1] == WhiteKingCastle {
		b.WriteByte('Q')
	}
	if pos.Squares[H8] == BlackRookCastle && pos.Squares[E8] == BlackKingCastle {
		b.WriteByte('k')
	}
	if pos.Squares[A8] == BlackRookCastle && pos.Squares[E8] == BlackKingCastle {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func (pos *Position) enPassantFENField() string {
	f := pos.frame()
	if f.EnPassantNodeCounter != f.NodeCounter || f.EnPassantLazy == NoSquare {
		return "-"
	}
	return f.EnPassantLazy.String()
}
