package board

// maxPly bounds the position's history stack: two sentinel frames (so
// lookups one or two plies before the root never need a bounds check),
// up to 250 plies of search depth, and one extra frame for the ply
// currently being made (spec.md §3.6).
const maxPly = 253

// rootPly is where Current starts: a fresh or freshly-loaded position
// has no history before it, only the two sentinels.
const rootPly = 2

// Position is an incrementally-maintained chess position: a mailbox
// board, two attack-mapped Sides, and an explicit stack of history
// frames that make/unmake push and pop (spec.md §3). Squares,
// ListIndex and Sides are live state, mutated in place and restored
// exactly on unmake; Frames hold only the small per-ply bookkeeping
// (hashes, material key, undo log) needed to reverse that mutation.
type Position struct {
	Squares   [64]Piece
	ListIndex [64]int8 // index into the owning side's Sides[c].Pieces
	Sides     [2]Side  // indexed by Colour

	Frames  [maxPly]Frame
	Current int

	SideToMove Colour

	FullMoveNumber int // per FEN field 6; increments after Black's move
}

// New returns the standard starting position.
func New() *Position {
	pos := &Position{}
	startSquares := [64]Piece{
		A1: WhiteRookCastle, B1: WhiteKnight, C1: WhiteBishopDark, D1: WhiteQueen,
		E1: WhiteKingCastle, F1: WhiteBishopLight, G1: WhiteKnight, H1: WhiteRookCastle,
		A8: BlackRookCastle, B8: BlackKnight, C8: BlackBishopLight, D8: BlackQueen,
		E8: BlackKingCastle, F8: BlackBishopDark, G8: BlackKnight, H8: BlackRookCastle,
	}
	for f := 0; f < 8; f++ {
		startSquares[NewSquare(f, 1)] = WhitePawnRank2
		startSquares[NewSquare(f, 6)] = BlackPawnRank7
	}
	if err := pos.SetupFromScratch(startSquares, White, 1, 0, NoSquare); err != nil {
		panic("board: New: " + err.Error())
	}
	return pos
}

func (pos *Position) frame() *Frame { return &pos.Frames[pos.Current] }

// ActiveSide is the side to move at the current ply.
func (pos *Position) ActiveSide() *Side { return &pos.Sides[pos.SideToMove] }

// PassiveSide is the side waiting at the current ply.
func (pos *Position) PassiveSide() *Side { return &pos.Sides[pos.SideToMove.Other()] }

// PieceAt returns the piece occupying sq, or Empty.
func (pos *Position) PieceAt(sq Square) Piece { return pos.Squares[sq] }

// King returns c's king square.
func (pos *Position) King(c Colour) Square { return pos.Sides[c].King() }

// Hash returns the current board hash (side-to-move complemented).
func (pos *Position) Hash() uint64 { return pos.frame().BoardHash }

// PawnKingHash returns the current reduced pawn/king hash.
func (pos *Position) PawnKingHash() uint64 { return pos.frame().PawnKingHash }

// MaterialKey returns the current material key.
func (pos *Position) MaterialKey() uint64 { return pos.frame().MaterialKey }

// HalfmoveClock returns the current halfmove clock (plies since the
// last capture or pawn move, for the fifty-move rule).
func (pos *Position) HalfmoveClock() int { return pos.frame().HalfmoveClock }

// NodeCounter returns the current ply's lazy-evaluation freshness token.
func (pos *Position) NodeCounter() int64 { return pos.frame().NodeCounter }

// Killers returns the current ply's killer-move slots. This package
// never reads or writes their contents itself; they are carried across
// make/unmake purely so an external search layer can stash per-ply
// move-ordering hints (spec.md §3.6).
func (pos *Position) Killers() *[7]uint16 { return &pos.frame().Killers }

// SetKillers overwrites the current ply's killer-move slots.
func (pos *Position) SetKillers(k [7]uint16) { pos.frame().Killers = k }

// IsAttackedBy reports whether c attacks sq in the current position.
func (pos *Position) IsAttackedBy(c Colour, sq Square) bool {
	return pos.Sides[c].Attacks[sq].isAttacked()
}

// InCheck reports whether the side to move's king is attacked.
func (pos *Position) InCheck() bool {
	return pos.IsAttackedBy(pos.SideToMove.Other(), pos.King(pos.SideToMove))
}

// SetupFromScratch replaces the position wholesale: it validates
// squares, rebuilds both sides' piece lists and attack maps, and
// recomputes every incremental field from nothing (spec.md §4.C,
// "full recompute path" — used by FEN loading and never by make/unmake,
// which maintain everything incrementally instead).
func (pos *Position) SetupFromScratch(squares [64]Piece, sideToMove Colour, fullMoveNumber, halfmoveClock int, epSquare Square) error {
	if err := validateSquares(squares); err != nil {
		return err
	}

	pos.Current = rootPly
	pos.Squares = squares
	pos.SideToMove = sideToMove
	pos.FullMoveNumber = fullMoveNumber
	for sq := Square(0); sq < 64; sq++ {
		pos.ListIndex[sq] = -1
	}
	pos.Sides[White].reset(White)
	pos.Sides[Black].reset(Black)

	for i := range pos.Frames {
		pos.Frames[i] = Frame{}
	}
	f := &pos.Frames[pos.Current]
	f.HalfmoveClock = halfmoveClock
	f.Mover = sideToMove.Other()

	for sq := Square(0); sq < 64; sq++ {
		p := squares[sq]
		if p == Empty {
			continue
		}
		side := &pos.Sides[p.Colour()]
		side.addToList(p.Kind(), sq, &pos.ListIndex)
		if p.Kind() == KindKnight {
			side.addKnight(sq)
		} else {
			side.toggleNonKnightAttacks(&pos.Squares, p, sq)
		}
		if p.Kind() == KindBishop {
			side.BishopDiagonals ^= bishopDiagonalMask(sq)
		}
		if p == WhitePawnRank7 {
			side.setLastRankPawn(sq.File(), true)
		}
		if p == BlackPawnRank2 {
			side.setLastRankPawn(sq.File(), true)
		}
	}

	var boardHash, pawnKingHash, materialKey uint64
	for sq := Square(0); sq < 64; sq++ {
		p := squares[sq]
		if p == Empty {
			continue
		}
		boardHash ^= zobrist(p, sq)
		pawnKingHash ^= pawnKingZobrist(p, sq)
		materialKey += materialAddend(p)
	}
	if sideToMove == Black {
		boardHash = ^boardHash
	}
	f.BoardHash = boardHash
	f.PawnKingHash = pawnKingHash
	f.MaterialKey = materialKey

	if epSquare != NoSquare {
		f.EnPassantLazy = epSquare
		f.EnPassantNodeCounter = f.NodeCounter
	} else {
		f.EnPassantLazy = NoSquare
		f.EnPassantNodeCounter = f.NodeCounter - 1
	}

	if err := pos.checkSetupInvariants(); err != nil {
		return parseErrorf("%s", err.(*InvariantError).reason)
	}
	return nil
}

// validateSquares enforces the structural invariants a from-scratch
// setup must satisfy before any incremental state is built from it
// (spec.md §4.C): exactly one king per side, no pawn on the first or
// eighth rank, and no more than 16 pieces (8 pawns + 8 others) per side.
func validateSquares(squares [64]Piece) error {
	var kings, pawns, others [2]int
	for sq := Square(0); sq < 64; sq++ {
		p := squares[sq]
		if p == Empty {
			continue
		}
		c := p.Colour()
		switch p.Kind() {
		case KindKing:
			kings[c]++
		case KindPawn:
			pawns[c]++
			r := sq.Rank()
			if r == 0 || r == 7 {
				return parseErrorf("pawn on back rank at %s", sq)
			}
		default:
			others[c]++
		}
	}
	for c := 0; c < 2; c++ {
		if kings[c] != 1 {
			return parseErrorf("%s has %d kings, want 1", Colour(c), kings[c])
		}
		if pawns[c] > 8 {
			return parseErrorf("%s has %d pawns, want <= 8", Colour(c), pawns[c])
		}
		if others[c] > 8 {
			return parseErrorf("%s has %d non-pawn non-king pieces, want <= 8", Colour(c), others[c])
		}
	}
	return nil
}

// checkSetupInvariants is the lightweight half of CheckInvariants
// (check.go carries the expensive from-scratch-recompute-and-compare
// version used for debug builds): it only verifies that the side not
// to move is not itself in check, which is the one invariant cheap
// enough to always run after loading untrusted input.
func (pos *Position) checkSetupInvariants() error {
	if pos.IsAttackedBy(pos.SideToMove, pos.King(pos.SideToMove.Other())) {
		return invariantErrorf("side not to move (%s) is in check", pos.SideToMove.Other())
	}
	return nil
}
