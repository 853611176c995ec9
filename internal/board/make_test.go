package board

import "testing"

// snapshot captures every piece of state MakeMove/UnmakeMove must
// restore exactly (spec.md §8's make/unmake roundtrip property).
type snapshot struct {
	squares        [64]Piece
	listIndex      [64]int8
	sides          [2]Side
	sideToMove     Colour
	fullMoveNumber int
	current        int
	hash           uint64
	pawnKingHash   uint64
	materialKey    uint64
	halfmoveClock  int
}

func snapshotOf(pos *Position) snapshot {
	return snapshot{
		squares:        pos.Squares,
		listIndex:      pos.ListIndex,
		sides:          pos.Sides,
		sideToMove:     pos.SideToMove,
		fullMoveNumber: pos.FullMoveNumber,
		current:        pos.Current,
		hash:           pos.Hash(),
		pawnKingHash:   pos.PawnKingHash(),
		materialKey:    pos.MaterialKey(),
		halfmoveClock:  pos.HalfmoveClock(),
	}
}

// assertRoundTrip walks every legal move from pos to `depth` plies,
// asserting make(m)+unmake() restores the pre-move snapshot exactly,
// and that CheckInvariants holds after every make.
func assertRoundTrip(t *testing.T, pos *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	var moves MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		before := snapshotOf(pos)
		pos.MakeMove(m)
		if err := pos.CheckInvariants(); err != nil {
			t.Fatalf("after %s: CheckInvariants: %v", pos.FormatMove(m), err)
		}
		assertRoundTrip(t, pos, depth-1)
		pos.UnmakeMove()
		after := snapshotOf(pos)
		if after != before {
			t.Fatalf("make/unmake of %s did not restore state:\nbefore=%+v\nafter=%+v", m, before, after)
		}
	}
}

func TestMakeUnmakeRoundTripStartingPosition(t *testing.T) {
	assertRoundTrip(t, New(), 3)
}

func TestMakeUnmakeRoundTripKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	assertRoundTrip(t, pos, 2)
}

func TestMakeUnmakeRoundTripBackRankPromotion(t *testing.T) {
	pos, err := ParseFEN("n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	assertRoundTrip(t, pos, 2)
}

func TestMakeUnmakeRoundTripEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/KP5r/1R3p1k/8/6P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	assertRoundTrip(t, pos, 2)
}

func TestMakeMoveCastlingUpdatesRookAndKing(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewMove(E1, G1))
	if pos.PieceAt(G1).Kind() != KindKing {
		t.Errorf("PieceAt(G1) = %v, want a king", pos.PieceAt(G1))
	}
	if pos.PieceAt(F1).Kind() != KindRook {
		t.Errorf("PieceAt(F1) = %v, want a rook", pos.PieceAt(F1))
	}
	if pos.PieceAt(E1) != Empty || pos.PieceAt(H1) != Empty {
		t.Error("E1 and H1 should be empty after castling")
	}
	if err := pos.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
	pos.UnmakeMove()
	if pos.PieceAt(E1) != WhiteKingCastle || pos.PieceAt(H1) != WhiteRookCastle {
		t.Error("unmake should restore the pre-castle king/rook placement")
	}
}

func TestMakeMoveEnPassantCapture(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewMove(E5, D6))
	if pos.PieceAt(D6).Kind() != KindPawn || pos.PieceAt(D6).Colour() != White {
		t.Errorf("PieceAt(D6) = %v, want a white pawn", pos.PieceAt(D6))
	}
	if pos.PieceAt(D5) != Empty {
		t.Error("the captured pawn's square (D5) should be empty")
	}
	if err := pos.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestMakeMovePromotion(t *testing.T) {
	pos, err := ParseFEN("8/4Pk2/8/8/8/8/5K2/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewPromotion(E7, E8, KindQueen))
	if got := pos.PieceAt(E8); got.Kind() != KindQueen || got.Colour() != White {
		t.Errorf("PieceAt(E8) = %v, want a white queen", got)
	}
	if err := pos.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
	pos.UnmakeMove()
	if pos.PieceAt(E7) != WhitePawnRank7 || pos.PieceAt(E8) != Empty {
		t.Error("unmake should restore the pawn to E7 and clear E8")
	}
}

func TestMakeMoveHalfmoveClockResetsOnCaptureOrPawnMove(t *testing.T) {
	pos := New()
	pos.MakeMove(NewMove(E2, E4))
	if pos.HalfmoveClock() != 0 {
		t.Errorf("HalfmoveClock after a pawn push = %d, want 0", pos.HalfmoveClock())
	}
	pos.MakeMove(NewMove(B8, C6))
	if pos.HalfmoveClock() != 1 {
		t.Errorf("HalfmoveClock after a non-pawn, non-capture move = %d, want 1", pos.HalfmoveClock())
	}
}
