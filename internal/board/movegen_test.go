package board

import "testing"

func TestGenerateAllStartingPositionCount(t *testing.T) {
	pos := New()
	var moves MoveList
	pos.GenerateAll(&moves)
	if moves.Len() != 20 {
		t.Errorf("GenerateAll(starting position).Len() = %d, want 20", moves.Len())
	}
}

func TestGenerateAllNeverLeavesOwnKingInCheck(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var moves MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		pos.MakeMove(m)
		if pos.IsAttackedBy(pos.SideToMove, pos.King(pos.SideToMove.Other())) {
			t.Errorf("move %s leaves the mover's own king in check", pos.FormatMove(m))
		}
		pos.UnmakeMove()
	}
}

// TestEnPassantHorizontalPin is spec.md §8 scenario 6: a pseudo-legal
// en-passant capture must be rejected when it would uncover a rook's
// attack along the rank on the capturing side's king.
func TestEnPassantHorizontalPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/KP5r/1R3p1k/8/6P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewMove(G2, G4))

	var moves MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		info := pos.MoveInfo(m)
		if info.IsEnPassant {
			t.Errorf("en-passant move %s should be illegal (horizontal pin)", pos.FormatMove(m))
		}
	}
}

func TestPinnedPieceConfinedToPinLine(t *testing.T) {
	// White king e1, white bishop e2 pinned by a black rook on e8 down
	// the open e-file: the bishop (a non-ray-aligned piece relative to
	// the pin) must have no legal moves at all.
	pos, err := ParseFEN("3kr3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var moves MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		if m.rawFrom() == E2 {
			t.Errorf("pinned bishop should have no legal moves, got %s", pos.FormatMove(m))
		}
	}
}

func TestPinnedRookMayMoveAlongPinLine(t *testing.T) {
	// White king e1, white rook e2 pinned by a black rook on e8: the
	// rook may still move along the pin line (e.g. capture the pinner,
	// or shift to e3..e7), just not off it.
	pos, err := ParseFEN("3kr3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var moves MoveList
	pos.GenerateAll(&moves)
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		if m.rawFrom() != E2 {
			continue
		}
		if m.rawTo().File() != E2.File() {
			t.Errorf("pinned rook move %s leaves the pin line", pos.FormatMove(m))
		}
		found = true
	}
	if !found {
		t.Error("pinned rook should still have moves along the pin line")
	}
}

func TestIsStalemate(t *testing.T) {
	// Classic stalemate: black king a8, white king c7, white queen b6 —
	// black to move, not in check, and has no legal move.
	pos, err := ParseFEN("k7/2K5/1Q6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.InCheck() {
		t.Fatal("fixture should not be in check")
	}
	if !pos.IsStalemate() {
		t.Error("expected IsStalemate() == true")
	}
	if pos.IsCheckmate() {
		t.Error("a stalemate position is not a checkmate")
	}
}

func TestIsCheckmate(t *testing.T) {
	// Back-rank mate: black king g8 boxed in by its own pawns, white
	// rook delivers mate along the back rank.
	pos, err := ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewMove(A1, A8))
	if !pos.InCheck() {
		t.Fatal("Ra8 should give check")
	}
	if !pos.IsCheckmate() {
		t.Error("expected IsCheckmate() == true")
	}
}

func TestGenerateEscapesEmptyWhenNotInCheck(t *testing.T) {
	pos := New()
	var moves MoveList
	pos.GenerateEscapes(&moves)
	if moves.Len() != 0 {
		t.Errorf("GenerateEscapes(not in check).Len() = %d, want 0", moves.Len())
	}
}

func TestGenerateEscapesOnlyLegalWhenInCheck(t *testing.T) {
	pos, err := ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewMove(A1, A8))
	// Now it's black's turn, in check (checkmate, no escapes).
	var escapes MoveList
	pos.GenerateEscapes(&escapes)
	if escapes.Len() != 0 {
		t.Errorf("GenerateEscapes(checkmated) = %d, want 0", escapes.Len())
	}
}

func TestGenerateCapturesAndPromotionsExcludesQuietAndCastle(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var caps MoveList
	pos.GenerateCapturesAndPromotions(&caps)
	for i := 0; i < caps.Len(); i++ {
		a := pos.analyzeMove(caps.Get(i).Move())
		if a.kind == kindQuiet || a.kind == kindCastle {
			t.Errorf("GenerateCapturesAndPromotions returned a %v move: %s", a.kind, pos.FormatMove(caps.Get(i).Move()))
		}
	}
}

func TestGenerateQuietExcludesCapturesAndPromotions(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var quiets MoveList
	pos.GenerateQuiet(&quiets)
	for i := 0; i < quiets.Len(); i++ {
		a := pos.analyzeMove(quiets.Get(i).Move())
		if a.kind != kindQuiet && a.kind != kindCastle {
			t.Errorf("GenerateQuiet returned a %v move: %s", a.kind, pos.FormatMove(quiets.Get(i).Move()))
		}
	}
}

func TestGenerateCapturesPlusQuietEqualsGenerateAll(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var all, caps, quiets MoveList
	pos.GenerateAll(&all)
	pos.GenerateCapturesAndPromotions(&caps)
	pos.GenerateQuiet(&quiets)
	if caps.Len()+quiets.Len() != all.Len() {
		t.Errorf("captures(%d) + quiet(%d) = %d, want GenerateAll's %d", caps.Len(), quiets.Len(), caps.Len()+quiets.Len(), all.Len())
	}
}

func TestKingCannotRetreatAlongCheckingRay(t *testing.T) {
	// White king e1, black rook e8 down an open file: every legal king
	// move must step off the e-file, since any square still on it
	// remains attacked by the rook.
	pos, err := ParseFEN("3kr3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var moves MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		if m.rawTo().File() == E1.File() {
			t.Errorf("king move %s stays on the checked file", pos.FormatMove(m))
		}
	}
}

func TestKingMayNotStepToSquareStillRakedByCheckingSlider(t *testing.T) {
	// White king e1, black rook a1 down the open first rank: Kf1
	// continues along the SAME ray beyond the king's own square, which
	// the static (pre-move) attack map never marks attacked (the ray
	// stops at the first occupied square, e1). Without squareAttackedBy
	// treating e1 as vacated mid-check, Kf1 would be wrongly allowed.
	pos, err := ParseFEN("6k1/8/8/8/8/8/8/r3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var moves MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i).Move()
		if m.rawTo() == F1 {
			t.Errorf("Kf1 should remain illegal: still attacked by the rook once e1 is vacated")
		}
	}
}
