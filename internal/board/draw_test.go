package board

import "testing"

func TestIsInsufficientMaterialBareKings(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.IsInsufficientMaterial() {
		t.Error("bare kings should be insufficient material")
	}
}

func TestIsInsufficientMaterialKingAndMinor(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/3NK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.IsInsufficientMaterial() {
		t.Error("king + single knight vs bare king should be insufficient material")
	}
}

func TestIsInsufficientMaterialSameColourBishops(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/2B5/3B4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.IsInsufficientMaterial() {
		t.Error("any number of same-square-colour bishops should be insufficient material")
	}
}

func TestIsInsufficientMaterialTwoKnightsNotExempt(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/2NNK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.IsInsufficientMaterial() {
		t.Error("two knights is not a FIDE-dead position, and should not be reported as insufficient material")
	}
}

func TestIsInsufficientMaterialOppositeColourBishopsNotExempt(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4B3/2B1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.IsInsufficientMaterial() {
		t.Error("opposite-coloured bishops should not be reported as insufficient material")
	}
}

func TestIsInsufficientMaterialFalseWithPawnsOrRooksOrQueens(t *testing.T) {
	for _, fen := range []string{
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/3RK3 w - - 0 1",
		"4k3/8/8/8/8/8/8/3QK3 w - - 0 1",
	} {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if pos.IsInsufficientMaterial() {
			t.Errorf("%q should have sufficient material", fen)
		}
	}
}

func TestIsDrawFiftyMoveRule(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/3RK3 w - - 99 60")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(NewMove(E1, E2)) // a non-capture, non-pawn move: clock -> 100
	draw, reason := pos.IsDraw()
	if !draw || reason != DrawFiftyMoveRule {
		t.Errorf("IsDraw() = %v/%q, want true/%q", draw, reason, DrawFiftyMoveRule)
	}
}

func TestIsDrawFalseInFreshGame(t *testing.T) {
	pos := New()
	draw, reason := pos.IsDraw()
	if draw {
		t.Errorf("fresh starting position should not be drawn, got reason %q", reason)
	}
}

func TestRepetitionAndThreefold(t *testing.T) {
	pos := New()
	// Shuffle knights back and forth, returning to the start twice more.
	moves := []Move{
		NewMove(G1, F3), NewMove(G8, F6),
		NewMove(F3, G1), NewMove(F6, G8),
		NewMove(G1, F3), NewMove(G8, F6),
		NewMove(F3, G1), NewMove(F6, G8),
	}
	for i, m := range moves {
		pos.MakeMove(m)
		_ = i
	}
	if !pos.Repetition() {
		t.Error("after returning to the starting position twice more, Repetition() should be true")
	}
	draw, reason := pos.IsDraw()
	if !draw || reason != DrawThreefoldRepetition {
		t.Errorf("IsDraw() = %v/%q, want true/%q", draw, reason, DrawThreefoldRepetition)
	}
}

func TestUpcomingRepetitionAfterReversibleMove(t *testing.T) {
	// Immediately after a single reversible (non-pawn, non-castle) move,
	// the cuckoo table always matches that move's own reverse against
	// the position one ply back: the textbook case UpcomingRepetition
	// exists to catch cheaply, without a full hash-history scan.
	pos := New()
	pos.MakeMove(NewMove(G1, F3))
	if !pos.UpcomingRepetition() {
		t.Error("expected UpcomingRepetition() == true right after a single reversible knight move")
	}
}

func TestUpcomingRepetitionFalseAfterIrreversibleMove(t *testing.T) {
	pos := New()
	pos.MakeMove(NewMove(E2, E4)) // a pawn push: irreversible, resets the window
	if pos.UpcomingRepetition() {
		t.Error("expected UpcomingRepetition() == false right after an irreversible pawn push")
	}
}
