package board

import "testing"

func TestNewMoveRoundTrip(t *testing.T) {
	m := NewMove(E2, E4)
	if m.rawFrom() != E2 || m.rawTo() != E4 {
		t.Errorf("NewMove(E2,E4): from=%v to=%v", m.rawFrom(), m.rawTo())
	}
	if got, want := m.String(), "e2e4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewPromotionDecodes(t *testing.T) {
	for _, kind := range []Kind{KindQueen, KindRook, KindBishop, KindKnight} {
		m := NewPromotion(E7, E8, kind)
		if m.rawFrom() != E7 {
			t.Errorf("rawFrom() = %v, want E7", m.rawFrom())
		}
		real, gotKind, ok := decodePromotionTarget(E7, m.rawTo())
		if !ok {
			t.Fatalf("decodePromotionTarget did not recognise promotion for kind %v", kind)
		}
		if real != E8 {
			t.Errorf("decoded target = %v, want E8", real)
		}
		if gotKind != kind {
			t.Errorf("decoded kind = %v, want %v", gotKind, kind)
		}
	}
}

func TestNewPromotionCaptureDecodes(t *testing.T) {
	m := NewPromotion(E7, D8, KindQueen)
	real, kind, ok := decodePromotionTarget(E7, m.rawTo())
	if !ok || real != D8 || kind != KindQueen {
		t.Errorf("decodePromotionTarget(E7, rawTo) = %v, %v, %v, want D8, queen, true", real, kind, ok)
	}
}

func TestNonPromotionNotMistakenForOne(t *testing.T) {
	m := NewMove(E2, E4)
	if _, _, ok := decodePromotionTarget(E2, m.rawTo()); ok {
		t.Error("a quiet e2e4 push should not decode as a promotion")
	}
}

func TestParseMove(t *testing.T) {
	cases := []struct {
		s    string
		from Square
		to   Square
	}{
		{"e2e4", E2, E4},
		{"a1h8", A1, H8},
	}
	for _, c := range cases {
		m, err := ParseMove(c.s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", c.s, err)
		}
		if m.rawFrom() != c.from || m.rawTo() != c.to {
			t.Errorf("ParseMove(%q) = from %v to %v, want %v/%v", c.s, m.rawFrom(), m.rawTo(), c.from, c.to)
		}
	}
}

func TestParseMovePromotion(t *testing.T) {
	m, err := ParseMove("e7e8q")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	real, kind, ok := decodePromotionTarget(E7, m.rawTo())
	if !ok || real != E8 || kind != KindQueen {
		t.Errorf("ParseMove(\"e7e8q\") did not decode to E8/queen: %v %v %v", real, kind, ok)
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e", "e2e4x", "e2e4z"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q): expected error", s)
		}
	}
}

func TestNullMoveIsZero(t *testing.T) {
	if NullMove != 0 {
		t.Errorf("NullMove = %v, want 0", NullMove)
	}
	if NoMove != NullMove {
		t.Error("NoMove should equal NullMove")
	}
}

func TestScoredMovePacksScoreAndMove(t *testing.T) {
	m := NewMove(E2, E4)
	sm := NewScoredMove(m, 0xBEEF)
	if sm.Move() != m {
		t.Errorf("Move() = %v, want %v", sm.Move(), m)
	}
	if sm.Score() != 0xBEEF {
		t.Errorf("Score() = %#04x, want 0xbeef", sm.Score())
	}
}

func TestMoveListAddAndContains(t *testing.T) {
	var ml MoveList
	if ml.Len() != 0 {
		t.Errorf("new MoveList Len() = %d, want 0", ml.Len())
	}
	m1 := NewMove(E2, E4)
	m2 := NewMove(D2, D4)
	ml.Add(NewScoredMove(m1, 1))
	ml.Add(NewScoredMove(m2, 2))
	if ml.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ml.Len())
	}
	if !ml.Contains(m1) || !ml.Contains(m2) {
		t.Error("Contains should find both added moves")
	}
	if ml.Contains(NewMove(A2, A4)) {
		t.Error("Contains should not find an unadded move")
	}
	if ml.Get(0).Move() != m1 || ml.Get(1).Move() != m2 {
		t.Error("Get should preserve insertion order")
	}
	ml.Clear()
	if ml.Len() != 0 {
		t.Errorf("after Clear, Len() = %d, want 0", ml.Len())
	}
}

func TestMoveListSlice(t *testing.T) {
	var ml MoveList
	ml.Add(NewScoredMove(NewMove(E2, E4), 5))
	s := ml.Slice()
	if len(s) != 1 || s[0].Move() != NewMove(E2, E4) {
		t.Errorf("Slice() = %v, want one entry for e2e4", s)
	}
}
