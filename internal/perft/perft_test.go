package perft

import (
	"testing"

	"github.com/kervinck/rookiegen/internal/board"
)

// The six scenarios are spec.md §8's literal perft fixtures; published
// counts are the standard chess-programming-wiki reference values.
func TestCountStartingPosition(t *testing.T) {
	pos := board.New()
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// depth 5 (4,865,609) is exercised by TestCountStartingPositionDeep,
		// split out so `go test -short` skips the slow case.
	}
	for _, tc := range cases {
		if got := Count(pos, tc.depth); got != tc.want {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.want)
		}
	}
}

func TestCountStartingPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in -short mode")
	}
	pos := board.New()
	const depth, want = 5, 4865609
	if got := Count(pos, depth); got != want {
		t.Errorf("perft(%d) = %d, want %d", depth, got, want)
	}
}

func TestCountKiwipete(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, tc := range cases {
		if got := Count(pos, tc.depth); got != tc.want {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.want)
		}
	}
}

func TestCountKiwipeteDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in -short mode")
	}
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	const depth, want = 4, 4085603
	if got := Count(pos, depth); got != want {
		t.Errorf("perft(%d) = %d, want %d", depth, got, want)
	}
}

func TestCountEndgameRooks(t *testing.T) {
	pos, err := board.ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, tc := range cases {
		if got := Count(pos, tc.depth); got != tc.want {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.want)
		}
	}
}

func TestCountEndgameRooksDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in -short mode")
	}
	pos, err := board.ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	const depth, want = 5, 674624
	if got := Count(pos, depth); got != want {
		t.Errorf("perft(%d) = %d, want %d", depth, got, want)
	}
}

// TestCountMirrorPositions checks spec.md §8 scenario 4: flipping
// colours and ranks of the starting position must give the same
// perft series (a mirrored position is reached by swapping side to
// move and reflecting every piece across the rank axis).
func TestCountMirrorPositions(t *testing.T) {
	white := board.New()
	black, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for depth := 1; depth <= 3; depth++ {
		w, b := Count(white, depth), Count(black, depth)
		if w != b {
			t.Errorf("perft(%d): white-to-move side %d != black-to-move mirror %d", depth, w, b)
		}
	}
}

func TestCountBackRankPromotion(t *testing.T) {
	pos, err := board.ParseFEN("n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got, want := Count(pos, 1), int64(24); got != want {
		t.Errorf("perft(1) = %d, want %d", got, want)
	}
}

func TestCountBackRankPromotionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in -short mode")
	}
	pos, err := board.ParseFEN("n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	const depth, want = 4, 422333
	if got := Count(pos, depth); got != want {
		t.Errorf("perft(%d) = %d, want %d", depth, got, want)
	}
}

// TestCountEnPassantPin is spec.md §8 scenario 6: after g2-g4, Black's
// pseudo-legal f4xg3 en passant must be rejected because it would
// uncover the rook's attack along the fourth rank on the black king.
func TestCountEnPassantPin(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/KP5r/1R3p1k/8/6P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(board.NewMove(board.G2, board.G4))

	var moves board.MoveList
	pos.GenerateAll(&moves)
	for i := 0; i < moves.Len(); i++ {
		info := pos.MoveInfo(moves.Get(i).Move())
		if info.IsEnPassant {
			t.Errorf("en-passant move %s should be illegal (horizontal pin)", pos.FormatMove(moves.Get(i).Move()))
		}
	}
}

func TestDivideSumsToCount(t *testing.T) {
	pos := board.New()
	entries, total := Divide(pos, 3)
	if want := Count(board.New(), 3); total != want {
		t.Errorf("divide total = %d, want %d", total, want)
	}
	var sum int64
	for _, e := range entries {
		sum += e.Nodes
	}
	if sum != total {
		t.Errorf("sum of divide entries = %d, want total %d", sum, total)
	}
}
