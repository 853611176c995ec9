package board

// Draw-reason strings returned by IsDraw (spec.md §6.1/§7).
const (
	DrawFiftyMoveRule        = "fifty-move rule"
	DrawThreefoldRepetition  = "threefold repetition"
	DrawInsufficientMaterial = "insufficient material"
	DrawDeadPositionStalemate = "dead-position stalemate"
)

// repetitionCount returns how many times the current board hash
// appears among the frames reachable within the current halfmove
// clock window (including the current ply itself), scanning only
// same-side-to-move frames two plies apart: MakeMove complements
// BoardHash every ply to encode side to move, so two frames an even
// distance apart have the complement applied an even number of times
// and compare directly.
func (pos *Position) repetitionCount() int {
	cur := pos.frame()
	lim := pos.Current - cur.HalfmoveClock
	if lim < 0 {
		lim = 0
	}
	count := 1
	for ply := pos.Current - 2; ply >= lim; ply -= 2 {
		if pos.Frames[ply].BoardHash == cur.BoardHash {
			count++
		}
	}
	return count
}

// Repetition reports whether the current position has occurred at
// least once before within the current halfmove-clock window (spec.md
// §7): a weaker, cheaper test than the threefold rule IsDraw applies,
// useful to a search for detecting (and avoiding, or seeking) a draw
// path before it is forced.
func (pos *Position) Repetition() bool {
	return pos.repetitionCount() >= 2
}

// UpcomingRepetition reports whether some single reversible move
// available in the current position would immediately recreate a
// position from earlier in the halfmove-clock window (spec.md §7): a
// cheap upper-bound test using the cuckoo table, so a search can avoid
// walking into a repetition one ply before it happens rather than
// after. Unlike Repetition, this scans every ply in the window (not
// just same-side-to-move ones), since the cuckoo keys already carry
// the single-move side-flip's hash complement.
func (pos *Position) UpcomingRepetition() bool {
	cur := pos.frame()
	lim := pos.Current - cur.HalfmoveClock
	if lim < 0 {
		lim = 0
	}
	for ply := pos.Current - 1; ply >= lim; ply-- {
		delta := cur.BoardHash ^ pos.Frames[ply].BoardHash
		m, ok := cuckooLookup(delta)
		if !ok {
			continue
		}
		a, b := m.rawFrom(), m.rawTo()
		if pos.Squares[a] != Empty && pos.Squares[b] == Empty {
			return true
		}
		if pos.Squares[b] != Empty && pos.Squares[a] == Empty {
			return true
		}
	}
	return false
}

// materialCountsOf unpacks the twelve 4-bit piece counters from a
// material key's low 48 bits (material.go), in the fixed nibble order
// the BOARD_MATERIAL_KEY_* constants establish.
type materialCounts struct {
	whitePawn, whiteKnight, whiteBishopLight, whiteBishopDark, whiteRook, whiteQueen       int
	blackPawn, blackKnight, blackBishopLight, blackBishopDark, blackRook, blackQueen       int
}

func materialCountsOf(key uint64) materialCounts {
	counts := materialKeyCounts(key)
	nibble := func(i uint) int { return int((counts >> (4 * i)) & 0xF) }
	return materialCounts{
		whitePawn:        nibble(0),
		whiteKnight:      nibble(1),
		whiteBishopLight: nibble(2),
		whiteBishopDark:  nibble(3),
		whiteRook:        nibble(4),
		whiteQueen:       nibble(5),
		blackPawn:        nibble(6),
		blackKnight:      nibble(7),
		blackBishopLight: nibble(8),
		blackBishopDark:  nibble(9),
		blackRook:        nibble(10),
		blackQueen:       nibble(11),
	}
}

// IsInsufficientMaterial reports whether neither side has enough
// material to force checkmate against any defence (spec.md §7:
// "exhaustive enumeration over the material key"): both kings bare, a
// single king plus one minor piece, or any number of bishops confined
// to a single square colour and nothing else. Two knights, or bishops
// of both square colours, are deliberately NOT treated as insufficient
// — mate is not forced, but it is not impossible either, and FIDE's own
// rule stops short of calling those positions dead.
func (pos *Position) IsInsufficientMaterial() bool {
	c := materialCountsOf(pos.MaterialKey())
	if c.whitePawn+c.blackPawn > 0 {
		return false
	}
	if c.whiteRook+c.blackRook > 0 {
		return false
	}
	if c.whiteQueen+c.blackQueen > 0 {
		return false
	}
	knights := c.whiteKnight + c.blackKnight
	lightBishops := c.whiteBishopLight + c.blackBishopLight
	darkBishops := c.whiteBishopDark + c.blackBishopDark
	minors := knights + lightBishops + darkBishops
	switch {
	case minors == 0:
		return true // bare king vs bare king
	case minors == 1:
		return true // king and a single minor vs bare king
	case knights == 0 && (lightBishops == 0 || darkBishops == 0):
		return true // any number of bishops, all on one square colour
	default:
		return false
	}
}

// IsDraw reports whether the position is drawn under one of spec.md
// §7's four rules, and if so which one. Checked cheapest-first.
func (pos *Position) IsDraw() (bool, string) {
	if pos.HalfmoveClock() >= 100 {
		return true, DrawFiftyMoveRule
	}
	if pos.IsInsufficientMaterial() {
		return true, DrawInsufficientMaterial
	}
	if pos.repetitionCount() >= 3 {
		return true, DrawThreefoldRepetition
	}
	if pos.IsStalemate() {
		return true, DrawDeadPositionStalemate
	}
	return false, ""
}
