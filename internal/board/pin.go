package board

// pinDirsOf reports the pin line of the piece standing on from, if any,
// as the bit-OR of the two opposite ray directions that make up that
// line (spec.md §4.F: "the only safe move directions are that ray and
// its reverse"). Returns 0 if the piece on from is not pinned against
// its own king.
//
// A piece is pinned when: it shares a ray with its own king, the
// squares between it and the king are empty, and the first piece
// beyond it (away from the king) is an enemy slider whose directions
// include that ray.
func (pos *Position) pinDirsOf(side Colour, from Square) dirSet {
	king := pos.Sides[side].King()
	dBit := dirSet(sq2sq[from][king] & sq2sqDirMask)
	if dBit == 0 {
		return 0
	}
	dIdx := dirIndexOf(dBit)
	if dIdx < 0 {
		return 0
	}
	if pos.firstOccupiedBeyond(from, dIdx) != king {
		return 0
	}
	outIdx := (dIdx + numDirs/2) % numDirs
	pinner := pos.firstOccupiedBeyond(from, outIdx)
	if pinner == NoSquare {
		return 0
	}
	p := pos.Squares[pinner]
	if p.Colour() == side {
		return 0
	}
	if p.rayDirs()&dirBit(outIdx) == 0 {
		return 0
	}
	return dirBit(dIdx) | dirBit(outIdx)
}

// firstOccupiedBeyond returns the first occupied square strictly beyond
// from along direction index d, or NoSquare if the ray leaves the board
// first.
func (pos *Position) firstOccupiedBeyond(from Square, d int) Square {
	n := int(rayLen[from][d])
	cur := from
	for k := 0; k < n; k++ {
		cur = Square(int(cur) + dirOffset[d])
		if pos.Squares[cur] != Empty {
			return cur
		}
	}
	return NoSquare
}

// isMoveAlongPin reports whether moving from `from` to `to` stays on
// the pin line pinDirs (always true when pinDirs is 0, i.e. not
// pinned). Works for any straight-line move, including pawn pushes and
// diagonal captures, because sq2sq already records the single ray-bit
// connecting two squares in a line; a knight jump never matches any
// ray bit, so a pinned knight correctly finds no legal destination.
func isMoveAlongPin(pinDirs dirSet, from, to Square) bool {
	if pinDirs == 0 {
		return true
	}
	return dirSet(sq2sq[from][to]&sq2sqDirMask)&pinDirs != 0
}
