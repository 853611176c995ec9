package board

// moveKind classifies a made move just enough for UnmakeMove to know
// which squares to restore and in what shape (spec.md §4.D).
type moveKind uint8

const (
	kindQuiet moveKind = iota
	kindCapture
	kindEnPassant
	kindCastle
	kindPromotion
)

// Frame is one ply of the position's history stack (spec.md §3.6): an
// explicit, typed undo record for the single move that produced it,
// plus the incremental hashes and material key as of this ply. The
// bulk of the position — Position.Squares, Position.ListIndex, and
// Position.Sides — is live and mutated in place; Frame records exactly
// enough to reverse that mutation without recomputing anything.
type Frame struct {
	Mover Colour // side that made the move leading to this frame
	Kind  moveKind

	From, To           Square
	OriginalMoverPiece Piece // tag at From before the move
	NewMoverPiece      Piece // tag at To after the move

	CapturedSquare Square // NoSquare if no capture; differs from To only for en passant
	CapturedPiece  Piece  // Empty if no capture

	// Castle-only fields.
	RookFrom, RookTo  Square
	OriginalRookPiece Piece
	NewRookPiece      Piece

	ListEdits    [3]listEdit
	ListEditsLen int

	HalfmoveClock int

	// En-passant target square is lazily computed (spec.md §4.E): it is
	// only valid when EnPassantNodeCounter equals NodeCounter, otherwise
	// it must be recomputed (or is simply absent) for this node.
	EnPassantLazy        Square
	EnPassantNodeCounter int64
	NodeCounter          int64

	BoardHash    uint64
	PawnKingHash uint64
	MaterialKey  uint64

	// Killers holds opaque move-ordering hints private to the search
	// layer; this package never interprets them, only preserves them
	// across make/unmake so a caller can stash and later retrieve
	// per-ply state.
	Killers [7]uint16
}

func (f *Frame) pushListEdit(e listEdit) {
	f.ListEdits[f.ListEditsLen] = e
	f.ListEditsLen++
}
