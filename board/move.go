package board

import "fmt"

// MoveKind classifies a move's special handling during make/unmake.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Promotion
	Castling
	Enpassant
)

// Move is a packed, self-contained description of a move: it carries
// enough information (including the captured piece and the prior
// castling/en-passant state) to be undone without consulting the
// position it was generated from.
type Move struct {
	From, To       Square
	Piece          Piece
	Capture        Piece
	Promoted       Figure
	Kind           MoveKind
	PriorCastle    Castle
	PriorEnpassant Square
	PriorHalfmove  int16
}

// NullMove is the zero Move, used as a sentinel by the PV and killer
// tables; it is never a legal move since From == To == a1 never occurs
// for a real move and Piece == NoPiece.
var NullMove = Move{}

// IsNull reports whether m is the sentinel NullMove.
func (m Move) IsNull() bool { return m.Piece == NoPiece && m.From == m.To }

// MoveSide returns the color making the move.
func (m Move) MoveSide() Color { return m.Piece.Color() }

// CaptureSquare returns the square of the captured piece. For ordinary
// captures this is To; for en-passant it is the square behind To.
func (m Move) CaptureSquare() Square {
	if m.Kind == Enpassant {
		if m.Piece.Color() == White {
			return m.To.Relative(-1, 0)
		}
		return m.To.Relative(1, 0)
	}
	return m.To
}

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool { return m.Capture != NoPiece }

// IsViolent reports whether the move is a capture or a promotion to
// queen, the moves considered in quiescence search.
func (m Move) IsViolent() bool {
	return m.IsCapture() || (m.Kind == Promotion && m.Promoted == Queen)
}

// PromotedPiece returns the piece the pawn promotes to, owned by the
// mover's color. Only meaningful when Kind == Promotion.
func (m Move) PromotedPiece() Piece {
	return MakePiece(m.Piece.Color(), m.Promoted)
}

// UCI renders the move in UCI long algebraic form, e.g. "e2e4",
// "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Kind == Promotion {
		s += string(figureSymbol[m.Promoted][0] + 'a' - 'A')
	}
	return s
}

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	return fmt.Sprintf("%s%s%s", m.Piece, m.From, m.To)
}
