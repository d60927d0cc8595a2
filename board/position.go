package board

import "github.com/pkg/errors"

// NoSquare is the sentinel for "no en-passant square is set".
const NoSquare Square = 64

// Position is a mutable chess position. Moves are applied and reversed
// with DoMove/UndoMove, which push and pop an internal move stack;
// every field needed to reverse a move is carried on the Move itself,
// so UndoMove never needs an argument.
type Position struct {
	byColor  [ColorCount]Bitboard
	byFigure [FigureCount]Bitboard
	squares  [SquareCount]Piece

	sideToMove Color
	castle     Castle
	epSquare   Square
	halfmove   int
	fullmove   int

	hash uint64

	moveStack []Move
	hashStack []uint64 // zobrist hash after each played move, for repetition detection
	nullStack []nullMoveUndo
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	pos, err := PositionFromFEN(StartFEN)
	if err != nil {
		panic(errors.Wrap(err, "board: starting position FEN must be valid"))
	}
	return pos
}

// SideToMove returns the color to move.
func (pos *Position) SideToMove() Color { return pos.sideToMove }

// CastlingAbility returns the current castling rights.
func (pos *Position) CastlingAbility() Castle { return pos.castle }

// EnpassantSquare returns the current en-passant target square, or
// NoSquare if none is set.
func (pos *Position) EnpassantSquare() Square { return pos.epSquare }

// HalfmoveClock returns the number of halfmoves since the last capture
// or pawn move.
func (pos *Position) HalfmoveClock() int { return pos.halfmove }

// FullmoveNumber returns the current full move number, starting at 1.
func (pos *Position) FullmoveNumber() int { return pos.fullmove }

// Zobrist returns the position's current Zobrist hash.
func (pos *Position) Zobrist() uint64 { return pos.hash }

// Get returns the piece on sq, or NoPiece if sq is empty.
func (pos *Position) Get(sq Square) Piece { return pos.squares[sq] }

// ByColor returns the bitboard of all pieces of the given color.
func (pos *Position) ByColor(c Color) Bitboard { return pos.byColor[c] }

// ByFigure returns the bitboard of all pieces of the given figure,
// of either color.
func (pos *Position) ByFigure(f Figure) Bitboard { return pos.byFigure[f] }

// ByPiece returns the bitboard of pieces matching both color and
// figure.
func (pos *Position) ByPiece(c Color, f Figure) Bitboard {
	return pos.byColor[c] & pos.byFigure[f]
}

// Occupied returns the bitboard of all occupied squares.
func (pos *Position) Occupied() Bitboard { return pos.byColor[White] | pos.byColor[Black] }

// IsEmpty reports whether sq holds no piece.
func (pos *Position) IsEmpty(sq Square) bool { return pos.squares[sq] == NoPiece }

func (pos *Position) put(sq Square, p Piece) {
	pos.squares[sq] = p
	bb := sq.Bitboard()
	pos.byColor[p.Color()] |= bb
	pos.byFigure[p.Figure()] |= bb
	pos.hash ^= zobristForPiece(p, sq)
}

func (pos *Position) remove(sq Square, p Piece) {
	pos.squares[sq] = NoPiece
	bb := sq.Bitboard()
	pos.byColor[p.Color()] &^= bb
	pos.byFigure[p.Figure()] &^= bb
	pos.hash ^= zobristForPiece(p, sq)
}

func (pos *Position) setEnpassant(sq Square) {
	if pos.epSquare != NoSquare {
		pos.hash ^= zobristEnpassant[pos.epSquare]
	}
	pos.epSquare = sq
	if sq != NoSquare {
		pos.hash ^= zobristEnpassant[sq]
	}
}

func (pos *Position) setCastle(c Castle) {
	pos.hash ^= zobristCastle[pos.castle]
	pos.castle = c
	pos.hash ^= zobristCastle[pos.castle]
}

// CastlingRookSquares returns the rook's start and end square for a
// castling move whose king destination is kingTo.
func CastlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case SquareG1:
		return SquareH1, SquareF1
	case SquareC1:
		return SquareA1, SquareD1
	case SquareG8:
		return SquareH8, SquareF8
	case SquareC8:
		return SquareA8, SquareD8
	}
	panic("board: invalid castling king destination")
}

// DoMove applies m to the position, pushing it onto the internal undo
// stack.
func (pos *Position) DoMove(m Move) {
	us := pos.sideToMove

	// Capture enough prior state on the move itself that UndoMove
	// never needs to consult anything but its argument.
	m.PriorCastle = pos.castle
	m.PriorEnpassant = pos.epSquare
	m.PriorHalfmove = int16(pos.halfmove)

	if m.Capture != NoPiece {
		pos.remove(m.CaptureSquare(), m.Capture)
	}
	pos.remove(m.From, m.Piece)
	if m.Kind == Promotion {
		pos.put(m.To, m.PromotedPiece())
	} else {
		pos.put(m.To, m.Piece)
	}
	if m.Kind == Castling {
		rFrom, rTo := CastlingRookSquares(m.To)
		rook := MakePiece(us, Rook)
		pos.remove(rFrom, rook)
		pos.put(rTo, rook)
	}

	newCastle := pos.castle &^ (lostCastleRights[m.From] | lostCastleRights[m.To])
	pos.setCastle(newCastle)

	if m.Piece.Figure() == Pawn && absInt(int(m.To)-int(m.From)) == 16 {
		pos.setEnpassant(m.From.Relative(0, 0).Relative(sign(us), 0))
	} else {
		pos.setEnpassant(NoSquare)
	}

	if m.Piece.Figure() == Pawn || m.Capture != NoPiece {
		pos.halfmove = 0
	} else {
		pos.halfmove++
	}
	if us == Black {
		pos.fullmove++
	}

	pos.sideToMove = us.Opposite()
	pos.hash ^= zobristSideToMove

	pos.moveStack = append(pos.moveStack, m)
	pos.hashStack = append(pos.hashStack, pos.hash)
}

func sign(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nullMoveUndo holds the state needed to reverse DoNullMove.
type nullMoveUndo struct {
	epSquare Square
}

// DoNullMove passes the turn without moving a piece, used by
// null-move pruning. It clears any en-passant square (a pass forfeits
// the right to capture en-passant) and flips the side to move; it does
// not touch the halfmove clock or push onto the regular move stack,
// since a null move is never part of the game's move history.
func (pos *Position) DoNullMove() {
	pos.nullStack = append(pos.nullStack, nullMoveUndo{epSquare: pos.epSquare})
	pos.setEnpassant(NoSquare)
	pos.sideToMove = pos.sideToMove.Opposite()
	pos.hash ^= zobristSideToMove
}

// UndoNullMove reverses the last DoNullMove.
func (pos *Position) UndoNullMove() {
	n := len(pos.nullStack)
	u := pos.nullStack[n-1]
	pos.nullStack = pos.nullStack[:n-1]

	pos.sideToMove = pos.sideToMove.Opposite()
	pos.hash ^= zobristSideToMove
	pos.setEnpassant(u.epSquare)
}

// UndoMove reverses the last move played with DoMove.
func (pos *Position) UndoMove() {
	n := len(pos.moveStack)
	m := pos.moveStack[n-1]
	pos.moveStack = pos.moveStack[:n-1]
	pos.hashStack = pos.hashStack[:len(pos.hashStack)-1]

	them := pos.sideToMove
	us := them.Opposite()

	pos.hash ^= zobristSideToMove
	pos.sideToMove = us

	if us == Black {
		pos.fullmove--
	}
	pos.halfmove = int(m.PriorHalfmove)

	if m.Kind == Castling {
		rFrom, rTo := CastlingRookSquares(m.To)
		rook := MakePiece(us, Rook)
		pos.remove(rTo, rook)
		pos.put(rFrom, rook)
	}
	if m.Kind == Promotion {
		pos.remove(m.To, m.PromotedPiece())
	} else {
		pos.remove(m.To, m.Piece)
	}
	pos.put(m.From, m.Piece)
	if m.Capture != NoPiece {
		pos.put(m.CaptureSquare(), m.Capture)
	}

	pos.setCastle(m.PriorCastle)
	pos.setEnpassant(m.PriorEnpassant)
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (pos *Position) IsAttacked(sq Square, by Color) bool {
	occ := pos.Occupied()

	if PawnAttack(sq, by.Opposite())&pos.ByPiece(by, Pawn) != 0 {
		return true
	}
	if KnightAttack(sq)&pos.ByPiece(by, Knight) != 0 {
		return true
	}
	if KingAttack(sq)&pos.ByPiece(by, King) != 0 {
		return true
	}
	bishops := pos.ByPiece(by, Bishop) | pos.ByPiece(by, Queen)
	if BishopAttack(sq, occ)&bishops != 0 {
		return true
	}
	rooks := pos.ByPiece(by, Rook) | pos.ByPiece(by, Queen)
	if RookAttack(sq, occ)&rooks != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side c's king is currently attacked.
func (pos *Position) InCheck(c Color) bool {
	kingBB := pos.ByPiece(c, King)
	if kingBB == 0 {
		return false
	}
	return pos.IsAttacked(kingBB.AsSquare(), c.Opposite())
}

// IsThreefoldRepetition reports whether the current position has
// occurred at least three times since the last irreversible move
// (capture, pawn move, or loss of castling rights/en-passant reset).
func (pos *Position) IsThreefoldRepetition() bool {
	count := 1
	target := pos.hash
	// Walk back over reversible plies only; a halfmove clock of n
	// means the last n plies were reversible. The current position is
	// the last entry, and positions with the same side to move sit
	// every second entry before it.
	limit := len(pos.hashStack)
	start := limit - 1 - pos.halfmove
	if start < 0 {
		start = 0
	}
	for i := limit - 3; i >= start; i -= 2 {
		if pos.hashStack[i] == target {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveRule reports whether the 50-move (100-halfmove) rule
// applies.
func (pos *Position) IsFiftyMoveRule() bool { return pos.halfmove >= 100 }

// InsufficientMaterial reports whether neither side has enough
// material to possibly deliver checkmate.
func (pos *Position) InsufficientMaterial() bool {
	if pos.byFigure[Pawn] != 0 || pos.byFigure[Rook] != 0 || pos.byFigure[Queen] != 0 {
		return false
	}
	minors := pos.byFigure[Knight].Count() + pos.byFigure[Bishop].Count()
	return minors <= 1
}

// Clone returns a deep copy of pos, including its move and hash
// history, so that it can be handed to a separate search worker that
// needs to make/unmake moves of its own without racing the original.
func (pos *Position) Clone() *Position {
	clone := *pos
	clone.moveStack = append([]Move(nil), pos.moveStack...)
	clone.hashStack = append([]uint64(nil), pos.hashStack...)
	clone.nullStack = append([]nullMoveUndo(nil), pos.nullStack...)
	return &clone
}

// Verify checks internal bitboard consistency, for use in tests and
// debug builds. It returns an error describing the first inconsistency
// found (any failure indicates a bug in move generation or make/unmake,
// not a recoverable condition), or nil if none is found.
func (pos *Position) Verify() error {
	var all Bitboard
	for f := Pawn; f <= King; f++ {
		all |= pos.byFigure[f]
	}
	if all != pos.Occupied() {
		return errors.New("board: figure bitboards do not match occupied squares")
	}
	if pos.byColor[White]&pos.byColor[Black] != 0 {
		return errors.New("board: white and black bitboards overlap")
	}
	for sq := Square(0); sq < SquareCount; sq++ {
		p := pos.squares[sq]
		if p == NoPiece {
			if pos.Occupied().Has(sq) {
				return errors.Errorf("board: square %s marked occupied but holds no piece", sq)
			}
			continue
		}
		if !pos.ByPiece(p.Color(), p.Figure()).Has(sq) {
			return errors.Errorf("board: square %s holds %s but bitboard disagrees", sq, p)
		}
	}
	return nil
}
