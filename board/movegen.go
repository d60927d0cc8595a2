package board

// pawnPromotionFigures lists the figures a pawn may promote to, in the
// order they should be tried by move ordering (queen first).
var pawnPromotionFigures = [4]Figure{Queen, Rook, Bishop, Knight}

// appendPawnMove adds one pawn move, expanding into four moves if it
// reaches the back rank.
func appendPawnMove(moves []Move, us Color, from, to Square, capture Piece, kind MoveKind) []Move {
	if to.Rank() == 0 || to.Rank() == 7 {
		for _, f := range pawnPromotionFigures {
			moves = append(moves, Move{
				From: from, To: to,
				Piece:   MakePiece(us, Pawn),
				Capture: capture,
				Promoted: f,
				Kind:    Promotion,
			})
		}
		return moves
	}
	return append(moves, Move{
		From: from, To: to,
		Piece:   MakePiece(us, Pawn),
		Capture: capture,
		Kind:    kind,
	})
}

func (pos *Position) genPawnMoves(us Color, moves []Move) []Move {
	them := us.Opposite()
	enemy := pos.byColor[them]
	pawns := pos.ByPiece(us, Pawn)

	for bb := pawns; bb != 0; {
		from := bb.Pop()
		r, f := from.Rank(), from.File()

		fwd := r + sign(us)
		if onBoard(fwd, f) {
			to := RankFile(fwd, f)
			if pos.IsEmpty(to) {
				moves = appendPawnMove(moves, us, from, to, NoPiece, Normal)

				startRank := 1
				if us == Black {
					startRank = 6
				}
				fwd2 := r + 2*sign(us)
				if r == startRank && onBoard(fwd2, f) {
					to2 := RankFile(fwd2, f)
					if pos.IsEmpty(to2) {
						moves = append(moves, Move{From: from, To: to2, Piece: MakePiece(us, Pawn), Kind: Normal})
					}
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			cf := f + df
			if !onBoard(fwd, cf) {
				continue
			}
			to := RankFile(fwd, cf)
			if enemy.Has(to) {
				moves = appendPawnMove(moves, us, from, to, pos.Get(to), Normal)
			} else if to == pos.epSquare {
				moves = appendPawnMove(moves, us, from, to, MakePiece(them, Pawn), Enpassant)
			}
		}
	}
	return moves
}

func (pos *Position) genLeaperMoves(us Color, fig Figure, attack func(Square) Bitboard, moves []Move) []Move {
	own := pos.byColor[us]
	for bb := pos.ByPiece(us, fig); bb != 0; {
		from := bb.Pop()
		targets := attack(from) &^ own
		for t := targets; t != 0; {
			to := t.Pop()
			moves = append(moves, Move{From: from, To: to, Piece: MakePiece(us, fig), Capture: pos.Get(to), Kind: Normal})
		}
	}
	return moves
}

func (pos *Position) genSliderMoves(us Color, fig Figure, attack func(Square, Bitboard) Bitboard, moves []Move) []Move {
	own := pos.byColor[us]
	occ := pos.Occupied()
	for bb := pos.ByPiece(us, fig); bb != 0; {
		from := bb.Pop()
		targets := attack(from, occ) &^ own
		for t := targets; t != 0; {
			to := t.Pop()
			moves = append(moves, Move{From: from, To: to, Piece: MakePiece(us, fig), Capture: pos.Get(to), Kind: Normal})
		}
	}
	return moves
}

func (pos *Position) genCastleMoves(us Color, moves []Move) []Move {
	them := us.Opposite()
	kingSq, rights00, rights000, rank := SquareE1, WhiteOO, WhiteOOO, 0
	if us == Black {
		kingSq, rights00, rights000, rank = SquareE8, BlackOO, BlackOOO, 7
	}
	if pos.ByPiece(us, King)&kingSq.Bitboard() == 0 {
		return moves
	}

	if pos.castle&rights00 != 0 {
		f, g, h := RankFile(rank, 5), RankFile(rank, 6), RankFile(rank, 7)
		if pos.IsEmpty(f) && pos.IsEmpty(g) && pos.ByPiece(us, Rook).Has(h) {
			if !pos.IsAttacked(kingSq, them) && !pos.IsAttacked(f, them) && !pos.IsAttacked(g, them) {
				moves = append(moves, Move{From: kingSq, To: g, Piece: MakePiece(us, King), Kind: Castling})
			}
		}
	}
	if pos.castle&rights000 != 0 {
		d, c, b, a := RankFile(rank, 3), RankFile(rank, 2), RankFile(rank, 1), RankFile(rank, 0)
		if pos.IsEmpty(d) && pos.IsEmpty(c) && pos.IsEmpty(b) && pos.ByPiece(us, Rook).Has(a) {
			if !pos.IsAttacked(kingSq, them) && !pos.IsAttacked(d, them) && !pos.IsAttacked(c, them) {
				moves = append(moves, Move{From: kingSq, To: c, Piece: MakePiece(us, King), Kind: Castling})
			}
		}
	}
	return moves
}

// GeneratePseudoLegalMoves appends every pseudo-legal move (legal
// except possibly leaving the mover's own king in check) for the side
// to move onto moves, and returns the extended slice.
func (pos *Position) GeneratePseudoLegalMoves(moves []Move) []Move {
	us := pos.sideToMove
	moves = pos.genPawnMoves(us, moves)
	moves = pos.genLeaperMoves(us, Knight, KnightAttack, moves)
	moves = pos.genLeaperMoves(us, King, KingAttack, moves)
	moves = pos.genSliderMoves(us, Bishop, BishopAttack, moves)
	moves = pos.genSliderMoves(us, Rook, RookAttack, moves)
	moves = pos.genSliderMoves(us, Queen, QueenAttack, moves)
	moves = pos.genCastleMoves(us, moves)
	return moves
}

// GeneratePseudoLegalCaptures appends every pseudo-legal capture and
// every pseudo-legal promotion to a queen (see Move.IsViolent), the
// subset searched by quiescence search. Non-capturing underpromotions
// are not included.
func (pos *Position) GeneratePseudoLegalCaptures(moves []Move) []Move {
	all := pos.GeneratePseudoLegalMoves(nil)
	for _, m := range all {
		if m.IsViolent() {
			moves = append(moves, m)
		}
	}
	return moves
}

// GenerateLegalMoves returns every legal move for the side to move: a
// pseudo-legal move is legal iff playing it does not leave the mover's
// own king in check.
func (pos *Position) GenerateLegalMoves() []Move {
	us := pos.sideToMove
	pseudo := pos.GeneratePseudoLegalMoves(make([]Move, 0, 48))
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		pos.DoMove(m)
		if !pos.InCheck(us) {
			legal = append(legal, m)
		}
		pos.UndoMove()
	}
	return legal
}

// HasLegalMoves reports whether the side to move has at least one
// legal move, without allocating a full move list.
func (pos *Position) HasLegalMoves() bool {
	us := pos.sideToMove
	pseudo := pos.GeneratePseudoLegalMoves(make([]Move, 0, 48))
	for _, m := range pseudo {
		pos.DoMove(m)
		ok := !pos.InCheck(us)
		pos.UndoMove()
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (pos *Position) IsCheckmate() bool {
	return pos.InCheck(pos.sideToMove) && !pos.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (pos *Position) IsStalemate() bool {
	return !pos.InCheck(pos.sideToMove) && !pos.HasLegalMoves()
}
