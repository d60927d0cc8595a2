package search

import "github.com/MatN23/rook64/board"

var seeValue = [board.FigureCount]int{0, 100, 320, 330, 500, 900, 20000}

func attackersTo(pos *board.Position, sq board.Square, occ board.Bitboard) board.Bitboard {
	var att board.Bitboard
	att |= board.PawnAttack(sq, board.White) & pos.ByPiece(board.Black, board.Pawn)
	att |= board.PawnAttack(sq, board.Black) & pos.ByPiece(board.White, board.Pawn)
	att |= board.KnightAttack(sq) & pos.ByFigure(board.Knight)
	att |= board.KingAttack(sq) & pos.ByFigure(board.King)
	bishops := pos.ByFigure(board.Bishop) | pos.ByFigure(board.Queen)
	att |= board.BishopAttack(sq, occ) & bishops
	rooks := pos.ByFigure(board.Rook) | pos.ByFigure(board.Queen)
	att |= board.RookAttack(sq, occ) & rooks
	return att & occ
}

func leastValuableAttacker(pos *board.Position, attackers board.Bitboard, side board.Color) (board.Square, board.Figure, bool) {
	own := attackers & pos.ByColor(side)
	if own == 0 {
		return 0, 0, false
	}
	for f := board.Pawn; f <= board.King; f++ {
		bb := own & pos.ByFigure(f)
		if bb != 0 {
			return bb.AsSquare(), f, true
		}
	}
	return 0, 0, false
}

// SEE runs the standard swap-off algorithm for a capture on m.To,
// returning the net material gain in centipawns for the side making
// the initial capture m, assuming both sides always recapture with
// their least valuable attacker. It is used to prune clearly losing
// captures in quiescence search. Move ordering does not call it:
// orderMoves ranks captures by MVV-LVA alone.
func SEE(pos *board.Position, m board.Move) int {
	if !m.IsCapture() {
		return 0
	}
	sq := m.To
	occ := pos.Occupied()
	occ = occ.Clear(m.From)

	gains := make([]int, 0, 16)
	gains = append(gains, seeValue[m.Capture.Figure()])

	attacker := m.Piece.Figure()
	side := m.Piece.Color().Opposite()
	attackers := attackersTo(pos, sq, occ)

	for {
		sqAtt, fig, ok := leastValuableAttacker(pos, attackers, side)
		if !ok {
			break
		}
		gains = append(gains, seeValue[attacker]-gains[len(gains)-1])
		occ = occ.Clear(sqAtt)
		attackers = attackersTo(pos, sq, occ) & occ
		attacker = fig
		side = side.Opposite()
	}

	for i := len(gains) - 2; i >= 0; i-- {
		gains[i] = -max(-gains[i], gains[i+1])
	}
	return gains[0]
}
