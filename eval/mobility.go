package eval

import "github.com/MatN23/rook64/board"

var mobilityWeight = map[board.Figure]pair{
	board.Knight: {4, 4},
	board.Bishop: {5, 5},
	board.Rook:   {2, 4},
	board.Queen:  {1, 2},
}

// mobility scores the number of squares each minor/major piece
// attacks that are not occupied by a friendly piece, a cheap proxy for
// piece activity.
func mobility(pos *board.Position, us board.Color) pair {
	own := pos.ByColor(us)
	occ := pos.Occupied()
	var total pair

	for bb := pos.ByPiece(us, board.Knight); bb != 0; {
		sq := bb.Pop()
		n := (board.KnightAttack(sq) &^ own).Count()
		total = total.add(scaled(mobilityWeight[board.Knight], n))
	}
	for bb := pos.ByPiece(us, board.Bishop); bb != 0; {
		sq := bb.Pop()
		n := (board.BishopAttack(sq, occ) &^ own).Count()
		total = total.add(scaled(mobilityWeight[board.Bishop], n))
	}
	for bb := pos.ByPiece(us, board.Rook); bb != 0; {
		sq := bb.Pop()
		n := (board.RookAttack(sq, occ) &^ own).Count()
		total = total.add(scaled(mobilityWeight[board.Rook], n))
	}
	for bb := pos.ByPiece(us, board.Queen); bb != 0; {
		sq := bb.Pop()
		n := (board.QueenAttack(sq, occ) &^ own).Count()
		total = total.add(scaled(mobilityWeight[board.Queen], n))
	}
	return total
}

func scaled(w pair, n int) pair { return pair{w.mg * Score(n), w.eg * Score(n)} }
