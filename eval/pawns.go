package eval

import "github.com/MatN23/rook64/board"

var (
	doubledPenalty  = pair{-10, -20}
	isolatedPenalty = pair{-15, -10}
	backwardPenalty = pair{-8, -5}
	connectedBonus  = pair{5, 10}
	passedBonus     = [8]pair{
		{}, {5, 10}, {10, 20}, {20, 35}, {35, 55}, {60, 85}, {100, 130}, {},
	}
)

// pawnStructure scores doubled, isolated, backward, connected and
// passed pawns for side us.
func pawnStructure(pos *board.Position, us board.Color) pair {
	them := us.Opposite()
	ours := pos.ByPiece(us, board.Pawn)
	theirs := pos.ByPiece(them, board.Pawn)
	var total pair

	for f := 0; f < 8; f++ {
		count := (ours & board.FileBb(f)).Count()
		if count > 1 {
			total = total.add(scaled(doubledPenalty, count-1))
		}
		if count > 0 {
			neighbors := board.BbEmpty
			if f > 0 {
				neighbors |= board.FileBb(f - 1)
			}
			if f < 7 {
				neighbors |= board.FileBb(f + 1)
			}
			if ours&neighbors == 0 {
				total = total.add(scaled(isolatedPenalty, count))
			}
		}
	}

	for bb := ours; bb != 0; {
		sq := bb.Pop()
		if isPassed(sq, us, theirs) {
			rank := sq.Rank()
			if us == board.Black {
				rank = 7 - rank
			}
			total = total.add(passedBonus[rank])
		}
		if isConnected(sq, us, ours) {
			total = total.add(connectedBonus)
		}
		if isBackward(sq, us, ours, theirs) {
			total = total.add(backwardPenalty)
		}
	}

	return total
}

// isPassed reports whether the pawn on sq has no enemy pawn able to
// stop it: none on its file or adjacent files, ahead of its rank.
func isPassed(sq board.Square, us board.Color, enemyPawns board.Bitboard) bool {
	f := sq.File()
	var files board.Bitboard
	for _, d := range [3]int{-1, 0, 1} {
		nf := f + d
		if nf >= 0 && nf < 8 {
			files |= board.FileBb(nf)
		}
	}
	var ahead board.Bitboard
	if us == board.White {
		for r := sq.Rank() + 1; r < 8; r++ {
			ahead |= board.RankBb(r)
		}
	} else {
		for r := sq.Rank() - 1; r >= 0; r-- {
			ahead |= board.RankBb(r)
		}
	}
	return enemyPawns&files&ahead == 0
}

func isConnected(sq board.Square, us board.Color, ownPawns board.Bitboard) bool {
	return board.PawnAttack(sq, us.Opposite())&ownPawns != 0
}

// isBackward reports whether the pawn cannot safely advance because
// its stop square is controlled by an enemy pawn and no friendly pawn
// on an adjacent file is positioned to support it.
func isBackward(sq board.Square, us board.Color, ownPawns, enemyPawns board.Bitboard) bool {
	f := sq.File()
	var adjacent board.Bitboard
	if f > 0 {
		adjacent |= board.FileBb(f - 1)
	}
	if f < 7 {
		adjacent |= board.FileBb(f + 1)
	}

	var behindOrLevel board.Bitboard
	if us == board.White {
		for r := 0; r <= sq.Rank(); r++ {
			behindOrLevel |= board.RankBb(r)
		}
	} else {
		for r := sq.Rank(); r < 8; r++ {
			behindOrLevel |= board.RankBb(r)
		}
	}
	if ownPawns&adjacent&behindOrLevel != 0 {
		return false
	}

	stop := sq.Relative(sign(us), 0)
	return board.PawnAttack(stop, us)&enemyPawns != 0
}

func sign(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}
