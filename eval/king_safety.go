package eval

import "github.com/MatN23/rook64/board"

var (
	openFileRookBonus     = pair{20, 10}
	semiOpenFileRookBonus = pair{10, 5}
	rookOnSeventhBonus    = pair{20, 30}
	connectedRooksBonus   = pair{10, 10}
	knightOutpostBonus    = pair{15, 10}

	shelterPawnBonus   = pair{10, 0}
	openFileNearKing   = pair{-25, 0}
	attackWeight       = [5]Score{0, 0, 20, 50, 90}
)

// rookFileBonuses rewards rooks on open or semi-open files, on the
// seventh rank, and connected with each other; and knights sitting on
// pawn-supported squares no enemy pawn can ever attack.
func rookFileBonuses(pos *board.Position, us board.Color) pair {
	them := us.Opposite()
	ownPawns := pos.ByPiece(us, board.Pawn)
	enemyPawns := pos.ByPiece(them, board.Pawn)
	var total pair

	seventh := 6
	if us == board.Black {
		seventh = 1
	}

	rookSquares := make([]board.Square, 0, 2)
	for bb := pos.ByPiece(us, board.Rook); bb != 0; {
		sq := bb.Pop()
		rookSquares = append(rookSquares, sq)
		file := board.FileBb(sq.File())
		if ownPawns&file == 0 {
			if enemyPawns&file == 0 {
				total = total.add(openFileRookBonus)
			} else {
				total = total.add(semiOpenFileRookBonus)
			}
		}
		if sq.Rank() == seventh {
			total = total.add(rookOnSeventhBonus)
		}
	}
	if len(rookSquares) == 2 {
		occ := pos.Occupied()
		if board.RookAttack(rookSquares[0], occ).Has(rookSquares[1]) {
			total = total.add(connectedRooksBonus)
		}
	}

	for bb := pos.ByPiece(us, board.Knight); bb != 0; {
		sq := bb.Pop()
		// Enemy pawns on an adjacent file ahead of the knight could
		// still advance to attack it.
		var files, ahead board.Bitboard
		for _, df := range [2]int{-1, 1} {
			if nf := sq.File() + df; nf >= 0 && nf < 8 {
				files |= board.FileBb(nf)
			}
		}
		for r := sq.Rank() + sign(us); r >= 0 && r < 8; r += sign(us) {
			ahead |= board.RankBb(r)
		}
		if enemyPawns&files&ahead == 0 && board.PawnAttack(sq, them)&ownPawns != 0 {
			total = total.add(knightOutpostBonus)
		}
	}

	return total
}

// kingSafety scores pawn shelter in front of the king, open files
// adjacent to the king, and a penalty weighted by the number of squares
// around the king that the enemy attacks.
func kingSafety(pos *board.Position, us, them board.Color) pair {
	kingBB := pos.ByPiece(us, board.King)
	if kingBB == 0 {
		return pair{}
	}
	kingSq := kingBB.AsSquare()
	var total pair

	ownPawns := pos.ByPiece(us, board.Pawn)
	enemyPawns := pos.ByPiece(them, board.Pawn)

	// Shelter pawns are those on the two ranks in front of the king.
	var shield board.Bitboard
	for dr := 1; dr <= 2; dr++ {
		if r := kingSq.Rank() + dr*sign(us); r >= 0 && r < 8 {
			shield |= board.RankBb(r)
		}
	}

	kf := kingSq.File()
	for _, f := range [3]int{kf - 1, kf, kf + 1} {
		if f < 0 || f > 7 {
			continue
		}
		file := board.FileBb(f)
		if ownPawns&file&shield != 0 {
			total = total.add(shelterPawnBonus)
		}
		if ownPawns&file == 0 && enemyPawns&file == 0 {
			total = total.add(openFileNearKing)
		}
	}

	ring := board.KingAttack(kingSq)
	attackers := 0
	for bb := ring; bb != 0; {
		sq := bb.Pop()
		if pos.IsAttacked(sq, them) {
			attackers++
		}
	}
	if attackers >= len(attackWeight) {
		attackers = len(attackWeight) - 1
	}
	total.mg -= attackWeight[attackers]

	return total
}
