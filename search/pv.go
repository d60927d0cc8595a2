package search

import "github.com/MatN23/rook64/board"

const (
	pvTableSize = 1 << 14
	pvTableMask = pvTableSize - 1
)

type pvEntry struct {
	lock uint64
	move board.Move
}

// pvTable records the best move found for positions on the principal
// variation, keyed by Zobrist hash, so the full PV line can be
// reconstructed by replaying moves from the root after the search
// returns, the way the transposition table's best moves would if the
// table were never overwritten by other search lines.
type pvTable []pvEntry

func newPVTable() pvTable { return make(pvTable, pvTableSize) }

func (pv pvTable) put(pos *board.Position, move board.Move) {
	if move.IsNull() {
		return
	}
	h := pos.Zobrist()
	pv[h&pvTableMask] = pvEntry{lock: h, move: move}
}

func (pv pvTable) get(pos *board.Position) board.Move {
	h := pos.Zobrist()
	if e := &pv[h&pvTableMask]; e.lock == h {
		return e.move
	}
	return board.NullMove
}

// Line extracts the principal variation starting at pos by repeatedly
// looking up and playing the recorded best move, stopping on a
// repeated position to avoid an infinite loop through transposing
// lines.
func (pv pvTable) Line(pos *board.Position) []board.Move {
	seen := make(map[uint64]bool)
	var moves []board.Move

	next := pv.get(pos)
	for !next.IsNull() && !seen[pos.Zobrist()] {
		seen[pos.Zobrist()] = true
		moves = append(moves, next)
		pos.DoMove(next)
		next = pv.get(pos)
	}
	for range moves {
		pos.UndoMove()
	}
	return moves
}
