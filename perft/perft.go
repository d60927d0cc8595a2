// Package perft counts leaf nodes of the legal move tree to a fixed
// depth, the standard correctness check for a chess move generator.
package perft

import "github.com/MatN23/rook64/board"

// Count returns the number of leaf positions reachable from pos after
// exactly depth plies of legal moves.
func Count(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		pos.DoMove(m)
		nodes += Count(pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}

// Divide returns, for each legal move at the root, the perft count of
// the subtree rooted after that move at depth-1. It is a debugging aid
// for isolating a move generator bug to a specific root move.
func Divide(pos *board.Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	for _, m := range pos.GenerateLegalMoves() {
		pos.DoMove(m)
		result[m.UCI()] = Count(pos, depth-1)
		pos.UndoMove()
	}
	return result
}
