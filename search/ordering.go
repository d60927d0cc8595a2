package search

import "github.com/MatN23/rook64/board"

// mvvLvaValue ranks victims far above attackers so that the highest
// scored captures are the ones winning the most material, with ties
// broken by favoring the cheapest attacker.
var mvvLvaValue = [board.FigureCount]int{0, 100, 320, 330, 500, 900, 20000}

func mvvLva(m board.Move) int {
	return mvvLvaValue[m.Capture.Figure()]*64 - mvvLvaValue[m.Piece.Figure()]
}

const maxPly = 128

// killers holds, per ply, up to two quiet moves that caused a beta
// cutoff, tried early on subsequent nodes at the same ply since a move
// that refutes one line often refutes a sibling line too.
type killers struct {
	moves [maxPly][2]board.Move
}

func (k *killers) add(ply int, m board.Move) {
	if m == k.moves[ply][0] {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *killers) isKiller(ply int, m board.Move) bool {
	return m == k.moves[ply][0] || m == k.moves[ply][1]
}

// historyTable scores quiet moves by how often they have caused a beta
// cutoff anywhere in the tree, indexed by moving piece and
// destination square.
type historyTable struct {
	score [2 * board.FigureCount][64]int32
}

// add rewards m for causing a beta cutoff at depth, raising its score
// so it is tried earlier in sibling nodes.
func (h *historyTable) add(m board.Move, depth int) {
	h.adjust(m, int32(depth*depth))
}

// penalize lowers m's score after it was searched at depth without
// causing a beta cutoff, so quiets that repeatedly fail to help sink below
// ones that repeatedly cut off instead of merely never being lowered.
func (h *historyTable) penalize(m board.Move, depth int) {
	h.adjust(m, -int32(depth*depth))
}

func (h *historyTable) adjust(m board.Move, delta int32) {
	v := &h.score[m.Piece][m.To]
	*v += delta
	if *v > 1<<20 || *v < -1<<20 {
		for i := range h.score {
			for j := range h.score[i] {
				h.score[i][j] /= 2
			}
		}
	}
}

func (h *historyTable) get(m board.Move) int32 {
	return h.score[m.Piece][m.To]
}

// orderMoves scores and sorts moves in place: the transposition-table
// move first, then captures by MVV-LVA, then killers, then quiets by
// history score.
func orderMoves(moves []board.Move, ttMove board.Move, ply int, k *killers, h *historyTable) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		switch {
		case m == ttMove:
			scores[i] = 1 << 30
		case m.IsCapture():
			scores[i] = 1<<20 + mvvLva(m)
		case k.isKiller(ply, m):
			scores[i] = 1 << 19
		default:
			scores[i] = int(h.get(m))
		}
	}
	// Insertion sort: move lists are short (rarely over ~40 moves)
	// and nearly sorted after the first few passes at a given node,
	// so this beats the constant overhead of sort.Slice.
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < s {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = s
	}
}
