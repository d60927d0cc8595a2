package search

import (
	"sync/atomic"

	"github.com/MatN23/rook64/board"
	"github.com/MatN23/rook64/eval"
)

const (
	checkDepthExtension  = 1
	nullMoveDepthLimit   = 2
	lmrDepthLimit        = 3
	futilityDepthLimit   = 3
	initialAspiration    = 21
	futilityMargin       = 150
	checkpointNodes      = 4096
	maxSearchDepth       = 96
)

// Stats accumulates counters for one search, reported in UCI "info"
// lines and useful for tuning.
type Stats struct {
	Nodes      uint64
	Depth      int
	SelDepth   int
	TTHits     uint64
}

// Worker runs one lazy-SMP search thread. Every worker shares the same
// TranspositionTable but keeps its own position, move-ordering tables
// and PV table, matching the lazy-SMP design where redundant root
// search across threads is deliberate: threads diverge quickly because
// of table timing differences and end up exploring different parts of
// the tree.
type Worker struct {
	ID      int
	Pos     *board.Position
	TT      *TranspositionTable
	Stats   Stats

	killers killers
	history historyTable
	pv      pvTable

	stop *int32
	tc   *TimeControl

	// excludeRoot lists root moves already reported at the current
	// depth by an earlier MultiPV pass, so the next pass searches the
	// best line among what remains.
	excludeRoot []board.Move
}

// NewWorker creates a search worker sharing tt and the stop flag with
// its siblings.
func NewWorker(id int, tt *TranspositionTable, stop *int32) *Worker {
	return &Worker{ID: id, TT: tt, stop: stop, pv: newPVTable()}
}

func (w *Worker) shouldStop() bool {
	if atomic.LoadInt32(w.stop) != 0 {
		return true
	}
	if w.Stats.Nodes%checkpointNodes == 0 && w.tc != nil && w.tc.ShouldStop() {
		atomic.StoreInt32(w.stop, 1)
		return true
	}
	return false
}

// IterationResult is reported to the caller after each completed
// iterative-deepening depth, used to emit a UCI "info" line. MultiPV is
// the 1-based index of the PV line this result reports, always 1 when
// a single line is searched.
type IterationResult struct {
	Depth    int
	SelDepth int
	Score    int
	Nodes    uint64
	PV       []board.Move
	MultiPV  int
}

// Search runs iterative deepening from the worker's current position
// up to maxDepth (or until tc's soft/hard budget or the shared stop
// flag ends it), invoking report after every completed depth. At each
// depth, up to multiPV distinct root lines are searched in order of
// strength: after a line is found, its root move is excluded so the
// next pass finds the best line among what remains. multiPV <= 1
// searches only the single best line, matching plain iterative
// deepening exactly.
func (w *Worker) Search(pos *board.Position, tc *TimeControl, maxDepth, multiPV int, report func(IterationResult)) (board.Move, int) {
	w.Pos = pos
	w.tc = tc
	if maxDepth <= 0 || maxDepth > maxSearchDepth {
		maxDepth = maxSearchDepth
	}
	if multiPV < 1 {
		multiPV = 1
	}

	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && tc != nil && !tc.ShouldStartDepth() {
			break
		}

		w.excludeRoot = w.excludeRoot[:0]
		rootMoveCount := len(pos.GenerateLegalMoves())
		stopped := false
		var depthMove board.Move
		var depthScore int

		for pvIdx := 1; pvIdx <= multiPV && len(w.excludeRoot) < rootMoveCount; pvIdx++ {
			score, move, ok := w.searchRoot(depth, bestScore)
			if !ok {
				stopped = true
				break
			}
			if pvIdx == 1 {
				depthMove, depthScore = move, score
			}
			if report != nil {
				report(IterationResult{
					Depth:    depth,
					SelDepth: w.Stats.SelDepth,
					Score:    score,
					Nodes:    w.Stats.Nodes,
					PV:       w.pv.Line(pos),
					MultiPV:  pvIdx,
				})
			}
			w.excludeRoot = append(w.excludeRoot, move)
		}
		w.excludeRoot = w.excludeRoot[:0]
		if stopped {
			break
		}

		bestScore, bestMove = depthScore, depthMove
		w.Stats.Depth = depth

		if bestScore >= int(eval.KnownWinScore) || bestScore <= -int(eval.KnownWinScore) {
			// Mate found; stop deepening once more than four
			// plies have been searched.
			if depth > 4 {
				break
			}
		}
	}
	return bestMove, bestScore
}

// searchRoot runs one iterative-deepening pass at depth using an
// aspiration window centered on the previous iteration's score, widening
// gradually on fail-high/fail-low until the true score is bracketed.
func (w *Worker) searchRoot(depth int, prevScore int) (int, board.Move, bool) {
	alpha, beta := -int(eval.Infinity), int(eval.Infinity)
	window := initialAspiration
	if depth >= 4 {
		alpha = prevScore - window
		beta = prevScore + window
	}

	for {
		score := w.negamax(w.Pos, depth, 0, alpha, beta, true)
		if w.shouldStop() {
			return 0, board.Move{}, false
		}
		if score <= alpha {
			alpha -= window
			window += window / 2
			if alpha < -int(eval.Infinity) {
				alpha = -int(eval.Infinity)
			}
			continue
		}
		if score >= beta {
			beta += window
			window += window / 2
			if beta > int(eval.Infinity) {
				beta = int(eval.Infinity)
			}
			continue
		}
		return score, w.pv.get(w.Pos), true
	}
}

// negamax searches pos to depth plies remaining, returning a score
// from the side-to-move's perspective. ply is the distance from the
// search root, used for mate-distance scoring and killer-table
// indexing.
func (w *Worker) negamax(pos *board.Position, depth, ply int, alpha, beta int, isPV bool) int {
	w.Stats.Nodes++
	if ply > w.Stats.SelDepth {
		w.Stats.SelDepth = ply
	}
	if w.shouldStop() {
		return 0
	}

	if ply > 0 {
		if pos.IsFiftyMoveRule() || pos.IsThreefoldRepetition() || pos.InsufficientMaterial() {
			return 0
		}
		// Mate-distance pruning: a shorter mate found elsewhere in
		// the tree already beats anything reachable from here.
		alpha = max(alpha, -int(eval.MateScore)+ply)
		beta = min(beta, int(eval.MateScore)-ply)
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := pos.InCheck(pos.SideToMove())
	if inCheck {
		depth += checkDepthExtension
	}

	if depth <= 0 {
		return w.quiescence(pos, ply, alpha, beta)
	}

	hash := pos.Zobrist()
	var ttMove board.Move
	if move, score, ttDepth, bound, ok := w.TT.Probe(hash); ok {
		w.Stats.TTHits++
		ttMove = move
		if ttDepth >= depth && !isPV {
			s := scoreFromTT(score, ply)
			switch bound {
			case BoundExact:
				return s
			case BoundLower:
				if s >= beta {
					return s
				}
			case BoundUpper:
				if s <= alpha {
					return s
				}
			}
		}
	}

	staticEval := int(eval.Evaluate(pos))
	if pos.SideToMove() == board.Black {
		staticEval = -staticEval
	}

	// Null-move pruning: if passing the move still fails high, the
	// position is so good a real move will too. Skipped in PV nodes,
	// in check, and when the mover has only pawns left (zugzwang risk).
	if !isPV && !inCheck && depth >= nullMoveDepthLimit && staticEval >= beta {
		nonPawns := pos.ByColor(pos.SideToMove()) &^ pos.ByPiece(pos.SideToMove(), board.Pawn) &^ pos.ByPiece(pos.SideToMove(), board.King)
		if nonPawns.CountMax2() > 0 {
			r := 2 + depth/6
			pos.DoNullMove()
			score := -w.negamax(pos, depth-1-r, ply+1, -beta, -beta+1, false)
			pos.UndoNullMove()
			if w.shouldStop() {
				return 0
			}
			if score >= beta {
				return beta
			}
		}
	}

	// Reverse futility pruning: at shallow depth, a static evaluation
	// that beats beta by a depth-scaled margin is taken as a fail-high.
	if !isPV && !inCheck && depth <= futilityDepthLimit {
		margin := futilityMargin * depth
		if staticEval-margin >= beta {
			return staticEval - margin
		}
	}

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -int(eval.MateScore) + ply
		}
		return 0
	}
	if ply == 0 && len(w.excludeRoot) > 0 {
		moves = excludeMoves(moves, w.excludeRoot)
		if len(moves) == 0 {
			// Every root move has already been reported by an
			// earlier MultiPV pass; Search guards against calling
			// searchRoot in this state, but stay defensive.
			return alpha
		}
	}
	orderMoves(moves, ttMove, ply, &w.killers, &w.history)

	bestScore := -int(eval.Infinity)
	bestMove := board.Move{}
	bound := BoundUpper

	for i, m := range moves {
		pos.DoMove(m)

		var score int
		givesCheck := pos.InCheck(pos.SideToMove())
		reduce := 0
		if depth >= lmrDepthLimit && i >= 3 && !m.IsViolent() && !inCheck && !givesCheck {
			reduce = 1 + depth/6 + i/12
		}

		if i == 0 {
			score = -w.negamax(pos, depth-1, ply+1, -beta, -alpha, isPV)
		} else {
			score = -w.negamax(pos, depth-1-reduce, ply+1, -alpha-1, -alpha, false)
			if score > alpha && (reduce > 0 || score < beta) {
				score = -w.negamax(pos, depth-1, ply+1, -beta, -alpha, isPV && score > alpha)
			}
		}

		pos.UndoMove()

		if w.shouldStop() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = BoundExact
			if isPV {
				w.pv.put(pos, m)
			}
		}
		if alpha >= beta {
			bound = BoundLower
			if !m.IsCapture() {
				w.killers.add(ply, m)
				w.history.add(m, depth)
			}
			break
		}
		if !m.IsCapture() {
			w.history.penalize(m, depth)
		}
	}

	w.TT.Store(hash, bestMove, scoreToTT(bestScore, ply), depth, bound)
	return bestScore
}

// excludeMoves returns the subset of moves not present in exclude, used
// by MultiPV to keep earlier passes' best moves out of later ones.
func excludeMoves(moves, exclude []board.Move) []board.Move {
	kept := moves[:0]
	for _, m := range moves {
		skip := false
		for _, e := range exclude {
			if m == e {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, m)
		}
	}
	return kept
}

// quiescence extends the search along capture sequences until the
// position is "quiet" (no more winning captures), to avoid the
// horizon effect of evaluating mid-exchange positions.
func (w *Worker) quiescence(pos *board.Position, ply, alpha, beta int) int {
	w.Stats.Nodes++
	if ply > w.Stats.SelDepth {
		w.Stats.SelDepth = ply
	}
	if w.shouldStop() {
		return 0
	}

	standPat := int(eval.Evaluate(pos))
	if pos.SideToMove() == board.Black {
		standPat = -standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := pos.GeneratePseudoLegalCaptures(nil)
	orderMoves(moves, board.Move{}, 0, &w.killers, &w.history)

	for _, m := range moves {
		if m.IsCapture() && SEE(pos, m) < 0 {
			continue
		}
		// Delta pruning: even winning the captured piece outright
		// could not raise the score back into the window.
		gain := seeValue[m.Capture.Figure()]
		if standPat+gain+200 < alpha && m.Kind != board.Promotion {
			continue
		}

		pos.DoMove(m)
		if pos.InCheck(pos.SideToMove().Opposite()) {
			pos.UndoMove()
			continue
		}
		score := -w.quiescence(pos, ply+1, -beta, -alpha)
		pos.UndoMove()

		if w.shouldStop() {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
