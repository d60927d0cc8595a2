// Package eval implements a tapered, hand-tuned static evaluation
// function: material, piece-square tables, pawn structure, mobility,
// king safety and a handful of classic positional bonuses, blended
// between middlegame and endgame weights by game phase.
package eval

import "github.com/MatN23/rook64/board"

// Score is a centipawn evaluation from the moving side's perspective
// unless stated otherwise; Evaluate itself returns White's perspective.
type Score int32

const (
	// MateScore is the evaluation of a position where the side to
	// move has just been checkmated, before ply adjustment.
	MateScore Score = 30000
	// KnownWinScore marks the boundary above which a score is
	// considered a forced mate rather than a material evaluation.
	KnownWinScore Score = 29000
	// Infinity bounds the alpha-beta window.
	Infinity Score = 32000

	tempoBonus Score = 10
)

// MaxPhase is the phase value of a fully-loaded board with all minor
// and major pieces still on it.
const MaxPhase = 24

var phaseWeight = [board.FigureCount]int{
	board.NoFigure: 0, board.Pawn: 0,
	board.Knight: 1, board.Bishop: 1, board.Rook: 2, board.Queen: 4, board.King: 0,
}

// Phase returns the current game phase on a 0 (pure endgame) to 24
// (full middlegame material) scale.
func Phase(pos *board.Position) int {
	phase := 0
	for f := board.Knight; f <= board.Queen; f++ {
		phase += phaseWeight[f] * pos.ByFigure(f).Count()
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

type pair struct{ mg, eg Score }

func (p pair) add(q pair) pair { return pair{p.mg + q.mg, p.eg + q.eg} }
func (p pair) neg() pair       { return pair{-p.mg, -p.eg} }

func (p pair) blend(phase int) Score {
	return (p.mg*Score(phase) + p.eg*Score(MaxPhase-phase)) / MaxPhase
}

var figureValue = [board.FigureCount]pair{
	board.Pawn:   {100, 120},
	board.Knight: {320, 290},
	board.Bishop: {330, 310},
	board.Rook:   {500, 530},
	board.Queen:  {900, 940},
	board.King:   {0, 0},
}

// Evaluate returns the static evaluation of pos from White's point of
// view, in centipawns.
func Evaluate(pos *board.Position) Score {
	phase := Phase(pos)
	var total pair

	for _, c := range [2]board.Color{board.White, board.Black} {
		side := evaluateSide(pos, c)
		if c == board.Black {
			side = side.neg()
		}
		total = total.add(side)
	}

	score := total.blend(phase)
	if pos.SideToMove() == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}
	return score
}

func evaluateSide(pos *board.Position, us board.Color) pair {
	var total pair
	them := us.Opposite()

	for f := board.Pawn; f <= board.Queen; f++ {
		for bb := pos.ByPiece(us, f); bb != 0; {
			sq := bb.Pop()
			total = total.add(figureValue[f])
			total = total.add(pstValue(f, sq, us))
		}
	}
	if bb := pos.ByPiece(us, board.King); bb != 0 {
		total = total.add(pstValue(board.King, bb.AsSquare(), us))
	}

	total = total.add(mobility(pos, us))
	total = total.add(pawnStructure(pos, us))
	total = total.add(rookFileBonuses(pos, us))
	total = total.add(kingSafety(pos, us, them))

	if pos.ByFigure(board.Bishop)&pos.ByColor(us) != 0 && (pos.ByColor(us)&pos.ByFigure(board.Bishop)).Count() >= 2 {
		total = total.add(pair{30, 40})
	}

	return total
}
