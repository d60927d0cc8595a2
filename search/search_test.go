package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatN23/rook64/board"
	"github.com/MatN23/rook64/eval"
)

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := board.Move{From: board.SquareE2, To: board.SquareE4, Piece: board.MakePiece(board.White, board.Pawn)}
	tt.Store(0xdeadbeef, m, 123, 5, BoundExact)

	got, score, depth, bound, ok := tt.Probe(0xdeadbeef)
	require.True(t, ok)
	assert.Equal(t, m, got)
	assert.Equal(t, 123, score)
	assert.Equal(t, 5, depth)
	assert.Equal(t, BoundExact, bound)
}

func TestTranspositionTableMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, _, _, _, ok := tt.Probe(1)
	assert.False(t, ok)
}

func TestFindsMateInOne(t *testing.T) {
	pos, err := board.PositionFromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	stop := int32(0)
	w := NewWorker(0, NewTranspositionTable(16), &stop)
	move, score := w.Search(pos, nil, 4, 1, nil)

	assert.Equal(t, board.SquareA1, move.From)
	assert.Equal(t, board.SquareA8, move.To)
	assert.GreaterOrEqual(t, score, int(eval.KnownWinScore))
}

func TestSearchRespectsDepthLimit(t *testing.T) {
	pos := board.NewPosition()
	stop := int32(0)
	w := NewWorker(0, NewTranspositionTable(16), &stop)
	move, _ := w.Search(pos, nil, 3, 1, nil)
	assert.False(t, move.IsNull())
	assert.Equal(t, 3, w.Stats.Depth)
}

func TestMultiPVReportsDistinctLines(t *testing.T) {
	pos := board.NewPosition()
	stop := int32(0)
	w := NewWorker(0, NewTranspositionTable(16), &stop)

	var lines []IterationResult
	w.Search(pos, nil, 3, 3, func(it IterationResult) {
		lines = append(lines, it)
	})

	var lastDepth []IterationResult
	for _, it := range lines {
		if it.Depth == 3 {
			lastDepth = append(lastDepth, it)
		}
	}
	require.Len(t, lastDepth, 3)

	seen := map[board.Move]bool{}
	for i, it := range lastDepth {
		assert.Equal(t, i+1, it.MultiPV)
		require.NotEmpty(t, it.PV)
		assert.False(t, seen[it.PV[0]], "multipv lines must report distinct root moves")
		seen[it.PV[0]] = true
	}
}

func TestEngineGoReturnsLegalMove(t *testing.T) {
	pos := board.NewPosition()
	e := NewEngine(16, 2)
	tc := &TimeControl{MoveTime: 200 * time.Millisecond}
	tc.Start(0)
	result := e.Go(pos, tc, 0, nil)

	legal := pos.GenerateLegalMoves()
	found := false
	for _, m := range legal {
		if m == result.BestMove {
			found = true
			break
		}
	}
	assert.True(t, found, "engine returned a move not in the legal move list")
}

func TestSEEWinningCapture(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := pos.ParseUCIMove("e4d5")
	require.NoError(t, err)
	assert.Greater(t, SEE(pos, m), 0)
}
