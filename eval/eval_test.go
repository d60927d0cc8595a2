package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatN23/rook64/board"
)

func TestPhaseStartPosition(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, MaxPhase, Phase(pos))
}

func TestPhaseBareKings(t *testing.T) {
	pos, err := board.PositionFromFEN("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 0, Phase(pos))
}

func TestEvaluateSymmetricPositionIsZero(t *testing.T) {
	pos := board.NewPosition()
	assert.Zero(t, Evaluate(pos)-tempoBonus)
}

func TestEvaluateFavorsMaterial(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	require.NoError(t, err)
	assert.Greater(t, int(Evaluate(pos)), 400)
}

// TestEvaluateIsWhiteRelativeForEitherSideToMove checks that Evaluate
// scores from White's point of view whoever is to move: the same
// position differs only by the tempo bonus awarded to the mover.
func TestEvaluateIsWhiteRelativeForEitherSideToMove(t *testing.T) {
	white, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	require.NoError(t, err)
	black, err := board.PositionFromFEN("4k3/8/8/8/8/8/8/R3K3 b Q - 0 1")
	require.NoError(t, err)
	assert.InDelta(t, int(Evaluate(white)), int(Evaluate(black))+2*int(tempoBonus), 1)
}
