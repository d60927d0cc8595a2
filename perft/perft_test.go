package perft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatN23/rook64/board"
)

func TestPerftStartPosition(t *testing.T) {
	want := []uint64{1, 20, 400, 8902, 197281, 4865609}
	pos := board.NewPosition()
	for depth, n := range want {
		assert.Equal(t, n, Count(pos, depth), "perft(%d) from startpos", depth)
	}
}

func TestPerftStartPositionDepth6(t *testing.T) {
	if testing.Short() {
		t.Skip("depth 6 perft is slow, skipped with -short")
	}
	pos := board.NewPosition()
	require.Equal(t, uint64(119060324), Count(pos, 6))
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := board.PositionFromFEN(fen)
	require.NoError(t, err)

	want := []uint64{1, 48, 2039, 97862}
	for depth, n := range want {
		assert.Equal(t, n, Count(pos, depth), "perft(%d) from kiwipete", depth)
	}
}

func TestPerftPromotionHeavy(t *testing.T) {
	fen := "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1"
	pos, err := board.PositionFromFEN(fen)
	require.NoError(t, err)

	want := []uint64{1, 24, 496, 9483}
	for depth, n := range want {
		assert.Equal(t, n, Count(pos, depth), "perft(%d) from promotion-heavy position", depth)
	}
}
