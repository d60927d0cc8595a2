package board

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uciList(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	return out
}

// TestTranspositionReachesSameLegalMoves checks that two different
// move orders transposing into the same position produce identical
// legal move sets, regardless of generation order.
func TestTranspositionReachesSameLegalMoves(t *testing.T) {
	viaKnights := NewPosition()
	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, err := viaKnights.ParseUCIMove(s)
		require.NoError(t, err)
		viaKnights.DoMove(m)
	}
	direct := NewPosition()

	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(uciList(viaKnights.GenerateLegalMoves()), uciList(direct.GenerateLegalMoves()), sortStrings); diff != "" {
		t.Errorf("legal move sets differ (-want +got):\n%s", diff)
	}
}

// TestSortedLegalMovesMatchUnsorted checks that sorting the legal move
// list only reorders it; GenerateLegalMoves itself returns moves in
// generation order, not sorted.
func TestSortedLegalMovesMatchUnsorted(t *testing.T) {
	pos := NewPosition()
	moves := uciList(pos.GenerateLegalMoves())
	sorted := append([]string(nil), moves...)
	sort.Strings(sorted)
	assert.ElementsMatch(t, sorted, moves)
}

func TestStartPositionFEN(t *testing.T) {
	pos := NewPosition()
	assert.Equal(t, StartFEN, pos.FEN())
	assert.Equal(t, White, pos.SideToMove())
	assert.Equal(t, AnyCastle, pos.CastlingAbility())
	assert.Equal(t, NoSquare, pos.EnpassantSquare())
	require.NoError(t, pos.Verify())
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"rnbq1rk1/ppp1bppp/4pn2/3p4/2PP4/2N1PN2/PP3PPP/R1BQKB1R w KQ - 2 6",
		"8/8/8/4k3/8/8/4K3/4R3 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, pos.FEN())
		require.NoError(t, pos.Verify())
	}
}

func TestDoUndoMoveRestoresState(t *testing.T) {
	pos := NewPosition()
	before := pos.FEN()
	for _, m := range pos.GenerateLegalMoves() {
		pos.DoMove(m)
		require.NoError(t, pos.Verify())
		pos.UndoMove()
		assert.Equal(t, before, pos.FEN())
	}
}

func TestEnpassantCapture(t *testing.T) {
	pos, err := PositionFromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)

	m, err := pos.ParseUCIMove("e5d6")
	require.NoError(t, err)
	assert.Equal(t, Enpassant, m.Kind)

	pos.DoMove(m)
	assert.Equal(t, NoPiece, pos.Get(SquareD5))
	assert.Equal(t, MakePiece(White, Pawn), pos.Get(SquareD6))
	require.NoError(t, pos.Verify())
	pos.UndoMove()
	assert.Equal(t, MakePiece(Black, Pawn), pos.Get(SquareD5))
}

func TestCastlingRights(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m, err := pos.ParseUCIMove("e1g1")
	require.NoError(t, err)
	assert.Equal(t, Castling, m.Kind)

	pos.DoMove(m)
	assert.Equal(t, MakePiece(White, Rook), pos.Get(SquareF1))
	assert.Equal(t, MakePiece(White, King), pos.Get(SquareG1))
	assert.Equal(t, BlackOO|BlackOOO, pos.CastlingAbility())
	require.NoError(t, pos.Verify())
}

func TestCheckmateDetection(t *testing.T) {
	pos, err := PositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, pos.IsCheckmate())
}

func TestStalemateDetection(t *testing.T) {
	pos, err := PositionFromFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.IsStalemate())
}

func TestInsufficientMaterial(t *testing.T) {
	pos, err := PositionFromFEN("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.InsufficientMaterial())
}
