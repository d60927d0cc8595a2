package uci

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatN23/rook64/board"
	"github.com/MatN23/rook64/book"
	"github.com/MatN23/rook64/search"
)

func newTestUCI(t *testing.T) (*UCI, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	opts := search.DefaultOptions()
	opts.HashMB = 1
	opts.Threads = 1
	opts.OwnBook = false
	u := New(&out, opts, book.Empty())
	return u, &out
}

func lines(out *strings.Builder) []string {
	var ls []string
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		ls = append(ls, sc.Text())
	}
	return ls
}

func TestUCIHandshake(t *testing.T) {
	u, out := newTestUCI(t)
	u.Execute("uci")
	ls := lines(out)
	require.NotEmpty(t, ls)
	assert.Equal(t, "id name rook64", ls[0])
	assert.Equal(t, "uciok", ls[len(ls)-1])
}

func TestIsReady(t *testing.T) {
	u, out := newTestUCI(t)
	u.Execute("isready")
	assert.Equal(t, []string{"readyok"}, lines(out))
}

func TestPositionStartposMoves(t *testing.T) {
	u, _ := newTestUCI(t)
	u.Execute("position startpos moves e2e4 e7e5")
	assert.Equal(t, board.MakePiece(board.White, board.Pawn), u.pos.Get(board.SquareE4))
	assert.Equal(t, board.MakePiece(board.Black, board.Pawn), u.pos.Get(board.SquareE5))
	assert.True(t, u.pos.IsEmpty(board.SquareE2))
}

func TestSetOptionHash(t *testing.T) {
	u, _ := newTestUCI(t)
	u.Execute("setoption name Hash value 128")
	assert.Equal(t, 128, u.opts.HashMB)
}

func TestSetOptionMultiPV(t *testing.T) {
	u, _ := newTestUCI(t)
	u.Execute("setoption name MultiPV value 3")
	assert.Equal(t, 3, u.opts.MultiPV)
	assert.Equal(t, 3, u.engine.MultiPV)
}

func TestParseSetOption(t *testing.T) {
	name, value := parseSetOption(strings.Fields("name Clear Hash value true"))
	assert.Equal(t, "Clear Hash", name)
	assert.Equal(t, "true", value)
}

func TestQuitStopsLoop(t *testing.T) {
	u, _ := newTestUCI(t)
	assert.True(t, u.Execute("quit"))
	assert.False(t, u.Execute("isready"))
}
