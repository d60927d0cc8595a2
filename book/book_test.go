package book

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatN23/rook64/board"
)

const sampleBook = `
positions:
  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -":
    - move: e2e4
      weight: 100
`

func writeSampleBook(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleBook), 0o644))
	return path
}

func TestLoadAndProbe(t *testing.T) {
	path := writeSampleBook(t)
	b, err := Load(path)
	require.NoError(t, err)

	pos := board.NewPosition()
	m, ok := b.Probe(pos)
	require.True(t, ok)
	assert.Equal(t, "e2e4", m.UCI())
}

func TestProbeMissOutOfBook(t *testing.T) {
	b := Empty()
	pos := board.NewPosition()
	_, ok := b.Probe(pos)
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/book.yaml")
	assert.Error(t, err)
}
