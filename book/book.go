// Package book implements a weighted-random opening book loaded from a
// YAML file: a map from a position's FEN (piece placement, side to
// move, castling rights and en-passant file only) to a list of
// candidate moves with integer weights.
package book

import (
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/MatN23/rook64/board"
)

// Entry is one candidate move for a book position: a UCI move string
// and its relative weight in the weighted-random draw.
type Entry struct {
	Move   string `yaml:"move"`
	Weight int    `yaml:"weight"`
}

// Book is a loaded, ready-to-query opening book.
type Book struct {
	positions map[string][]Entry
	rand      *rand.Rand
}

// Empty returns a book with no entries; Probe on it always misses.
// Used when no book file is configured or OwnBook is disabled.
func Empty() *Book {
	return &Book{positions: map[string][]Entry{}, rand: rand.New(rand.NewSource(1))}
}

// Load reads and parses a book file in the format:
//
//	positions:
//	  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -":
//	    - move: e2e4
//	      weight: 40
//	    - move: d2d4
//	      weight: 35
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "book: reading %q", path)
	}

	var doc struct {
		Positions map[string][]Entry `yaml:"positions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "book: parsing %q", path)
	}

	return &Book{positions: doc.Positions, rand: rand.New(rand.NewSource(1))}, nil
}

// bookKey returns the first four fields of a FEN (board, side to move,
// castling, en-passant), which is all a book entry keys on; halfmove
// clock and fullmove number never affect what move should be played.
func bookKey(fen string) string {
	fields := 0
	for i, c := range fen {
		if c == ' ' {
			fields++
			if fields == 4 {
				return fen[:i]
			}
		}
	}
	return fen
}

// Probe returns a book move for pos chosen by weighted random draw
// among its candidates, or ok=false if pos has no book entry.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	entries, found := b.positions[bookKey(pos.FEN())]
	if !found || len(entries) == 0 {
		return board.Move{}, false
	}

	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return board.Move{}, false
	}

	roll := b.rand.Intn(total)
	for _, e := range entries {
		if roll < e.Weight {
			m, err := pos.ParseUCIMove(e.Move)
			if err != nil {
				return board.Move{}, false
			}
			return m, true
		}
		roll -= e.Weight
	}
	return board.Move{}, false
}
