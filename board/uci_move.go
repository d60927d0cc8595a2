package board

import "github.com/pkg/errors"

var promotionSymbolToFigure = map[byte]Figure{
	'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight,
}

// ParseUCIMove resolves a UCI long-algebraic move string (e.g. "e2e4",
// "e7e8q") against the position's legal moves. It never constructs a
// Move directly from the string since that would risk producing a
// move whose Capture/Kind/prior-state fields disagree with the actual
// position.
func (pos *Position) ParseUCIMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, errors.Errorf("board: malformed UCI move %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return Move{}, errors.Wrapf(err, "board: malformed UCI move %q", s)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return Move{}, errors.Wrapf(err, "board: malformed UCI move %q", s)
	}
	var promo Figure
	if len(s) == 5 {
		f, ok := promotionSymbolToFigure[s[4]]
		if !ok {
			return Move{}, errors.Errorf("board: malformed UCI move %q", s)
		}
		promo = f
	}

	for _, m := range pos.GenerateLegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.Kind == Promotion && m.Promoted != promo {
			continue
		}
		return m, nil
	}
	return Move{}, errors.Errorf("board: %q is not a legal move in this position", s)
}
