package board

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StartFEN is the FEN of the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var symbolToPiece = map[byte]Piece{
	'P': MakePiece(White, Pawn), 'N': MakePiece(White, Knight),
	'B': MakePiece(White, Bishop), 'R': MakePiece(White, Rook),
	'Q': MakePiece(White, Queen), 'K': MakePiece(White, King),
	'p': MakePiece(Black, Pawn), 'n': MakePiece(Black, Knight),
	'b': MakePiece(Black, Bishop), 'r': MakePiece(Black, Rook),
	'q': MakePiece(Black, Queen), 'k': MakePiece(Black, King),
}

var pieceToSymbol = func() map[Piece]byte {
	m := make(map[Piece]byte, len(symbolToPiece))
	for s, p := range symbolToPiece {
		m[p] = s
	}
	return m
}()

// PositionFromFEN parses a FEN string into a new Position.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.Errorf("board: FEN %q has too few fields", fen)
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	pos := &Position{epSquare: NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.Errorf("board: FEN %q does not have 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := symbolToPiece[c]
			if !ok {
				return nil, errors.Errorf("board: FEN %q has invalid piece symbol %q", fen, c)
			}
			if file > 7 {
				return nil, errors.Errorf("board: FEN %q overflows rank %d", fen, rank+1)
			}
			pos.put(RankFile(rank, file), p)
			file++
		}
	}

	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
		pos.hash ^= zobristSideToMove
	default:
		return nil, errors.Errorf("board: FEN %q has invalid side to move %q", fen, fields[1])
	}

	var castle Castle
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				castle |= WhiteOO
			case 'Q':
				castle |= WhiteOOO
			case 'k':
				castle |= BlackOO
			case 'q':
				castle |= BlackOOO
			default:
				return nil, errors.Errorf("board: FEN %q has invalid castling field %q", fen, fields[2])
			}
		}
	}
	pos.setCastle(castle)

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "board: FEN %q has invalid en-passant field", fen)
		}
		pos.setEnpassant(sq)
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, errors.Wrapf(err, "board: FEN %q has invalid halfmove clock", fen)
	}
	pos.halfmove = half

	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, errors.Wrapf(err, "board: FEN %q has invalid fullmove number", fen)
	}
	if full < 1 {
		full = 1
	}
	pos.fullmove = full

	pos.hashStack = append(pos.hashStack, pos.hash)

	return pos, nil
}

// FEN renders the position as a FEN string.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := pos.squares[RankFile(r, f)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToSymbol[p])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.sideToMove.String())

	sb.WriteByte(' ')
	sb.WriteString(pos.castle.String())

	sb.WriteByte(' ')
	if pos.epSquare == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(pos.epSquare.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.fullmove))

	return sb.String()
}
