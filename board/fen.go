package board

import (
	"fmt"
	"strconv"
	"strings"
)

var pieceRune = map[rune]struct {
	piece Piece
	color Color
}{
	'P': {Pawn, White}, 'N': {Knight, White}, 'B': {Bishop, White},
	'R': {Rook, White}, 'Q': {Queen, White}, 'K': {King, White},
	'p': {Pawn, Black}, 'n': {Knight, Black}, 'b': {Bishop, Black},
	'r': {Rook, Black}, 'q': {Queen, Black}, 'k': {King, Black},
}

var pieceLetter = map[Piece]string{
	Pawn: "p", Knight: "n", Bishop: "b", Rook: "r", Queen: "q", King: "k",
}

// ParseFEN builds a Position from Forsyth-Edwards Notation.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("board: bad FEN %q: need at least 4 fields", fen)
	}

	var pos Position
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("board: bad FEN %q: need 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				pp, ok := pieceRune[ch]
				if !ok {
					return Position{}, fmt.Errorf("board: bad FEN %q: bad piece char %q", fen, ch)
				}
				if file > 7 {
					return Position{}, fmt.Errorf("board: bad FEN %q: rank overflow", fen)
				}
				sq := squareIndex(file, rank)
				pos.Pieces[pp.color][pp.piece] |= Bitboard(1) << uint(sq)
				file++
			}
		}
	}

	pos.WhiteMove = fields[1] == "w"

	pos.CastleRights = 0
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				pos.CastleRights |= CastleWhiteKingSide
			case 'Q':
				pos.CastleRights |= CastleWhiteQueenSide
			case 'k':
				pos.CastleRights |= CastleBlackKingSide
			case 'q':
				pos.CastleRights |= CastleBlackQueenSide
			}
		}
	}

	pos.EnPassant = NoSquare
	if fields[3] != "-" {
		if sq, ok := AlgebraicToIndex(fields[3]); ok {
			pos.EnPassant = Square(sq)
		}
	}

	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			pos.HalfmoveClock = uint8(n)
		}
	}
	pos.FullmoveNo = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			pos.FullmoveNo = uint16(n)
		}
	}

	pos.Hash = pos.ComputeHash()
	return pos, nil
}

// FEN renders the position back to Forsyth-Edwards Notation.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file <= 7; file++ {
			sq := squareIndex(file, rank)
			p, c, ok := pos.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := pieceLetter[p]
			if c == White {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteString("/")
		}
	}

	sb.WriteString(" ")
	if pos.WhiteMove {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}

	sb.WriteString(" ")
	castling := ""
	if pos.CastleRights&CastleWhiteKingSide != 0 {
		castling += "K"
	}
	if pos.CastleRights&CastleWhiteQueenSide != 0 {
		castling += "Q"
	}
	if pos.CastleRights&CastleBlackKingSide != 0 {
		castling += "k"
	}
	if pos.CastleRights&CastleBlackQueenSide != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteString(" ")
	if pos.EnPassant == NoSquare {
		sb.WriteString("-")
	} else {
		sb.WriteString(IndexToAlgebraic(int(pos.EnPassant)))
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock, pos.FullmoveNo)
	return sb.String()
}
