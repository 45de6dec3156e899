// Package board represents a chess position as a set of bitboards
// and provides make/unmake, move generation, FEN, and Zobrist hashing.
// It is an external collaborator of the search core (see engine
// package): the core consumes it only through the Position interface
// in engine/interfaces.go.
package board

import (
	"fmt"
	"strings"
)

// Bitboard Layout (little-endian rank-file mapping):
//
//	56 57 58 59 60 61 62 63
//	48 49 50 51 52 53 54 55
//	40 41 42 43 44 45 46 47
//	32 33 34 35 36 37 38 39
//	24 25 26 27 28 29 30 31
//	16 17 18 19 20 21 22 23
//	08 09 10 11 12 13 14 15
//	00 01 02 03 04 05 06 07
type Bitboard uint64

// Piece identifies a piece type, independent of color.
type Piece uint8

const (
	Empty Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p Piece) String() string {
	switch p {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Empty"
	}
}

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

func (c Color) Other() Color { return c ^ 1 }

// Square is an index in [0,63], a1=0 .. h8=63.
type Square int8

// NoSquare marks an absent en-passant target.
const NoSquare Square = -1

const (
	CastleWhiteKingSide uint8 = 1 << iota
	CastleWhiteQueenSide
	CastleBlackKingSide
	CastleBlackQueenSide
)

func sqFile(sq int) int { return sq & 7 }
func sqRank(sq int) int { return sq >> 3 }

func squareIndex(file, rank int) int { return rank*8 + file }

// IndexToAlgebraic converts a square index to algebraic notation.
func IndexToAlgebraic(idx int) string {
	if idx < 0 || idx > 63 {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sqFile(idx), sqRank(idx)+1)
}

// AlgebraicToIndex converts algebraic notation to a square index.
func AlgebraicToIndex(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, false
	}
	return squareIndex(file, rank), true
}

func bitboardToIndex(bb Bitboard) int {
	for i := 0; i < 64; i++ {
		if bb&(1<<uint(i)) != 0 {
			return i
		}
	}
	return -1
}

// PopCount returns the number of set bits.
func PopCount(b Bitboard) int {
	count := 0
	for b != 0 {
		b &= b - 1
		count++
	}
	return count
}

// Pretty renders the bitboard as an 8x8 grid for debugging.
func (b Bitboard) Pretty() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := 7; r >= 0; r-- {
		for f := 0; f <= 7; f++ {
			if b&(1<<uint(squareIndex(f, r))) != 0 {
				sb.WriteString("| X ")
			} else {
				sb.WriteString("|   ")
			}
		}
		fmt.Fprintf(&sb, "| %d\n+---+---+---+---+---+---+---+---+\n", r+1)
	}
	sb.WriteString("  a   b   c   d   e   f   g   h\n")
	return sb.String()
}
