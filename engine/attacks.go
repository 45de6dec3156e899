package engine

import (
	"chesscore/board"
	"chesscore/generator"
	"chesscore/magic"
)

// Raw attack-table lookups duplicated here (rather than exported from
// board) so SEE can probe attacks under a hypothetical occupancy that
// differs from the live position's — board.Position intentionally
// only exposes attacks under its own current occupancy.
var attackTables = generator.New()

func knightAttackBB(sq int) board.Bitboard { return board.Bitboard(attackTables.Knight[sq]) }
func kingAttackBB(sq int) board.Bitboard   { return board.Bitboard(attackTables.King[sq]) }
func pawnAttackBB(c board.Color, sq int) board.Bitboard {
	return board.Bitboard(attackTables.PawnAttacks[c][sq])
}
func bishopAttackBB(sq int, occ board.Bitboard) board.Bitboard {
	return board.Bitboard(magic.BishopAttacks(sq, uint64(occ)))
}
func rookAttackBB(sq int, occ board.Bitboard) board.Bitboard {
	return board.Bitboard(magic.RookAttacks(sq, uint64(occ)))
}
