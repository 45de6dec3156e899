package board

import "math/rand"

// Zobrist keys. XOR properties let MakeMove/UnmakeMove update pos.Hash
// incrementally instead of recomputing from scratch every ply.
var (
	zobristPiece    [2][7][64]uint64
	zobristCastling [16]uint64
	zobristEP       [8]uint64
	zobristSide     uint64
)

func init() {
	// Fixed seed: hashes are stable across runs, which matters for the
	// TT round-trip and determinism properties in spec §8.
	seed := uint64(0x9E3779B97F4A7C15)
	rng := rand.New(rand.NewSource(int64(seed)))
	for c := White; c <= Black; c++ {
		for p := Pawn; p <= King; p++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][p][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEP {
		zobristEP[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

func hashPiece(c Color, p Piece, sq int) uint64 { return zobristPiece[c][p][sq] }

// ComputeHash recomputes the Zobrist key from scratch; used only when
// constructing a Position (FEN parse). All subsequent updates are
// incremental, in MakeMove/UnmakeMove/MakeNullMove/UnmakeNullMove.
func (pos *Position) ComputeHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for p := Pawn; p <= King; p++ {
			bb := pos.Pieces[c][p]
			for bb != 0 {
				sq := bitboardToIndex(bb)
				bb &= bb - 1
				h ^= hashPiece(c, p, sq)
			}
		}
	}
	h ^= zobristCastling[pos.CastleRights]
	if pos.EnPassant != NoSquare {
		h ^= zobristEP[sqFile(int(pos.EnPassant))]
	}
	if !pos.WhiteMove {
		h ^= zobristSide
	}
	return h
}
