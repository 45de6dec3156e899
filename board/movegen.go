package board

import (
	"chesscore/generator"
	"chesscore/magic"
)

var attackTables = generator.New()

// MaxMoves bounds the pseudo-legal move count of any reachable chess
// position (spec.md §9's "bounded inline buffer of 218 entries").
const MaxMoves = 218

func rookAttacks(sq int, occ Bitboard) Bitboard   { return Bitboard(magic.RookAttacks(sq, uint64(occ))) }
func bishopAttacks(sq int, occ Bitboard) Bitboard { return Bitboard(magic.BishopAttacks(sq, uint64(occ))) }
func queenAttacks(sq int, occ Bitboard) Bitboard  { return Bitboard(magic.QueenAttacks(sq, uint64(occ))) }
func knightAttacks(sq int) Bitboard               { return Bitboard(attackTables.Knight[sq]) }
func kingAttacks(sq int) Bitboard                 { return Bitboard(attackTables.King[sq]) }
func pawnAttacksFrom(c Color, sq int) Bitboard    { return Bitboard(attackTables.PawnAttacks[c][sq]) }

// IsSquareAttacked reports whether sq is attacked by any piece of
// color `by`. Required by the core for check detection and for
// validating castling (the king may not pass through or land on an
// attacked square).
func (pos *Position) IsSquareAttacked(sq int, by Color) bool {
	occ := pos.Occupied()
	opp := pos.Pieces[by]

	if pawnAttacksFrom(by.Other(), sq)&opp[Pawn] != 0 {
		return true
	}
	if knightAttacks(sq)&opp[Knight] != 0 {
		return true
	}
	if kingAttacks(sq)&opp[King] != 0 {
		return true
	}
	if bishopAttacks(sq, occ)&(opp[Bishop]|opp[Queen]) != 0 {
		return true
	}
	if rookAttacks(sq, occ)&(opp[Rook]|opp[Queen]) != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether the side to move's king is attacked.
func (pos *Position) IsInCheck() bool {
	us := pos.SideToMove()
	return pos.IsSquareAttacked(pos.KingSquare(us), us.Other())
}

// GenerateMoves returns every pseudo-legal move: legality (does the
// mover's own king end up in check) is not checked here.
func (pos *Position) GenerateMoves() []Move {
	moves := make([]Move, 0, 48)
	us := pos.SideToMove()
	them := us.Other()
	occ := pos.Occupied()
	ourPieces := pos.Colored(us)
	enemy := pos.Colored(them)

	moves = pos.genPawnMoves(moves, us, occ, enemy)
	moves = pos.genKnightMoves(moves, us, ourPieces)
	moves = pos.genSliderMoves(moves, us, Bishop, occ, ourPieces)
	moves = pos.genSliderMoves(moves, us, Rook, occ, ourPieces)
	moves = pos.genSliderMoves(moves, us, Queen, occ, ourPieces)
	moves = pos.genKingMoves(moves, us, ourPieces)
	moves = pos.genCastles(moves, us, occ)
	return moves
}

// GenerateLegalMoves filters GenerateMoves down to moves that do not
// leave the mover's own king in check. This is the single point where
// pseudo-legal and legal move generation meet; once past here, the
// search core treats every move as legal (spec.md §9 Open Questions).
func (pos *Position) GenerateLegalMoves() []Move {
	pseudo := pos.GenerateMoves()
	us := pos.SideToMove()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		undo := pos.MakeMove(m)
		if !pos.IsSquareAttacked(pos.KingSquare(us), pos.SideToMove()) {
			legal = append(legal, m)
		}
		pos.UnmakeMove(m, undo)
	}
	return legal
}

func addQuietOrCapture(moves []Move, from, to int, piece Piece, captured Piece, flag MoveFlag) []Move {
	return append(moves, Move{From: Square(from), To: Square(to), Piece: piece, Captured: captured, Flags: flag})
}

func (pos *Position) genKnightMoves(moves []Move, us Color, ourPieces Bitboard) []Move {
	bb := pos.Pieces[us][Knight]
	for bb != 0 {
		from := bitboardToIndex(bb)
		bb &= bb - 1
		targets := knightAttacks(from) &^ ourPieces
		moves = pos.emitFromTargets(moves, from, targets, Knight, us)
	}
	return moves
}

func (pos *Position) genKingMoves(moves []Move, us Color, ourPieces Bitboard) []Move {
	from := pos.KingSquare(us)
	targets := kingAttacks(from) &^ ourPieces
	return pos.emitFromTargets(moves, from, targets, King, us)
}

func (pos *Position) genSliderMoves(moves []Move, us Color, piece Piece, occ, ourPieces Bitboard) []Move {
	bb := pos.Pieces[us][piece]
	for bb != 0 {
		from := bitboardToIndex(bb)
		bb &= bb - 1
		var targets Bitboard
		switch piece {
		case Bishop:
			targets = bishopAttacks(from, occ) &^ ourPieces
		case Rook:
			targets = rookAttacks(from, occ) &^ ourPieces
		case Queen:
			targets = queenAttacks(from, occ) &^ ourPieces
		}
		moves = pos.emitFromTargets(moves, from, targets, piece, us)
	}
	return moves
}

func (pos *Position) emitFromTargets(moves []Move, from int, targets Bitboard, piece Piece, us Color) []Move {
	for targets != 0 {
		to := bitboardToIndex(targets)
		targets &= targets - 1
		captured := Empty
		if p, _, ok := pos.PieceAt(to); ok {
			captured = p
		}
		moves = addQuietOrCapture(moves, from, to, piece, captured, FlagNone)
	}
	return moves
}

var promoPieces = [4]Piece{Queen, Rook, Bishop, Knight}

func (pos *Position) genPawnMoves(moves []Move, us Color, occ, enemy Bitboard) []Move {
	bb := pos.Pieces[us][Pawn]
	dir := 8
	startRank, promoRank := 1, 7
	if us == Black {
		dir = -8
		startRank, promoRank = 6, 0
	}

	for bb != 0 {
		from := bitboardToIndex(bb)
		bb &= bb - 1
		rank := sqRank(from)

		one := from + dir
		if one >= 0 && one < 64 && occ&(Bitboard(1)<<uint(one)) == 0 {
			moves = pos.addPawnAdvance(moves, from, one, us, promoRank)
			if rank == startRank {
				two := from + 2*dir
				if occ&(Bitboard(1)<<uint(two)) == 0 {
					moves = append(moves, Move{From: Square(from), To: Square(two), Piece: Pawn, Flags: FlagDoublePush})
				}
			}
		}

		caps := pawnAttacksFrom(us, from) & enemy
		for caps != 0 {
			to := bitboardToIndex(caps)
			caps &= caps - 1
			captured, _, _ := pos.PieceAt(to)
			moves = pos.addPawnCapture(moves, from, to, captured, us, promoRank)
		}

		if pos.EnPassant != NoSquare {
			if pawnAttacksFrom(us, from)&(Bitboard(1)<<uint(pos.EnPassant)) != 0 {
				moves = append(moves, Move{From: Square(from), To: pos.EnPassant, Piece: Pawn, Captured: Pawn, Flags: FlagEnPassant})
			}
		}
	}
	return moves
}

func (pos *Position) addPawnAdvance(moves []Move, from, to int, us Color, promoRank int) []Move {
	if sqRank(to) == promoRank {
		for _, pp := range promoPieces {
			moves = append(moves, Move{From: Square(from), To: Square(to), Piece: Pawn, Promotion: pp})
		}
		return moves
	}
	return append(moves, Move{From: Square(from), To: Square(to), Piece: Pawn})
}

func (pos *Position) addPawnCapture(moves []Move, from, to int, captured Piece, us Color, promoRank int) []Move {
	if sqRank(to) == promoRank {
		for _, pp := range promoPieces {
			moves = append(moves, Move{From: Square(from), To: Square(to), Piece: Pawn, Captured: captured, Promotion: pp})
		}
		return moves
	}
	return append(moves, Move{From: Square(from), To: Square(to), Piece: Pawn, Captured: captured})
}

type castleSpec struct {
	right           uint8
	kingFrom, kingTo int
	rookFrom         int
	clearSquares     []int
	safeSquares      []int
	flag             MoveFlag
}

var castleSpecs = map[Color][2]castleSpec{
	White: {
		{CastleWhiteKingSide, 4, 6, 7, []int{5, 6}, []int{4, 5, 6}, FlagCastleKingSide},
		{CastleWhiteQueenSide, 4, 2, 0, []int{1, 2, 3}, []int{2, 3, 4}, FlagCastleQueenSide},
	},
	Black: {
		{CastleBlackKingSide, 60, 62, 63, []int{61, 62}, []int{60, 61, 62}, FlagCastleKingSide},
		{CastleBlackQueenSide, 60, 58, 56, []int{57, 58, 59}, []int{58, 59, 60}, FlagCastleQueenSide},
	},
}

func (pos *Position) genCastles(moves []Move, us Color, occ Bitboard) []Move {
	for _, spec := range castleSpecs[us] {
		if pos.CastleRights&spec.right == 0 {
			continue
		}
		blocked := false
		for _, sq := range spec.clearSquares {
			if occ&(Bitboard(1)<<uint(sq)) != 0 {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		attacked := false
		for _, sq := range spec.safeSquares {
			if pos.IsSquareAttacked(sq, us.Other()) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		moves = append(moves, Move{From: Square(spec.kingFrom), To: Square(spec.kingTo), Piece: King, Flags: spec.flag})
	}
	return moves
}
