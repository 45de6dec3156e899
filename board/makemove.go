package board

// UndoInfo is the state MakeMove can't cheaply recover any other way;
// UnmakeMove needs it to restore the position bit-exactly (spec §8
// property 1).
type UndoInfo struct {
	CastleRights  uint8
	EnPassant     Square
	HalfmoveClock uint8
	CapturedPiece Piece
	CapturedSq    int // differs from m.To only for en passant
}

// NullUndo is the state MakeNullMove needs to restore on unmake.
type NullUndo struct {
	EnPassant Square
}

func rookCastleSquares(c Color, kingSide bool) (from, to int) {
	switch {
	case c == White && kingSide:
		return 7, 5
	case c == White && !kingSide:
		return 0, 3
	case c == Black && kingSide:
		return 63, 61
	default:
		return 56, 59
	}
}

// MakeMove applies a pseudo-legal move generated by GenerateMoves and
// returns the undo token. Caller owns the decision of whether to keep
// the resulting position (legality is checked by the generator, not
// here, per spec.md §9's "treat all generated moves as legal").
func (pos *Position) MakeMove(m Move) UndoInfo {
	us := pos.SideToMove()
	them := us.Other()

	undo := UndoInfo{
		CastleRights:  pos.CastleRights,
		EnPassant:     pos.EnPassant,
		HalfmoveClock: pos.HalfmoveClock,
		CapturedPiece: Empty,
	}

	if pos.EnPassant != NoSquare {
		pos.Hash ^= zobristEP[sqFile(int(pos.EnPassant))]
	}

	from, to := int(m.From), int(m.To)
	fromBB, toBB := Bitboard(1)<<uint(from), Bitboard(1)<<uint(to)

	pos.Pieces[us][m.Piece] &^= fromBB
	pos.Hash ^= hashPiece(us, m.Piece, from)

	capturedSq := to
	if m.Flags == FlagEnPassant {
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
	}
	if m.Captured != Empty {
		capturedBB := Bitboard(1) << uint(capturedSq)
		pos.Pieces[them][m.Captured] &^= capturedBB
		pos.Hash ^= hashPiece(them, m.Captured, capturedSq)
		undo.CapturedPiece = m.Captured
		undo.CapturedSq = capturedSq
	}

	placed := m.Piece
	if m.Promotion != Empty {
		placed = m.Promotion
	}
	pos.Pieces[us][placed] |= toBB
	pos.Hash ^= hashPiece(us, placed, to)

	if m.IsCastle() {
		rFrom, rTo := rookCastleSquares(us, m.Flags == FlagCastleKingSide)
		pos.Pieces[us][Rook] &^= Bitboard(1) << uint(rFrom)
		pos.Pieces[us][Rook] |= Bitboard(1) << uint(rTo)
		pos.Hash ^= hashPiece(us, Rook, rFrom)
		pos.Hash ^= hashPiece(us, Rook, rTo)
	}

	pos.Hash ^= zobristCastling[pos.CastleRights]
	pos.CastleRights &^= castleRightsClearedBy(from, to)
	pos.Hash ^= zobristCastling[pos.CastleRights]

	pos.EnPassant = NoSquare
	if m.Flags == FlagDoublePush {
		if us == White {
			pos.EnPassant = Square(from + 8)
		} else {
			pos.EnPassant = Square(from - 8)
		}
		pos.Hash ^= zobristEP[sqFile(int(pos.EnPassant))]
	}

	if m.Piece == Pawn || m.Captured != Empty {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}
	if us == Black {
		pos.FullmoveNo++
	}

	pos.WhiteMove = !pos.WhiteMove
	pos.Hash ^= zobristSide

	return undo
}

// UnmakeMove reverses a move applied by MakeMove.
func (pos *Position) UnmakeMove(m Move, undo UndoInfo) {
	pos.WhiteMove = !pos.WhiteMove
	pos.Hash ^= zobristSide
	us := pos.SideToMove()
	them := us.Other()

	if us == Black {
		pos.FullmoveNo--
	}

	from, to := int(m.From), int(m.To)
	fromBB, toBB := Bitboard(1)<<uint(from), Bitboard(1)<<uint(to)

	placed := m.Piece
	if m.Promotion != Empty {
		placed = m.Promotion
	}
	pos.Pieces[us][placed] &^= toBB
	pos.Hash ^= hashPiece(us, placed, to)

	pos.Pieces[us][m.Piece] |= fromBB
	pos.Hash ^= hashPiece(us, m.Piece, from)

	if m.IsCastle() {
		rFrom, rTo := rookCastleSquares(us, m.Flags == FlagCastleKingSide)
		pos.Pieces[us][Rook] |= Bitboard(1) << uint(rFrom)
		pos.Pieces[us][Rook] &^= Bitboard(1) << uint(rTo)
		pos.Hash ^= hashPiece(us, Rook, rFrom)
		pos.Hash ^= hashPiece(us, Rook, rTo)
	}

	if undo.CapturedPiece != Empty {
		capturedBB := Bitboard(1) << uint(undo.CapturedSq)
		pos.Pieces[them][undo.CapturedPiece] |= capturedBB
		pos.Hash ^= hashPiece(them, undo.CapturedPiece, undo.CapturedSq)
	}

	pos.Hash ^= zobristCastling[pos.CastleRights]
	pos.CastleRights = undo.CastleRights
	pos.Hash ^= zobristCastling[pos.CastleRights]

	if pos.EnPassant != NoSquare {
		pos.Hash ^= zobristEP[sqFile(int(pos.EnPassant))]
	}
	pos.EnPassant = undo.EnPassant
	if pos.EnPassant != NoSquare {
		pos.Hash ^= zobristEP[sqFile(int(pos.EnPassant))]
	}

	pos.HalfmoveClock = undo.HalfmoveClock
}

// MakeNullMove flips the side to move without playing a move, the
// null-move-pruning primitive required by engine.negamax.
func (pos *Position) MakeNullMove() NullUndo {
	undo := NullUndo{EnPassant: pos.EnPassant}
	if pos.EnPassant != NoSquare {
		pos.Hash ^= zobristEP[sqFile(int(pos.EnPassant))]
		pos.EnPassant = NoSquare
	}
	pos.WhiteMove = !pos.WhiteMove
	pos.Hash ^= zobristSide
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (pos *Position) UnmakeNullMove(undo NullUndo) {
	pos.WhiteMove = !pos.WhiteMove
	pos.Hash ^= zobristSide
	if undo.EnPassant != NoSquare {
		pos.Hash ^= zobristEP[sqFile(int(undo.EnPassant))]
	}
	pos.EnPassant = undo.EnPassant
}

func castleRightsClearedBy(from, to int) uint8 {
	var cleared uint8
	switch from {
	case 4:
		cleared |= CastleWhiteKingSide | CastleWhiteQueenSide
	case 60:
		cleared |= CastleBlackKingSide | CastleBlackQueenSide
	}
	for _, sq := range [2]int{from, to} {
		switch sq {
		case 0:
			cleared |= CastleWhiteQueenSide
		case 7:
			cleared |= CastleWhiteKingSide
		case 56:
			cleared |= CastleBlackQueenSide
		case 63:
			cleared |= CastleBlackKingSide
		}
	}
	return cleared
}
