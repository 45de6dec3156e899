package engine

import "chesscore/board"

// updatePV copies the child's PV up into the parent's triangular PV
// row, prefixed with the move that was just played. Invalid moves
// (NoMove, or the degenerate from==to) are never written into the
// table, matching spec.md §4.6: a truncated PV is preferred to a
// corrupted one.
func (td *ThreadData) updatePV(ply int, m board.Move) {
	if m.IsNone() {
		return
	}
	td.pvTable[ply][0] = m
	childLen := td.pvLength[ply+1]
	copy(td.pvTable[ply][1:1+childLen], td.pvTable[ply+1][:childLen])
	td.pvLength[ply] = 1 + childLen
}

func (td *ThreadData) clearPVLength(ply int) {
	td.pvLength[ply] = 0
}
