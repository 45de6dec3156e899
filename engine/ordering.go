package engine

import (
	"sort"

	"chesscore/board"
)

// Move ordering score bands, spec.md §4.2: the TT move always goes
// first, then captures/promotions (roughly MVV-LVA, refined by SEE
// for anything that loses material), then killers, then the
// counter-move reply, then quiet moves by history score.
const (
	scoreTTMove       = 1_000_000
	scoreGoodCapture  = 100_000
	scoreKiller       = 90_000
	scoreCounterMove  = 80_000
	scoreBadCapture   = -100_000
)

var pieceValue = [7]int{
	board.Empty:  0,
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

type scoredMove struct {
	move  board.Move
	score int
}

// orderMoves scores moves and returns them as a new slice sorted
// best-first for alpha-beta (moves itself is left unchanged), favoring
// the heuristics most likely to produce an early beta cutoff.
func (s *searchState) orderMoves(td *ThreadData, moves []board.Move, ttMove board.MoveCode, ply int, prevMove board.Move) []scoredMove {
	side := s.posSide()
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: s.scoreMove(td, m, ttMove, ply, prevMove, side)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return scored
}

func (s *searchState) scoreMove(td *ThreadData, m board.Move, ttMove board.MoveCode, ply int, prevMove board.Move, side board.Color) int {
	if ttMove.Matches(m) {
		return scoreTTMove
	}
	if m.IsCapture() || m.IsPromotion() {
		see := s.see(m)
		mvvLva := pieceValue[m.Captured]*16 - pieceValue[m.Piece]
		if m.IsPromotion() {
			mvvLva += pieceValue[m.Promotion]
		}
		if see >= 0 {
			return scoreGoodCapture + mvvLva
		}
		return scoreBadCapture + mvvLva
	}
	if td.killers[ply][0].SameAs(m) || td.killers[ply][1].SameAs(m) {
		return scoreKiller
	}
	if !prevMove.IsNone() && s.history.counterMove(prevMove).SameAs(m) {
		return scoreCounterMove
	}
	return s.history.score(side, m)
}

// storeKiller records a quiet cutoff move as a killer at ply, shifting
// the previous first killer down to the second slot (spec.md §4.2).
func storeKiller(td *ThreadData, ply int, m board.Move) {
	if !m.IsQuiet() {
		return
	}
	if td.killers[ply][0].SameAs(m) {
		return
	}
	td.killers[ply][1] = td.killers[ply][0]
	td.killers[ply][0] = m
}
