package engine

import "chesscore/board"

// bigDelta is the largest plausible material swing in one quiescence
// line (a queen plus a safety margin); a position so far below alpha
// that even winning a queen outright wouldn't reach it is pruned
// before move generation, spec.md §4.4's "big delta" cutoff.
var bigDelta = pieceValue[board.Queen] + 200

const deltaMargin = 200

// quiescence resolves the position to a "quiet" state by only playing
// captures and promotions, so the static evaluator is never asked to
// judge a position mid-exchange (spec.md §4.4).
func (s *searchState) quiescence(td *ThreadData, alpha, beta, ply int) int {
	td.addNode()
	if td.Nodes()&nodeCheckMask == 0 {
		if s.shouldStop(td.Nodes()) {
			s.stop.Store(true)
		}
	}
	if s.stop.Load() {
		return 0
	}

	if s.pos.IsDraw() {
		return DrawScore
	}
	if ply >= MaxPly {
		return s.eval.Evaluate(s.pos)
	}

	standPat := s.eval.Evaluate(s.pos)
	if standPat >= beta {
		return standPat
	}
	if standPat < alpha-bigDelta {
		return alpha
	}
	if alpha < standPat {
		alpha = standPat
	}

	moves := s.pos.GenerateLegalMoves()
	tactical := make([]board.Move, 0, len(moves))
	for _, m := range moves {
		if m.IsCapture() || m.IsPromotion() {
			tactical = append(tactical, m)
		}
	}
	scored := s.orderMoves(td, tactical, 0, ply, board.NoMove)

	for _, sm := range scored {
		m := sm.move

		if standPat+pieceValue[m.Captured]+deltaMargin < alpha && !m.IsPromotion() {
			continue
		}
		if sm.score < scoreGoodCapture && s.see(m) < 0 {
			continue
		}

		undo := s.pos.MakeMove(m)
		td.pushKey(s.pos.Key())
		score := -s.quiescence(td, -beta, -alpha, ply+1)
		td.popKey()
		s.pos.UnmakeMove(m, undo)

		if s.stop.Load() {
			return 0
		}

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
