package engine

import (
	"math"

	"chesscore/board"
)

// nodeCheckMask bounds how often a worker checks the clock/stop flag:
// every 1024 nodes, per spec.md §4.5, so the check never shows up in
// profiles but Stop() still lands within a bounded number of nodes.
const nodeCheckMask = 1024 - 1

// negamax is the alpha-beta/PVS core. ply counts distance from the
// search root (needed for mate-score encoding and PV/killer indexing);
// depth counts plies remaining to the horizon.
func (s *searchState) negamax(td *ThreadData, depth, alpha, beta, ply int, cutNode bool) int {
	td.clearPVLength(ply)

	pvNode := beta-alpha > 1
	inCheck := s.pos.IsInCheck()

	if ply > 0 {
		if s.pos.IsDraw() || td.isRepetition(s.pos.Key()) {
			return DrawScore
		}
		// Mate-distance pruning: a mate already found closer to the
		// root can't be beaten by anything found deeper, so narrow the
		// window before doing any work.
		alpha = max(alpha, -Mate+ply)
		beta = min(beta, Mate-ply-1)
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.quiescence(td, alpha, beta, ply)
	}

	td.addNode()
	if td.Nodes()&nodeCheckMask == 0 {
		if s.shouldStop(td.Nodes()) {
			s.stop.Store(true)
		}
	}
	if s.stop.Load() {
		return alpha
	}
	if ply >= MaxPly {
		return s.eval.Evaluate(s.pos)
	}

	key := s.pos.Key()
	var ttMove board.MoveCode
	ttHit, ttEntry := false, TTEntry{}
	if e, ok := s.tt.Probe(key); ok {
		ttEntry, ttHit = e, true
		ttMove = e.BestMove
		if !pvNode && int(e.Depth) >= depth {
			score := scoreFromTT(e.Score, ply)
			switch e.Flag {
			case TTFlagExact:
				return score
			case TTFlagLower:
				if score >= beta {
					return score
				}
			case TTFlagUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	staticEval := s.eval.Evaluate(s.pos)
	if ttHit && ttEntry.Flag != TTFlagNone {
		staticEval = int(ttEntry.Eval)
	}

	if !pvNode && !inCheck {
		// Reverse futility / static null-move pruning: a static eval
		// already far above beta makes it very unlikely any move drops
		// the score back down, so cut without searching further.
		if depth <= 4 && staticEval-s.tune.ReverseFutilityMargin*depth >= beta && abs(beta) < MateInMaxPly {
			return staticEval
		}

		// Razoring: a static eval far below alpha near the horizon is
		// unlikely to recover; fall straight to quiescence.
		if depth <= 2 && staticEval+s.tune.RazorMarginPerPly*depth <= alpha {
			q := s.quiescence(td, alpha, beta, ply)
			if q < alpha {
				return q
			}
		}

		// Null-move pruning: skip our move entirely and see if the
		// opponent, given a free tempo, still can't reach beta.
		if depth >= s.tune.NullMoveMinDepth && staticEval >= beta && s.hasNonPawnMaterial() {
			r := 3 + depth/4 + min((staticEval-beta)/200, 3)
			nullUndo := s.pos.MakeNullMove()
			td.pushKey(s.pos.Key())
			score := -s.negamax(td, depth-1-r, -beta, -beta+1, ply+1, !cutNode)
			td.popKey()
			s.pos.UnmakeNullMove(nullUndo)
			if s.stop.Load() {
				return alpha
			}
			if score >= beta && score < MateInMaxPly {
				return score
			}
		}
	}

	moves := s.pos.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -Mate + ply
		}
		return DrawScore
	}

	if inCheck {
		depth++ // check extension
	}

	prevMove := board.NoMove
	if ply > 0 {
		prevMove = td.lastMove(ply)
	}
	scored := s.orderMoves(td, moves, ttMove, ply, prevMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	origAlpha := alpha
	quietsTried := make([]board.Move, 0, len(moves))
	legalCount := 0

	for i, sm := range scored {
		m := sm.move
		legalCount++

		isQuiet := m.IsQuiet()

		// Late move pruning: deep into the quiet-move list near the
		// horizon, stop bothering — they were ordered last for a reason.
		if !pvNode && !inCheck && isQuiet && depth <= 3 && legalCount > lmpThreshold(depth) {
			continue
		}

		// Per-move futility pruning: a quiet move late in a shallow,
		// already-losing node can't plausibly recover before alpha.
		if !pvNode && !inCheck && isQuiet && depth <= 3 && legalCount > 1 &&
			staticEval+s.tune.FutilityMarginBase*depth+200 <= alpha {
			continue
		}

		// SEE pruning: don't bother with captures/quiets that lose
		// material past what the remaining depth could make up for.
		if !pvNode && depth <= 2 && legalCount > 1 && sm.score < scoreKiller {
			if s.see(m) < -50 {
				continue
			}
		}

		td.setMove(ply, m)
		undo := s.pos.MakeMove(m)
		td.pushKey(s.pos.Key())

		reduction := 0
		if depth >= s.tune.LMRMinDepth && i >= 3 && isQuiet && !inCheck {
			reduction = lmr(depth, i+1)
			if pvNode {
				reduction--
			}
			if cutNode {
				reduction++
			}
			reduction = max(0, min(reduction, depth-1))
			reduction = td.skewReduce(reduction)
		}

		var score int
		if i == 0 {
			score = -s.negamax(td, depth-1, -beta, -alpha, ply+1, false)
		} else {
			score = -s.negamax(td, depth-1-reduction, -alpha-1, -alpha, ply+1, true)
			if score > alpha && (reduction > 0 || pvNode) {
				score = -s.negamax(td, depth-1, -alpha-1, -alpha, ply+1, !cutNode)
			}
			if score > alpha && score < beta {
				score = -s.negamax(td, depth-1, -beta, -alpha, ply+1, false)
			}
		}

		td.popKey()
		s.pos.UnmakeMove(m, undo)

		if s.stop.Load() {
			return alpha
		}

		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				td.updatePV(ply, m)
				if score >= beta {
					if isQuiet {
						storeKiller(td, ply, m)
						bonus := depth * depth
						s.history.update(s.posSide(), m, bonus, quietsTried)
						s.history.setCounter(prevMove, m)
					}
					break
				}
			}
		}
	}

	if bestMove.IsNone() {
		// Every move was pruned by a heuristic that assumed at least
		// one candidate would survive (can happen at shallow depth
		// under aggressive futility/LMP) — fall back to the static
		// evaluation rather than reporting a sentinel score.
		bestScore = staticEval
	}

	flag := TTFlagUpper
	if bestScore >= beta {
		flag = TTFlagLower
	} else if bestScore > origAlpha {
		flag = TTFlagExact
	}
	s.tt.Store(key, bestMove.Code(), scoreToTT(bestScore, ply), int16(clampInt16(staticEval)), int8(depth), flag)

	return bestScore
}

// lmr computes the late-move-reduction amount from the classic
// log-product formula, tuned so reductions only kick in once both
// depth and move index are comfortably large.
func lmr(depth, moveNumber int) int {
	if depth < 3 || moveNumber < 2 {
		return 0
	}
	r := int(math.Log(float64(depth)) * math.Log(float64(moveNumber)) / 2.0)
	if r < 0 {
		r = 0
	}
	return r
}

// lmpThreshold is the late-move-pruning move-count table for d=1,2,3;
// depth is clamped to this range at the call site (depth <= 3).
var lmpTable = [...]int{0, 8, 12, 16}

func lmpThreshold(depth int) int {
	if depth < 1 || depth >= len(lmpTable) {
		return lmpTable[len(lmpTable)-1]
	}
	return lmpTable[depth]
}

func (s *searchState) hasNonPawnMaterial() bool {
	side := s.posSide()
	for _, p := range [4]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		if s.pos.PieceBitboard(side, p) != 0 {
			return true
		}
	}
	return false
}

func clampInt16(v int) int {
	if v > 32000 {
		return 32000
	}
	if v < -32000 {
		return -32000
	}
	return v
}

// lastMove and setMove track the move played to reach
// the current ply, so counter-move lookups at the child node know
// what they're replying to.
func (td *ThreadData) lastMove(ply int) board.Move {
	if ply == 0 {
		return board.NoMove
	}
	return td.playedMove[ply-1]
}

func (td *ThreadData) setMove(ply int, m board.Move) {
	td.playedMove[ply] = m
}
