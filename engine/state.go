package engine

import (
	"sync/atomic"
	"time"

	"chesscore/board"
	"chesscore/internal/config"
)

// searchState is the data one StartSearch call shares across every
// Lazy-SMP worker: the shared TT, shared history table, the position
// each worker clones for itself, and the stop/limit bookkeeping every
// worker checks on its own, without a central coordinator goroutine
// in the hot path (spec.md §5, §7).
type searchState struct {
	pos     Position
	eval    Evaluator
	tt      *TranspositionTable
	history *historyTable
	tune    config.Search

	stop      atomic.Bool
	startTime time.Time
	limits    SearchLimits

	nodeBudget uint64 // 0 means unbounded
	onInfo     func(SearchInfo)
}

func newSearchState(pos Position, eval Evaluator, tt *TranspositionTable, history *historyTable, tune config.Search, limits SearchLimits, onInfo func(SearchInfo)) *searchState {
	return &searchState{
		pos:        pos,
		eval:       eval,
		tt:         tt,
		history:    history,
		tune:       tune,
		startTime:  time.Now(),
		limits:     limits,
		nodeBudget: limits.Nodes,
		onInfo:     onInfo,
	}
}

func (s *searchState) posSide() board.Color { return s.pos.SideToMove() }

func (s *searchState) shouldStop(totalNodes uint64) bool {
	if s.stop.Load() {
		return true
	}
	if s.nodeBudget != 0 && totalNodes >= s.nodeBudget {
		return true
	}
	if s.limits.Infinite {
		return false
	}
	if s.limits.MoveTime > 0 && time.Since(s.startTime) >= s.limits.MoveTime {
		return true
	}
	return false
}

func (s *searchState) elapsed() time.Duration { return time.Since(s.startTime) }
