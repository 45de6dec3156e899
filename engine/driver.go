package engine

import (
	"context"
	"sync"
	"time"

	"chesscore/board"
	"chesscore/internal/config"
	"chesscore/internal/enginelog"
)

// SearchDriver runs iterative deepening with aspiration windows over
// a Lazy-SMP pool of negamax workers sharing one TranspositionTable,
// the C7 component from spec.md §2.
type SearchDriver struct {
	tt      *TranspositionTable
	history *historyTable
	tune    config.Search
	log     *enginelog.Logger
}

// NewSearchDriver builds a driver around an existing shared hash
// table, so ResizeTT and repeated StartSearch calls reuse it rather
// than reallocating per search (spec.md §7).
func NewSearchDriver(tt *TranspositionTable, tune config.Search) *SearchDriver {
	return &SearchDriver{
		tt:      tt,
		history: newHistoryTable(),
		tune:    tune,
		log:     enginelog.New("driver"),
	}
}

// Run searches pos with threads workers under limits, calling onInfo
// after every completed main-thread iteration and once more at the end
// with the chosen result (its Time set to the whole search's elapsed
// time), and returns the best move found by the time the search stops
// (by limits or by ctx cancellation, which is how Engine.Stop works).
func (d *SearchDriver) Run(ctx context.Context, pos Position, eval Evaluator, threads int, limits SearchLimits, onInfo func(SearchInfo)) board.Move {
	d.tt.NewSearch()
	d.log.Debugf("starting search: threads=%d depth=%d movetime=%s", threads, limits.Depth, limits.MoveTime)
	state := newSearchState(pos, eval, d.tt, d.history, d.tune, limits, onInfo)

	if threads < 1 {
		threads = 1
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			state.stop.Store(true)
		case <-done:
		}
	}()
	defer close(done)

	var wg sync.WaitGroup
	results := make([]board.Move, threads)
	infos := make([]SearchInfo, threads)

	for t := 0; t < threads; t++ {
		td := NewThreadData(t)
		wg.Add(1)
		go func(td *ThreadData) {
			defer wg.Done()
			m, info := d.iterativeDeepen(state, td, pos, limits)
			results[td.ID] = m
			infos[td.ID] = info
		}(td)
	}
	wg.Wait()

	best := results[0]
	bestInfo := infos[0]
	for i := 1; i < threads; i++ {
		if infos[i].Depth > bestInfo.Depth && !results[i].IsNone() {
			best = results[i]
			bestInfo = infos[i]
		}
	}
	bestInfo.Time = state.elapsed()
	if onInfo != nil {
		onInfo(bestInfo)
	}
	if best.IsNone() {
		// Every worker got stopped before finishing depth 1 (e.g. an
		// absurdly short MoveTime): fall back to the first legal move
		// rather than returning NoMove to the caller.
		if moves := pos.GenerateLegalMoves(); len(moves) > 0 {
			best = moves[0]
		}
	}
	return best
}

// Stop requests every worker to return as soon as it next checks the
// shared stop flag (within nodeCheckMask nodes, per spec.md §4.5).
func (d *SearchDriver) Stop(state *searchState) {
	state.stop.Store(true)
}

func (d *SearchDriver) iterativeDeepen(state *searchState, td *ThreadData, rootPos Position, limits SearchLimits) (board.Move, SearchInfo) {
	var best board.Move
	var lastInfo SearchInfo

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	alloc := allocateTime(limits, rootPos.SideToMove(), time.Duration(d.tune.EmergencyBufferMS)*time.Millisecond)

	score := 0
	for depth := 1; depth <= maxDepth; depth++ {
		if state.stop.Load() {
			break
		}
		searchDepth := td.skewDepth(depth)

		var iterScore int
		if depth < d.tune.AspirationStartPly {
			iterScore = state.negamax(td, searchDepth, -Infinity, Infinity, 0, false)
		} else {
			iterScore = d.aspirationSearch(state, td, searchDepth, score)
		}

		if state.stop.Load() && depth > 1 {
			break
		}
		score = iterScore

		pv := td.PV()
		if len(pv) > 0 {
			best = pv[0]
		}

		info := SearchInfo{
			Depth: depth,
			Score: score,
			Nodes: td.Nodes(),
			Time:  state.elapsed(),
			PV:    pvStrings(pv),
		}
		if IsMateScore(score) {
			info.Mate = MateDistance(score)
		}
		lastInfo = info
		if td.ID == 0 && state.onInfo != nil {
			state.onInfo(info)
		}

		if !limits.Infinite && alloc > 0 && state.elapsed() > alloc {
			break
		}
	}
	d.log.Debugf("thread %d finished: depth=%d nodes=%d score=%d", td.ID, lastInfo.Depth, lastInfo.Nodes, lastInfo.Score)
	return best, lastInfo
}

// aspirationSearch opens a narrow window around the previous
// iteration's score and widens it geometrically on every fail-high or
// fail-low, spec.md §4.7's aspiration-window schedule.
func (d *SearchDriver) aspirationSearch(state *searchState, td *ThreadData, depth, prevScore int) int {
	delta := td.skewAspirationDelta(d.tune.AspirationDelta)
	alpha := prevScore - delta
	beta := prevScore + delta
	if alpha < -Infinity {
		alpha = -Infinity
	}
	if beta > Infinity {
		beta = Infinity
	}

	for {
		score := state.negamax(td, depth, alpha, beta, 0, false)
		if state.stop.Load() {
			return score
		}
		if score <= alpha {
			alpha -= delta
			if alpha < -Infinity {
				alpha = -Infinity
			}
		} else if score >= beta {
			beta += delta
			if beta > Infinity {
				beta = Infinity
			}
		} else {
			return score
		}
		delta = delta * 3 / 2
		if alpha <= -Infinity && beta >= Infinity {
			return state.negamax(td, depth, -Infinity, Infinity, 0, false)
		}
	}
}

func pvStrings(pv []board.Move) []string {
	out := make([]string, len(pv))
	for i, m := range pv {
		out[i] = m.UCI()
	}
	return out
}

// allocateTime implements the UCI-style time-budget formula from
// spec.md §4.7: time_left = side==white ? wtime : btime; inc = side==
// white ? winc : binc; mtg = moves_to_go>0 ? moves_to_go : 40. Allocate
// min(time_left-50, time_left/mtg + 3*inc/4), with a floor of 100ms
// when time_left <= 0. side picks out which clock is actually "mine"
// for this search. A positive movetime is returned as the budget
// unchanged; infinite, or an explicit depth limit with no clock for
// the side to move, means unlimited (0).
func allocateTime(limits SearchLimits, side board.Color, emergencyBuffer time.Duration) time.Duration {
	if limits.MoveTime > 0 {
		return limits.MoveTime
	}

	myTime, myInc := limits.WhiteTime, limits.WhiteInc
	if side == board.Black {
		myTime, myInc = limits.BlackTime, limits.BlackInc
	}

	if limits.Infinite || (limits.Depth > 0 && myTime == 0) {
		return 0
	}

	if emergencyBuffer <= 0 {
		emergencyBuffer = 50 * time.Millisecond
	}

	if myTime <= 0 {
		return 100 * time.Millisecond
	}

	movesToGo := limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 40
	}

	budget := myTime/time.Duration(movesToGo) + myInc*3/4
	if cap := myTime - emergencyBuffer; budget > cap {
		budget = cap
	}
	if budget < 0 {
		budget = 0
	}
	return budget
}
