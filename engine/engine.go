package engine

import (
	"context"

	"golang.org/x/sync/semaphore"

	"chesscore/board"
	"chesscore/internal/config"
	"chesscore/internal/enginelog"
)

// Engine is the top-level search core the UCI/CLI layer drives: one
// shared hash table and history table across the lifetime of a game,
// one StartSearch in flight at a time (spec.md §2's C7/"engine"
// boundary).
type Engine struct {
	tt      *TranspositionTable
	driver  *SearchDriver
	tune    config.Search
	threads int
	log     *enginelog.Logger

	// initSem/runningSem mirror FrankyGo's two weighted(1) semaphores:
	// initSem serializes configuration calls (SetThreadCount, ResizeTT)
	// with each other, and runningSem is held for the
	// duration of one StartSearch so a second StartSearch call blocks
	// instead of racing the first on the shared TT/history tables.
	initSem    *semaphore.Weighted
	runningSem *semaphore.Weighted

	cancel     context.CancelFunc
	subscribed func(SearchInfo)
}

// New builds an Engine with a TT of hashMB megabytes and threads
// Lazy-SMP workers, using tune for every search-constant knob.
func New(hashMB, threads int, tune config.Search) *Engine {
	if threads < 1 {
		threads = 1
	}
	tt := NewTranspositionTable(hashMB)
	e := &Engine{
		tt:         tt,
		tune:       tune,
		threads:    threads,
		log:        enginelog.New("engine"),
		initSem:    semaphore.NewWeighted(1),
		runningSem: semaphore.NewWeighted(1),
	}
	e.driver = NewSearchDriver(tt, tune)
	return e
}

// NewDefault builds an Engine from config.Default(), the configuration
// used whenever no TOML file was loaded.
func NewDefault() *Engine {
	d := config.Default().Search
	return New(d.HashMB, d.Threads, d)
}

// SetThreadCount changes the Lazy-SMP pool size for future searches,
// clamped to spec.md §5's [1, 512] range.
func (e *Engine) SetThreadCount(n int) {
	if n < 1 {
		n = 1
	}
	if n > 512 {
		n = 512
	}
	e.initSem.Acquire(context.Background(), 1)
	defer e.initSem.Release(1)
	e.threads = n
}

// ResizeTT reallocates the shared hash table. It fails if a search is
// currently running, per spec.md §7's ResizeTT error contract, rather
// than silently racing the in-flight search's probes.
func (e *Engine) ResizeTT(sizeMB int) error {
	if !e.runningSem.TryAcquire(1) {
		return errSearchInProgress
	}
	defer e.runningSem.Release(1)

	e.initSem.Acquire(context.Background(), 1)
	defer e.initSem.Release(1)
	return e.tt.Resize(sizeMB)
}

// Hashfull reports the shared TT's occupancy in permille.
func (e *Engine) Hashfull() int { return e.tt.Hashfull() }

// StartSearch blocks until the search stops (by limits or by Stop)
// and returns the best move found. It never returns an error: an
// engine that cannot find a legal move to play is a caller bug (an
// empty/terminal position), not a runtime failure (spec.md §7).
func (e *Engine) StartSearch(pos Position, eval Evaluator, limits SearchLimits) (board.Move, SearchInfo) {
	if pos == nil || eval == nil {
		return board.NoMove, SearchInfo{}
	}
	e.runningSem.Acquire(context.Background(), 1)
	defer e.runningSem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	defer cancel()

	var lastInfo SearchInfo
	onInfo := func(info SearchInfo) {
		lastInfo = info
		if e.subscribed != nil {
			e.subscribed(info)
		}
	}

	move := e.driver.Run(ctx, pos, eval, e.threads, limits, onInfo)
	return move, lastInfo
}

// SubscribeProgress registers a callback invoked after every completed
// iterative-deepening iteration of the main search thread, the
// engine's UCI "info" hook (spec.md §6). Only one search is ever in
// flight at a time, so a single stored callback (rather than a list)
// is sufficient.
func (e *Engine) SubscribeProgress(cb func(SearchInfo)) *Engine {
	e.subscribed = cb
	return e
}

// Stop requests the in-flight search to return as soon as the running
// workers next check the shared stop flag.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}
