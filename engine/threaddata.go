package engine

import (
	"sync/atomic"

	"chesscore/board"
)

// ThreadData holds everything one Lazy-SMP worker needs that must not
// be shared with its siblings: its own PV/killers/move stack, its own
// node counter, and the small "skew" it applies to search parameters
// so sibling threads explore the tree slightly differently instead of
// duplicating each other's work (spec.md §5).
type ThreadData struct {
	ID int

	nodeCount atomic.Uint64

	// Triangular PV table: pvTable[ply] holds the continuation from
	// that ply onward, pvLength[ply] how much of it is valid.
	pvTable  [MaxPly][MaxPly]board.Move
	pvLength [MaxPly]int

	killers    [MaxPly][2]board.Move
	playedMove [MaxPly]board.Move

	// moveStack holds the key of every position played on the path
	// from the search root to the current node, for repetition
	// detection (the concern spec.md's board.Position explicitly
	// leaves to the caller).
	moveStack [MaxPly]uint64
	ply       int

	rootDepth int
}

// NewThreadData builds a worker's private state. id is the thread's
// index in the pool (0 is the "main" thread that owns the reported PV).
func NewThreadData(id int) *ThreadData {
	return &ThreadData{ID: id}
}

func (td *ThreadData) Nodes() uint64 { return td.nodeCount.Load() }

func (td *ThreadData) addNode() { td.nodeCount.Add(1) }

// PV returns the principal variation from the root.
func (td *ThreadData) PV() []board.Move {
	n := td.pvLength[0]
	pv := make([]board.Move, n)
	copy(pv, td.pvTable[0][:n])
	return pv
}

func (td *ThreadData) pushKey(key uint64) {
	td.moveStack[td.ply] = key
	td.ply++
}

func (td *ThreadData) popKey() {
	td.ply--
}

// isRepetition reports whether the current key has occurred earlier
// on the path from the root (a twofold repetition suffices to draw
// search-wise, since a real threefold will resolve above the search
// horizon in the actual game history).
func (td *ThreadData) isRepetition(key uint64) bool {
	limit := td.ply - 1
	for i := limit - 1; i >= 0 && i >= limit-100; i-- {
		if td.moveStack[i] == key {
			return true
		}
	}
	return false
}

// skewDepth, skewAspirationDelta, and skewReduce implement spec.md §5's
// per-thread Lazy-SMP skew: helper threads search with a small depth,
// aspiration-window, or reduction offset derived from their ID (odd
// IDs go one ply deeper, IDs not divisible by 4 widen the window, IDs
// divisible by 3 reduce one ply more), so they diverge from the main
// thread's line instead of retracing it. Thread 0 never skews, since
// its PV is the one StartSearch reports.
func (td *ThreadData) skewDepth(depth int) int {
	if td.ID == 0 {
		return depth
	}
	if td.ID%2 == 1 {
		return depth + 1
	}
	return depth
}

func (td *ThreadData) skewAspirationDelta(delta int) int {
	if td.ID == 0 {
		return delta
	}
	return delta + (td.ID%4)*5
}

// skewReduce nudges late-move-reduction depth for helper threads so
// they thin out the tree a little more or less aggressively than the
// main thread.
func (td *ThreadData) skewReduce(r int) int {
	if td.ID == 0 {
		return r
	}
	if td.ID%3 == 0 {
		return r + 1
	}
	return r
}
