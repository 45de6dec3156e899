package engine

import (
	"sync/atomic"

	"chesscore/board"
)

// historyTable is the shared quiet-move history heuristic and its
// paired counter-move table. Both are read and written by every
// Lazy-SMP worker; spec.md §5 allows a shared table under "relaxed"
// consistency, so updates use atomics rather than a mutex — a torn
// update only costs a slightly worse move ordering, never correctness.
type historyTable struct {
	scores   [2][64][64]atomic.Int32
	counters [64][64]atomic.Value // holds board.Move
}

func newHistoryTable() *historyTable {
	return &historyTable{}
}

const historyMax = 1 << 14

// update applies the depth-squared bonus/malus scheme from spec.md
// §4.5: the cutoff move gets a positive bonus, every quiet move tried
// before it at this node gets a malus, and every update is damped
// proportional to the table's current magnitude so scores stay
// bounded instead of growing without limit.
func (h *historyTable) update(side board.Color, m board.Move, bonus int, failedQuiets []board.Move) {
	if !m.IsQuiet() {
		return
	}
	h.apply(side, m, bonus)
	for _, q := range failedQuiets {
		if q == m || !q.IsQuiet() {
			continue
		}
		h.apply(side, q, -bonus)
	}
}

func (h *historyTable) apply(side board.Color, m board.Move, bonus int) {
	if bonus > historyMax {
		bonus = historyMax
	}
	if bonus < -historyMax {
		bonus = -historyMax
	}
	cell := &h.scores[side][m.From][m.To]
	for {
		old := cell.Load()
		// score += bonus - score*|bonus|/32768; with |bonus| capped at
		// historyMax the damping term keeps the score within ±32768,
		// so no separate clamp is applied.
		delta := int32(bonus) - int32(int64(old)*int64(abs(bonus))/32768)
		next := old + delta
		if cell.CompareAndSwap(old, next) {
			return
		}
	}
}

func (h *historyTable) score(side board.Color, m board.Move) int {
	return int(h.scores[side][m.From][m.To].Load())
}

func (h *historyTable) setCounter(prev, reply board.Move) {
	if prev.IsNone() {
		return
	}
	h.counters[prev.From][prev.To].Store(reply)
}

func (h *historyTable) counterMove(prev board.Move) board.Move {
	if prev.IsNone() {
		return board.NoMove
	}
	v := h.counters[prev.From][prev.To].Load()
	if v == nil {
		return board.NoMove
	}
	return v.(board.Move)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
