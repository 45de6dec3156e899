// Package uci implements a subset of the Universal Chess Interface
// protocol (position/go/stop/ucinewgame) on top of the engine package.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"chesscore/board"
	"chesscore/engine"
	"chesscore/internal/config"
)

// Handler parses UCI command lines and drives an engine.Engine. Output
// is written through an io.Writer so callers (cmd/enginecli) can
// intercept and reformat info lines before they reach the terminal.
type Handler struct {
	eng  *engine.Engine
	eval engine.Evaluator
	pos  board.Position
	out  io.Writer

	cfg    config.Config
	onInfo func(engine.SearchInfo)
}

// NewHandler builds a Handler writing protocol responses to out.
func NewHandler(out io.Writer) *Handler {
	cfg := config.Default()
	h := &Handler{
		eng:  engine.New(cfg.Search.HashMB, cfg.Search.Threads, cfg.Search),
		eval: engine.NewPeSTOEvaluator(),
		pos:  board.StartPosition(),
		out:  out,
		cfg:  cfg,
	}
	h.eng.SubscribeProgress(h.reportInfo)
	return h
}

// SetInfoWriter overrides how search progress is rendered; cmd/enginecli
// uses this to colorize and thousands-separate "info" output.
func (h *Handler) SetInfoWriter(fn func(engine.SearchInfo)) {
	h.onInfo = fn
}

func (h *Handler) reportInfo(info engine.SearchInfo) {
	if h.onInfo != nil {
		h.onInfo(info)
		return
	}
	fmt.Fprintf(h.out, "info depth %d score cp %d nodes %d time %d pv %s\n",
		info.Depth, info.Score, info.Nodes, info.Time.Milliseconds(), strings.Join(info.PV, " "))
}

// Run reads commands from in until "quit" or EOF.
func (h *Handler) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 4096), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if h.dispatch(line) {
			return
		}
	}
}

// dispatch handles one command line, returning true on "quit".
func (h *Handler) dispatch(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "uci":
		fmt.Fprintln(h.out, "id name chesscore")
		fmt.Fprintln(h.out, "id author chesscore contributors")
		fmt.Fprintf(h.out, "option name Hash type spin default %d min 1 max 1048576\n", h.cfg.Search.HashMB)
		fmt.Fprintf(h.out, "option name Threads type spin default %d min 1 max 512\n", h.cfg.Search.Threads)
		fmt.Fprintln(h.out, "uciok")
	case "isready":
		fmt.Fprintln(h.out, "readyok")
	case "ucinewgame":
		h.eng = engine.New(h.cfg.Search.HashMB, h.cfg.Search.Threads, h.cfg.Search)
		h.eng.SubscribeProgress(h.reportInfo)
		h.pos = board.StartPosition()
	case "setoption":
		h.handleSetOption(fields[1:])
	case "position":
		h.handlePosition(fields[1:])
	case "go":
		h.handleGo(fields[1:])
	case "stop":
		h.eng.Stop()
	case "quit":
		return true
	}
	return false
}

// handleSetOption understands "setoption name <Name> value <Value>".
func (h *Handler) handleSetOption(args []string) {
	if len(args) < 4 || args[0] != "name" {
		return
	}
	name, value := args[1], args[3]
	n, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	switch strings.ToLower(name) {
	case "hash":
		_ = h.eng.ResizeTT(n)
	case "threads":
		h.eng.SetThreadCount(n)
	}
}

func (h *Handler) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	idx := 0
	switch args[0] {
	case "startpos":
		h.pos = board.StartPosition()
		idx = 1
	case "fen":
		end := 1
		for end < len(args) && args[end] != "moves" {
			end++
		}
		pos, err := board.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			return
		}
		h.pos = pos
		idx = end
	default:
		return
	}
	if idx < len(args) && args[idx] == "moves" {
		for _, mv := range args[idx+1:] {
			if m, ok := h.findMove(mv); ok {
				h.pos.MakeMove(m)
			}
		}
	}
}

func (h *Handler) findMove(uciMove string) (board.Move, bool) {
	for _, m := range h.pos.GenerateLegalMoves() {
		if m.UCI() == uciMove {
			return m, true
		}
	}
	return board.Move{}, false
}

func (h *Handler) handleGo(args []string) {
	limits := engine.SearchLimits{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			limits.Depth, _ = strconv.Atoi(args[i])
		case "nodes":
			i++
			n, _ := strconv.Atoi(args[i])
			limits.Nodes = uint64(n)
		case "movetime":
			i++
			limits.MoveTime = msArg(args[i])
		case "wtime":
			i++
			limits.WhiteTime = msArg(args[i])
		case "btime":
			i++
			limits.BlackTime = msArg(args[i])
		case "winc":
			i++
			limits.WhiteInc = msArg(args[i])
		case "binc":
			i++
			limits.BlackInc = msArg(args[i])
		case "movestogo":
			i++
			limits.MovesToGo, _ = strconv.Atoi(args[i])
		case "infinite":
			limits.Infinite = true
		}
	}
	move, _ := h.eng.StartSearch(&h.pos, h.eval, limits)
	fmt.Fprintf(h.out, "bestmove %s\n", move.UCI())
}

func msArg(s string) time.Duration {
	n, _ := strconv.Atoi(s)
	return time.Duration(n) * time.Millisecond
}
