package engine

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"chesscore/board"
	"chesscore/internal/config"
)

// pieceGlyph maps a piece/color pair to its ASCII board glyph.
func pieceGlyph(p board.Piece, c board.Color) string {
	glyphs := [7]string{".", "P", "N", "B", "R", "Q", "K"}
	g := glyphs[p]
	if c == board.Black {
		g = strings.ToLower(g)
	}
	return g
}

func renderBoard(pos *board.Position) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&b, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			piece, color, ok := pos.PieceAt(sq)
			if !ok {
				b.WriteString(". ")
				continue
			}
			b.WriteString(pieceGlyph(piece, color))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("   a b c d e f g h\n")
	return b.String()
}

// Play starts an interactive terminal game against the engine, one
// side typed by the user in UCI move notation, the other played by
// Engine.StartSearch. This is a thin developer harness, not part of
// the UCI protocol surface (see the uci package for that).
func Play() {
	pos := board.StartPosition()
	e := NewDefault()
	eval := NewPeSTOEvaluator()

	logger, err := NewLogger("game.log")
	if err != nil {
		fmt.Printf("warning: could not open game log: %v\n", err)
	} else {
		defer logger.Close()
		logger.LogGameStart(fmt.Sprintf("hash=%dMB threads=%d", config.Default().Search.HashMB, config.Default().Search.Threads))
		fmt.Println("logging moves to game.log")
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== chesscore interactive mode ===")
	fmt.Println("enter moves in UCI format (e.g. e2e4, e7e8q for promotion)")
	fmt.Println("commands: 'quit', 'undo', 'fen', 'moves', 'go'")

	type historyEntry struct {
		move board.Move
		undo board.UndoInfo
	}
	var history []historyEntry

	for {
		fmt.Println(renderBoard(&pos))

		legal := pos.GenerateLegalMoves()
		if len(legal) == 0 {
			if pos.IsInCheck() {
				fmt.Println("checkmate")
			} else {
				fmt.Println("stalemate")
			}
			return
		}

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)

		switch cmd {
		case "quit":
			return
		case "fen":
			fmt.Println(pos.FEN())
			continue
		case "moves":
			for _, m := range legal {
				fmt.Printf("%s ", m.UCI())
			}
			fmt.Println()
			continue
		case "undo":
			if len(history) == 0 {
				fmt.Println("nothing to undo")
				continue
			}
			last := history[len(history)-1]
			history = history[:len(history)-1]
			pos.UnmakeMove(last.move, last.undo)
			continue
		case "go":
			start := pos.FEN()
			move, info := e.StartSearch(&pos, eval, SearchLimits{Depth: 6})
			undo := pos.MakeMove(move)
			history = append(history, historyEntry{move, undo})
			if logger != nil {
				score := info.Score
				if IsMateScore(score) {
					score = info.Mate
				}
				logger.Log(LogInfo{
					Timestamp: time.Now(),
					FEN:       start, Move: move, Source: "Search",
					Score: score, Mate: IsMateScore(info.Score), Depth: info.Depth,
					Nodes: info.Nodes, Duration: info.Time,
				})
			}
			continue
		}

		found := false
		for _, m := range legal {
			if m.UCI() == cmd {
				undo := pos.MakeMove(m)
				history = append(history, historyEntry{m, undo})
				found = true
				break
			}
		}
		if !found {
			fmt.Println("illegal or unrecognized move:", cmd)
		}
	}
}
