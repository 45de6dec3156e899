// Command enginecli is a thin terminal front end for the engine's
// UCI-subset protocol handler: colorized info lines, thousands-separated
// node counts, reading commands from stdin and writing responses to
// stdout.
package main

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"chesscore/engine"
	"chesscore/uci"
)

func main() {
	printer := message.NewPrinter(language.English)
	depthColor := color.New(color.FgCyan)
	scoreColor := color.New(color.FgGreen)
	mateColor := color.New(color.FgRed, color.Bold)
	bestColor := color.New(color.FgYellow, color.Bold)

	h := uci.NewHandler(os.Stdout)
	h.SetInfoWriter(func(info engine.SearchInfo) {
		depthColor.Fprintf(os.Stdout, "depth %-3d ", info.Depth)
		if engine.IsMateScore(info.Score) {
			mateColor.Fprintf(os.Stdout, "mate %-3d ", engine.MateDistance(info.Score))
		} else {
			scoreColor.Fprintf(os.Stdout, "cp %-6d ", info.Score)
		}
		printer.Fprintf(os.Stdout, "nodes %d  ", info.Nodes)
		os.Stdout.WriteString("time " + info.Time.Round(0).String() + "  pv ")
		bestColor.Fprintln(os.Stdout, joinPV(info.PV))
	})

	h.Run(os.Stdin)
}

func joinPV(pv []string) string {
	out := ""
	for i, m := range pv {
		if i > 0 {
			out += " "
		}
		out += m
	}
	return out
}
