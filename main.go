package main

import (
	"os"

	"chesscore/uci"
)

func main() {
	uci.NewHandler(os.Stdout).Run(os.Stdin)
}
