package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chesscore/board"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return &pos
}

func TestEvaluate_InitialPosition(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.Equal(t, 0, EvaluatePeSTO(pos))
}

func TestEvaluate_WhiteMissingPawn(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1")
	assert.InDelta(t, -mgPieceValue[board.Pawn], EvaluatePeSTO(pos), 60)
}

func TestEvaluate_BlackMissingPawn(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppp1ppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.InDelta(t, mgPieceValue[board.Pawn], EvaluatePeSTO(pos), 60)
}

func TestEvaluate_WhiteUpKnight(t *testing.T) {
	pos := mustFEN(t, "rnbqkb1r/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.InDelta(t, mgPieceValue[board.Knight], EvaluatePeSTO(pos), 60)
}

func TestEvaluate_WhiteUpRook(t *testing.T) {
	pos := mustFEN(t, "1nbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQk - 0 1")
	assert.InDelta(t, mgPieceValue[board.Rook], EvaluatePeSTO(pos), 60)
}

func TestEvaluate_WhiteUpQueen(t *testing.T) {
	pos := mustFEN(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.InDelta(t, mgPieceValue[board.Queen], EvaluatePeSTO(pos), 150)
}

func TestEvaluate_SideToMoveFlip(t *testing.T) {
	white := mustFEN(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	black := mustFEN(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")

	whiteEval := PeSTOEvaluator{}.Evaluate(white)
	blackEval := PeSTOEvaluator{}.Evaluate(black)
	assert.Equal(t, whiteEval, -blackEval)
}
