package engine

import (
	"testing"

	"chesscore/board"
)

func TestPeSTOInitialPosition(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if score := EvaluatePeSTO(pos); score != 0 {
		t.Errorf("starting position should have score 0, got %d", score)
	}
}

func TestPeSTOMaterialAdvantage(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		minScore int
		maxScore int
	}{
		{"white up a queen", "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 800, 1200},
		{"white up a rook", "rnbqkbn1/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQq - 0 1", 400, 600},
		{"white up a knight", "r1bqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 250, 450},
		{"white up a pawn", "rnbqkbnr/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 50, 150},
		{"black up a queen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1", -1200, -800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			score := EvaluatePeSTO(pos)
			if score < tt.minScore || score > tt.maxScore {
				t.Errorf("score %d not in expected range [%d, %d]", score, tt.minScore, tt.maxScore)
			}
		})
	}
}

func TestPeSTOTaperedEval(t *testing.T) {
	endgamePos := mustFEN(t, "4k3/pppppppp/8/8/8/8/PPPPPPPP/4K3 w - - 0 1")
	if score := EvaluatePeSTO(endgamePos); score < -100 || score > 100 {
		t.Errorf("endgame score %d should be close to 0 for a symmetric position", score)
	}

	middlegamePos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	t.Logf("middlegame score after 1.e4: %d", EvaluatePeSTO(middlegamePos))
}

func TestPeSTOKingEndgame(t *testing.T) {
	middlegamePos := mustFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1")
	endgamePos := mustFEN(t, "8/pppp1ppp/8/4k3/4K3/8/PPPP1PPP/8 w - - 0 1")

	mgScore := EvaluatePeSTO(middlegamePos)
	egScore := EvaluatePeSTO(endgamePos)
	t.Logf("middlegame position score: %d, endgame position score: %d", mgScore, egScore)
}

func TestPeSTOSymmetry(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if score := EvaluatePeSTO(pos); score != 0 {
		t.Errorf("starting position should have score 0, got %d", score)
	}
}

func TestPeSTOPieceValues(t *testing.T) {
	expectedMG := map[board.Piece]int{board.Pawn: 82, board.Knight: 337, board.Bishop: 365, board.Rook: 477, board.Queen: 1025}
	for piece, expected := range expectedMG {
		if mgPieceValue[piece] != expected {
			t.Errorf("MG %s value: expected %d, got %d", piece, expected, mgPieceValue[piece])
		}
	}

	expectedEG := map[board.Piece]int{board.Pawn: 94, board.Knight: 281, board.Bishop: 297, board.Rook: 512, board.Queen: 936}
	for piece, expected := range expectedEG {
		if egPieceValue[piece] != expected {
			t.Errorf("EG %s value: expected %d, got %d", piece, expected, egPieceValue[piece])
		}
	}
}

func TestPeSTOAdvancedPawns(t *testing.T) {
	advancedPos := mustFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	startPos := mustFEN(t, "4k3/8/8/8/8/8/P7/4K3 w - - 0 1")

	advancedScore := EvaluatePeSTO(advancedPos)
	startScore := EvaluatePeSTO(startPos)

	if advancedScore <= startScore {
		t.Errorf("advanced pawn (score %d) should be better than starting pawn (score %d)", advancedScore, startScore)
	}
}

func TestEvaluateIncludesPeSTO(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	pestoScore := EvaluatePeSTO(pos)
	fullScore := PeSTOEvaluator{}.Evaluate(pos)
	if pestoScore != fullScore {
		t.Errorf("Evaluate (white to move) should match EvaluatePeSTO, got %d vs %d", fullScore, pestoScore)
	}
}
