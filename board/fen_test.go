package board

import "testing"

func TestFEN_RoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 2",
		"8/8/8/8/8/8/8/4K2k w - - 5 40",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("round trip mismatch:\n  in:  %s\n  out: %s", fen, got)
		}
	}
}

func TestFEN_RejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"not-a-fen",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) should have failed", fen)
		}
	}
}

func TestStartPosition_MatchesFEN(t *testing.T) {
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	pos := StartPosition()
	if got := pos.FEN(); got != want {
		t.Errorf("StartPosition().FEN() = %q, want %q", got, want)
	}
}
