package board

import "testing"

// Known-good perft results (chessprogramming wiki "Perft Results"),
// the standard move-generator correctness check.

func TestPerft_StartPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	pos := StartPosition()
	for _, tc := range cases {
		if got := pos.Perft(tc.depth); got != tc.nodes {
			t.Errorf("perft(%d) from start position = %d, want %d", tc.depth, got, tc.nodes)
		}
	}
}

func TestPerft_Kiwipete(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range cases {
		if got := pos.Perft(tc.depth); got != tc.nodes {
			t.Errorf("perft(%d) from Kiwipete = %d, want %d", tc.depth, got, tc.nodes)
		}
	}
}

func TestPerft_Position3(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range cases {
		if got := pos.Perft(tc.depth); got != tc.nodes {
			t.Errorf("perft(%d) from position 3 = %d, want %d", tc.depth, got, tc.nodes)
		}
	}
}

func TestDivide_SumsToPerft(t *testing.T) {
	pos := StartPosition()
	const depth = 3
	divided := pos.Divide(depth)

	var sum uint64
	for _, n := range divided {
		sum += n
	}
	if want := pos.Perft(depth); sum != want {
		t.Errorf("divide(%d) sums to %d, want %d (perft total)", depth, sum, want)
	}
	if len(divided) != 20 {
		t.Errorf("divide(%d) has %d root moves, want 20", depth, len(divided))
	}
}
