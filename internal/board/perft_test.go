package board

import "testing"

// perft counts the number of leaf nodes at the given depth, recursing
// through make/unmake exactly as a real search driver would.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth    int
		expected int64
		long     bool
	}{
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, false},
		{5, 4865609, true},
		{6, 119060324, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("", func(t *testing.T) {
			if tc.long && testing.Short() {
				t.Skip("skipping deep perft in -short mode")
			}
			pos := NewPosition()
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete exercises castling, en passant, promotions, and pins
// in dense combination.
func TestPerftKiwipete(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"

	tests := []struct {
		depth    int
		expected int64
		long     bool
	}{
		{1, 48, false},
		{2, 2039, false},
		{3, 97862, false},
		{4, 4085603, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("", func(t *testing.T) {
			if tc.long && testing.Short() {
				t.Skip("skipping deep perft in -short mode")
			}
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 exercises en passant edge cases.
func TestPerftPosition3(t *testing.T) {
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("", func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin covers the horizontal-pin en passant edge case: a
// black pawn on e4 could capture en passant on d3, but doing so would
// expose the black king on a4 to the white rook on h4, so the capture
// must not appear among the legal moves.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsEnPassant() {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestRoundTripFEN checks that exporting and reimporting a position
// preserves its legal move count.
func TestRoundTripFEN(t *testing.T) {
	pos := NewPosition()
	reimported, err := ParseFEN(pos.ToFEN())
	if err != nil {
		t.Fatalf("round-trip FEN failed to parse: %v", err)
	}
	if got := perft(reimported, 1); got != 20 {
		t.Errorf("perft(1) on round-tripped start position = %d, want 20", got)
	}
}
