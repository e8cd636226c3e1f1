package perft

import (
	"testing"

	"github.com/kavanagh/corechess/internal/board"
)

func TestNodesStartingPosition(t *testing.T) {
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
	}

	for _, tc := range tests {
		tc := tc
		t.Run("", func(t *testing.T) {
			if tc.long && testing.Short() {
				t.Skip("skipping deep perft in -short mode")
			}
			got := Nodes(board.NewPosition(), tc.depth)
			if got != tc.expected {
				t.Errorf("Nodes(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestCountBreakdownKiwipeteDepth1(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	got := Count(pos, 1)
	want := Counters{Nodes: 48, Captures: 8, Castles: 2}
	if got != want {
		t.Errorf("Count(1) = %+v, want %+v", got, want)
	}
}

func TestCountBreakdownKiwipeteDepth2(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	got := Count(pos, 2)
	want := Counters{Nodes: 2039, Captures: 351, EnPassant: 1, Castles: 91}
	if got != want {
		t.Errorf("Count(2) = %+v, want %+v", got, want)
	}
}

func TestSplitSumsToNodes(t *testing.T) {
	pos := board.NewPosition()
	split := Split(pos, 4)

	var sum int64
	for _, n := range split {
		sum += n
	}

	if want := Nodes(board.NewPosition(), 4); sum != want {
		t.Errorf("sum of split(depth=4) root moves = %d, want perft(4) = %d", sum, want)
	}
	if len(split) != 20 {
		t.Errorf("split produced %d root moves, want 20", len(split))
	}
}
