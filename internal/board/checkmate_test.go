package board

import (
	"testing"
)

// findMove locates the legal move matching from/to/kind, failing the test if
// absent. Keeps the walk-to-mate tests readable as a sequence of square pairs
// instead of hand-built Move values.
func findMove(t *testing.T, pos *Position, from, to Square, kind Kind) Move {
	t.Helper()
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == from && m.To() == to && m.MoveKind() == kind {
			return m
		}
	}
	t.Fatalf("no legal move %s-%s (kind %v) in position %s", from, to, kind, pos.ToFEN())
	return NoMove
}

// TestCheckmateReachedByMakeMove walks the back-rank mate in from a legal
// starting position using MakeMove, rather than parsing the mated position
// directly from FEN, so the make/unmake path itself is what produces the
// checkmate under test.
func TestCheckmateReachedByMakeMove(t *testing.T) {
	// One move from the back-rank mate: black king is already cornered on
	// h8 behind its own pawns, white only needs to land the rook on a8.
	pos, err := ParseFEN("7k/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if pos.IsCheckmate() {
		t.Fatal("position should not be mate before Ra8+ is played")
	}

	rookMove := findMove(t, pos, A1, A8, KindNormal)
	pos.MakeMove(rookMove)

	if !pos.InCheck() {
		t.Fatal("expected black to be in check after Ra8#")
	}
	if !pos.IsCheckmate() {
		t.Error("expected Ra8# to be checkmate: g8 covered by the rook, g7/h7 blocked by pawns")
	}
	if pos.HasLegalMoves() {
		t.Error("a checkmated side must have no legal moves")
	}

	pos.UnmakeMove(rookMove)
	if pos.InCheck() {
		t.Error("expected check to clear after UnmakeMove(Ra8+)")
	}
	if pos.IsCheckmate() {
		t.Error("expected checkmate to clear after UnmakeMove(Ra8+)")
	}
	if pos.PieceAt(A1) != WhiteRook {
		t.Fatal("expected UnmakeMove to restore the rook to a1")
	}
	if pos.PieceAt(A8) != NoPiece {
		t.Fatal("expected UnmakeMove to vacate a8")
	}
}

// TestStalemateReachedByMakeMove mirrors TestCheckmateReachedByMakeMove for
// stalemate: the king has no legal move and is not in check.
func TestStalemateReachedByMakeMove(t *testing.T) {
	// Black king is cornered on h8; g1-g6 stalemates it (g8/g7 covered by
	// file, h7 covered by diagonal) without ever giving check.
	pos, err := ParseFEN("7k/8/8/8/8/8/8/K5Q1 w - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if pos.IsStalemate() {
		t.Fatal("position should not be stalemate before Qg6 is played")
	}

	queenMove := findMove(t, pos, G1, G6, KindNormal)
	pos.MakeMove(queenMove)

	if pos.InCheck() {
		t.Fatal("Qg6 should not check the black king on h8")
	}
	if !pos.IsStalemate() {
		t.Error("expected Qg6 to stalemate black (g8/g7/h7 all denied, no check)")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate must not also report as checkmate")
	}
	if pos.HasLegalMoves() {
		t.Error("a stalemated side must have no legal moves")
	}

	pos.UnmakeMove(queenMove)
	if pos.IsStalemate() {
		t.Error("expected stalemate to clear after UnmakeMove(Qg6)")
	}
	if pos.PieceAt(G1) != WhiteQueen {
		t.Fatal("expected UnmakeMove to restore the queen to g1")
	}
}

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ka1, Ra8; Black Kh8 boxed in by its own pawns.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	pos.UpdateCheckers()
	if !pos.InCheck() {
		t.Fatal("expected black king to be in check")
	}

	blackMoves := pos.GenerateLegalMoves()
	if blackMoves.Len() != 0 {
		t.Errorf("expected 0 legal moves in checkmate, got %d", blackMoves.Len())
	}

	if pos.HasLegalMoves() {
		t.Error("expected HasLegalMoves false in checkmate")
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate must not also report as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8, rook on g8 but the king can capture it.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	pos.UpdateCheckers()
	if !pos.InCheck() {
		t.Fatal("expected black king to be in check from the rook on g8")
	}

	blackMoves := pos.GenerateLegalMoves()
	if blackMoves.Len() == 0 {
		t.Fatal("expected at least one legal move (Kxg8)")
	}

	capture := findMove(t, pos, H8, G8, KindCapture)
	pos.MakeMove(capture)
	if pos.InCheck() {
		t.Error("expected check to clear after Kxg8")
	}
	pos.UnmakeMove(capture)
	if pos.PieceAt(H8) != BlackKing {
		t.Fatal("expected UnmakeMove to restore the black king to h8")
	}
	if pos.PieceAt(G8) != WhiteRook {
		t.Fatal("expected UnmakeMove to restore the captured rook to g8")
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
}
