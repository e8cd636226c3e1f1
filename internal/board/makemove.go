package board

import "github.com/kavanagh/corechess/internal/assert"

// MakeMove applies m to the position, updating the mailbox, both bitboard
// views, and the history stack in lockstep. It does not check legality —
// callers that care whether the mover's own king ends up in check use
// IsLegal, which wraps MakeMove/UnmakeMove with a check test.
func (p *Position) MakeMove(m Move) {
	assert.Assert(p.Ply+1 < maxPly, "MakeMove: history stack exhausted at ply %d", p.Ply)

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)
	assert.Assert(piece != NoPiece, "MakeMove: no piece at %s for move %s", from, m)

	next := *p.frame()
	next.EnPassant = NoSquare
	next.HalfMoveClock++
	next.Captured = NoPiece

	p.removePiece(from)

	if m.IsEnPassant() {
		capturedSq := to - 8
		if us == Black {
			capturedSq = to + 8
		}
		next.Captured = p.removePiece(capturedSq)
	} else if victim := p.PieceAt(to); victim != NoPiece {
		next.Captured = victim
		p.removePiece(to)
	}

	if piece.Type() == Pawn || next.Captured != NoPiece {
		next.HalfMoveClock = 0
	}

	if m.IsPromotion() {
		p.setPiece(NewPiece(m.PromotionPiece(), us), to)
	} else {
		p.setPiece(piece, to)
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(m.MoveKind(), from.Rank())
		p.movePiece(rookFrom, rookTo)
	}

	// Castling-rights update, branchless: king moves from its home square
	// clear both its rights; a rook moving from (or being captured on) a
	// corner clears that corner's right. This single pass covers king
	// moves, rook moves, and rook captures.
	next.Castling &^= castlingRightsLostFrom(from)
	next.Castling &^= castlingRightsLostFrom(to)

	if m.IsDoublePush() {
		next.EnPassant = Square((int(from) + int(to)) / 2)
	}

	p.Ply++
	p.History[p.Ply] = next

	p.SideToMove = them
	if us == Black {
		p.FullMoveNumber++
	}

	p.UpdateCheckers()
}

// UnmakeMove reverses the effect of the most recent MakeMove(m). Calling
// it with any move other than the last one made is a program error the
// caller is responsible for avoiding; there is nothing in the history
// frame itself that can detect a mismatched unmake.
func (p *Position) UnmakeMove(m Move) {
	them := p.SideToMove
	us := them.Other()
	from := m.From()
	to := m.To()

	captured := p.frame().Captured
	p.Ply--

	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(m.MoveKind(), from.Rank())
		p.movePiece(rookTo, rookFrom)
	}

	if m.IsPromotion() {
		p.removePiece(to)
		p.setPiece(NewPiece(Pawn, us), from)
	} else {
		p.movePiece(to, from)
	}

	if captured != NoPiece {
		capturedSq := to
		if m.IsEnPassant() {
			capturedSq = to - 8
			if us == Black {
				capturedSq = to + 8
			}
		}
		p.setPiece(captured, capturedSq)
	}

	p.UpdateCheckers()
}

// castlingRookSquares returns the rook's corner and crossing square for a
// castling move, given which wing and which rank (0 for White, 7 for Black).
func castlingRookSquares(kind Kind, rank int) (from, to Square) {
	if kind == KindKingCastle {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// castlingRightsLostFrom returns the rights bits that are forfeited
// forever once a king or rook touches (moves from, moves to, or is
// captured on) sq.
func castlingRightsLostFrom(sq Square) CastlingRights {
	switch sq {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H8:
		return BlackKingSideCastle
	case A8:
		return BlackQueenSideCastle
	default:
		return NoCastling
	}
}
