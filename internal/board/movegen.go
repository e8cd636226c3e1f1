package board

// Move generation is pseudo-legal-then-filter: generateAllMoves emits every
// move that satisfies a piece's movement rules given the current
// occupancy, without regard to whether it leaves the mover's own king in
// check; IsLegal (via make/unmake) is the only place check safety is
// tested, except for king moves and castling which can be validated
// directly against attack data without the cost of a full make/unmake.

// genMode selects whether the generic piece generator targets empty
// squares or enemy-occupied squares.
type genMode int

const (
	modeQuiet genMode = iota
	modeCapture
)

// attackSet dispatches the occupancy-dependent attack lookup per piece
// kind: table lookup for knight/king, magic lookup for rook/bishop,
// union of both for queen.
func attackSet(kind PieceType, from Square, occupied Bitboard) Bitboard {
	switch kind {
	case Knight:
		return KnightAttacks(from)
	case King:
		return KingAttacks(from)
	case Bishop:
		return BishopAttacks(from, occupied)
	case Rook:
		return RookAttacks(from, occupied)
	case Queen:
		return QueenAttacks(from, occupied)
	default:
		return Empty
	}
}

// generatePieceMoves is the generic leaper/slider generator, parameterized
// by piece kind, side, and quiet-vs-capture mode. It covers knight,
// bishop, rook, queen, and king (the king's non-castling step); castling
// and all pawn moves are specialized below.
func (p *Position) generatePieceMoves(ml *MoveList, kind PieceType, us Color, mode genMode) {
	usBB := p.Occupied(us)
	them := p.Occupied(us.Other())
	occupied := p.AllOccupied()

	var target Bitboard
	if mode == modeCapture {
		target = them
	} else {
		target = ^(usBB | them)
	}

	pieces := p.PieceOfColor(us, kind)
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := attackSet(kind, from, occupied) & target
		for attacks != 0 {
			to := attacks.PopLSB()
			if mode == modeCapture {
				ml.Add(NewMove(from, to, KindCapture))
			} else {
				ml.Add(NewMove(from, to, KindNormal))
			}
		}
	}
}

// generatePawnCaptures emits ordinary captures, en-passant, and
// promotion-captures for the side to move.
func (p *Position) generatePawnCaptures(ml *MoveList, us Color) {
	them := us.Other()
	enemies := p.Occupied(them)
	pawns := p.PieceOfColor(us, Pawn)
	ep := p.EnPassantSquare()

	lastRank := Rank8
	if us == Black {
		lastRank = Rank1
	}

	pawns.ForEach(func(from Square) {
		targets := PawnAttacks(from, us) & (enemies | epMask(ep))
		targets.ForEach(func(to Square) {
			switch {
			case to == ep && ep != NoSquare:
				ml.Add(NewMove(from, to, KindEnPassant))
			case SquareBB(to)&lastRank != 0:
				addPromotionCaptures(ml, from, to)
			default:
				ml.Add(NewMove(from, to, KindCapture))
			}
		})
	})
}

func epMask(ep Square) Bitboard {
	if ep == NoSquare {
		return Empty
	}
	return SquareBB(ep)
}

// generatePawnQuiets emits single pushes, promotions, and double pushes.
// The double-push mask is only consulted once the single push has
// already been confirmed legal: the source data this is ported from
// relies on that ordering, and conflating "single push blocked" with
// "double push blocked" would change the semantics of a blocked
// intermediate square.
func (p *Position) generatePawnQuiets(ml *MoveList, us Color) {
	empty := ^p.AllOccupied()
	pawns := p.PieceOfColor(us, Pawn)

	lastRank := Rank8
	if us == Black {
		lastRank = Rank1
	}

	pawns.ForEach(func(from Square) {
		push := PawnPushes(from, us) & empty
		if push == Empty {
			return
		}
		to := push.LSB()
		if SquareBB(to)&lastRank != 0 {
			addPromotions(ml, from, to)
		} else {
			ml.Add(NewMove(from, to, KindNormal))
		}

		double := PawnDoublePush(from, us) & empty
		if double != Empty {
			ml.Add(NewMove(from, double.LSB(), KindDoublePawnPush))
		}
	})
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewMove(from, to, KindPromotionQueen))
	ml.Add(NewMove(from, to, KindPromotionRook))
	ml.Add(NewMove(from, to, KindPromotionBishop))
	ml.Add(NewMove(from, to, KindPromotionKnight))
}

func addPromotionCaptures(ml *MoveList, from, to Square) {
	ml.Add(NewMove(from, to, KindPromoCaptureQueen))
	ml.Add(NewMove(from, to, KindPromoCaptureRook))
	ml.Add(NewMove(from, to, KindPromoCaptureBishop))
	ml.Add(NewMove(from, to, KindPromoCaptureKnight))
}

// generateCastlingMoves generates castling moves, separate from general
// king generation: both the empty-path and the safe-path checks are
// specific to castling and don't belong in the generic generator.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	rights := p.CastlingRights()
	occupied := p.AllOccupied()

	if us == White {
		if rights&WhiteKingSideCastle != 0 &&
			occupied&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewMove(E1, G1, KindKingCastle))
		}
		if rights&WhiteQueenSideCastle != 0 &&
			occupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewMove(E1, C1, KindQueenCastle))
		}
		return
	}

	if rights&BlackKingSideCastle != 0 &&
		occupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
		ml.Add(NewMove(E8, G8, KindKingCastle))
	}
	if rights&BlackQueenSideCastle != 0 &&
		occupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
		ml.Add(NewMove(E8, C8, KindQueenCastle))
	}
}

// generateAllMoves emits every pseudo-legal move from the position.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove

	p.generatePawnCaptures(ml, us)
	p.generatePawnQuiets(ml, us)

	for _, kind := range [...]PieceType{Knight, Bishop, Rook, Queen} {
		p.generatePieceMoves(ml, kind, us, modeQuiet)
		p.generatePieceMoves(ml, kind, us, modeCapture)
	}

	p.generatePieceMoves(ml, King, us, modeQuiet)
	p.generatePieceMoves(ml, King, us, modeCapture)
	p.generateCastlingMoves(ml, us)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave the
// mover's own king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	result := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal reports whether m leaves the mover's own king safe. King moves
// (including castling, already validated at generation time) are checked
// directly against attack data; every other move is validated by
// make/unmake, the only approach guaranteed correct for pins, discovered
// checks, and en-passant's double-capture edge case.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	from := m.From()

	if from == p.KingSquare[us] {
		if m.IsCastling() {
			return true
		}
		occ := p.AllOccupied() &^ SquareBB(from)
		return p.AttackersByColor(m.To(), us.Other(), occ) == 0
	}

	p.MakeMove(m)
	safe := !p.KingInCheck(us)
	p.UnmakeMove(m)
	return safe
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check but has no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
