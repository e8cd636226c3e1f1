package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: kind, a closed 4-bit tag (see the Kind* constants)
//
// Bit 14 (mask 0x4000) is the capture flag; bit 15 (mask 0x8000) is the
// promotion flag. This lets is_capture/is_promotion/is_castling/is_en_passant
// be single AND-compares instead of a switch over the tag.
type Move uint16

// Kind is the 4-bit move-kind tag, a closed set of fourteen cases.
type Kind uint16

const (
	KindNormal             Kind = 0x0
	KindDoublePawnPush     Kind = 0x1
	KindKingCastle         Kind = 0x2
	KindQueenCastle        Kind = 0x3
	KindCapture            Kind = 0x4
	KindEnPassant          Kind = 0x5
	KindPromotionKnight    Kind = 0x8
	KindPromotionBishop    Kind = 0x9
	KindPromotionRook      Kind = 0xA
	KindPromotionQueen     Kind = 0xB
	KindPromoCaptureKnight Kind = 0xC
	KindPromoCaptureBishop Kind = 0xD
	KindPromoCaptureRook   Kind = 0xE
	KindPromoCaptureQueen  Kind = 0xF
)

const (
	moveFromMask = 0x003F
	moveToShift  = 6
	moveToMask   = 0x0FC0
	moveKindShift = 12

	captureFlag   Move = 0x4000
	promotionFlag Move = 0x8000
)

// NoMove represents an invalid or null move; the reserved all-zero value.
const NoMove Move = 0

// NewMove packs a from/to/kind triple into a Move.
func NewMove(from, to Square, kind Kind) Move {
	return Move(from) | Move(to)<<moveToShift | Move(kind)<<moveKindShift
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & moveFromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & moveToMask) >> moveToShift)
}

// MoveKind returns the 4-bit kind tag.
func (m Move) MoveKind() Kind {
	return Kind(m >> moveKindShift)
}

// IsCapture reports whether the move's tag has the capture bit set.
func (m Move) IsCapture() bool {
	return m&captureFlag != 0
}

// IsPromotion reports whether the move's tag has the promotion bit set.
func (m Move) IsPromotion() bool {
	return m&promotionFlag != 0
}

// IsCastling reports whether the tag is KingCastle or QueenCastle.
func (m Move) IsCastling() bool {
	return m&0xE000 == Move(KindKingCastle)<<moveKindShift
}

// IsEnPassant reports whether the tag is exactly EnPassant.
func (m Move) IsEnPassant() bool {
	return m&0xF000 == Move(KindEnPassant)<<moveKindShift
}

// IsDoublePush reports whether the tag is exactly DoublePawnPush.
func (m Move) IsDoublePush() bool {
	return m.MoveKind() == KindDoublePawnPush
}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// PromotionPiece returns the promoted piece kind. Only meaningful when
// IsPromotion() is true: the low two bits of the tag name {knight, bishop,
// rook, queen}.
func (m Move) PromotionPiece() PieceType {
	switch m.MoveKind() & 0x3 {
	case 0:
		return Knight
	case 1:
		return Bishop
	case 2:
		return Rook
	default:
		return Queen
	}
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		promoChars := map[PieceType]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}
		s += string(promoChars[m.PromotionPiece()])
	}
	return s
}

// promotionKind maps a promoted piece kind plus capture-ness to its tag.
func promotionKind(pt PieceType, capture bool) Kind {
	var base Kind
	switch pt {
	case Knight:
		base = KindPromotionKnight
	case Bishop:
		base = KindPromotionBishop
	case Rook:
		base = KindPromotionRook
	default:
		base = KindPromotionQueen
	}
	if capture {
		base |= 0x4
	}
	return base
}

// ParseMove parses a UCI format move string against the given position, to
// recover the move kind the packed encoding requires.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()
	capture := pos.PieceAt(to) != NoPiece

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewMove(from, to, promotionKind(promo, capture)), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		if to.File() == 6 {
			return NewMove(from, to, KindKingCastle), nil
		}
		return NewMove(from, to, KindQueenCastle), nil
	}

	if pt == Pawn && to == pos.EnPassantSquare() && to != NoSquare {
		return NewMove(from, to, KindEnPassant), nil
	}

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		return NewMove(from, to, KindDoublePawnPush), nil
	}

	if capture {
		return NewMove(from, to, KindCapture), nil
	}
	return NewMove(from, to, KindNormal), nil
}

// MoveList is a fixed-size list of moves to avoid allocations. 256 slots
// comfortably exceeds the documented upper bound of about 218 legal moves
// from any reachable position.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
