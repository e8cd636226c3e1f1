package board

import (
	"fmt"

	"github.com/kavanagh/corechess/internal/assert"
)

// CastlingRights represents the available castling options, one bit per
// side/wing: WK, WQ, BK, BQ.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                             // q
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// maxPly bounds the history stack. 128 plies comfortably covers any
// search depth this core is asked to support.
const maxPly = 128

// StateFrame is the incremental, per-ply information needed to unmake a
// move: everything that make_move cannot cheaply recompute by reversing
// the board update itself. Most fields carry over unchanged from the
// previous frame, so make_move copies the frame forward and mutates the
// copy rather than constructing one from scratch.
type StateFrame struct {
	Castling      CastlingRights
	EnPassant     Square // NoSquare if none
	HalfMoveClock int
	Captured      Piece // piece removed by the move leading to this frame, or NoPiece
	Hash          uint64 // reserved for a future transposition scheme; always zero
}

// Position is a complete chess position: a mailbox view, per-kind and
// per-color bitboard views kept in lockstep, and a fixed-capacity history
// stack that lets make/unmake run in O(1) without snapshotting the whole
// struct.
type Position struct {
	Mailbox [64]Piece
	PieceBB [6]Bitboard // pieces[kind], color-agnostic
	ColorBB [2]Bitboard // colors[color]

	SideToMove     Color
	FullMoveNumber int

	KingSquare [2]Square // cached for O(1) check detection
	Checkers   Bitboard

	History [maxPly]StateFrame
	Ply     int // index of the current frame in History
}

// frame returns a pointer to the current history frame.
func (p *Position) frame() *StateFrame {
	return &p.History[p.Ply]
}

// CastlingRights returns the current castling rights.
func (p *Position) CastlingRights() CastlingRights {
	return p.frame().Castling
}

// EnPassantSquare returns the current en passant target square, or NoSquare.
func (p *Position) EnPassantSquare() Square {
	return p.frame().EnPassant
}

// HalfMoveClock returns the current halfmove clock.
func (p *Position) HalfMoveClock() int {
	return p.frame().HalfMoveClock
}

// Occupied returns the occupancy bitboard for one color.
func (p *Position) Occupied(c Color) Bitboard {
	return p.ColorBB[c]
}

// AllOccupied returns the occupancy bitboard of both colors.
func (p *Position) AllOccupied() Bitboard {
	return p.ColorBB[White] | p.ColorBB[Black]
}

// PieceOfColor returns the bitboard of pieces of the given kind and color.
func (p *Position) PieceOfColor(c Color, pt PieceType) Bitboard {
	return p.PieceBB[pt] & p.ColorBB[c]
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	assert.Assert(err == nil, "NewPosition: start FEN must always parse: %v", err)
	return pos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Mailbox[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Mailbox[sq] == NoPiece
}

// setPiece places a piece on a square across all three views. The square
// must be empty; it is a program error to overwrite an occupied square.
func (p *Position) setPiece(piece Piece, sq Square) {
	assert.Assert(p.Mailbox[sq] == NoPiece, "setPiece: %s is already occupied by %s", sq, p.Mailbox[sq])
	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Mailbox[sq] = piece
	p.PieceBB[pt] |= bb
	p.ColorBB[c] |= bb

	if pt == King {
		p.KingSquare[c] = sq
	}
}

// removePiece removes whatever piece sits on sq and returns it, or
// NoPiece if the square was already empty.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.Mailbox[sq]
	if piece == NoPiece {
		return NoPiece
	}
	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Mailbox[sq] = NoPiece
	p.PieceBB[pt] &^= bb
	p.ColorBB[c] &^= bb

	return piece
}

// movePiece relocates whatever piece sits on from to to. to must be empty.
func (p *Position) movePiece(from, to Square) {
	piece := p.Mailbox[from]
	assert.Assert(piece != NoPiece, "movePiece: no piece at %s", from)
	assert.Assert(p.Mailbox[to] == NoPiece, "movePiece: destination %s is occupied", to)

	c := piece.Color()
	pt := piece.Type()
	moveBB := SquareBB(from) | SquareBB(to)

	p.Mailbox[from] = NoPiece
	p.Mailbox[to] = piece
	p.PieceBB[pt] ^= moveBB
	p.ColorBB[c] ^= moveBB

	if pt == King {
		p.KingSquare[c] = to
	}
}

// findKings locates and caches the king positions from the bitboard view.
func (p *Position) findKings() {
	p.KingSquare[White] = p.PieceOfColor(White, King).LSB()
	p.KingSquare[Black] = p.PieceOfColor(Black, King).LSB()
}

// String returns a visual representation of the position, rank 8 down to
// rank 1, files a through h, matching the layout of the masca project's
// board dump: rank numbers down the left, file letters along the bottom.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights())
	s += fmt.Sprintf("En passant: %s\n", p.EnPassantSquare())
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock())
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	return s
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{}
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
	for i := range p.Mailbox {
		p.Mailbox[i] = NoPiece
	}
	p.History[0].EnPassant = NoSquare
	p.History[0].Captured = NoPiece
	p.FullMoveNumber = 1
}

// Validate reports structural problems in the position that the FEN
// parser's own field checks would not catch.
func (p *Position) Validate() error {
	if p.PieceOfColor(White, King).PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.PieceOfColor(Black, King).PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if p.PieceBB[Pawn]&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	return nil
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers != 0
}
