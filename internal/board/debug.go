package board

import (
	"strconv"
	"strings"

	"github.com/op/go-logging"
	"github.com/rivo/uniseg"
)

var log = logging.MustGetLogger("board")

// pieceGlyphs maps each piece to the Unicode chess symbol used by the
// debug renderer, indexed the same way as the Piece constants.
var pieceGlyphs = [...]string{
	NoPiece:     ".",
	WhiteKing:   "♔",
	WhiteQueen:  "♕",
	WhiteRook:   "♖",
	WhiteBishop: "♗",
	WhiteKnight: "♘",
	WhitePawn:   "♙",
	BlackKing:   "♚",
	BlackQueen:  "♛",
	BlackRook:   "♜",
	BlackBishop: "♝",
	BlackKnight: "♞",
	BlackPawn:   "♟",
}

// DebugBoard renders the position as an 8x8 grid of Unicode chess glyphs,
// rank 8 at the top and file a on the left, matching the layout of the
// board-printing routine this is ported from. Column widths are measured
// with uniseg rather than assumed to be one byte or one rune wide, since
// the chess glyphs are wider than ASCII in most terminal fonts.
func (p *Position) DebugBoard() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(strconv.Itoa(rank + 1))
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			glyph := pieceGlyphs[p.PieceAt(NewSquare(file, rank))]
			sb.WriteString(glyph)
			sb.WriteString(strings.Repeat(" ", 2-uniseg.StringWidth(glyph)))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("   ")
	for file := 0; file < 8; file++ {
		sb.WriteString(string(rune('a' + file)))
		sb.WriteString("  ")
	}

	return sb.String()
}

// logTableBuild records the size of a freshly built slider attack table.
// Called once per table from buildMagicTables; never on the move
// generation hot path.
func logTableBuild(name string, squares int, entries int) {
	log.Infof("built %s attack table: %d squares, %d entries", name, squares, entries)
}
