package model

import (
	"fmt"
	"strings"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) backRow() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) pawnStartRow() int {
	if c == White {
		return 6
	}
	return 1
}

func (c Color) promotionRow() int {
	if c == White {
		return 0
	}
	return 7
}

// enPassantRow is the row a pawn must stand on to capture en passant.
func (c Color) enPassantRow() int {
	if c == White {
		return 3
	}
	return 4
}

type PieceType string

func (p PieceType) symbol() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return "."
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is located only by the board cell holding it. The zero value is an empty cell.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

func (p Piece) String() string {
	s := p.Type.symbol()
	if p.Color == Black {
		return strings.ToLower(s)
	}
	return s
}

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) offset(d direction) Square {
	return Square{Row: s.Row + d.dRow, Col: s.Col + d.dCol}
}

// String renders the square in algebraic coordinates, e.g. "e2".
func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func allCastlingRights() CastlingRights {
	return CastlingRights{WhiteKingside: true, WhiteQueenside: true, BlackKingside: true, BlackQueenside: true}
}

func (cr CastlingRights) Has(c Color, kingside bool) bool {
	switch {
	case c == White && kingside:
		return cr.WhiteKingside
	case c == White:
		return cr.WhiteQueenside
	case kingside:
		return cr.BlackKingside
	default:
		return cr.BlackQueenside
	}
}

func (cr *CastlingRights) clear(c Color, kingside bool) {
	switch {
	case c == White && kingside:
		cr.WhiteKingside = false
	case c == White:
		cr.WhiteQueenside = false
	case kingside:
		cr.BlackKingside = false
	default:
		cr.BlackQueenside = false
	}
}

// EnPassantState holds the column of a pawn that just advanced two rows.
// It is valid for exactly one ply.
type EnPassantState struct {
	Active bool `json:"active"`
	Col    int  `json:"col"`
}

type Board struct {
	Cells     [8][8]Piece    `json:"cells"`
	Turn      Color          `json:"turn"`
	Castling  CastlingRights `json:"castling"`
	EnPassant EnPassantState `json:"enPassant"`

	history []UndoEntry
}

// NewBoard returns the standard starting position with White to move.
func NewBoard() *Board {
	board := &Board{Turn: White, Castling: allCastlingRights()}
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, pt := range backRank {
		board.Cells[0][col] = Piece{Type: pt, Color: Black}
		board.Cells[7][col] = Piece{Type: pt, Color: White}
		board.Cells[1][col] = Piece{Type: Pawn, Color: Black}
		board.Cells[6][col] = Piece{Type: Pawn, Color: White}
	}
	return board
}

// NewEmptyBoard returns a board with no pieces and no castling rights, used to set up
// arbitrary positions with Place.
func NewEmptyBoard(turn Color) *Board {
	return &Board{Turn: turn}
}

// At returns the piece on s; off-board squares read as empty.
func (b *Board) At(s Square) Piece {
	if !s.OnBoard() {
		return Piece{}
	}
	return b.Cells[s.Row][s.Col]
}

func (b *Board) set(s Square, p Piece) {
	b.Cells[s.Row][s.Col] = p
}

// Place puts p on s. It is meant for position setup, not for playing moves.
func (b *Board) Place(s Square, p Piece) {
	if s.OnBoard() {
		b.set(s, p)
	}
}

// Clone returns an independent copy, including the undo stack.
func (b *Board) Clone() *Board {
	c := *b
	c.history = append([]UndoEntry(nil), b.history...)
	return &c
}

// Snapshot is the renderer view of the board: nil for empty cells.
func (b *Board) Snapshot() [8][8]*Piece {
	var snap [8][8]*Piece
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; !p.IsEmpty() {
				snap[row][col] = &p
			}
		}
	}
	return snap
}

// KingSquare finds the king of color c.
func (b *Board) KingSquare(c Color) (Square, error) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p.Type == King && p.Color == c {
				return Square{Row: row, Col: col}, nil
			}
		}
	}
	return Square{}, fmt.Errorf("%w: %s", ErrKingMissing, c)
}

// Validate checks that each side has exactly one king and that the side not
// to move is not in check.
func (b *Board) Validate() error {
	kings := map[Color]int{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p.Type == King {
				kings[p.Color]++
			}
		}
	}
	for _, c := range []Color{White, Black} {
		switch {
		case kings[c] == 0:
			return fmt.Errorf("%w: %s", ErrKingMissing, c)
		case kings[c] > 1:
			return fmt.Errorf("%w: %s has %d", ErrExtraKing, c, kings[c])
		}
	}
	if b.Turn != White && b.Turn != Black {
		return fmt.Errorf("%w: %q", ErrInvalidTurn, b.Turn)
	}
	// The side that just moved cannot be left in check.
	waiting := b.Turn.Opponent()
	king, err := b.KingSquare(waiting)
	if err != nil {
		return err
	}
	if IsSquareAttacked(b, king, b.Turn) {
		return fmt.Errorf("%w: %s king on %s", ErrOpponentInCheck, waiting, king)
	}
	return nil
}

// String draws the board with row 0 at the top, uppercase for White.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", 8-row)
		for col := 0; col < 8; col++ {
			sb.WriteString(b.Cells[row][col].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
