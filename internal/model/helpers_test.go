package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// sq parses algebraic coordinates such as "e2".
func sq(t *testing.T, name string) Square {
	t.Helper()
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		t.Fatalf("invalid square %q", name)
	}
	return Square{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func mv(t *testing.T, from, to string) Move {
	t.Helper()
	return Move{From: sq(t, from), To: sq(t, to)}
}

var pieceSymbols = map[byte]Piece{
	'K': {Type: King, Color: White}, 'Q': {Type: Queen, Color: White},
	'R': {Type: Rook, Color: White}, 'B': {Type: Bishop, Color: White},
	'N': {Type: Knight, Color: White}, 'P': {Type: Pawn, Color: White},
	'k': {Type: King, Color: Black}, 'q': {Type: Queen, Color: Black},
	'r': {Type: Rook, Color: Black}, 'b': {Type: Bishop, Color: Black},
	'n': {Type: Knight, Color: Black}, 'p': {Type: Pawn, Color: Black},
}

// boardFromRows builds a position from eight rows, row 0 (rank 8) first, using uppercase
// letters for White, lowercase for Black and '.' for empty squares.
func boardFromRows(t *testing.T, turn Color, castling CastlingRights, rows ...string) *Board {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("need 8 rows, got %d", len(rows))
	}
	b := NewEmptyBoard(turn)
	b.Castling = castling
	for row, line := range rows {
		if len(line) != 8 {
			t.Fatalf("row %d: need 8 columns, got %q", row, line)
		}
		for col := 0; col < 8; col++ {
			if line[col] == '.' {
				continue
			}
			p, ok := pieceSymbols[line[col]]
			if !ok {
				t.Fatalf("row %d: unknown piece %q", row, line[col])
			}
			b.Place(Square{Row: row, Col: col}, p)
		}
	}
	return b
}

func playMoves(t *testing.T, g *Game, moves ...[2]string) {
	t.Helper()
	for _, m := range moves {
		if !g.SubmitMove(mv(t, m[0], m[1])) {
			t.Fatalf("move %s%s rejected on\n%s", m[0], m[1], g.board)
		}
	}
}

func moveLess(a, b Move) bool {
	if a.From != b.From {
		return squareLess(a.From, b.From)
	}
	return squareLess(a.To, b.To)
}

func squareLess(a, b Square) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// moveSet compares move slices as unordered sets.
var moveSet = cmp.Options{cmpopts.SortSlices(moveLess), cmpopts.EquateEmpty()}

// positionOf captures everything Apply may change except the undo stack.
type position struct {
	Cells     [8][8]Piece
	Turn      Color
	Castling  CastlingRights
	EnPassant EnPassantState
}

func positionOf(b *Board) position {
	return position{Cells: b.Cells, Turn: b.Turn, Castling: b.Castling, EnPassant: b.EnPassant}
}
