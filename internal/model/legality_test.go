package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLegalMovesPinnedPiece(t *testing.T) {
	b := boardFromRows(t, White, noCastling,
		"....k...",
		"....r...",
		"........",
		"........",
		"........",
		"........",
		"....N...",
		"....K...",
	)
	if got := LegalMoves(b, sq(t, "e2")); len(got) != 0 {
		t.Errorf("pinned knight should have no legal moves, got %v", got)
	}
	if got := PseudoLegalMoves(b, sq(t, "e2")); len(got) == 0 {
		t.Error("pinned knight still has pseudo-legal moves")
	}
}

func TestLegalMovesKingAvoidsAttackedSquares(t *testing.T) {
	b := boardFromRows(t, White, noCastling,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"...r....",
		"....K...",
	)
	// The rook on d2 covers the whole second rank and the d-file; taking it is the only
	// capture and stepping to f1 is the only quiet escape.
	got := LegalMoves(b, sq(t, "e1"))
	want := []Move{mv(t, "e1", "d2"), mv(t, "e1", "f1")}
	if diff := cmp.Diff(want, got, moveSet); diff != "" {
		t.Errorf("king escapes mismatch (-want +got):\n%s", diff)
	}

	defended := boardFromRows(t, White, noCastling,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"....b...",
		"...r....",
		"....K...",
	)
	got = LegalMoves(defended, sq(t, "e1"))
	want = []Move{mv(t, "e1", "f1")}
	if diff := cmp.Diff(want, got, moveSet); diff != "" {
		t.Errorf("king may not capture a defended rook (-want +got):\n%s", diff)
	}
}

func TestLegalMovesMustAnswerCheck(t *testing.T) {
	b := boardFromRows(t, White, noCastling,
		"....k...",
		"........",
		"........",
		"........",
		"....r...",
		"........",
		"..B.....",
		"R...K...",
	)
	// Taking the checking rook with the bishop is the only answer besides a king step; the
	// a1 rook can neither block nor capture.
	got := AllLegalMoves(b, White)
	want := []Move{
		mv(t, "c2", "e4"),
		mv(t, "e1", "d1"), mv(t, "e1", "d2"), mv(t, "e1", "f1"), mv(t, "e1", "f2"),
	}
	if diff := cmp.Diff(want, got, moveSet); diff != "" {
		t.Errorf("check evasions mismatch (-want +got):\n%s", diff)
	}
}

func TestEnPassantDiscoveredCheckIsIllegal(t *testing.T) {
	b := boardFromRows(t, White, noCastling,
		"........",
		"........",
		"........",
		"KPp....r",
		"........",
		"........",
		"........",
		".......k",
	)
	b.EnPassant = EnPassantState{Active: true, Col: 2}

	if !containsMove(PseudoLegalMoves(b, sq(t, "b5")), mv(t, "b5", "c6")) {
		t.Fatal("en passant should be pseudo-legal")
	}
	if containsMove(LegalMoves(b, sq(t, "b5")), mv(t, "b5", "c6")) {
		t.Error("en passant that uncovers the rook on the fifth rank must be illegal")
	}
}

func TestIsInCheckMissingKingPanics(t *testing.T) {
	b := NewEmptyBoard(White)
	b.Place(sq(t, "e1"), Piece{Type: King, Color: White})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrKingMissing) {
			t.Errorf("recovered %v, want an error wrapping ErrKingMissing", r)
		}
	}()
	IsInCheck(b, Black)
	t.Error("IsInCheck should panic without a black king")
}

func TestLegalMovesLeaveBoardUnchanged(t *testing.T) {
	b := NewBoard()
	playSequence := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}}
	for _, m := range playSequence {
		b.Apply(mv(t, m[0], m[1]))
	}
	before := positionOf(b)
	depth := len(b.History())

	AllLegalMoves(b, White)
	AllLegalMoves(b, Black)

	if diff := cmp.Diff(before, positionOf(b)); diff != "" {
		t.Errorf("probing changed the board (-before +after):\n%s", diff)
	}
	if got := len(b.History()); got != depth {
		t.Errorf("probing left %d entries on the undo stack, want %d", got, depth)
	}
}
