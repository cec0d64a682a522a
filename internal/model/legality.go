package model

// LegalMoves narrows the pseudo-legal moves of the piece on from to those that do not leave
// its own king attacked. Every candidate is probed with Apply/Undo on b itself.
func LegalMoves(b *Board, from Square) []Move {
	piece := b.At(from)
	if piece.IsEmpty() {
		return nil
	}
	var legal []Move
	for _, m := range PseudoLegalMoves(b, from) {
		b.Apply(m)
		exposed := IsInCheck(b, piece.Color)
		if _, err := b.Undo(); err != nil {
			panic(err)
		}
		if !exposed {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllLegalMoves returns the legal moves of every piece of color c.
func AllLegalMoves(b *Board, c Color) []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p.IsEmpty() || p.Color != c {
				continue
			}
			moves = append(moves, LegalMoves(b, Square{Row: row, Col: col})...)
		}
	}
	return moves
}

// hasLegalMove stops at the first legal move found.
func hasLegalMove(b *Board, c Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p.IsEmpty() || p.Color != c {
				continue
			}
			if len(LegalMoves(b, Square{Row: row, Col: col})) > 0 {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether the king of color c is attacked. A missing king is an engine
// bug and panics with an error wrapping ErrKingMissing.
func IsInCheck(b *Board, c Color) bool {
	king, err := b.KingSquare(c)
	if err != nil {
		panic(err)
	}
	return IsSquareAttacked(b, king, c.Opponent())
}
