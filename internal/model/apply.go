package model

// Apply plays m on the board with all its side effects and pushes the resulting UndoEntry
// on the undo stack. It does not validate m and does not change Turn.
func (b *Board) Apply(m Move) UndoEntry {
	mover := b.At(m.From)
	entry := UndoEntry{
		Move:       m,
		Moved:      mover,
		CapturedAt: m.To,
		Castling:   b.Castling,
		EnPassant:  b.EnPassant,
	}

	if target := b.At(m.To); !target.IsEmpty() {
		entry.Captured = target
	} else if mover.Type == Pawn && m.From.Col != m.To.Col && isEnPassantTarget(b, m.From, m.To, mover.Color) {
		entry.CapturedAt = Square{Row: m.From.Row, Col: m.To.Col}
		entry.Captured = b.At(entry.CapturedAt)
		b.set(entry.CapturedAt, Piece{})
	}

	b.set(m.To, mover)
	b.set(m.From, Piece{})

	if isCastle(mover, m) {
		rookFrom, rookTo := castleRookSquares(m)
		b.set(rookTo, b.At(rookFrom))
		b.set(rookFrom, Piece{})
		entry.Castled = true
	}

	if mover.Type == Pawn && m.To.Row == mover.Color.promotionRow() {
		b.set(m.To, Piece{Type: Queen, Color: mover.Color})
	}

	b.updateCastlingRights(mover, m.From, entry.Captured, entry.CapturedAt)

	if mover.Type == Pawn && abs(m.To.Row-m.From.Row) == 2 {
		b.EnPassant = EnPassantState{Active: true, Col: m.To.Col}
	} else {
		b.EnPassant = EnPassantState{}
	}

	b.history = append(b.history, entry)
	return entry
}

// Undo pops the most recent UndoEntry and restores the board to its state before the
// matching Apply.
func (b *Board) Undo() (UndoEntry, error) {
	if len(b.history) == 0 {
		return UndoEntry{}, ErrNothingToUndo
	}
	entry := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	m := entry.Move
	b.set(m.To, Piece{})
	b.set(m.From, entry.Moved)
	if !entry.Captured.IsEmpty() {
		b.set(entry.CapturedAt, entry.Captured)
	}
	if entry.Castled {
		rookFrom, rookTo := castleRookSquares(m)
		b.set(rookFrom, b.At(rookTo))
		b.set(rookTo, Piece{})
	}
	b.Castling = entry.Castling
	b.EnPassant = entry.EnPassant
	return entry, nil
}

// History returns the applied moves still on the undo stack, oldest first.
func (b *Board) History() []Move {
	moves := make([]Move, 0, len(b.history))
	for _, e := range b.history {
		moves = append(moves, e.Move)
	}
	return moves
}

func (b *Board) updateCastlingRights(mover Piece, from Square, captured Piece, capturedAt Square) {
	if mover.Type == King {
		b.Castling.clear(mover.Color, true)
		b.Castling.clear(mover.Color, false)
	}
	if mover.Type == Rook {
		b.clearRookRight(mover.Color, from)
	}
	if captured.Type == Rook {
		b.clearRookRight(captured.Color, capturedAt)
	}
}

// clearRookRight drops the right tied to a rook of color c that leaves its original square s.
func (b *Board) clearRookRight(c Color, s Square) {
	if s.Row != c.backRow() {
		return
	}
	switch s.Col {
	case 7:
		b.Castling.clear(c, true)
	case 0:
		b.Castling.clear(c, false)
	}
}

func isCastle(mover Piece, m Move) bool {
	return mover.Type == King && m.From.Row == m.To.Row && abs(m.To.Col-m.From.Col) == 2
}

func castleRookSquares(m Move) (from, to Square) {
	row := m.From.Row
	if m.To.Col > m.From.Col {
		return Square{Row: row, Col: 7}, Square{Row: row, Col: 5}
	}
	return Square{Row: row, Col: 0}, Square{Row: row, Col: 3}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
