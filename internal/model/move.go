package model

import "fmt"

type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m Move) OnBoard() bool {
	return m.From.OnBoard() && m.To.OnBoard()
}

// SameSquares compares moves by (from, to) only.
func (m Move) SameSquares(o Move) bool {
	return m.From == o.From && m.To == o.To
}

func (m Move) String() string {
	if m.Promotion != "" {
		return fmt.Sprintf("%s%s=%s", m.From, m.To, m.Promotion.symbol())
	}
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// UndoEntry snapshots everything Apply changed so Undo can invert it.
type UndoEntry struct {
	Move       Move           `json:"move"`
	Moved      Piece          `json:"moved"`
	Captured   Piece          `json:"captured"`
	CapturedAt Square         `json:"capturedAt"`
	Castled    bool           `json:"castled"`
	Castling   CastlingRights `json:"castling"`
	EnPassant  EnPassantState `json:"enPassant"`
}

func containsMove(moves []Move, m Move) bool {
	for _, legal := range moves {
		if legal.SameSquares(m) {
			return true
		}
	}
	return false
}
