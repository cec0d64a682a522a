package model

type direction struct {
	dRow, dCol int
}

var (
	orthogonal = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allEight   = append(append([]direction{}, orthogonal...), diagonal...)

	// slidingDirections holds the direction vectors of pieces that move until blocked.
	slidingDirections = map[PieceType][]direction{
		Bishop: diagonal,
		Rook:   orthogonal,
		Queen:  allEight,
	}

	// steppingOffsets holds the fixed jumps of pieces that move a single step.
	steppingOffsets = map[PieceType][]direction{
		Knight: {{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}},
		King:   allEight,
	}
)

// PseudoLegalMoves returns the moves the piece on from could make ignoring whether its own
// king is left attacked. An empty square yields no moves.
func PseudoLegalMoves(b *Board, from Square) []Move {
	piece := b.At(from)
	if piece.IsEmpty() {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, from, piece.Color)
	case King:
		moves := toMoves(from, stepTargets(b, from, piece.Color, steppingOffsets[King]))
		return append(moves, castlingMoves(b, from, piece.Color)...)
	case Knight:
		return toMoves(from, stepTargets(b, from, piece.Color, steppingOffsets[Knight]))
	case Bishop, Rook, Queen:
		return toMoves(from, slideTargets(b, from, piece.Color, slidingDirections[piece.Type]))
	}
	return nil
}

// AttackReach returns the squares the piece on from attacks. It never consults legality,
// so check detection built on it cannot recurse into the legality filter.
func AttackReach(b *Board, from Square) []Square {
	piece := b.At(from)
	switch piece.Type {
	case Pawn:
		var targets []Square
		for _, dCol := range []int{-1, 1} {
			to := Square{Row: from.Row + piece.Color.forward(), Col: from.Col + dCol}
			if to.OnBoard() {
				targets = append(targets, to)
			}
		}
		return targets
	case Knight, King:
		return stepTargets(b, from, piece.Color, steppingOffsets[piece.Type])
	case Bishop, Rook, Queen:
		return slideTargets(b, from, piece.Color, slidingDirections[piece.Type])
	}
	return nil
}

// IsSquareAttacked reports whether any piece of color by attacks s.
func IsSquareAttacked(b *Board, s Square, by Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Cells[row][col]; p.IsEmpty() || p.Color != by {
				continue
			}
			for _, target := range AttackReach(b, Square{Row: row, Col: col}) {
				if target == s {
					return true
				}
			}
		}
	}
	return false
}

func slideTargets(b *Board, from Square, c Color, dirs []direction) []Square {
	var targets []Square
	for _, dir := range dirs {
		for to := from.offset(dir); to.OnBoard(); to = to.offset(dir) {
			occupant := b.At(to)
			if occupant.IsEmpty() {
				targets = append(targets, to)
				continue
			}
			if occupant.Color != c {
				targets = append(targets, to)
			}
			break
		}
	}
	return targets
}

func stepTargets(b *Board, from Square, c Color, offsets []direction) []Square {
	var targets []Square
	for _, off := range offsets {
		to := from.offset(off)
		if !to.OnBoard() {
			continue
		}
		if occupant := b.At(to); occupant.IsEmpty() || occupant.Color != c {
			targets = append(targets, to)
		}
	}
	return targets
}

func toMoves(from Square, targets []Square) []Move {
	moves := make([]Move, 0, len(targets))
	for _, to := range targets {
		moves = append(moves, Move{From: from, To: to})
	}
	return moves
}

func pawnMoves(b *Board, from Square, c Color) []Move {
	var moves []Move
	add := func(to Square) {
		m := Move{From: from, To: to}
		if to.Row == c.promotionRow() {
			m.Promotion = Queen
		}
		moves = append(moves, m)
	}

	one := Square{Row: from.Row + c.forward(), Col: from.Col}
	if !one.OnBoard() {
		return nil
	}
	if b.At(one).IsEmpty() {
		add(one)
		two := Square{Row: from.Row + 2*c.forward(), Col: from.Col}
		if from.Row == c.pawnStartRow() && b.At(two).IsEmpty() {
			add(two)
		}
	}

	for _, dCol := range []int{-1, 1} {
		to := Square{Row: one.Row, Col: from.Col + dCol}
		if !to.OnBoard() {
			continue
		}
		target := b.At(to)
		if !target.IsEmpty() {
			if target.Color != c {
				add(to)
			}
			continue
		}
		if isEnPassantTarget(b, from, to, c) {
			add(to)
		}
	}
	return moves
}

// isEnPassantTarget reports whether a pawn of color c on from may capture en passant onto
// the empty square to.
func isEnPassantTarget(b *Board, from, to Square, c Color) bool {
	if !b.EnPassant.Active || b.EnPassant.Col != to.Col || from.Row != c.enPassantRow() {
		return false
	}
	victim := b.At(Square{Row: from.Row, Col: to.Col})
	return victim.Type == Pawn && victim.Color != c
}

func castlingMoves(b *Board, from Square, c Color) []Move {
	home := Square{Row: c.backRow(), Col: 4}
	if from != home {
		return nil
	}
	var moves []Move
	for _, kingside := range []bool{true, false} {
		if !b.Castling.Has(c, kingside) {
			continue
		}
		rookCol, step := 0, -1
		if kingside {
			rookCol, step = 7, 1
		}
		if rook := b.At(Square{Row: home.Row, Col: rookCol}); rook.Type != Rook || rook.Color != c {
			continue
		}
		empty := true
		for col := home.Col + step; col != rookCol; col += step {
			if !b.At(Square{Row: home.Row, Col: col}).IsEmpty() {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		transit := Square{Row: home.Row, Col: home.Col + step}
		dest := Square{Row: home.Row, Col: home.Col + 2*step}
		enemy := c.Opponent()
		if IsSquareAttacked(b, home, enemy) || IsSquareAttacked(b, transit, enemy) || IsSquareAttacked(b, dest, enemy) {
			continue
		}
		moves = append(moves, Move{From: home, To: dest})
	}
	return moves
}
