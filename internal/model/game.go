package model

type Outcome string

const (
	Ongoing   Outcome = "ongoing"
	Checkmate Outcome = "checkmate"
	Stalemate Outcome = "stalemate"
)

type Status struct {
	ToMove  Color   `json:"toMove"`
	IsCheck bool    `json:"isCheck"`
	Outcome Outcome `json:"outcome"`
	Winner  Color   `json:"winner,omitempty"`
}

func (s Status) IsOver() bool {
	return s.Outcome != Ongoing
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// GameState is the read-only view handed to renderers and transports.
type GameState struct {
	Board          [8][8]*Piece   `json:"board"`
	Status         Status         `json:"status"`
	LastMove       *Move          `json:"lastMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Castling       CastlingRights `json:"castling"`
	EnPassant      EnPassantState `json:"enPassant"`
}

// Game drives one board through a game. It is not safe for concurrent use.
type Game struct {
	board    *Board
	status   Status
	captured CapturedPieces
}

func NewGame() *Game {
	g := &Game{board: NewBoard(), captured: newCapturedPieces()}
	g.evaluate()
	return g
}

// NewGameFromBoard starts a game from an arbitrary position. The game takes ownership of b.
func NewGameFromBoard(b *Board) (*Game, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	g := &Game{board: b, captured: newCapturedPieces()}
	g.evaluate()
	return g, nil
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// SubmitMove plays m for the side to move. It returns false, leaving the game untouched,
// when the game is over or m is not a legal move.
func (g *Game) SubmitMove(m Move) bool {
	if g.status.IsOver() || !m.OnBoard() {
		return false
	}
	piece := g.board.At(m.From)
	if piece.IsEmpty() || piece.Color != g.board.Turn {
		return false
	}
	if !containsMove(LegalMoves(g.board, m.From), m) {
		return false
	}

	// Promotion is always to a queen, whatever the caller asked for.
	m.Promotion = ""
	if piece.Type == Pawn && m.To.Row == piece.Color.promotionRow() {
		m.Promotion = Queen
	}

	entry := g.board.Apply(m)
	if !entry.Captured.IsEmpty() {
		switch piece.Color {
		case White:
			g.captured.White = append(g.captured.White, entry.Captured)
		case Black:
			g.captured.Black = append(g.captured.Black, entry.Captured)
		}
	}
	g.board.Turn = g.board.Turn.Opponent()
	g.evaluate()
	return true
}

// evaluate recomputes check and outcome for the side to move.
func (g *Game) evaluate() {
	toMove := g.board.Turn
	g.status = Status{
		ToMove:  toMove,
		IsCheck: IsInCheck(g.board, toMove),
		Outcome: Ongoing,
	}
	if hasLegalMove(g.board, toMove) {
		return
	}
	if g.status.IsCheck {
		g.status.Outcome = Checkmate
		g.status.Winner = toMove.Opponent()
		return
	}
	g.status.Outcome = Stalemate
}

// GetLegalMoves returns the legal moves of the piece on s, or nothing when the game is over
// or s does not hold a piece of the side to move.
func (g *Game) GetLegalMoves(s Square) []Move {
	if g.status.IsOver() || !s.OnBoard() {
		return []Move{}
	}
	if p := g.board.At(s); p.IsEmpty() || p.Color != g.board.Turn {
		return []Move{}
	}
	moves := LegalMoves(g.board, s)
	if moves == nil {
		return []Move{}
	}
	return moves
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Snapshot() [8][8]*Piece {
	return g.board.Snapshot()
}

// History returns the accepted moves in order.
func (g *Game) History() []Move {
	return g.board.History()
}

func (g *Game) GetState() GameState {
	history := g.History()
	state := GameState{
		Board:       g.Snapshot(),
		Status:      g.status,
		MoveHistory: history,
		CapturedPieces: CapturedPieces{
			White: append([]Piece{}, g.captured.White...),
			Black: append([]Piece{}, g.captured.Black...),
		},
		Castling:  g.board.Castling,
		EnPassant: g.board.EnPassant,
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		state.LastMove = &last
	}
	return state
}

// Board returns a copy of the current board for inspection or independent exploration.
func (g *Game) Board() *Board {
	return g.board.Clone()
}
