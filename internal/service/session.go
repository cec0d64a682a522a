package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/storage"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// writeWait bounds each write to an observer. Writes happen under the session
// lock, so a stalled observer must not hold the game longer than this.
const writeWait = 5 * time.Second

// Conn is an observer connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type observer struct {
	conn Conn
	mu   sync.Mutex // writes to one connection must not interleave
}

func (o *observer) send(msg ws.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return o.conn.WriteJSON(msg)
}

// The connections watching a specific game
type gameConnections struct {
	byID map[string]*observer
	mu   sync.RWMutex
}

// Session owns one game and the connections observing it. The game itself is not
// safe for concurrent use, so every access goes through mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	closed      bool // set once the game is deleted; nothing is played or saved after
	game        *model.Game
	store       Store
	log         zerolog.Logger
	connections *gameConnections
}

func newSession(id string, createdAt time.Time, game *model.Game, store Store, log zerolog.Logger) *Session {
	return &Session{
		ID:        id,
		CreatedAt: createdAt,
		game:      game,
		store:     store,
		log:       log.With().Str("game_id", id).Logger(),
		connections: &gameConnections{
			byID: make(map[string]*observer),
		},
	}
}

func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetState()
}

func (s *Session) LegalMoves(sq model.Square) []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetLegalMoves(sq)
}

// SubmitMove hands m to the game. An accepted move is persisted and broadcast to
// every observer before SubmitMove returns. A non-nil error means the move was
// accepted but could not be saved.
func (s *Session) SubmitMove(m model.Move) (model.GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.GameState{}, false, fmt.Errorf("%w: %s", ErrGameNotFound, s.ID)
	}
	if !s.game.SubmitMove(m) {
		s.log.Debug().Stringer("move", m).Msg("move rejected")
		return s.game.GetState(), false, nil
	}

	state := s.game.GetState()
	s.log.Info().
		Stringer("move", m).
		Str("to_move", string(state.Status.ToMove)).
		Bool("check", state.Status.IsCheck).
		Str("outcome", string(state.Status.Outcome)).
		Msg("move accepted")

	var err error
	if saveErr := s.store.SaveGame(s.record()); saveErr != nil {
		err = fmt.Errorf("%w %s: %w", ErrPersist, s.ID, saveErr)
	}

	s.broadcast(state)
	return state, true, err
}

// record must be called with mu held.
func (s *Session) record() storage.GameRecord {
	status := s.game.Status()
	return storage.GameRecord{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Moves:     s.game.History(),
		Outcome:   status.Outcome,
		Winner:    status.Winner,
	}
}

// RegisterConnection adds conn as an observer and sends it the current state.
// It returns the id used to address or unregister the connection.
func (s *Session) RegisterConnection(conn Conn) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", fmt.Errorf("%w: %s", ErrGameNotFound, s.ID)
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.GetState())
	if err != nil {
		return "", err
	}

	obs := &observer{conn: conn}
	if err := obs.send(msg); err != nil {
		return "", fmt.Errorf("send initial state: %w", err)
	}

	connID := uuid.New().String()
	s.connections.mu.Lock()
	s.connections.byID[connID] = obs
	count := len(s.connections.byID)
	s.connections.mu.Unlock()

	s.log.Info().Str("conn_id", connID).Int("observers", count).Msg("observer registered")
	return connID, nil
}

func (s *Session) UnregisterConnection(connID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if _, exists := s.connections.byID[connID]; exists {
		delete(s.connections.byID, connID)
		s.log.Info().Str("conn_id", connID).Int("observers", len(s.connections.byID)).Msg("observer unregistered")
	}
}

// Send writes msg to a single observer.
func (s *Session) Send(connID string, msg ws.Message) error {
	s.connections.mu.RLock()
	obs, exists := s.connections.byID[connID]
	s.connections.mu.RUnlock()

	if !exists {
		return fmt.Errorf("connection %s not registered", connID)
	}
	return obs.send(msg)
}

func (s *Session) observerCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.byID)
}

// broadcast must be called with mu held so observers see states in move order.
func (s *Session) broadcast(state model.GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal state")
		return
	}

	// Take a snapshot so writes happen without holding the connections lock
	s.connections.mu.RLock()
	active := make(map[string]*observer, len(s.connections.byID))
	for connID, obs := range s.connections.byID {
		active[connID] = obs
	}
	s.connections.mu.RUnlock()

	var failed []string
	for connID, obs := range active {
		if err := obs.send(msg); err != nil {
			s.log.Warn().Err(err).Str("conn_id", connID).Msg("failed to send state, dropping observer")
			failed = append(failed, connID)
		}
	}

	if len(failed) == 0 {
		return
	}
	s.connections.mu.Lock()
	for _, connID := range failed {
		delete(s.connections.byID, connID)
	}
	s.connections.mu.Unlock()
}

// close marks the session deleted, then closes and forgets every observer.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	for connID, obs := range s.connections.byID {
		if err := obs.conn.Close(); err != nil {
			s.log.Debug().Err(err).Str("conn_id", connID).Msg("close observer")
		}
		delete(s.connections.byID, connID)
	}
}
