// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists game records. *storage.Storage satisfies it.
type Store interface {
	SaveGame(rec storage.GameRecord) error
	LoadGame(id string) (storage.GameRecord, error)
	ListGames() ([]storage.GameRecord, error)
	DeleteGame(id string) error
}

type GameManager struct {
	sessions map[string]*Session
	store    Store
	log      zerolog.Logger
	mu       sync.RWMutex
}

func NewGameManager(store Store, log zerolog.Logger) *GameManager {
	return &GameManager{
		sessions: make(map[string]*Session),
		store:    store,
		log:      log,
	}
}

func (gm *GameManager) CreateGame() (*Session, error) {
	gameID := uuid.New().String()
	session := newSession(gameID, time.Now().UTC(), model.NewGame(), gm.store, gm.log)

	session.mu.Lock()
	rec := session.record()
	session.mu.Unlock()
	if err := gm.store.SaveGame(rec); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrPersist, gameID, err)
	}

	gm.mu.Lock()
	gm.sessions[gameID] = session
	gm.mu.Unlock()

	gm.log.Info().Str("game_id", gameID).Msg("game created")
	return session, nil
}

// GetSession returns the live session for gameID, replaying it from the store
// if this process has not loaded it yet.
func (gm *GameManager) GetSession(gameID string) (*Session, error) {
	gm.mu.RLock()
	session, exists := gm.sessions[gameID]
	gm.mu.RUnlock()
	if exists {
		return session, nil
	}

	// Loading holds the write lock so a concurrent DeleteGame cannot leave a
	// session behind for a record it already removed.
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if existing, ok := gm.sessions[gameID]; ok {
		return existing, nil
	}

	rec, err := gm.store.LoadGame(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}

	game, err := replay(rec)
	if err != nil {
		return nil, err
	}

	session = newSession(gameID, rec.CreatedAt, game, gm.store, gm.log)
	gm.sessions[gameID] = session

	gm.log.Info().Str("game_id", gameID).Int("moves", len(rec.Moves)).Msg("game restored")
	return session, nil
}

func replay(rec storage.GameRecord) (*model.Game, error) {
	game := model.NewGame()
	for i, m := range rec.Moves {
		if !game.SubmitMove(m) {
			return nil, fmt.Errorf("%w: game %s move %d (%s)", ErrCorruptRecord, rec.ID, i+1, m)
		}
	}
	return game, nil
}

func (gm *GameManager) ListGames() ([]storage.GameRecord, error) {
	return gm.store.ListGames()
}

// DeleteGame removes the game from the store and closes its observers. The live
// session is closed first so an in-flight move cannot write the record back.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if session, exists := gm.sessions[gameID]; exists {
		delete(gm.sessions, gameID)
		session.close()
	}

	if err := gm.store.DeleteGame(gameID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}

	gm.log.Info().Str("game_id", gameID).Msg("game deleted")
	return nil
}
