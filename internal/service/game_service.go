package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/storage"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	session, err := gs.gameManager.CreateGame()
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return session.ID, nil
}

func (gs *GameService) ListGames() ([]storage.GameRecord, error) {
	return gs.gameManager.ListGames()
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.State(), nil
}

func (gs *GameService) LegalMoves(gameID string, sq model.Square) ([]model.Move, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(sq), nil
}

// HandleMove reports whether the move was accepted along with the resulting state.
func (gs *GameService) HandleMove(gameID string, move model.Move) (model.GameState, bool, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.GameState{}, false, err
	}
	return session.SubmitMove(move)
}

func (gs *GameService) RegisterConnection(gameID string, conn Conn) (string, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return "", err
	}
	return session.RegisterConnection(conn)
}

func (gs *GameService) UnregisterConnection(gameID string, connID string) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(connID)
}

func (gs *GameService) Send(gameID string, connID string, msg ws.Message) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.Send(connID, msg)
}
