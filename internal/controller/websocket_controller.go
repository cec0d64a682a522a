package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.LocalGameID).(string)
	log := wsc.log.With().Str("game_id", gameID).Logger()

	// Register this connection with the game; it receives the current state right away
	connID, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		wsc.writeError(c, err)
		c.Close()
		return
	}
	log = log.With().Str("conn_id", connID).Logger()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read loop ended")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("unparseable message")
			wsc.reply(gameID, connID, errorMessage(err))
			continue
		}

		reply, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("message failed")
			reply = errorMessage(err)
		}
		if reply != nil {
			wsc.reply(gameID, connID, reply)
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, connID)
}

// handleMessage returns the direct reply to msg, if any. Accepted moves have no
// direct reply since every observer receives the new state.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.Move
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		_, accepted, err := wsc.gameService.HandleMove(gameID, move)
		if errors.Is(err, service.ErrPersist) {
			wsc.log.Error().Err(err).Str("game_id", gameID).Msg("accepted move not saved")
		} else if err != nil {
			return nil, err
		}
		if accepted {
			return nil, nil
		}
		return newReply(ws.MessageTypeRejected, ws.RejectedPayload{Move: move})

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.Square)
		if err != nil {
			return nil, err
		}
		return newReply(ws.MessageTypeLegalMoves, ws.LegalMovesReply{Square: req.Square, Moves: moves})

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) reply(gameID, connID string, msg *ws.Message) {
	if err := wsc.gameService.Send(gameID, connID, *msg); err != nil {
		wsc.log.Debug().Err(err).Str("game_id", gameID).Str("conn_id", connID).Msg("reply failed")
	}
}

// writeError is only used before the connection is registered.
func (wsc *WebSocketController) writeError(c *websocket.Conn, err error) {
	if werr := c.WriteJSON(errorMessage(err)); werr != nil {
		wsc.log.Debug().Err(werr).Msg("write error message")
	}
}

func newReply(t ws.MessageType, payload any) (*ws.Message, error) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func errorMessage(err error) *ws.Message {
	msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	return &msg
}
