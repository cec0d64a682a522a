package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"

	// server -> client; legalMoves is also used for the reply
	MessageTypeGameState MessageType = "gameState"
	MessageTypeRejected  MessageType = "rejected"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type LegalMovesRequest struct {
	Square model.Square `json:"square"`
}

type LegalMovesReply struct {
	Square model.Square `json:"square"`
	Moves  []model.Move `json:"moves"`
}

type RejectedPayload struct {
	Move model.Move `json:"move"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a typed envelope.
func NewMessage(t MessageType, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
