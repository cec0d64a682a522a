package controller

import (
	"encoding/json"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func message(t *testing.T, typ ws.MessageType, payload any) ws.Message {
	t.Helper()
	msg, err := ws.NewMessage(typ, payload)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

func TestHandleMessage(t *testing.T) {
	gs := newTestService(t)
	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	wsc := NewWebSocketController(gs, zerolog.Nop())

	e2e4 := model.Move{From: model.Square{Row: 6, Col: 4}, To: model.Square{Row: 4, Col: 4}}

	t.Run("legal moves", func(t *testing.T) {
		req := ws.LegalMovesRequest{Square: model.Square{Row: 6, Col: 4}}
		reply, err := wsc.handleMessage(gameID, message(t, ws.MessageTypeLegalMoves, req))
		if err != nil {
			t.Fatal(err)
		}
		if reply == nil || reply.Type != ws.MessageTypeLegalMoves {
			t.Fatalf("reply = %+v, want legalMoves", reply)
		}
		var got ws.LegalMovesReply
		if err := json.Unmarshal(reply.Payload, &got); err != nil {
			t.Fatal(err)
		}
		want := ws.LegalMovesReply{
			Square: req.Square,
			Moves:  []model.Move{{From: req.Square, To: model.Square{Row: 5, Col: 4}}, e2e4},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("reply (-want +got):\n%s", diff)
		}
	})

	t.Run("accepted move has no direct reply", func(t *testing.T) {
		reply, err := wsc.handleMessage(gameID, message(t, ws.MessageTypeMove, e2e4))
		if err != nil || reply != nil {
			t.Fatalf("reply = %+v, err = %v", reply, err)
		}
		state, err := gs.GetGameState(gameID)
		if err != nil {
			t.Fatal(err)
		}
		if state.Status.ToMove != model.Black {
			t.Errorf("to move = %s, want black", state.Status.ToMove)
		}
	})

	t.Run("rejected move", func(t *testing.T) {
		reply, err := wsc.handleMessage(gameID, message(t, ws.MessageTypeMove, e2e4))
		if err != nil {
			t.Fatal(err)
		}
		if reply == nil || reply.Type != ws.MessageTypeRejected {
			t.Fatalf("reply = %+v, want rejected", reply)
		}
		var got ws.RejectedPayload
		if err := json.Unmarshal(reply.Payload, &got); err != nil {
			t.Fatal(err)
		}
		if got.Move != e2e4 {
			t.Errorf("rejected move = %v, want %v", got.Move, e2e4)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := wsc.handleMessage(gameID, ws.Message{Type: "resign"}); err == nil {
			t.Error("unknown message type accepted")
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		if _, err := wsc.handleMessage("missing", message(t, ws.MessageTypeMove, e2e4)); err == nil {
			t.Error("move on unknown game accepted")
		}
	})
}
