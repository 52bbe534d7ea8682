package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casenight/casenight-backend/internal/coordinator"
	"github.com/casenight/casenight-backend/internal/types"
)

const (
	readLimit    = 32768
	writeTimeout = 3 * time.Second
)

// Handler upgrades a connection and bridges it to the coordinator:
// inbound frames are decoded into coordinator messages, outbound
// messages are drained from the hub outbox by a writer goroutine. The
// connection id is the player's identity for its lifetime.
func Handler(h *Hub, coord *coordinator.Coordinator, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")
		conn.SetReadLimit(readLimit)

		connID := uuid.NewString()
		cl := h.register(connID)
		defer func() {
			coord.Inbox() <- coordinator.Disconnect{ConnID: connID}
			h.unregister(connID)
		}()
		log.Debug("connection opened", zap.String("conn", connID))

		// Writer. Exits when the hub closes the outbox (disconnect or
		// slow-consumer drop).
		go func() {
			for msg := range cl.out {
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal outbound", zap.String("event", msg.Event), zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			conn.Close(websocket.StatusPolicyViolation, "slow consumer")
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("connection read ended", zap.String("conn", connID), zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				h.Send(connID, types.EvError, "malformed message")
				continue
			}
			msg, ok := toCoordMsg(connID, cm)
			if !ok {
				h.Send(connID, types.EvError, "unknown or malformed event")
				continue
			}
			coord.Inbox() <- msg
		}
	}
}

// toCoordMsg decodes one wire event into its coordinator variant. The
// event set is closed; anything outside it, or a payload that does not
// decode, is rejected here so the coordinator only ever sees well-formed
// messages.
func toCoordMsg(connID string, cm types.ClientMessage) (coordinator.Msg, bool) {
	switch cm.Event {
	case types.EvCreateRoom:
		var p types.CreateRoomPayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.CreateRoom{
			ConnID:     connID,
			PlayerName: p.PlayerName,
			Avatar:     p.Avatar,
			Private:    p.IsPrivate,
			Password:   p.Password,
		}, true

	case types.EvJoinRoom:
		var p types.JoinRoomPayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.JoinRoom{
			ConnID:     connID,
			RoomCode:   p.RoomCode,
			PlayerName: p.PlayerName,
			Password:   p.Password,
			Avatar:     p.Avatar,
		}, true

	case types.EvStartGame:
		var p types.StartGamePayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.StartGame{ConnID: connID, RoomCode: p.RoomCode, CaseID: p.CaseID, Mode: p.Mode}, true

	case types.EvCastVote:
		var p types.CastVotePayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.CastVote{ConnID: connID, RoomCode: p.RoomCode, NextSceneID: p.NextSceneID}, true

	case types.EvRequestHint:
		var p types.RequestHintPayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.RequestHint{ConnID: connID, RoomCode: p.RoomCode, SceneID: p.SceneID}, true

	case types.EvRequestScene, types.EvMakeChoice:
		var p types.RequestScenePayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.RequestScene{ConnID: connID, RoomCode: p.RoomCode, SceneID: p.SceneID}, true

	case types.EvMoveEvidence:
		var p types.MoveEvidencePayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.MoveEvidence{ConnID: connID, RoomCode: p.RoomCode, ID: p.ID, X: p.X, Y: p.Y}, true

	case types.EvGetBoardState:
		var p types.BoardStatePayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.GetBoardState{ConnID: connID, RoomCode: p.RoomCode}, true

	case types.EvSendChat:
		var p types.ChatPayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.Chat{ConnID: connID, RoomCode: p.RoomCode, Message: p.Message}, true

	case types.EvTyping:
		var p types.TypingPayload
		if !decode(cm.Data, &p) {
			return nil, false
		}
		return coordinator.Typing{ConnID: connID, RoomCode: p.RoomCode}, true

	case types.EvGetPublicRooms:
		return coordinator.ListRooms{ConnID: connID}, true

	default:
		return nil, false
	}
}

func decode(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
