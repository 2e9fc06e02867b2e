package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vuchint-sutapalli/pictionary/internal/game"
	"github.com/vuchint-sutapalli/pictionary/internal/hub"
	"github.com/vuchint-sutapalli/pictionary/internal/proto"
	"github.com/vuchint-sutapalli/pictionary/internal/room"
)

// Handler is the event gateway: it translates inbound connection events
// into hub/room messages and drains the room's outbound events back onto
// the socket. It holds no game state of its own.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		clog := log.With(zap.String("client", clientID))
		out := make(chan proto.ServerEvent, 32)

		var assigned *room.Room

		// The room closes out when it drops or removes us; a client that
		// never played has no room, so the gateway closes it instead.
		// Disconnect is idempotent on the hub side.
		defer func() {
			h.Inbox() <- hub.Disconnect{ClientID: clientID}
			if assigned == nil {
				close(out)
			}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for evt := range out {
				payload, err := json.Marshal(evt)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm proto.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				clog.Warn("bad json from client", zap.Error(err))
				continue
			}

			switch cm.Type {
			case proto.MsgPlay:
				if assigned != nil {
					clog.Warn("play after assignment ignored")
					continue
				}
				reply := make(chan *room.Room, 1)
				h.Inbox() <- hub.Assign{
					Player: game.Player{ID: clientID, Username: cm.Username},
					Outbox: out,
					Reply:  reply,
				}
				assigned = <-reply

			case proto.MsgGuess:
				rm := resolve(h, assigned, cm.Room)
				if rm == nil {
					continue
				}
				send(rm, room.Guess{From: clientID, UserID: cm.UserID, Text: cm.Guess})

			case proto.MsgDrawLine:
				if cm.CurrentPoint == nil {
					clog.Warn("draw-line missing currentPoint")
					continue
				}
				rm := resolve(h, assigned, cm.Room)
				if rm == nil {
					continue
				}
				send(rm, room.Stroke{Segment: game.StrokeSegment{
					PrevPoint:    cm.PrevPoint,
					CurrentPoint: *cm.CurrentPoint,
					Color:        cm.CurrentColor,
					Room:         cm.Room,
				}})

			case proto.MsgClear:
				rm := resolve(h, assigned, cm.Room)
				if rm == nil {
					continue
				}
				send(rm, room.Clear{})

			default:
				clog.Warn("unknown message type", zap.String("type", cm.Type))
			}
		}
	}
}

// resolve maps a room id named in a payload to a live room, preferring the
// connection's own assignment. Unknown ids resolve to nil and the event is
// dropped, never an error back up the stack.
func resolve(h *hub.Hub, assigned *room.Room, id string) *room.Room {
	if assigned != nil && assigned.ID() == id {
		return assigned
	}
	reply := make(chan *room.Room, 1)
	h.Inbox() <- hub.GetRoom{ID: id, Reply: reply}
	return <-reply
}

// send delivers into a room inbox without ever blocking on a room that has
// shut down underneath us.
func send(rm *room.Room, msg room.Msg) {
	select {
	case rm.Inbox() <- msg:
	case <-rm.Done():
	}
}
