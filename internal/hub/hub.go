package hub

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/vuchint-sutapalli/pictionary/internal/game"
	"github.com/vuchint-sutapalli/pictionary/internal/proto"
	"github.com/vuchint-sutapalli/pictionary/internal/room"
)

type HubMsg interface{ isHubMsg() }

// Assign places a player into the first room with a free slot, creating a
// new one when every room is full. Reply receives the chosen room.
type Assign struct {
	Player game.Player
	Outbox chan proto.ServerEvent
	Reply  chan *room.Room
}

// Disconnect prunes the connection from its room; the room is torn down
// the moment its last member leaves.
type Disconnect struct {
	ClientID string
}

// GetRoom resolves a room id named in a client payload. Reply may receive
// nil; events against unknown rooms are no-ops.
type GetRoom struct {
	ID    string
	Reply chan *room.Room
}

// Stats lists current rooms for the debug endpoint.
type Stats struct {
	Reply chan []RoomStats
}

type ShutdownHub struct{}

func (Assign) isHubMsg()      {}
func (Disconnect) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (Stats) isHubMsg()       {}
func (ShutdownHub) isHubMsg() {}

type RoomStats struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

type Options struct {
	RoundSeconds int
	Capacity     int
	Words        []string
	Clock        room.Clock
	Logger       *zap.Logger
}

type entry struct {
	room    *room.Room
	members int
}

// Hub owns the registry of live rooms. Like the rooms themselves it is an
// actor: one goroutine, all mutations via the inbox, so find-then-create
// assignment is atomic.
type Hub struct {
	inbox    chan HubMsg
	rooms    map[string]*entry
	order    []string          // creation order, assignment scans it first-fit
	byClient map[string]string // connection id -> room id
	seq      int               // lifetime creation counter, keeps ids unique forever
	opts     Options
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, opts Options) *Hub {
	if opts.RoundSeconds <= 0 {
		opts.RoundSeconds = 60
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 8
	}
	if opts.Clock == nil {
		opts.Clock = room.RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		rooms:    make(map[string]*entry),
		byClient: make(map[string]string),
		opts:     opts,
		log:      opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Assign:
				msg.Reply <- h.assign(msg)

			case Disconnect:
				h.disconnect(msg.ClientID)

			case GetRoom:
				if e := h.rooms[msg.ID]; e != nil {
					msg.Reply <- e.room
				} else {
					msg.Reply <- nil
				}

			case Stats:
				stats := make([]RoomStats, 0, len(h.order))
				for _, id := range h.order {
					stats = append(stats, RoomStats{ID: id, Players: h.rooms[id].members})
				}
				msg.Reply <- stats

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) assign(msg Assign) *room.Room {
	var e *entry
	for _, id := range h.order {
		if h.rooms[id].members < h.opts.Capacity {
			e = h.rooms[id]
			break
		}
	}
	if e == nil {
		e = h.createRoom()
	}

	e.members++
	h.byClient[msg.Player.ID] = e.room.ID()
	e.room.Inbox() <- room.Join{Player: msg.Player, Outbox: msg.Outbox}
	return e.room
}

// createRoom allocates a fresh room. The id combines wall time with a
// lifetime sequence number: the sequence keeps ids unique across the whole
// registry lifetime, so a deleted room's id is never handed out again.
func (h *Hub) createRoom() *entry {
	h.seq++
	id := fmt.Sprintf("room-%d-%d", time.Now().UnixMilli(), h.seq)

	rm := room.New(h.ctx, id, room.Options{
		RoundSeconds: h.opts.RoundSeconds,
		Words:        h.opts.Words,
		Clock:        h.opts.Clock,
		Rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:       h.log,
	})
	e := &entry{room: rm}
	h.rooms[id] = e
	h.order = append(h.order, id)
	h.log.Info("room created", zap.String("room", id))
	return e
}

func (h *Hub) disconnect(clientID string) {
	roomID, ok := h.byClient[clientID]
	if !ok {
		return // connected but never played
	}
	delete(h.byClient, clientID)

	e := h.rooms[roomID]
	if e == nil {
		return
	}
	e.room.Inbox() <- room.Leave{ClientID: clientID}
	e.members--

	if e.members <= 0 {
		h.removeRoom(roomID)
	}
}

func (h *Hub) removeRoom(roomID string) {
	e := h.rooms[roomID]
	if e == nil {
		return
	}
	select {
	case e.room.Inbox() <- room.Shutdown{}:
	case <-e.room.Done():
	}
	delete(h.rooms, roomID)
	for i, id := range h.order {
		if id == roomID {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.log.Info("room removed", zap.String("room", roomID))
}

func (h *Hub) shutdown() {
	for id, e := range h.rooms {
		select {
		case e.room.Inbox() <- room.Shutdown{}:
		case <-e.room.Done():
		}
		delete(h.rooms, id)
	}
	h.order = nil
	clear(h.byClient)
	h.cancel()
}
