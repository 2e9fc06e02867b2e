package room

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/vuchint-sutapalli/pictionary/internal/game"
	"github.com/vuchint-sutapalli/pictionary/internal/proto"
)

// Room is one game session. A single goroutine owns all of its state, so
// membership changes, strokes, guesses and timer ticks are serialized by
// construction; everything talks to it through the inbox.
type Room struct {
	id    string
	inbox chan Msg

	members  []*game.Player // join order = turn order
	strokes  []game.StrokeSegment
	word     string
	drawerID string
	timeLeft int

	clients map[string]chan proto.ServerEvent

	roundSeconds int
	words        []string
	clock        Clock
	timer        Timer
	timerGen     int
	rng          *rand.Rand
	log          *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

type Options struct {
	RoundSeconds int
	Words        []string
	Clock        Clock
	Rand         *rand.Rand
	Logger       *zap.Logger
}

func New(parent context.Context, id string, opts Options) *Room {
	if opts.RoundSeconds <= 0 {
		opts.RoundSeconds = 60
	}
	if len(opts.Words) == 0 {
		opts.Words = game.Words
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		id:           id,
		inbox:        make(chan Msg, 64),
		clients:      make(map[string]chan proto.ServerEvent),
		roundSeconds: opts.RoundSeconds,
		words:        opts.Words,
		clock:        opts.Clock,
		rng:          opts.Rand,
		log:          opts.Logger.With(zap.String("room", id)),
		ctx:          ctx,
		cancel:       cancel,
	}
	go r.loop()
	return r
}

func (r *Room) ID() string { return r.id }

// Inbox is where the gateway and the hub send messages.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

// Done closes once the room has shut down; senders select on it so they
// never block on a dead room.
func (r *Room) Done() <-chan struct{} { return r.ctx.Done() }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.join(msg)

			case Leave:
				r.leave(msg.ClientID)

			case Guess:
				r.submitGuess(msg)

			case Stroke:
				r.strokes = append(r.strokes, msg.Segment)
				r.broadcast(proto.ServerEvent{Type: proto.EvtDrawLine, Data: msg.Segment})

			case Clear:
				r.strokes = nil
				r.broadcast(proto.ServerEvent{Type: proto.EvtClear})

			case tick:
				r.tick(msg.gen)

			case GetState:
				msg.Reply <- r.view()

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) join(msg Join) {
	p := msg.Player
	r.members = append(r.members, &p)
	r.clients[p.ID] = msg.Outbox

	// First member in: the round begins immediately, so the your-turn and
	// new-round announcements precede the assignment snapshot, same as a
	// later joiner sees them relative to an already-running round.
	if r.drawerID == "" {
		r.advanceTurn()
	}

	r.sendTo(p.ID, proto.ServerEvent{
		Type: proto.EvtRoomAssignment,
		Data: proto.RoomAssignmentData{
			Room:          r.id,
			DrawingData:   r.snapshotStrokes(),
			PName:         p.Username,
			CurrentWord:   r.word,
			CurrentDrawer: r.drawerID,
		},
	})

	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		names = append(names, m.Username)
	}
	r.broadcast(proto.ServerEvent{
		Type: proto.EvtNewUserJoined,
		Data: proto.NewUserJoinedData{PName: p.Username, Players: names},
	})

	r.log.Info("player joined",
		zap.String("player", p.ID),
		zap.String("username", p.Username),
		zap.Int("members", len(r.members)))
}

func (r *Room) leave(clientID string) {
	if ch, ok := r.clients[clientID]; ok {
		close(ch)
		delete(r.clients, clientID)
	}
	for i, m := range r.members {
		if m.ID == clientID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}

	// A departing drawer does not cut the round short; it runs out and the
	// rotation resumes from the head of the member list.

	if len(r.members) == 0 {
		r.stopTimer()
	}
	r.log.Info("player left", zap.String("player", clientID), zap.Int("members", len(r.members)))
}

func (r *Room) submitGuess(msg Guess) {
	uid := msg.UserID
	if uid == "" {
		uid = msg.From
	}

	if !game.MatchGuess(r.word, msg.Text) {
		r.broadcastExcept(msg.From, proto.ServerEvent{
			Type: proto.EvtWrongGuess,
			Data: proto.WrongGuessData{UserID: uid, Guess: msg.Text},
		})
		return
	}

	award := game.Award(r.timeLeft)
	for _, m := range r.members {
		if m.ID == uid {
			m.Score += award
			break
		}
	}
	r.broadcast(proto.ServerEvent{
		Type: proto.EvtCorrectGuess,
		Data: proto.CorrectGuessData{UserID: uid, Score: award},
	})
	r.log.Info("correct guess", zap.String("player", uid), zap.Int("award", award))
	// Turn advancement stays timer-driven; the round keeps running.
}

// startRound picks a fresh word, resets the countdown and announces the
// turn. Any previously armed tick is invalidated before the new one is
// armed, so at most one timer is ever outstanding.
func (r *Room) startRound() {
	r.stopTimer()
	r.word = game.RandomWord(r.rng, r.words)
	r.timeLeft = r.roundSeconds

	r.sendTo(r.drawerID, proto.ServerEvent{
		Type: proto.EvtYourTurn,
		Data: proto.YourTurnData{Word: r.word, TimeLeft: r.timeLeft, Drawer: r.drawerID},
	})
	r.broadcast(proto.ServerEvent{
		Type: proto.EvtNewRound,
		Data: proto.NewRoundData{TimeLeft: r.timeLeft, Drawer: r.drawerID},
	})

	r.armTick()
	r.log.Info("round started", zap.String("drawer", r.drawerID), zap.Int("seconds", r.timeLeft))
}

func (r *Room) tick(gen int) {
	if gen != r.timerGen {
		return // stale: the round was cancelled or restarted after this fired
	}
	r.timeLeft--
	r.broadcast(proto.ServerEvent{
		Type: proto.EvtTimerUpdate,
		Data: proto.TimerUpdateData{TimeLeft: r.timeLeft},
	})
	if r.timeLeft <= 0 {
		r.timer = nil
		r.timerGen++
		r.broadcast(proto.ServerEvent{Type: proto.EvtTimeUp})
		r.advanceTurn()
		return
	}
	r.armTick()
}

// advanceTurn rotates the drawer round-robin over join order and starts the
// next round. With no current drawer (or a drawer who has since left) the
// rotation restarts at the head of the list.
func (r *Room) advanceTurn() {
	if len(r.members) == 0 {
		return
	}
	idx := -1
	for i, m := range r.members {
		if m.ID == r.drawerID {
			idx = i
			break
		}
	}
	r.drawerID = r.members[(idx+1)%len(r.members)].ID
	r.startRound()
}

// armTick schedules the next one-second step as a single-shot callback; the
// handler re-arms it itself. The generation captured here lets a tick that
// fires during cancellation be dropped on arrival.
func (r *Room) armTick() {
	gen := r.timerGen
	r.timer = r.clock.AfterFunc(time.Second, func() {
		select {
		case r.inbox <- tick{gen: gen}:
		case <-r.ctx.Done():
		}
	})
}

func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerGen++
}

func (r *Room) shutdown() {
	r.stopTimer()
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
	r.log.Info("room shut down")
}

func (r *Room) sendTo(clientID string, evt proto.ServerEvent) {
	ch, ok := r.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- evt:
	default:
		// Client is slow/full - drop them.
		close(ch)
		delete(r.clients, clientID)
	}
}

func (r *Room) broadcast(evt proto.ServerEvent) {
	for id, ch := range r.clients {
		select {
		case ch <- evt:
			// ok
		default:
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Room) broadcastExcept(exceptID string, evt proto.ServerEvent) {
	for id, ch := range r.clients {
		if id == exceptID {
			continue
		}
		select {
		case ch <- evt:
		default:
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Room) snapshotStrokes() []game.StrokeSegment {
	out := make([]game.StrokeSegment, len(r.strokes))
	copy(out, r.strokes)
	return out
}

func (r *Room) view() View {
	members := make([]game.Player, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, *m)
	}
	return View{
		ID:         r.id,
		Members:    members,
		Strokes:    r.snapshotStrokes(),
		Word:       r.word,
		DrawerID:   r.drawerID,
		TimeLeft:   r.timeLeft,
		NumClients: len(r.clients),
	}
}
