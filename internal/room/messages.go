package room

import (
	"github.com/vuchint-sutapalli/pictionary/internal/game"
	"github.com/vuchint-sutapalli/pictionary/internal/proto"
)

type Msg interface{ isRoomMsg() }

// Join registers a player together with the channel their events should be
// delivered on. A snapshot of the room (strokes, round in flight) is sent
// on Outbox immediately.
type Join struct {
	Player game.Player
	Outbox chan proto.ServerEvent
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// Guess submits guess text for evaluation against the secret word. From is
// the submitting connection (excluded from wrong-guess fan-out); UserID is
// the player credited on a correct guess.
type Guess struct {
	From   string
	UserID string
	Text   string
}

func (Guess) isRoomMsg() {}

type Stroke struct{ Segment game.StrokeSegment }

func (Stroke) isRoomMsg() {}

type Clear struct{}

func (Clear) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// GetState reflects internal state without data races; used by tests and
// the stats endpoint.
type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

// tick is the self-armed one-second countdown step. gen guards against a
// stale tick from a round that has since been cancelled or restarted.
type tick struct{ gen int }

func (tick) isRoomMsg() {}

// View is a copy of the room state at one instant.
type View struct {
	ID         string
	Members    []game.Player
	Strokes    []game.StrokeSegment
	Word       string
	DrawerID   string
	TimeLeft   int
	NumClients int
}
