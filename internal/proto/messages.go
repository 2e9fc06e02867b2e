package proto

import "github.com/vuchint-sutapalli/pictionary/internal/game"

// ClientMessage is the single inbound envelope. Type selects which of the
// optional fields are meaningful.
type ClientMessage struct {
	Type string `json:"type"`

	// play
	Username string `json:"username,omitempty"`

	// guess
	Guess  string `json:"guess,omitempty"`
	UserID string `json:"userId,omitempty"`

	// draw-line
	PrevPoint    *game.Point `json:"prevPoint,omitempty"`
	CurrentPoint *game.Point `json:"currentPoint,omitempty"`
	CurrentColor string      `json:"currentColor,omitempty"`

	// guess, draw-line, clear
	Room string `json:"room,omitempty"`
}

// ServerEvent is the outbound envelope fanned out to clients.
type ServerEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Outbound event names. These are the wire contract with the client and
// must not change casually.
const (
	EvtRoomAssignment = "roomAssignment"
	EvtNewUserJoined  = "newUserJoined"
	EvtYourTurn       = "your-turn"
	EvtNewRound       = "new-round"
	EvtTimerUpdate    = "timerUpdate"
	EvtTimeUp         = "time-up"
	EvtCorrectGuess   = "correct-guess"
	EvtWrongGuess     = "wrong-guess"
	EvtDrawLine       = "draw-line"
	EvtClear          = "clear"
)

// Inbound message types.
const (
	MsgPlay     = "play"
	MsgGuess    = "guess"
	MsgDrawLine = "draw-line"
	MsgClear    = "clear"
)

// RoomAssignmentData brings a newly assigned player's view up to date:
// their room, the full stroke replay, and the round in flight if any.
type RoomAssignmentData struct {
	Room          string               `json:"room"`
	DrawingData   []game.StrokeSegment `json:"drawingData"`
	PName         string               `json:"pName"`
	CurrentWord   string               `json:"currentWord,omitempty"`
	CurrentDrawer string               `json:"currentDrawer,omitempty"`
}

type NewUserJoinedData struct {
	PName   string   `json:"pName"`
	Players []string `json:"players"`
}

// YourTurnData is sent only to the drawer; it is the one message that
// carries the secret word.
type YourTurnData struct {
	Word     string `json:"word"`
	TimeLeft int    `json:"timeLeft"`
	Drawer   string `json:"drawer"`
}

// NewRoundData goes to the whole room and deliberately withholds the word.
type NewRoundData struct {
	TimeLeft int    `json:"timeLeft"`
	Drawer   string `json:"drawer"`
}

type TimerUpdateData struct {
	TimeLeft int `json:"timeLeft"`
}

type CorrectGuessData struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
}

type WrongGuessData struct {
	UserID string `json:"userId"`
	Guess  string `json:"guess"`
}
