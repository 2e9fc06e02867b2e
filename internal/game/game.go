package game

// Point is a single canvas coordinate as reported by the client.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StrokeSegment is one incremental line-drawing record. Immutable once
// appended to a room's drawing log; the server stores and replays these,
// it never interprets them.
type StrokeSegment struct {
	PrevPoint    *Point `json:"prevPoint"` // nil at the start of a stroke
	CurrentPoint Point  `json:"currentPoint"`
	Color        string `json:"currentColor"`
	Room         string `json:"room"`
}

// Player is one connected participant. The ID is the ephemeral connection
// id and is stable for the lifetime of the session only.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}
