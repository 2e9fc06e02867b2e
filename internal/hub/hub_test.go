package hub

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuchint-sutapalli/pictionary/internal/game"
	"github.com/vuchint-sutapalli/pictionary/internal/proto"
	"github.com/vuchint-sutapalli/pictionary/internal/room"
)

// minimal manual clock so no real round timers run during registry tests
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) room.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, tm := range c.timers {
		if !tm.stopped && !tm.fired {
			n++
		}
	}
	return n
}

func newTestHub(t *testing.T, capacity int) (*Hub, *fakeClock) {
	t.Helper()
	clk := &fakeClock{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(ctx, Options{
		Capacity:     capacity,
		RoundSeconds: 60,
		Words:        []string{"apple"},
		Clock:        clk,
	})
	return h, clk
}

func assign(t *testing.T, h *Hub, id string) *room.Room {
	t.Helper()
	reply := make(chan *room.Room, 1)
	h.Inbox() <- Assign{
		Player: game.Player{ID: id, Username: "user-" + id},
		Outbox: make(chan proto.ServerEvent, 256),
		Reply:  reply,
	}
	select {
	case rm := <-reply:
		require.NotNil(t, rm)
		return rm
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for assignment")
		return nil // unreachable
	}
}

func stats(t *testing.T, h *Hub) []RoomStats {
	t.Helper()
	reply := make(chan []RoomStats, 1)
	h.Inbox() <- Stats{Reply: reply}
	select {
	case s := <-reply:
		return s
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for stats")
		return nil // unreachable
	}
}

func TestNinthAssignmentOverflowsIntoFreshRoom(t *testing.T) {
	h, _ := newTestHub(t, 8)

	first := assign(t, h, "p0")
	for i := 1; i < 8; i++ {
		rm := assign(t, h, fmt.Sprintf("p%d", i))
		assert.Equal(t, first.ID(), rm.ID())
	}

	ninth := assign(t, h, "p9")
	assert.NotEqual(t, first.ID(), ninth.ID(), "full room must overflow into a new one")

	s := stats(t, h)
	require.Len(t, s, 2)
	assert.Equal(t, 8, s[0].Players)
	assert.Equal(t, 1, s[1].Players)
}

func TestAssignmentPrefersOldestRoomWithASlot(t *testing.T) {
	h, _ := newTestHub(t, 2)

	r1 := assign(t, h, "a")
	assign(t, h, "b")
	r2 := assign(t, h, "c")
	require.NotEqual(t, r1.ID(), r2.ID())

	h.Inbox() <- Disconnect{ClientID: "a"}

	r3 := assign(t, h, "d")
	assert.Equal(t, r1.ID(), r3.ID(), "freed slot in the oldest room is used first")
}

func TestEmptyRoomIsRemovedAndItsTimerNeverFires(t *testing.T) {
	h, clk := newTestHub(t, 8)

	rm := assign(t, h, "a")
	require.Len(t, stats(t, h), 1)

	h.Inbox() <- Disconnect{ClientID: "a"}

	assert.Empty(t, stats(t, h), "no orphan rooms")
	select {
	case <-rm.Done():
	case <-time.After(time.Second):
		t.Fatalf("room actor did not shut down")
	}
	assert.Equal(t, 0, clk.pending(), "round timer cancelled before the room was deleted")
}

func TestRoomIDIsNeverReusedAfterRemoval(t *testing.T) {
	h, _ := newTestHub(t, 1)

	seen := map[string]bool{}
	// churn rooms fast enough that several creations share one millisecond
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("p%d", i)
		rm := assign(t, h, id)
		require.False(t, seen[rm.ID()], "room id %s handed out twice", rm.ID())
		seen[rm.ID()] = true
		h.Inbox() <- Disconnect{ClientID: id}
		assert.Empty(t, stats(t, h))
	}
}

func TestDisconnectOfUnassignedClientIsNoOp(t *testing.T) {
	h, _ := newTestHub(t, 8)
	h.Inbox() <- Disconnect{ClientID: "ghost"}
	assert.Empty(t, stats(t, h))
}

func TestGetRoomUnknownIDResolvesNil(t *testing.T) {
	h, _ := newTestHub(t, 8)
	reply := make(chan *room.Room, 1)
	h.Inbox() <- GetRoom{ID: "room-404", Reply: reply}
	assert.Nil(t, <-reply)
}

func TestShutdownStopsEveryRoom(t *testing.T) {
	h, _ := newTestHub(t, 1)
	r1 := assign(t, h, "a")
	r2 := assign(t, h, "b")

	h.Inbox() <- ShutdownHub{}

	for _, rm := range []*room.Room{r1, r2} {
		select {
		case <-rm.Done():
		case <-time.After(time.Second):
			t.Fatalf("room %s still running after hub shutdown", rm.ID())
		}
	}
}
