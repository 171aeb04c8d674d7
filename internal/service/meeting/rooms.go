package meeting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Room actions reported by the meeting page.
const (
	ActionState      = "state"
	ActionPrepare    = "prepare"
	ActionJoin       = "join"
	ActionMic        = "mic"
	ActionCamera     = "camera"
	ActionShareStart = "share_start"
	ActionShareEnded = "share_ended"
	ActionShareStop  = "share_stop"
	ActionChat       = "chat"
	ActionLeave      = "leave"
	ActionAbandon    = "abandon"
)

// Rooms nobody touched for this long are forgotten.
const staleRoomLifetime = JoinOpensBefore + JoinClosesAfter

var ErrUnknownAction = errors.New("unknown room action")

// RoomAction is one step the browser took. Error carries the reason a device
// request failed in the browser, empty when it succeeded.
type RoomAction struct {
	Action    string `json:"action"`
	Error     string `json:"error"`
	Text      string `json:"text"`
	Confirmed bool   `json:"confirmed"`
}

// exitAction reports whether a participant may send the action after the
// join window has closed.
func (a RoomAction) exitAction() bool {
	switch a.Action {
	case ActionState, ActionLeave, ActionAbandon, ActionShareEnded, ActionShareStop:
		return true
	}
	return false
}

type roomKey struct {
	token  string
	userID int64
}

type roomEntry struct {
	mu      sync.Mutex
	room    *Room
	devices *reportedDevices
	touched time.Time
}

// Rooms mirrors the browser room of every admitted participant. Capture
// happens in the browser, which reports each outcome here.
type Rooms struct {
	mu      sync.Mutex
	clock   func() time.Time
	entries map[roomKey]*roomEntry
}

func NewRooms(clock func() time.Time) *Rooms {
	if clock == nil {
		clock = time.Now
	}
	return &Rooms{clock: clock, entries: make(map[roomKey]*roomEntry)}
}

// Apply runs one action against the participant's room and returns the
// resulting snapshot. An ended room is dropped so the next visit starts fresh.
func (rs *Rooms) Apply(ctx context.Context, token string, userID int64, displayName string, action RoomAction) (RoomSnapshot, error) {
	key := roomKey{token: token, userID: userID}
	e := rs.entry(key, displayName)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.devices.failure = strings.TrimSpace(action.Error)
	defer func() { e.devices.failure = "" }()

	var err error
	switch action.Action {
	case ActionState:
	case ActionPrepare:
		err = e.room.Prepare(ctx)
	case ActionJoin:
		err = e.room.Join(ctx)
	case ActionMic:
		_, err = e.room.ToggleMic()
	case ActionCamera:
		_, err = e.room.ToggleCamera()
	case ActionShareStart:
		err = e.room.StartScreenShare(ctx)
	case ActionShareEnded:
		e.room.ScreenShareEnded()
	case ActionShareStop:
		e.room.StopScreenShare()
	case ActionChat:
		_, err = e.room.SendChat(action.Text)
	case ActionLeave:
		err = e.room.Leave(action.Confirmed)
	case ActionAbandon:
		e.room.Abandon()
	default:
		err = ErrUnknownAction
	}

	snap := e.room.Snapshot()
	if snap.State == StateEnded {
		rs.drop(key, e)
	}
	return snap, err
}

// Len reports how many rooms are open.
func (rs *Rooms) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.entries)
}

func (rs *Rooms) entry(key roomKey, displayName string) *roomEntry {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	now := rs.clock()
	for k, e := range rs.entries {
		if now.Sub(e.touched) > staleRoomLifetime {
			delete(rs.entries, k)
		}
	}

	e, ok := rs.entries[key]
	if !ok {
		devices := &reportedDevices{}
		e = &roomEntry{devices: devices, room: NewRoom(devices, displayName, rs.clock)}
		rs.entries[key] = e
	}
	e.touched = now
	return e
}

func (rs *Rooms) drop(key roomKey, e *roomEntry) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.entries[key] == e {
		delete(rs.entries, key)
	}
}

// reportedDevices answers capture requests with the outcome the browser
// reported for the current action.
type reportedDevices struct {
	failure string
}

type reportedStream struct{}

func (reportedStream) Stop() {}

func (d *reportedDevices) UserMedia(context.Context) (Stream, error) {
	if d.failure != "" {
		return nil, errors.New(d.failure)
	}
	return reportedStream{}, nil
}

func (d *reportedDevices) DisplayMedia(context.Context) (Stream, error) {
	if d.failure != "" {
		return nil, errors.New(d.failure)
	}
	return reportedStream{}, nil
}
