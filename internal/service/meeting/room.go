package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

type RoomState string

const (
	StateWaiting RoomState = "waiting_room"
	StateActive  RoomState = "active_room"
	StateEnded   RoomState = "ended"
)

var (
	ErrDeviceUnavailable = errors.New("media device unavailable")
	ErrInvalidTransition = errors.New("invalid room transition")
	ErrLeaveNotConfirmed = errors.New("leave requires confirmation")
	ErrEmptyMessage      = errors.New("chat message is empty")
)

// Stream is an acquired capture handle. Stop releases the device.
type Stream interface {
	Stop()
}

// MediaDevices acquires local capture streams.
type MediaDevices interface {
	UserMedia(ctx context.Context) (Stream, error)
	DisplayMedia(ctx context.Context) (Stream, error)
}

type ChatMessage struct {
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

type RoomSnapshot struct {
	State       RoomState     `json:"state"`
	MicOn       bool          `json:"mic_on"`
	CameraOn    bool          `json:"camera_on"`
	Sharing     bool          `json:"sharing"`
	Elapsed     time.Duration `json:"elapsed"`
	LastError   string        `json:"last_error,omitempty"`
	ChatHistory []ChatMessage `json:"chat_history"`
}

// Room is the local session of one admitted participant. Microphone, camera
// and screen-share are independent flags. Chat never leaves the room.
type Room struct {
	mu sync.Mutex

	devices     MediaDevices
	clock       func() time.Time
	displayName string

	state    RoomState
	camera   Stream
	screen   Stream
	micOn    bool
	cameraOn bool
	joinedAt time.Time
	endedAt  time.Time
	lastErr  error
	chat     []ChatMessage
}

func NewRoom(devices MediaDevices, displayName string, clock func() time.Time) *Room {
	if clock == nil {
		clock = time.Now
	}
	return &Room{
		devices:     devices,
		clock:       clock,
		displayName: displayName,
		state:       StateWaiting,
	}
}

func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Prepare acquires camera and microphone for the preview. On failure the room
// stays in the waiting room and Prepare may be called again.
func (r *Room) Prepare(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateWaiting {
		return ErrInvalidTransition
	}
	return r.acquireCameraLocked(ctx)
}

// Join enters the live room and starts the elapsed timer.
func (r *Room) Join(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateWaiting {
		return ErrInvalidTransition
	}
	if err := r.acquireCameraLocked(ctx); err != nil {
		return err
	}

	r.state = StateActive
	r.joinedAt = r.clock()
	return nil
}

func (r *Room) ToggleMic() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateEnded || r.camera == nil {
		return r.micOn, ErrInvalidTransition
	}
	r.micOn = !r.micOn
	return r.micOn, nil
}

func (r *Room) ToggleCamera() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateEnded || r.camera == nil {
		return r.cameraOn, ErrInvalidTransition
	}
	r.cameraOn = !r.cameraOn
	return r.cameraOn, nil
}

// StartScreenShare swaps the outgoing video to a display capture. A failed
// acquisition keeps the camera stream.
func (r *Room) StartScreenShare(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateActive {
		return ErrInvalidTransition
	}
	if r.screen != nil {
		return nil
	}

	stream, err := r.devices.DisplayMedia(ctx)
	if err != nil {
		r.lastErr = fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		return r.lastErr
	}
	r.screen = stream
	r.lastErr = nil
	return nil
}

func (r *Room) StopScreenShare() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopScreenLocked()
}

// ScreenShareEnded handles a share stopped outside the room, such as from
// the operating system's sharing control. The room reverts to the camera.
func (r *Room) ScreenShareEnded() {
	r.StopScreenShare()
}

func (r *Room) Sharing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen != nil
}

// Elapsed counts from Join. It is zero before joining and frozen after exit.
func (r *Room) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsedLocked()
}

func (r *Room) SendChat(text string) (ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateActive {
		return ChatMessage{}, ErrInvalidTransition
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	msg := ChatMessage{Sender: r.displayName, Text: text, SentAt: r.clock()}
	r.chat = append(r.chat, msg)
	return msg, nil
}

// Leave ends the session after explicit confirmation.
func (r *Room) Leave(confirmed bool) error {
	if !confirmed {
		return ErrLeaveNotConfirmed
	}
	r.Abandon()
	return nil
}

// Abandon ends the session without confirmation, as on page navigation.
func (r *Room) Abandon() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateEnded {
		return
	}
	r.stopScreenLocked()
	if r.camera != nil {
		r.camera.Stop()
		r.camera = nil
	}
	r.micOn = false
	r.cameraOn = false
	if r.state == StateActive {
		r.endedAt = r.clock()
	}
	r.state = StateEnded
}

func (r *Room) Snapshot() RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := RoomSnapshot{
		State:       r.state,
		MicOn:       r.micOn,
		CameraOn:    r.cameraOn,
		Sharing:     r.screen != nil,
		Elapsed:     r.elapsedLocked(),
		ChatHistory: append([]ChatMessage(nil), r.chat...),
	}
	if r.lastErr != nil {
		snap.LastError = r.lastErr.Error()
	}
	return snap
}

func (r *Room) acquireCameraLocked(ctx context.Context) error {
	if r.camera != nil {
		return nil
	}

	stream, err := r.devices.UserMedia(ctx)
	if err != nil {
		r.lastErr = fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		return r.lastErr
	}
	r.camera = stream
	r.micOn = true
	r.cameraOn = true
	r.lastErr = nil
	return nil
}

func (r *Room) stopScreenLocked() {
	if r.screen != nil {
		r.screen.Stop()
		r.screen = nil
	}
}

func (r *Room) elapsedLocked() time.Duration {
	switch r.state {
	case StateActive:
		return r.clock().Sub(r.joinedAt)
	case StateEnded:
		if !r.joinedAt.IsZero() {
			return r.endedAt.Sub(r.joinedAt)
		}
	}
	return 0
}
