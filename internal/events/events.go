package events

import (
	"context"
	"encoding/json"
	"time"
)

const SubjectNotificationRequested = "notifications.requested"

// NotificationRequested asks the notification engine to store one record.
type NotificationRequested struct {
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Link        *string   `json:"link,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

type Handler func(ctx context.Context, ev NotificationRequested) error

type Publisher interface {
	PublishNotification(ctx context.Context, ev NotificationRequested) error
	Close() error
}

// Consumer delivers received events to h until ctx is done. Start returns
// once delivery is set up.
type Consumer interface {
	Start(ctx context.Context, h Handler) error
}

func encode(ev NotificationRequested) ([]byte, error) {
	if ev.RequestedAt.IsZero() {
		ev.RequestedAt = time.Now()
	}
	return json.Marshal(ev)
}

func decode(data []byte) (NotificationRequested, error) {
	var ev NotificationRequested
	err := json.Unmarshal(data, &ev)
	return ev, err
}
