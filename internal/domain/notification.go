package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Link      *string          `json:"link" db:"link"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationKind int

const (
	KindOther NotificationKind = iota
	KindApplication
	KindInterview
	KindJob
	KindSystem
	KindMessage
)

// NotificationType is an open tag. Values outside the known set are kept as
// KindOther together with the raw string so they survive a round trip.
type NotificationType struct {
	kind NotificationKind
	raw  string
}

var (
	NotifApplication = NotificationType{kind: KindApplication, raw: "application"}
	NotifInterview   = NotificationType{kind: KindInterview, raw: "interview"}
	NotifJob         = NotificationType{kind: KindJob, raw: "job"}
	NotifSystem      = NotificationType{kind: KindSystem, raw: "system"}
	NotifMessage     = NotificationType{kind: KindMessage, raw: "message"}
)

func ParseNotificationType(s string) NotificationType {
	switch s {
	case "application":
		return NotifApplication
	case "interview":
		return NotifInterview
	case "job":
		return NotifJob
	case "system":
		return NotifSystem
	case "message":
		return NotifMessage
	}
	return NotificationType{kind: KindOther, raw: s}
}

func (t NotificationType) Kind() NotificationKind { return t.kind }

func (t NotificationType) String() string { return t.raw }

func (t NotificationType) IsKnown() bool { return t.kind != KindOther }

// Icon returns the font-awesome class used by the notifications page.
func (t NotificationType) Icon() string {
	switch t.kind {
	case KindApplication:
		return "fas fa-file-alt"
	case KindInterview:
		return "fas fa-calendar-check"
	case KindMessage:
		return "fas fa-envelope"
	case KindJob:
		return "fas fa-briefcase"
	default:
		return "fas fa-info-circle"
	}
}

func (t NotificationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw)
}

func (t *NotificationType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseNotificationType(s)
	return nil
}

func (t NotificationType) Value() (driver.Value, error) {
	return t.raw, nil
}

func (t *NotificationType) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = ParseNotificationType(v)
	case []byte:
		*t = ParseNotificationType(string(v))
	case nil:
		*t = NotificationType{}
	default:
		return fmt.Errorf("cannot scan %T into NotificationType", src)
	}
	return nil
}

type NotificationFilter string

const (
	FilterAll    NotificationFilter = "all"
	FilterUnread NotificationFilter = "unread"
)

func ParseNotificationFilter(s string) NotificationFilter {
	if s == string(FilterUnread) {
		return FilterUnread
	}
	return FilterAll
}

const (
	DefaultListLimit     = 10
	MinListLimit         = 1
	MaxListLimit         = 50
	NotificationsPerPage = 20
)

type ListOptions struct {
	Limit      int
	UnreadOnly bool
}

// ClampListLimit bounds a polling limit to [MinListLimit, MaxListLimit].
func ClampListLimit(limit int) int {
	if limit < MinListLimit {
		return MinListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

type CreateNotificationInput struct {
	UserID  int64
	Type    NotificationType
	Title   string
	Message string
	Link    *string
}

type NotificationPage struct {
	PaginatedResponse[Notification]
	Filter      NotificationFilter `json:"filter"`
	UnreadCount int64              `json:"unread_count"`
}
