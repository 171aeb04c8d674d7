package events

import (
	"context"
	"errors"
	"sync"
)

var ErrNoHandler = errors.New("no notification handler registered")

// LocalBus delivers events in-process on the publisher's goroutine.
type LocalBus struct {
	mu      sync.RWMutex
	handler Handler
}

func NewLocalBus() *LocalBus {
	return &LocalBus{}
}

func (b *LocalBus) PublishNotification(ctx context.Context, ev NotificationRequested) error {
	b.mu.RLock()
	h := b.handler
	b.mu.RUnlock()

	if h == nil {
		return ErrNoHandler
	}
	return h(ctx, ev)
}

// Start registers h. It returns immediately; delivery happens on publish.
func (b *LocalBus) Start(_ context.Context, h Handler) error {
	b.mu.Lock()
	b.handler = h
	b.mu.Unlock()
	return nil
}

func (b *LocalBus) Close() error { return nil }
