package events

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const natsHandleTimeout = 5 * time.Second

type NATSBus struct {
	nc     *nats.Conn
	queue  string
	logger *zap.Logger
}

func NewNATSBus(natsURL, queue string, logger *zap.Logger) (*NATSBus, error) {
	nc, err := nats.Connect(natsURL, nats.Name("jobnexus"))
	if err != nil {
		return nil, err
	}
	return &NATSBus{nc: nc, queue: queue, logger: logger}, nil
}

func (b *NATSBus) PublishNotification(_ context.Context, ev NotificationRequested) error {
	data, err := encode(ev)
	if err != nil {
		return err
	}
	return b.nc.Publish(SubjectNotificationRequested, data)
}

// Start joins the queue group so each event is handled by one instance.
func (b *NATSBus) Start(ctx context.Context, h Handler) error {
	sub, err := b.nc.QueueSubscribe(SubjectNotificationRequested, b.queue, func(m *nats.Msg) {
		ev, err := decode(m.Data)
		if err != nil {
			b.logger.Warn("invalid notification event", zap.Error(err))
			return
		}
		hctx, cancel := context.WithTimeout(ctx, natsHandleTimeout)
		defer cancel()
		if err := h(hctx, ev); err != nil {
			b.logger.Warn("notification event not stored", zap.Int64("user_id", ev.UserID), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

func (b *NATSBus) Close() error {
	return b.nc.Drain()
}
