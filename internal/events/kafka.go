package events

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishNotification(ctx context.Context, ev NotificationRequested) error {
	data, err := encode(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.UserID, 10)),
		Value: data,
		Time:  time.Now(),
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

type KafkaConsumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewKafkaConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *KafkaConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &KafkaConsumer{reader: r, logger: logger}
}

// Start reads in the background until ctx is cancelled.
func (c *KafkaConsumer) Start(ctx context.Context, h Handler) error {
	go c.run(ctx, h)
	return nil
}

func (c *KafkaConsumer) run(ctx context.Context, h Handler) {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("kafka read error", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		ev, err := decode(m.Value)
		if err != nil {
			c.logger.Warn("invalid notification event", zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}
		if err := h(ctx, ev); err != nil {
			c.logger.Warn("notification event not stored", zap.Int64("user_id", ev.UserID), zap.Error(err))
		}
	}
}
