package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

type Writer interface {
	WriteJSON(ctx context.Context, key string, v any) error
	Close() error
}

type writer struct {
	w *kgo.Writer
}

func NewWriter(brokers, topic string) Writer {
	w := &kgo.Writer{
		Addr:         kgo.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kgo.LeastBytes{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &writer{w: w}
}

func (wr *writer) WriteJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return wr.w.WriteMessages(ctx, kgo.Message{Key: []byte(key), Value: b, Time: time.Now()})
}

func (wr *writer) Close() error { return wr.w.Close() }

type Handler func(ctx context.Context, key, value []byte) error

type Consumer struct {
	reader *kgo.Reader
	handle Handler
}

func NewConsumer(brokers, groupID, topic string, h Handler) *Consumer {
	return &Consumer{
		reader: kgo.NewReader(kgo.ReaderConfig{
			Brokers:        strings.Split(brokers, ","),
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10 << 20,
			StartOffset:    kgo.FirstOffset,
			CommitInterval: time.Second,
		}),
		handle: h,
	}
}

// Run fetches and handles messages until ctx is cancelled. Handler errors are
// logged and the message is not committed, so it will be redelivered.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() { _ = c.reader.Close() }()

	log.Printf("[kafka] consumer started group=%s topic=%s",
		c.reader.Config().GroupID, c.reader.Config().Topic)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			log.Printf("[kafka] fetch: %v", err)
			time.Sleep(time.Second)
			continue
		}

		if err := c.handle(ctx, m.Key, m.Value); err != nil {
			log.Printf("[kafka] handler: %v", err)
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			log.Printf("[kafka] commit: %v", err)
		}
	}
}
