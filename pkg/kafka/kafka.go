package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"vapor/internal/events"
)

const (
	handlerAttempts = 3
	retryWait       = 500 * time.Millisecond
)

// Broker publishes and consumes domain events with one Kafka topic per routing key.
type Broker struct {
	brokers []string
	groupID string
	writer  *kafkago.Writer
}

var (
	_ events.Publisher  = (*Broker)(nil)
	_ events.Subscriber = (*Broker)(nil)
)

// NewBroker prepares a writer for brokers. groupID is the consumer group used by Subscribe.
func NewBroker(brokers []string, groupID string) (*Broker, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	return &Broker{
		brokers: brokers,
		groupID: groupID,
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
	}, nil
}

// Publish writes body to the topic named after routingKey.
func (b *Broker) Publish(ctx context.Context, routingKey string, body []byte) error {
	err := b.writer.WriteMessages(ctx, kafkago.Message{
		Topic: routingKey,
		Key:   []byte(routingKey),
		Value: body,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("kafka: write %s failed: %w", routingKey, err)
	}
	return nil
}

// Subscribe reads the routingKey topic in the broker's consumer group until ctx is done.
// A failing message is retried in place, since committing a later offset would
// skip it anyway. After the last attempt it is logged and committed.
func (b *Broker) Subscribe(ctx context.Context, routingKey string, handler events.Handler) error {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: b.brokers,
		GroupID: b.groupID,
		Topic:   routingKey,
	})
	defer reader.Close()

	log.Printf("Waiting for %s events in group %s", routingKey, b.groupID)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("kafka: fetch %s failed: %w", routingKey, err)
		}
		if err := deliver(ctx, handler, msg.Value, handlerAttempts, retryWait); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("Dropping %s offset %d after %d attempts: %v", routingKey, msg.Offset, handlerAttempts, err)
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("Error committing %s offset %d: %v", routingKey, msg.Offset, err)
		}
	}
}

// deliver runs handler up to attempts times, waiting between tries, and returns
// the last error. It gives up early when ctx is done.
func deliver(ctx context.Context, handler events.Handler, body []byte, attempts int, wait time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err = handler(ctx, body); err == nil {
			return nil
		}
	}
	return err
}

func (b *Broker) Close() error {
	return b.writer.Close()
}
