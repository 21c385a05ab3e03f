// Package events publishes order settlements for the notification service.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
	now    func() time.Time
}

// New returns a Kafka publisher, or a no-op one when no brokers are configured.
func New(cfg *config.Events, log *zap.Logger) Publisher {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		log.Info("No event brokers configured, settlements are not published")
		return NopPublisher{}
	}

	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}, log)
}

func newKafkaPublisher(w messageWriter, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: log, now: time.Now}
}

// Publisher is a settlement publisher that owns a connection.
type Publisher interface {
	PublishSettlement(ctx context.Context, event domain.SettlementEvent) error
	Close() error
}

// PublishSettlement writes the event keyed by order id, so every event of an
// order lands on the same partition.
func (p *KafkaPublisher) PublishSettlement(ctx context.Context, event domain.SettlementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode settlement: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  p.now().UTC(),
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("order." + strings.ToLower(string(event.State)))},
		},
	})
	if err != nil {
		return fmt.Errorf("write settlement %s: %w", event.OrderID, err)
	}

	p.logger.Debug("Settlement published",
		zap.String("order_id", event.OrderID),
		zap.String("state", string(event.State)))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NopPublisher struct{}

func (NopPublisher) PublishSettlement(context.Context, domain.SettlementEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
