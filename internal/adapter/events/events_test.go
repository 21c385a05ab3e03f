package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishSettlement(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, zap.NewNop())
	p.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	err := p.PublishSettlement(context.Background(), domain.SettlementEvent{
		OrderID:           "ord-1",
		BuyerReference:    "contact-42",
		PurchaseKind:      domain.PurchaseKindDropIn,
		PurchaseReference: "session-1",
		State:             domain.OrderStatePaid,
		TotalAmount:       decimal.MustParse("826.00"),
		OccurredAt:        "2026-03-01T10:00:00Z",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "ord-1", string(msg.Key))
	assert.Equal(t, "order.paid", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "ord-1", decoded["order_id"])
	assert.Equal(t, "PAID", decoded["state"])
	assert.Equal(t, "contact-42", decoded["buyer_reference"])
	assert.NotContains(t, decoded, "reason")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newKafkaPublisher(w, zap.NewNop())

	err := p.PublishSettlement(context.Background(), domain.SettlementEvent{OrderID: "ord-2", State: domain.OrderStateFailed})
	assert.ErrorContains(t, err, "ord-2")
}

func TestNew_NoBrokers(t *testing.T) {
	p := New(&config.Events{Brokers: []string{" ", ""}, Topic: "checkout.settlements"}, zap.NewNop())
	_, ok := p.(NopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.PublishSettlement(context.Background(), domain.SettlementEvent{}))
	assert.NoError(t, p.Close())
}
