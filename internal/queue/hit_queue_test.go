package queue

import (
	"context"
	"testing"
	"time"

	"go-event-platform/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHitQueue_PublishAndSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewMemoryHitQueue(10)

	msgs, err := q.SubscribeHits(ctx)
	require.NoError(t, err)

	hit := &model.EndpointHit{
		App:       "event-platform",
		URI:       "/events/1",
		IP:        "192.168.0.1",
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, q.PublishHit(ctx, hit))

	select {
	case msg := <-msgs:
		assert.Equal(t, hit, msg.Data)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for delivery")
	}
}

func TestMemoryHitQueue_NackRequeues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewMemoryHitQueue(10)

	msgs, err := q.SubscribeHits(ctx)
	require.NoError(t, err)

	hit := &model.EndpointHit{App: "event-platform", URI: "/events/2", IP: "10.0.0.1"}
	require.NoError(t, q.PublishHit(ctx, hit))

	first := <-msgs
	first.Nack(true)

	select {
	case msg := <-msgs:
		assert.Equal(t, hit, msg.Data)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("nacked message was not redelivered")
	}
}

func TestMemoryHitQueue_SubscribeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewMemoryHitQueue(10)

	msgs, err := q.SubscribeHits(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
