package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-event-platform/internal/model"
	"go-event-platform/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatsClient struct {
	stats []model.EndpointHitStats
	err   error

	gotStart  time.Time
	gotEnd    time.Time
	gotURIs   []string
	gotUnique bool
}

func (c *stubStatsClient) PostHit(ctx context.Context, hit model.EndpointHit) error { return nil }

func (c *stubStatsClient) GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.EndpointHitStats, error) {
	c.gotStart = start
	c.gotEnd = end
	c.gotURIs = uris
	c.gotUnique = unique
	return c.stats, c.err
}

func TestStatsViewsProvider_GetViews(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	publishedOn := now.Add(-3 * time.Hour)

	published := &model.Event{ID: 1, State: model.EventStatePublished, PublishedOn: publishedOn}
	pending := &model.Event{ID: 2, State: model.EventStatePending}

	t.Run("Success", func(t *testing.T) {
		client := &stubStatsClient{stats: []model.EndpointHitStats{
			{App: "event-platform", URI: "/events/1", Hits: 17},
		}}
		provider := NewStatsViewsProvider(client, clock.Fixed{T: now})

		views := provider.GetViews(context.Background(), []*model.Event{published, pending})

		assert.Equal(t, int64(17), views[1])
		// 未發布的活動不查統計
		require.Equal(t, []string{"/events/1"}, client.gotURIs)
		assert.Equal(t, publishedOn.Add(-time.Hour), client.gotStart)
		assert.Equal(t, now, client.gotEnd)
		assert.True(t, client.gotUnique)
	})

	t.Run("NoPublishedEvents", func(t *testing.T) {
		client := &stubStatsClient{}
		provider := NewStatsViewsProvider(client, clock.Fixed{T: now})

		views := provider.GetViews(context.Background(), []*model.Event{pending})

		assert.Empty(t, views)
		assert.Empty(t, client.gotURIs)
	})

	t.Run("DegradesToZeroOnFailure", func(t *testing.T) {
		client := &stubStatsClient{err: errors.New("connection refused")}
		provider := NewStatsViewsProvider(client, clock.Fixed{T: now})

		views := provider.GetViews(context.Background(), []*model.Event{published})

		assert.Empty(t, views)
	})

	t.Run("EarliestPublishedOnWins", func(t *testing.T) {
		older := &model.Event{ID: 3, State: model.EventStatePublished, PublishedOn: publishedOn.Add(-24 * time.Hour)}
		client := &stubStatsClient{}
		provider := NewStatsViewsProvider(client, clock.Fixed{T: now})

		provider.GetViews(context.Background(), []*model.Event{published, older})

		assert.Equal(t, older.PublishedOn.Add(-time.Hour), client.gotStart)
	})
}
