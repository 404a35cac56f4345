package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-event-platform/internal/model"
	"go-event-platform/pkg/clock"
	"go-event-platform/pkg/logger"

	"go.uber.org/zap"
)

// ViewsProvider 依活動清單回傳每個活動的瀏覽數
type ViewsProvider interface {
	GetViews(ctx context.Context, events []*model.Event) map[int64]int64
}

type StatsViewsProvider struct {
	client Client
	clock  clock.Clock
}

func NewStatsViewsProvider(client Client, clk clock.Clock) ViewsProvider {
	return &StatsViewsProvider{client: client, clock: clk}
}

// GetViews 查詢統計服務取得各活動 URI 的不重複瀏覽數。
// 查詢視窗從最早發布時間往前一小時到現在。統計服務失敗時降級為零瀏覽數，讀取不因此失敗。
func (p *StatsViewsProvider) GetViews(ctx context.Context, events []*model.Event) map[int64]int64 {
	views := make(map[int64]int64)

	var earliest time.Time
	uris := make([]string, 0, len(events))
	for _, event := range events {
		if event.State != model.EventStatePublished {
			continue
		}
		uris = append(uris, fmt.Sprintf("/events/%d", event.ID))
		if earliest.IsZero() || event.PublishedOn.Before(earliest) {
			earliest = event.PublishedOn
		}
	}
	if len(uris) == 0 {
		return views
	}

	stats, err := p.client.GetStats(ctx, earliest.Add(-time.Hour), p.clock.Now(), uris, true)
	if err != nil {
		logger.WithComponent("stats").Warn("stats service unavailable, views degraded to zero", zap.Error(err))
		return views
	}

	for _, stat := range stats {
		id, err := strconv.ParseInt(strings.TrimPrefix(stat.URI, "/events/"), 10, 64)
		if err != nil {
			continue
		}
		views[id] = stat.Hits
	}
	return views
}
