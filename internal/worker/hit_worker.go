package worker

import (
	"context"

	"go-event-platform/internal/queue"
	"go-event-platform/internal/stats"
	"go-event-platform/pkg/logger"

	"go.uber.org/zap"
)

// HitWorker 把隊列中的瀏覽紀錄搬運到統計服務
type HitWorker interface {
	Start(ctx context.Context) error
}

type HitWorkerImpl struct {
	client stats.Client
	queue  queue.HitQueue
}

func NewHitWorker(client stats.Client, queue queue.HitQueue) HitWorker {
	return &HitWorkerImpl{
		client: client,
		queue:  queue,
	}
}

func (w *HitWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeHits(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.client.PostHit(ctx, *msg.Data)
			if err != nil {
				// 統計服務暫時連不上，留在隊列裡延遲重試
				logger.WithComponent("worker").Warn("post hit failed, will retry",
					zap.String("uri", msg.Data.URI), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
