package queue

import (
	"context"

	"go-event-platform/internal/model"
)

type Delivery struct {
	Data *model.EndpointHit
	Ack  func()
	Nack func(requeue bool)
}

type HitQueue interface {
	// 發送瀏覽紀錄到隊列
	PublishHit(ctx context.Context, hit *model.EndpointHit) error
	// 訂閱瀏覽紀錄隊列
	SubscribeHits(ctx context.Context) (<-chan Delivery, error)
}

type MemoryHitQueueImpl struct {
	// 使用 Go channel 模擬 MQ 隊列，單機與測試用
	ch chan *model.EndpointHit
}

func NewMemoryHitQueue(bufferSize int) HitQueue {
	return &MemoryHitQueueImpl{
		ch: make(chan *model.EndpointHit, bufferSize),
	}
}

func (q *MemoryHitQueueImpl) PublishHit(ctx context.Context, hit *model.EndpointHit) error {
	select {
	case q.ch <- hit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryHitQueueImpl) SubscribeHits(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case hit, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: hit,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- hit // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
