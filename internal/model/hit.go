package model

import "time"

// EndpointHit 公開端點的單次瀏覽紀錄，送往統計服務
type EndpointHit struct {
	ID        string    `json:"id"`
	App       string    `json:"app"`
	URI       string    `json:"uri"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
}

// EndpointHitStats 統計服務回傳的某 URI 瀏覽數
type EndpointHitStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
