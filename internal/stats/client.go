package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-event-platform/internal/model"
)

// Client 統計服務的存取介面。核心只用它裝飾讀取回應，絕不參與准入決策。
type Client interface {
	PostHit(ctx context.Context, hit model.EndpointHit) error
	GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.EndpointHitStats, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type endpointHitPayload struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

func (c *HTTPClient) PostHit(ctx context.Context, hit model.EndpointHit) error {
	payload := endpointHitPayload{
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: model.FormatDateTime(hit.Timestamp),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal hit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post hit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post hit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.EndpointHitStats, error) {
	params := url.Values{}
	params.Set("start", model.FormatDateTime(start))
	params.Set("end", model.FormatDateTime(end))
	if len(uris) > 0 {
		params.Set("uris", strings.Join(uris, ","))
	}
	params.Set("unique", fmt.Sprintf("%t", unique))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get stats: unexpected status %d", resp.StatusCode)
	}

	var stats []model.EndpointHitStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}
