package model

import "time"

// RequestStatus 參加申請狀態
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// IsValid 驗證狀態是否有效
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusConfirmed, RequestStatusRejected, RequestStatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態。
// 申請人自行取消從任何狀態都允許，因此 CANCELED 永遠是合法目標。
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	if target == RequestStatusCanceled {
		return true
	}
	transitions := map[RequestStatus][]RequestStatus{
		RequestStatusPending:   {RequestStatusConfirmed, RequestStatusRejected},
		RequestStatusConfirmed: {},
		RequestStatusRejected:  {},
		RequestStatusCanceled:  {},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

// ParticipationRequest 參加申請模型
type ParticipationRequest struct {
	ID          int64         `json:"id" db:"id"`
	Created     time.Time     `json:"created" db:"created"`
	EventID     int64         `json:"event_id" db:"event_id"`
	RequesterID int64         `json:"requester_id" db:"requester_id"`
	Status      RequestStatus `json:"status" db:"status"`
}

// RequestResponse 參加申請回應
type RequestResponse struct {
	ID        int64         `json:"id"`
	Created   string        `json:"created"`
	Event     int64         `json:"event"`
	Requester int64         `json:"requester"`
	Status    RequestStatus `json:"status"`
}

func NewRequestResponse(r *ParticipationRequest) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		Created:   FormatDateTime(r.Created),
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    r.Status,
	}
}

// DecisionResult 批次審核的確認/拒絕分組結果
type DecisionResult struct {
	ConfirmedRequests []RequestResponse `json:"confirmedRequests"`
	RejectedRequests  []RequestResponse `json:"rejectedRequests"`
}
