package model

import "time"

// SubscriptionStatus 訂閱申請狀態
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusConfirmed SubscriptionStatus = "CONFIRMED"
	SubscriptionStatusRejected  SubscriptionStatus = "REJECTED"
)

// Subscription 訂閱：subscriber 追蹤 initiator 發起的活動
type Subscription struct {
	ID           int64              `json:"id" db:"id"`
	SubscriberID int64              `json:"subscriber_id" db:"subscriber_id"`
	InitiatorID  int64              `json:"initiator_id" db:"initiator_id"`
	Status       SubscriptionStatus `json:"status" db:"status"`
	Created      time.Time          `json:"created" db:"created"`
}

// SubscriptionResponse 訂閱回應
type SubscriptionResponse struct {
	ID         int64              `json:"id"`
	Subscriber int64              `json:"subscriber"`
	Initiator  int64              `json:"initiator"`
	Status     SubscriptionStatus `json:"status"`
}

func NewSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:         s.ID,
		Subscriber: s.SubscriberID,
		Initiator:  s.InitiatorID,
		Status:     s.Status,
	}
}
