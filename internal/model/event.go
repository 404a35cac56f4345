package model

import (
	"time"
)

// EventState 活動生命週期狀態
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// IsValid 驗證狀態是否有效
func (s EventState) IsValid() bool {
	switch s {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s EventState) CanTransitionTo(target EventState) bool {
	transitions := map[EventState][]EventState{
		EventStatePending:   {EventStatePublished, EventStateCanceled},
		EventStatePublished: {},
		// 取消審核後可由發起人重新送審
		EventStateCanceled: {EventStatePending},
	}

	for _, state := range transitions[s] {
		if state == target {
			return true
		}
	}
	return false
}

// StateAction 生命週期操作指令
type StateAction string

const (
	StateActionSendToReview StateAction = "SEND_TO_REVIEW"
	StateActionCancelReview StateAction = "CANCEL_REVIEW"
	StateActionPublish      StateAction = "PUBLISH_EVENT"
	StateActionReject       StateAction = "REJECT_EVENT"
)

// Location 活動地點座標
type Location struct {
	Lat float64 `json:"lat" db:"location_lat"`
	Lon float64 `json:"lon" db:"location_lon"`
}

// Event 活動模型
type Event struct {
	ID                int64      `json:"id" db:"id"`
	Annotation        string     `json:"annotation" db:"annotation"`
	CategoryID        int64      `json:"category_id" db:"category_id"`
	CreatedOn         time.Time  `json:"created_on" db:"created_on"`
	Description       string     `json:"description" db:"description"`
	EventDate         time.Time  `json:"event_date" db:"event_date"`
	InitiatorID       int64      `json:"initiator_id" db:"initiator_id"`
	Location          Location   `json:"location"`
	Paid              bool       `json:"paid" db:"is_paid"`
	ParticipantLimit  int64      `json:"participant_limit" db:"participant_limit"`
	PublishedOn       time.Time  `json:"published_on" db:"published_on"`
	RequestModeration bool       `json:"request_moderation" db:"request_moderation"`
	State             EventState `json:"state" db:"state"`
	Title             string     `json:"title" db:"title"`

	// JOIN 帶出的裝飾欄位
	CategoryName  string `json:"-" db:"-"`
	InitiatorName string `json:"-" db:"-"`
}

// UpdateEventParams 部分更新參數：僅非 nil 欄位覆寫
type UpdateEventParams struct {
	Annotation        *string
	CategoryID        *int64
	Description       *string
	EventDate         *time.Time
	Location          *Location
	Paid              *bool
	ParticipantLimit  *int64
	RequestModeration *bool
	Title             *string
}

// Apply 把非 nil 欄位套用到活動上。空白字串視同未提供。
func (p UpdateEventParams) Apply(e *Event) {
	if p.Annotation != nil && *p.Annotation != "" {
		e.Annotation = *p.Annotation
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.Description != nil && *p.Description != "" {
		e.Description = *p.Description
	}
	if p.EventDate != nil {
		e.EventDate = *p.EventDate
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		e.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		e.RequestModeration = *p.RequestModeration
	}
	if p.Title != nil && *p.Title != "" {
		e.Title = *p.Title
	}
}

// NewEventParams 建立活動的輸入欄位
type NewEventParams struct {
	Annotation        string
	CategoryID        int64
	Description       string
	EventDate         time.Time
	Location          Location
	Paid              bool
	ParticipantLimit  int64
	RequestModeration bool
	Title             string
}

// EventSort 公開查詢排序鍵
type EventSort string

const (
	EventSortByID        EventSort = "ID"
	EventSortByEventDate EventSort = "EVENT_DATE"
	EventSortByViews     EventSort = "VIEWS"
)

// AdminEventFilter 管理端查詢條件，所有欄位皆可省略，彼此以 AND 組合
type AdminEventFilter struct {
	InitiatorIDs []int64
	States       []EventState
	CategoryIDs  []int64
	RangeStart   *time.Time
	RangeEnd     *time.Time
	From         int
	Size         int
}

// PublicEventFilter 公開查詢條件，隱含僅限 PUBLISHED
type PublicEventFilter struct {
	Text          *string
	CategoryIDs   []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
	From          int
	Size          int

	// SubscriberID 非零時僅回傳該使用者已確認訂閱之發起人的活動
	SubscriberID int64
}

// EventFullResponse 活動完整回應
type EventFullResponse struct {
	ID                int64             `json:"id"`
	Annotation        string            `json:"annotation"`
	Category          CategoryResponse  `json:"category"`
	ConfirmedRequests int64             `json:"confirmedRequests"`
	CreatedOn         string            `json:"createdOn"`
	Description       string            `json:"description"`
	EventDate         string            `json:"eventDate"`
	Initiator         UserShortResponse `json:"initiator"`
	Location          Location          `json:"location"`
	Paid              bool              `json:"paid"`
	ParticipantLimit  int64             `json:"participantLimit"`
	PublishedOn       string            `json:"publishedOn"`
	RequestModeration bool              `json:"requestModeration"`
	State             EventState        `json:"state"`
	Title             string            `json:"title"`
	Views             int64             `json:"views"`
}

// EventShortResponse 活動簡短回應
type EventShortResponse struct {
	ID                int64             `json:"id"`
	Annotation        string            `json:"annotation"`
	Category          CategoryResponse  `json:"category"`
	ConfirmedRequests int64             `json:"confirmedRequests"`
	EventDate         string            `json:"eventDate"`
	Initiator         UserShortResponse `json:"initiator"`
	Paid              bool              `json:"paid"`
	Title             string            `json:"title"`
	Views             int64             `json:"views"`
}

func NewEventFullResponse(e *Event, confirmed, views int64) EventFullResponse {
	return EventFullResponse{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          CategoryResponse{ID: e.CategoryID, Name: e.CategoryName},
		ConfirmedRequests: confirmed,
		CreatedOn:         FormatDateTime(e.CreatedOn),
		Description:       e.Description,
		EventDate:         FormatDateTime(e.EventDate),
		Initiator:         UserShortResponse{ID: e.InitiatorID, Name: e.InitiatorName},
		Location:          e.Location,
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		PublishedOn:       FormatDateTime(e.PublishedOn),
		RequestModeration: e.RequestModeration,
		State:             e.State,
		Title:             e.Title,
		Views:             views,
	}
}

func NewEventShortResponse(e *Event, confirmed, views int64) EventShortResponse {
	return EventShortResponse{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          CategoryResponse{ID: e.CategoryID, Name: e.CategoryName},
		ConfirmedRequests: confirmed,
		EventDate:         FormatDateTime(e.EventDate),
		Initiator:         UserShortResponse{ID: e.InitiatorID, Name: e.InitiatorName},
		Paid:              e.Paid,
		Title:             e.Title,
		Views:             views,
	}
}
