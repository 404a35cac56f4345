package model

// HTTP 請求繫結用的 DTO。日期欄位以字串承載，轉換時才解析。

type NewEventRequest struct {
	Annotation        string   `json:"annotation" binding:"required"`
	Category          int64    `json:"category" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	EventDate         string   `json:"eventDate" binding:"required"`
	Location          Location `json:"location"`
	Paid              bool     `json:"paid"`
	ParticipantLimit  int64    `json:"participantLimit"`
	RequestModeration *bool    `json:"requestModeration"`
	Title             string   `json:"title" binding:"required"`
}

// ToParams 解析日期並套用預設值。requestModeration 未提供時視為 true。
func (r NewEventRequest) ToParams() (NewEventParams, error) {
	eventDate, err := ParseDateTime(r.EventDate)
	if err != nil {
		return NewEventParams{}, err
	}
	moderation := true
	if r.RequestModeration != nil {
		moderation = *r.RequestModeration
	}
	return NewEventParams{
		Annotation:        r.Annotation,
		CategoryID:        r.Category,
		Description:       r.Description,
		EventDate:         eventDate,
		Location:          r.Location,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: moderation,
		Title:             r.Title,
	}, nil
}

type UpdateEventRequest struct {
	Annotation        *string   `json:"annotation"`
	Category          *int64    `json:"category"`
	Description       *string   `json:"description"`
	EventDate         *string   `json:"eventDate"`
	Location          *Location `json:"location"`
	Paid              *bool     `json:"paid"`
	ParticipantLimit  *int64    `json:"participantLimit"`
	RequestModeration *bool     `json:"requestModeration"`
	StateAction       *string   `json:"stateAction"`
	Title             *string   `json:"title"`
}

func (r UpdateEventRequest) ToParams() (UpdateEventParams, *StateAction, error) {
	params := UpdateEventParams{
		Annotation:        r.Annotation,
		CategoryID:        r.Category,
		Description:       r.Description,
		Location:          r.Location,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
		Title:             r.Title,
	}
	if r.EventDate != nil {
		eventDate, err := ParseDateTime(*r.EventDate)
		if err != nil {
			return UpdateEventParams{}, nil, err
		}
		params.EventDate = &eventDate
	}
	var action *StateAction
	if r.StateAction != nil {
		a := StateAction(*r.StateAction)
		action = &a
	}
	return params, action, nil
}

type NewUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Public *bool   `json:"public"`
}

type NewCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type NewCompilationRequest struct {
	Title  string  `json:"title" binding:"required"`
	Pinned bool    `json:"pinned"`
	Events []int64 `json:"events"`
}

type UpdateCompilationRequest struct {
	Title  *string  `json:"title"`
	Pinned *bool    `json:"pinned"`
	Events *[]int64 `json:"events"`
}

// DecideRequestsRequest 批次審核參加申請
type DecideRequestsRequest struct {
	RequestIDs []int64 `json:"requestIds" binding:"required"`
	Status     string  `json:"status" binding:"required"`
}
