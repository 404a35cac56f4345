package service

import (
	"context"
	"sort"
	"time"

	"go-event-platform/internal/model"
	"go-event-platform/internal/repository"
	"go-event-platform/internal/stats"
	apperrors "go-event-platform/pkg/app_errors"
	"go-event-platform/pkg/clock"
)

// 活動排程的最小提前量
const (
	creationLead = 2 * time.Hour // 建立與發起人編輯時
	publishLead  = 1 * time.Hour // 管理員發布時
)

type EventService interface {
	AddEvent(ctx context.Context, initiatorID int64, params model.NewEventParams) (model.EventFullResponse, error)
	GetInitiatorEvents(ctx context.Context, initiatorID int64, from, size int) ([]model.EventFullResponse, error)
	GetInitiatorEvent(ctx context.Context, initiatorID, eventID int64) (model.EventFullResponse, error)
	UpdateEventByInitiator(ctx context.Context, initiatorID, eventID int64, params model.UpdateEventParams, action *model.StateAction) (model.EventFullResponse, error)
	UpdateEventByAdmin(ctx context.Context, eventID int64, params model.UpdateEventParams, action *model.StateAction) (model.EventFullResponse, error)
	AdminSearch(ctx context.Context, filter model.AdminEventFilter) ([]model.EventFullResponse, error)
	PublicSearch(ctx context.Context, filter model.PublicEventFilter) ([]model.EventShortResponse, error)
	GetPublishedEvent(ctx context.Context, eventID int64) (model.EventFullResponse, error)
}

type EventServiceImpl struct {
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	requestRepo  repository.RequestRepository
	views        stats.ViewsProvider
	clock        clock.Clock
}

func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	requestRepo repository.RequestRepository,
	views stats.ViewsProvider,
	clk clock.Clock,
) EventService {
	return &EventServiceImpl{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		requestRepo:  requestRepo,
		views:        views,
		clock:        clk,
	}
}

func (s *EventServiceImpl) AddEvent(ctx context.Context, initiatorID int64, params model.NewEventParams) (model.EventFullResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, params.CategoryID)
	if err != nil {
		return model.EventFullResponse{}, err
	}
	initiator, err := s.userRepo.FindByID(ctx, initiatorID)
	if err != nil {
		return model.EventFullResponse{}, err
	}

	now := s.clock.Now()
	if params.EventDate.Before(now.Add(creationLead)) {
		return model.EventFullResponse{}, apperrors.ErrInvalidEventDate
	}

	event := &model.Event{
		Annotation:        params.Annotation,
		CategoryID:        category.ID,
		CreatedOn:         now,
		Description:       params.Description,
		EventDate:         params.EventDate,
		InitiatorID:       initiator.ID,
		Location:          params.Location,
		Paid:              params.Paid,
		ParticipantLimit:  params.ParticipantLimit,
		PublishedOn:       now, // 佔位值，發布時覆寫
		RequestModeration: params.RequestModeration,
		State:             model.EventStatePending,
		Title:             params.Title,
		CategoryName:      category.Name,
		InitiatorName:     initiator.Name,
	}

	if _, err := s.eventRepo.Create(ctx, event); err != nil {
		return model.EventFullResponse{}, err
	}
	return model.NewEventFullResponse(event, 0, 0), nil
}

func (s *EventServiceImpl) GetInitiatorEvents(ctx context.Context, initiatorID int64, from, size int) ([]model.EventFullResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindByInitiatorID(ctx, initiatorID, from, size)
	if err != nil {
		return nil, err
	}
	return s.makeFullResponses(ctx, events)
}

func (s *EventServiceImpl) GetInitiatorEvent(ctx context.Context, initiatorID, eventID int64) (model.EventFullResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return model.EventFullResponse{}, err
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return model.EventFullResponse{}, err
	}
	if event.InitiatorID != initiatorID {
		return model.EventFullResponse{}, apperrors.ErrNotInitiator
	}
	return s.makeFullResponse(ctx, event)
}

func (s *EventServiceImpl) UpdateEventByInitiator(ctx context.Context, initiatorID, eventID int64, params model.UpdateEventParams, action *model.StateAction) (model.EventFullResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return model.EventFullResponse{}, err
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return model.EventFullResponse{}, err
	}
	if event.InitiatorID != initiatorID {
		return model.EventFullResponse{}, apperrors.ErrNotInitiator
	}

	// 已發布的活動對發起人不可變更
	if event.State == model.EventStatePublished {
		return model.EventFullResponse{}, apperrors.ErrEventStateConflict
	}

	if err := s.applyPatch(ctx, event, params); err != nil {
		return model.EventFullResponse{}, err
	}

	if event.EventDate.Before(s.clock.Now().Add(creationLead)) {
		return model.EventFullResponse{}, apperrors.ErrInvalidEventDate
	}

	if action != nil {
		switch *action {
		case model.StateActionSendToReview:
			event.State = model.EventStatePending
		case model.StateActionCancelReview:
			event.State = model.EventStateCanceled
		default:
			return model.EventFullResponse{}, apperrors.ErrUnsupportedStateAction
		}
	}

	if _, err := s.eventRepo.Update(ctx, event); err != nil {
		return model.EventFullResponse{}, err
	}
	return s.makeFullResponse(ctx, event)
}

func (s *EventServiceImpl) UpdateEventByAdmin(ctx context.Context, eventID int64, params model.UpdateEventParams, action *model.StateAction) (model.EventFullResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return model.EventFullResponse{}, err
	}

	if err := s.applyPatch(ctx, event, params); err != nil {
		return model.EventFullResponse{}, err
	}

	now := s.clock.Now()
	if !event.EventDate.After(now.Add(publishLead)) {
		return model.EventFullResponse{}, apperrors.ErrEventStartTooSoon
	}
	if event.State != model.EventStatePending {
		return model.EventFullResponse{}, apperrors.ErrEventStateConflict
	}

	if action != nil {
		switch *action {
		case model.StateActionPublish:
			event.State = model.EventStatePublished
			event.PublishedOn = now
		case model.StateActionReject:
			event.State = model.EventStateCanceled
		default:
			return model.EventFullResponse{}, apperrors.ErrUnsupportedStateAction
		}
	}

	if _, err := s.eventRepo.Update(ctx, event); err != nil {
		return model.EventFullResponse{}, err
	}
	return s.makeFullResponse(ctx, event)
}

func (s *EventServiceImpl) AdminSearch(ctx context.Context, filter model.AdminEventFilter) ([]model.EventFullResponse, error) {
	events, err := s.eventRepo.AdminSearch(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.makeFullResponses(ctx, events)
}

func (s *EventServiceImpl) PublicSearch(ctx context.Context, filter model.PublicEventFilter) ([]model.EventShortResponse, error) {
	if filter.RangeStart != nil && filter.RangeEnd != nil && filter.RangeStart.After(*filter.RangeEnd) {
		return nil, apperrors.ErrInvalidTimeRange
	}

	// 瀏覽數只存在統計服務，VIEWS 排序必須取完整過濾結果、
	// 裝飾後全域排序，分頁最後才套用
	query := filter
	if filter.Sort == model.EventSortByViews {
		query.From, query.Size = 0, 0
	}

	events, err := s.eventRepo.PublicSearch(ctx, query)
	if err != nil {
		return nil, err
	}

	responses, err := s.makeShortResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	if filter.Sort == model.EventSortByViews {
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].Views > responses[j].Views
		})
		responses = pageShortResponses(responses, filter.From, filter.Size)
	}
	return responses, nil
}

func pageShortResponses(responses []model.EventShortResponse, from, size int) []model.EventShortResponse {
	if from >= len(responses) {
		return []model.EventShortResponse{}
	}
	end := from + size
	if size <= 0 || end > len(responses) {
		end = len(responses)
	}
	return responses[from:end]
}

func (s *EventServiceImpl) GetPublishedEvent(ctx context.Context, eventID int64) (model.EventFullResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return model.EventFullResponse{}, err
	}
	if event.State != model.EventStatePublished {
		return model.EventFullResponse{}, apperrors.ErrEventNotFound
	}
	return s.makeFullResponse(ctx, event)
}

// applyPatch 套用部分更新欄位，分類變更時必須存在
func (s *EventServiceImpl) applyPatch(ctx context.Context, event *model.Event, params model.UpdateEventParams) error {
	if params.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *params.CategoryID)
		if err != nil {
			return err
		}
		event.CategoryName = category.Name
	}
	params.Apply(event)
	return nil
}

func (s *EventServiceImpl) decorate(ctx context.Context, events []*model.Event) (map[int64]int64, map[int64]int64, error) {
	ids := make([]int64, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}
	confirmed, err := s.requestRepo.CountConfirmedByEventIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	views := s.views.GetViews(ctx, events)
	return confirmed, views, nil
}

func (s *EventServiceImpl) makeFullResponse(ctx context.Context, event *model.Event) (model.EventFullResponse, error) {
	responses, err := s.makeFullResponses(ctx, []*model.Event{event})
	if err != nil {
		return model.EventFullResponse{}, err
	}
	return responses[0], nil
}

func (s *EventServiceImpl) makeFullResponses(ctx context.Context, events []*model.Event) ([]model.EventFullResponse, error) {
	confirmed, views, err := s.decorate(ctx, events)
	if err != nil {
		return nil, err
	}
	responses := make([]model.EventFullResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, model.NewEventFullResponse(event, confirmed[event.ID], views[event.ID]))
	}
	return responses, nil
}

func (s *EventServiceImpl) makeShortResponses(ctx context.Context, events []*model.Event) ([]model.EventShortResponse, error) {
	confirmed, views, err := s.decorate(ctx, events)
	if err != nil {
		return nil, err
	}
	responses := make([]model.EventShortResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, model.NewEventShortResponse(event, confirmed[event.ID], views[event.ID]))
	}
	return responses, nil
}
