package service

import (
	"context"

	"go-event-platform/internal/model"
	"go-event-platform/internal/repository"
	apperrors "go-event-platform/pkg/app_errors"
	"go-event-platform/pkg/clock"

	"github.com/jackc/pgx/v5"
)

type RequestService interface {
	// SubmitRequest 參加者對活動提出參加申請
	SubmitRequest(ctx context.Context, requesterID, eventID int64) (model.RequestResponse, error)
	// DecideRequests 發起人批次審核待處理申請
	DecideRequests(ctx context.Context, initiatorID, eventID int64, requestIDs []int64, target model.RequestStatus) (model.DecisionResult, error)
	// CancelRequest 參加者自行取消申請
	CancelRequest(ctx context.Context, requesterID, requestID int64) (model.RequestResponse, error)
	GetEventRequests(ctx context.Context, initiatorID, eventID int64) ([]model.RequestResponse, error)
	GetUserRequests(ctx context.Context, requesterID int64) ([]model.RequestResponse, error)
}

type RequestServiceImpl struct {
	pool        repository.TxBeginner
	requestRepo repository.RequestRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	clock       clock.Clock
}

func NewRequestService(
	pool repository.TxBeginner,
	requestRepo repository.RequestRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	clk clock.Clock,
) RequestService {
	return &RequestServiceImpl{
		pool:        pool,
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		clock:       clk,
	}
}

// SubmitRequest 在活動列鎖下檢查重複、自我參加、發布狀態與名額後建立申請。
// 無需審核或無名額上限的活動直接建立為 CONFIRMED。
func (s *RequestServiceImpl) SubmitRequest(ctx context.Context, requesterID, eventID int64) (model.RequestResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, requesterID); err != nil {
		return model.RequestResponse{}, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.RequestResponse{}, err
	}
	defer tx.Rollback(ctx)

	// 鎖住活動列：同一活動的已確認數在提交與批次審核之間必須序列化
	event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
	if err != nil {
		return model.RequestResponse{}, err
	}

	exists, err := s.requestRepo.ExistsByRequesterAndEvent(ctx, tx, requesterID, eventID)
	if err != nil {
		return model.RequestResponse{}, err
	}
	if exists {
		return model.RequestResponse{}, apperrors.ErrDuplicateRequest
	}
	if event.InitiatorID == requesterID {
		return model.RequestResponse{}, apperrors.ErrSelfParticipation
	}
	if event.State != model.EventStatePublished {
		return model.RequestResponse{}, apperrors.ErrEventNotPublished
	}

	if event.ParticipantLimit != 0 {
		confirmed, err := s.requestRepo.CountConfirmed(ctx, tx, eventID)
		if err != nil {
			return model.RequestResponse{}, err
		}
		if confirmed >= event.ParticipantLimit {
			return model.RequestResponse{}, apperrors.ErrParticipantLimitReached
		}
	}

	status := model.RequestStatusPending
	if !event.RequestModeration || event.ParticipantLimit == 0 {
		status = model.RequestStatusConfirmed
	}

	request := &model.ParticipationRequest{
		Created:     s.clock.Now(),
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      status,
	}
	if _, err := s.requestRepo.Create(ctx, tx, request); err != nil {
		return model.RequestResponse{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.RequestResponse{}, err
	}
	return model.NewRequestResponse(request), nil
}

// DecideRequests 依呼叫端提供的順序處理申請：名額未滿者轉 CONFIRMED，
// 額滿後同批剩餘申請一律轉 REJECTED。任一申請不在 PENDING 則整批中止。
func (s *RequestServiceImpl) DecideRequests(ctx context.Context, initiatorID, eventID int64, requestIDs []int64, target model.RequestStatus) (model.DecisionResult, error) {
	if target != model.RequestStatusConfirmed && target != model.RequestStatusRejected {
		return model.DecisionResult{}, apperrors.ErrUnsupportedStatus
	}
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return model.DecisionResult{}, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.DecisionResult{}, err
	}
	defer tx.Rollback(ctx)

	event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
	if err != nil {
		return model.DecisionResult{}, err
	}
	if event.InitiatorID != initiatorID {
		return model.DecisionResult{}, apperrors.ErrNotInitiator
	}

	confirmed, err := s.requestRepo.CountConfirmed(ctx, tx, eventID)
	if err != nil {
		return model.DecisionResult{}, err
	}
	if event.ParticipantLimit != 0 && confirmed >= event.ParticipantLimit {
		return model.DecisionResult{}, apperrors.ErrParticipantLimitReached
	}

	requests, err := s.requestRepo.FindByIDIn(ctx, tx, requestIDs)
	if err != nil {
		return model.DecisionResult{}, err
	}
	requestsByID := make(map[int64]*model.ParticipationRequest, len(requests))
	for _, request := range requests {
		requestsByID[request.ID] = request
	}

	// 前置條件整批檢查：全部都要是 PENDING，否則不做任何變更
	for _, id := range requestIDs {
		request, ok := requestsByID[id]
		if !ok {
			return model.DecisionResult{}, apperrors.ErrRequestNotFound
		}
		if !request.Status.CanTransitionTo(target) || request.Status != model.RequestStatusPending {
			return model.DecisionResult{}, apperrors.ErrRequestNotPending
		}
	}

	var confirmedIDs, rejectedIDs []int64
	if target == model.RequestStatusRejected {
		rejectedIDs = requestIDs
	} else {
		for _, id := range requestIDs {
			if event.ParticipantLimit == 0 || confirmed < event.ParticipantLimit {
				confirmedIDs = append(confirmedIDs, id)
				confirmed++
			} else {
				rejectedIDs = append(rejectedIDs, id)
			}
		}
	}

	if err := s.requestRepo.UpdateStatusByIDs(ctx, tx, confirmedIDs, model.RequestStatusConfirmed); err != nil {
		return model.DecisionResult{}, err
	}
	if err := s.requestRepo.UpdateStatusByIDs(ctx, tx, rejectedIDs, model.RequestStatusRejected); err != nil {
		return model.DecisionResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.DecisionResult{}, err
	}

	result := model.DecisionResult{
		ConfirmedRequests: make([]model.RequestResponse, 0, len(confirmedIDs)),
		RejectedRequests:  make([]model.RequestResponse, 0, len(rejectedIDs)),
	}
	for _, id := range confirmedIDs {
		request := requestsByID[id]
		request.Status = model.RequestStatusConfirmed
		result.ConfirmedRequests = append(result.ConfirmedRequests, model.NewRequestResponse(request))
	}
	for _, id := range rejectedIDs {
		request := requestsByID[id]
		request.Status = model.RequestStatusRejected
		result.RejectedRequests = append(result.RejectedRequests, model.NewRequestResponse(request))
	}
	return result, nil
}

// CancelRequest 從任何狀態都允許轉為 CANCELED，不檢查先前狀態
func (s *RequestServiceImpl) CancelRequest(ctx context.Context, requesterID, requestID int64) (model.RequestResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, requesterID); err != nil {
		return model.RequestResponse{}, err
	}
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return model.RequestResponse{}, err
	}

	updated, err := s.requestRepo.UpdateStatus(ctx, request.ID, model.RequestStatusCanceled)
	if err != nil {
		return model.RequestResponse{}, err
	}
	return model.NewRequestResponse(updated), nil
}

func (s *RequestServiceImpl) GetEventRequests(ctx context.Context, initiatorID, eventID int64) ([]model.RequestResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return makeRequestResponses(requests), nil
}

func (s *RequestServiceImpl) GetUserRequests(ctx context.Context, requesterID int64) ([]model.RequestResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.FindAllByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return makeRequestResponses(requests), nil
}

func makeRequestResponses(requests []*model.ParticipationRequest) []model.RequestResponse {
	responses := make([]model.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, model.NewRequestResponse(request))
	}
	return responses
}
