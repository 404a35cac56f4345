package service

import (
	"context"
	"errors"

	"go-event-platform/internal/model"
	"go-event-platform/internal/repository"
	apperrors "go-event-platform/pkg/app_errors"
	"go-event-platform/pkg/clock"
)

type SubscriptionService interface {
	// Subscribe 向公開帳號的發起人提出訂閱申請，等待發起人確認
	Subscribe(ctx context.Context, subscriberID, initiatorID int64) (model.SubscriptionResponse, error)
	// Unsubscribe 訂閱者取消自己的訂閱。已被拒絕的訂閱不可取消。
	Unsubscribe(ctx context.Context, subscriberID, initiatorID int64) error
	// DecideSubscription 發起人確認或拒絕單一待處理訂閱
	DecideSubscription(ctx context.Context, initiatorID, subscriberID int64, approve bool) (model.SubscriptionResponse, error)
	// DecideAllPending 發起人一次處理所有待處理訂閱
	DecideAllPending(ctx context.Context, initiatorID int64, approve bool) ([]model.SubscriptionResponse, error)
	GetSubscriptions(ctx context.Context, subscriberID int64) ([]model.SubscriptionResponse, error)
	GetPendingSubscribers(ctx context.Context, initiatorID int64) ([]model.SubscriptionResponse, error)
	// GetFeed 訂閱者牆：已確認訂閱之發起人所發布的活動
	GetFeed(ctx context.Context, subscriberID int64, from, size int) ([]model.EventShortResponse, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	eventService     EventService
	clock            clock.Clock
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	eventService EventService,
	clk clock.Clock,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		eventService:     eventService,
		clock:            clk,
	}
}

func (s *SubscriptionServiceImpl) Subscribe(ctx context.Context, subscriberID, initiatorID int64) (model.SubscriptionResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, subscriberID); err != nil {
		return model.SubscriptionResponse{}, err
	}
	initiator, err := s.userRepo.FindByID(ctx, initiatorID)
	if err != nil {
		return model.SubscriptionResponse{}, err
	}
	if subscriberID == initiatorID {
		return model.SubscriptionResponse{}, apperrors.ErrSubscriptionConflict
	}
	if !initiator.Public {
		return model.SubscriptionResponse{}, apperrors.ErrPrivateAccount
	}

	existing, err := s.subscriptionRepo.FindBySubscriberAndInitiator(ctx, subscriberID, initiatorID)
	if err != nil && !errors.Is(err, apperrors.ErrSubscriptionNotFound) {
		return model.SubscriptionResponse{}, err
	}
	if existing != nil {
		return model.SubscriptionResponse{}, apperrors.ErrSubscriptionConflict
	}

	subscription := &model.Subscription{
		SubscriberID: subscriberID,
		InitiatorID:  initiatorID,
		Status:       model.SubscriptionStatusPending,
		Created:      s.clock.Now(),
	}
	created, err := s.subscriptionRepo.Create(ctx, subscription)
	if err != nil {
		return model.SubscriptionResponse{}, err
	}
	return model.NewSubscriptionResponse(created), nil
}

func (s *SubscriptionServiceImpl) Unsubscribe(ctx context.Context, subscriberID, initiatorID int64) error {
	if _, err := s.userRepo.FindByID(ctx, subscriberID); err != nil {
		return err
	}
	subscription, err := s.subscriptionRepo.FindBySubscriberAndInitiator(ctx, subscriberID, initiatorID)
	if err != nil {
		return err
	}
	if subscription.Status == model.SubscriptionStatusRejected {
		return apperrors.ErrSubscriptionConflict
	}
	return s.subscriptionRepo.Delete(ctx, subscription.ID)
}

func (s *SubscriptionServiceImpl) DecideSubscription(ctx context.Context, initiatorID, subscriberID int64, approve bool) (model.SubscriptionResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return model.SubscriptionResponse{}, err
	}
	subscription, err := s.subscriptionRepo.FindBySubscriberAndInitiator(ctx, subscriberID, initiatorID)
	if err != nil {
		return model.SubscriptionResponse{}, err
	}
	if subscription.Status != model.SubscriptionStatusPending {
		return model.SubscriptionResponse{}, apperrors.ErrSubscriptionConflict
	}

	updated, err := s.subscriptionRepo.UpdateStatus(ctx, subscription.ID, decisionStatus(approve))
	if err != nil {
		return model.SubscriptionResponse{}, err
	}
	return model.NewSubscriptionResponse(updated), nil
}

func (s *SubscriptionServiceImpl) DecideAllPending(ctx context.Context, initiatorID int64, approve bool) ([]model.SubscriptionResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return nil, err
	}
	pending, err := s.subscriptionRepo.FindAllByInitiatorAndStatus(ctx, initiatorID, model.SubscriptionStatusPending)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, apperrors.ErrNoPendingSubscriptions
	}

	responses := make([]model.SubscriptionResponse, 0, len(pending))
	for _, subscription := range pending {
		updated, err := s.subscriptionRepo.UpdateStatus(ctx, subscription.ID, decisionStatus(approve))
		if err != nil {
			return nil, err
		}
		responses = append(responses, model.NewSubscriptionResponse(updated))
	}
	return responses, nil
}

func (s *SubscriptionServiceImpl) GetSubscriptions(ctx context.Context, subscriberID int64) ([]model.SubscriptionResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	subscriptions, err := s.subscriptionRepo.FindAllBySubscriberAndStatus(ctx, subscriberID, model.SubscriptionStatusConfirmed)
	if err != nil {
		return nil, err
	}
	return makeSubscriptionResponses(subscriptions), nil
}

func (s *SubscriptionServiceImpl) GetPendingSubscribers(ctx context.Context, initiatorID int64) ([]model.SubscriptionResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, initiatorID); err != nil {
		return nil, err
	}
	subscriptions, err := s.subscriptionRepo.FindAllByInitiatorAndStatus(ctx, initiatorID, model.SubscriptionStatusPending)
	if err != nil {
		return nil, err
	}
	return makeSubscriptionResponses(subscriptions), nil
}

func (s *SubscriptionServiceImpl) GetFeed(ctx context.Context, subscriberID int64, from, size int) ([]model.EventShortResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	filter := model.PublicEventFilter{
		SubscriberID: subscriberID,
		Sort:         model.EventSortByEventDate,
		From:         from,
		Size:         size,
	}
	return s.eventService.PublicSearch(ctx, filter)
}

func decisionStatus(approve bool) model.SubscriptionStatus {
	if approve {
		return model.SubscriptionStatusConfirmed
	}
	return model.SubscriptionStatusRejected
}

func makeSubscriptionResponses(subscriptions []*model.Subscription) []model.SubscriptionResponse {
	responses := make([]model.SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		responses = append(responses, model.NewSubscriptionResponse(subscription))
	}
	return responses
}
