package service

import (
	"context"
	"sort"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// 記憶體版 repository 替身。交易方法忽略 tx 參數，
// 只透過 fakeTxBeginner 記錄 commit/rollback 次數。

type stubTx struct {
	beginner *fakeTxBeginner
	done     bool
}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *stubTx) Commit(ctx context.Context) error {
	t.done = true
	t.beginner.commits++
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	if !t.done {
		t.beginner.rollbacks++
	}
	return nil
}

func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                               { return nil }

type fakeTxBeginner struct {
	commits   int
	rollbacks int
}

func (b *fakeTxBeginner) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return &stubTx{beginner: b}, nil
}

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context, ids []int64, from, size int) ([]*model.User, error) {
	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		if len(ids) > 0 && !containsID(ids, user.ID) {
			continue
		}
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return paginate(users, from, size), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, params model.UpdateUserParams) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Public != nil {
		user.Public = *params.Public
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*model.Category
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*model.Category), nextID: 1}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	category.ID = r.nextID
	r.nextID++
	copied := *category
	r.categories[category.ID] = &copied
	return category, nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, from, size int) ([]*model.Category, error) {
	categories := make([]*model.Category, 0, len(r.categories))
	for _, category := range r.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return paginate(categories, from, size), nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	if _, ok := r.categories[category.ID]; !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	copied := *category
	r.categories[category.ID] = &copied
	return category, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return apperrors.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeEventRepo struct {
	events       map[int64]*model.Event
	nextID       int64
	categoryRepo *fakeCategoryRepo
	userRepo     *fakeUserRepo

	// 訂閱牆測試用，非 nil 時 PublicSearch 支援 SubscriberID 過濾
	subscriptionRepo *fakeSubscriptionRepo
}

func newFakeEventRepo(categoryRepo *fakeCategoryRepo, userRepo *fakeUserRepo) *fakeEventRepo {
	return &fakeEventRepo{
		events:       make(map[int64]*model.Event),
		nextID:       1,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

func (r *fakeEventRepo) decorateJoins(event *model.Event) {
	if category, ok := r.categoryRepo.categories[event.CategoryID]; ok {
		event.CategoryName = category.Name
	}
	if user, ok := r.userRepo.users[event.InitiatorID]; ok {
		event.InitiatorName = user.Name
	}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.ID = r.nextID
	r.nextID++
	copied := *event
	r.events[event.ID] = &copied
	r.decorateJoins(event)
	return event, nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	r.decorateJoins(&copied)
	return &copied, nil
}

func (r *fakeEventRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Event, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeEventRepo) FindByInitiatorID(ctx context.Context, initiatorID int64, from, size int) ([]*model.Event, error) {
	events := r.collect(func(e *model.Event) bool { return e.InitiatorID == initiatorID })
	return paginate(events, from, size), nil
}

func (r *fakeEventRepo) FindByIDIn(ctx context.Context, ids []int64) ([]*model.Event, error) {
	return r.collect(func(e *model.Event) bool { return containsID(ids, e.ID) }), nil
}

func (r *fakeEventRepo) AdminSearch(ctx context.Context, filter model.AdminEventFilter) ([]*model.Event, error) {
	events := r.collect(func(e *model.Event) bool {
		if len(filter.InitiatorIDs) > 0 && !containsID(filter.InitiatorIDs, e.InitiatorID) {
			return false
		}
		if len(filter.CategoryIDs) > 0 && !containsID(filter.CategoryIDs, e.CategoryID) {
			return false
		}
		if len(filter.States) > 0 {
			found := false
			for _, state := range filter.States {
				if e.State == state {
					found = true
				}
			}
			if !found {
				return false
			}
		}
		if filter.RangeStart != nil && e.EventDate.Before(*filter.RangeStart) {
			return false
		}
		if filter.RangeEnd != nil && e.EventDate.After(*filter.RangeEnd) {
			return false
		}
		return true
	})
	return paginate(events, filter.From, filter.Size), nil
}

func (r *fakeEventRepo) PublicSearch(ctx context.Context, filter model.PublicEventFilter) ([]*model.Event, error) {
	events := r.collect(func(e *model.Event) bool {
		if e.State != model.EventStatePublished {
			return false
		}
		if len(filter.CategoryIDs) > 0 && !containsID(filter.CategoryIDs, e.CategoryID) {
			return false
		}
		if filter.Paid != nil && e.Paid != *filter.Paid {
			return false
		}
		if filter.RangeStart != nil && e.EventDate.Before(*filter.RangeStart) {
			return false
		}
		if filter.RangeEnd != nil && e.EventDate.After(*filter.RangeEnd) {
			return false
		}
		if filter.SubscriberID != 0 {
			if r.subscriptionRepo == nil {
				return false
			}
			sub, err := r.subscriptionRepo.FindBySubscriberAndInitiator(ctx, filter.SubscriberID, e.InitiatorID)
			if err != nil || sub.Status != model.SubscriptionStatusConfirmed {
				return false
			}
		}
		return true
	})
	if filter.Sort == model.EventSortByEventDate {
		sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	}
	return paginate(events, filter.From, filter.Size), nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	r.events[event.ID] = &copied
	r.decorateJoins(event)
	return event, nil
}

func (r *fakeEventRepo) ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error) {
	for _, event := range r.events {
		if event.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) collect(match func(*model.Event) bool) []*model.Event {
	events := make([]*model.Event, 0)
	for _, event := range r.events {
		if match(event) {
			copied := *event
			r.decorateJoins(&copied)
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}

type fakeRequestRepo struct {
	requests map[int64]*model.ParticipationRequest
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*model.ParticipationRequest), nextID: 1}
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id int64) (*model.ParticipationRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) FindAllByRequesterID(ctx context.Context, requesterID int64) ([]*model.ParticipationRequest, error) {
	return r.collect(func(req *model.ParticipationRequest) bool { return req.RequesterID == requesterID }), nil
}

func (r *fakeRequestRepo) FindAllByEventID(ctx context.Context, eventID int64) ([]*model.ParticipationRequest, error) {
	return r.collect(func(req *model.ParticipationRequest) bool { return req.EventID == eventID }), nil
}

func (r *fakeRequestRepo) CountConfirmedByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, request := range r.requests {
		if request.Status == model.RequestStatusConfirmed && containsID(eventIDs, request.EventID) {
			counts[request.EventID]++
		}
	}
	return counts, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) (*model.ParticipationRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	request.Status = status
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) Create(ctx context.Context, tx pgx.Tx, request *model.ParticipationRequest) (*model.ParticipationRequest, error) {
	request.ID = r.nextID
	r.nextID++
	copied := *request
	r.requests[request.ID] = &copied
	return request, nil
}

func (r *fakeRequestRepo) ExistsByRequesterAndEvent(ctx context.Context, tx pgx.Tx, requesterID, eventID int64) (bool, error) {
	for _, request := range r.requests {
		if request.RequesterID == requesterID && request.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) CountConfirmed(ctx context.Context, tx pgx.Tx, eventID int64) (int64, error) {
	var count int64
	for _, request := range r.requests {
		if request.EventID == eventID && request.Status == model.RequestStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) FindByIDIn(ctx context.Context, tx pgx.Tx, ids []int64) ([]*model.ParticipationRequest, error) {
	return r.collect(func(req *model.ParticipationRequest) bool { return containsID(ids, req.ID) }), nil
}

func (r *fakeRequestRepo) UpdateStatusByIDs(ctx context.Context, tx pgx.Tx, ids []int64, status model.RequestStatus) error {
	for _, id := range ids {
		request, ok := r.requests[id]
		if !ok {
			return apperrors.ErrRequestNotFound
		}
		request.Status = status
	}
	return nil
}

func (r *fakeRequestRepo) collect(match func(*model.ParticipationRequest) bool) []*model.ParticipationRequest {
	requests := make([]*model.ParticipationRequest, 0)
	for _, request := range r.requests {
		if match(request) {
			copied := *request
			requests = append(requests, &copied)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests
}

type fakeSubscriptionRepo struct {
	subscriptions map[int64]*model.Subscription
	nextID        int64
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subscriptions: make(map[int64]*model.Subscription), nextID: 1}
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	sub.ID = r.nextID
	r.nextID++
	copied := *sub
	r.subscriptions[sub.ID] = &copied
	return sub, nil
}

func (r *fakeSubscriptionRepo) FindBySubscriberAndInitiator(ctx context.Context, subscriberID, initiatorID int64) (*model.Subscription, error) {
	for _, sub := range r.subscriptions {
		if sub.SubscriberID == subscriberID && sub.InitiatorID == initiatorID {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, apperrors.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) FindAllByInitiatorAndStatus(ctx context.Context, initiatorID int64, status model.SubscriptionStatus) ([]*model.Subscription, error) {
	return r.collect(func(s *model.Subscription) bool {
		return s.InitiatorID == initiatorID && s.Status == status
	}), nil
}

func (r *fakeSubscriptionRepo) FindAllBySubscriberAndStatus(ctx context.Context, subscriberID int64, status model.SubscriptionStatus) ([]*model.Subscription, error) {
	return r.collect(func(s *model.Subscription) bool {
		return s.SubscriberID == subscriberID && s.Status == status
	}), nil
}

func (r *fakeSubscriptionRepo) UpdateStatus(ctx context.Context, id int64, status model.SubscriptionStatus) (*model.Subscription, error) {
	sub, ok := r.subscriptions[id]
	if !ok {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	sub.Status = status
	copied := *sub
	return &copied, nil
}

func (r *fakeSubscriptionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.subscriptions[id]; !ok {
		return apperrors.ErrSubscriptionNotFound
	}
	delete(r.subscriptions, id)
	return nil
}

func (r *fakeSubscriptionRepo) collect(match func(*model.Subscription) bool) []*model.Subscription {
	subscriptions := make([]*model.Subscription, 0)
	for _, sub := range r.subscriptions {
		if match(sub) {
			copied := *sub
			subscriptions = append(subscriptions, &copied)
		}
	}
	sort.Slice(subscriptions, func(i, j int) bool { return subscriptions[i].ID < subscriptions[j].ID })
	return subscriptions
}

type fakeViews struct {
	views map[int64]int64
}

func (v *fakeViews) GetViews(ctx context.Context, events []*model.Event) map[int64]int64 {
	if v.views == nil {
		return map[int64]int64{}
	}
	return v.views
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, from, size int) []T {
	if from >= len(items) {
		return []T{}
	}
	end := from + size
	if size <= 0 || end > len(items) {
		end = len(items)
	}
	return items[from:end]
}
