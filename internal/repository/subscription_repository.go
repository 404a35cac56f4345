package repository

import (
	"context"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) (*model.Subscription, error)
	FindBySubscriberAndInitiator(ctx context.Context, subscriberID, initiatorID int64) (*model.Subscription, error)
	FindAllByInitiatorAndStatus(ctx context.Context, initiatorID int64, status model.SubscriptionStatus) ([]*model.Subscription, error)
	FindAllBySubscriberAndStatus(ctx context.Context, subscriberID int64, status model.SubscriptionStatus) ([]*model.Subscription, error)
	UpdateStatus(ctx context.Context, id int64, status model.SubscriptionStatus) (*model.Subscription, error)
	Delete(ctx context.Context, id int64) error
}

type SubscriptionRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		pool: pool,
	}
}

const subscriptionColumns = `id, subscriber_id, initiator_id, status, created`

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var sub model.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.SubscriberID,
		&sub.InitiatorID,
		&sub.Status,
		&sub.Created,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	query := `
		INSERT INTO subscriptions (subscriber_id, initiator_id, status, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		sub.SubscriberID, sub.InitiatorID, sub.Status, sub.Created,
	).Scan(&sub.ID)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *SubscriptionRepositoryImpl) FindBySubscriberAndInitiator(ctx context.Context, subscriberID, initiatorID int64) (*model.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscriber_id = $1 AND initiator_id = $2
	`

	sub, err := scanSubscription(r.pool.QueryRow(ctx, query, subscriberID, initiatorID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *SubscriptionRepositoryImpl) FindAllByInitiatorAndStatus(ctx context.Context, initiatorID int64, status model.SubscriptionStatus) ([]*model.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE initiator_id = $1 AND status = $2
		ORDER BY id ASC
	`
	return r.collect(ctx, query, initiatorID, status)
}

func (r *SubscriptionRepositoryImpl) FindAllBySubscriberAndStatus(ctx context.Context, subscriberID int64, status model.SubscriptionStatus) ([]*model.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscriber_id = $1 AND status = $2
		ORDER BY id ASC
	`
	return r.collect(ctx, query, subscriberID, status)
}

func (r *SubscriptionRepositoryImpl) collect(ctx context.Context, query string, args ...interface{}) ([]*model.Subscription, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*model.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *SubscriptionRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status model.SubscriptionStatus) (*model.Subscription, error) {
	query := `
		UPDATE subscriptions
		SET status = $1
		WHERE id = $2
		RETURNING ` + subscriptionColumns

	sub, err := scanSubscription(r.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrSubscriptionNotFound
	}
	return nil
}
