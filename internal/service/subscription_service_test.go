package service

import (
	"context"
	"testing"
	"time"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"
	"go-event-platform/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subscriptionTestEnv struct {
	*eventTestEnv
	subscriptionRepo *fakeSubscriptionRepo
	service          SubscriptionService
}

func newSubscriptionTestEnv() *subscriptionTestEnv {
	base := newEventTestEnv()
	subscriptionRepo := newFakeSubscriptionRepo()
	base.eventRepo.subscriptionRepo = subscriptionRepo
	eventService := NewEventService(base.eventRepo, base.userRepo, base.categoryRepo, base.requestRepo, base.views, clock.Fixed{T: testNow})
	return &subscriptionTestEnv{
		eventTestEnv:     base,
		subscriptionRepo: subscriptionRepo,
		service:          NewSubscriptionService(subscriptionRepo, base.userRepo, eventService, clock.Fixed{T: testNow}),
	}
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - pending until initiator decides", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")

		created, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)

		require.NoError(t, err)
		assert.Equal(t, model.SubscriptionStatusPending, created.Status)
		assert.Equal(t, subscriber.ID, created.Subscriber)
		assert.Equal(t, initiator.ID, created.Initiator)
	})

	t.Run("Failed - private account", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")
		public := false
		_, err := env.userRepo.Update(ctx, initiator.ID, model.UpdateUserParams{Public: &public})
		require.NoError(t, err)

		_, err = env.service.Subscribe(ctx, subscriber.ID, initiator.ID)

		assert.ErrorIs(t, err, apperrors.ErrPrivateAccount)
	})

	t.Run("Failed - duplicate subscription", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")
		_, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)
		require.NoError(t, err)

		_, err = env.service.Subscribe(ctx, subscriber.ID, initiator.ID)

		assert.ErrorIs(t, err, apperrors.ErrSubscriptionConflict)
	})

	t.Run("Failed - self subscription", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		user := env.addUser(t, "user")

		_, err := env.service.Subscribe(ctx, user.ID, user.ID)

		assert.ErrorIs(t, err, apperrors.ErrSubscriptionConflict)
	})
}

func TestSubscriptionService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - confirm one", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")
		_, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)
		require.NoError(t, err)

		updated, err := env.service.DecideSubscription(ctx, initiator.ID, subscriber.ID, true)

		require.NoError(t, err)
		assert.Equal(t, model.SubscriptionStatusConfirmed, updated.Status)
	})

	t.Run("Failed - repeated decision", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")
		_, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)
		require.NoError(t, err)
		_, err = env.service.DecideSubscription(ctx, initiator.ID, subscriber.ID, false)
		require.NoError(t, err)

		_, err = env.service.DecideSubscription(ctx, initiator.ID, subscriber.ID, true)

		assert.ErrorIs(t, err, apperrors.ErrSubscriptionConflict)
	})

	t.Run("Success - decide all pending", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		initiator := env.addUser(t, "initiator")
		for _, name := range []string{"a", "b", "c"} {
			subscriber := env.addUser(t, name)
			_, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)
			require.NoError(t, err)
		}

		updated, err := env.service.DecideAllPending(ctx, initiator.ID, true)

		require.NoError(t, err)
		require.Len(t, updated, 3)
		for _, sub := range updated {
			assert.Equal(t, model.SubscriptionStatusConfirmed, sub.Status)
		}
	})

	t.Run("Failed - nothing pending", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		initiator := env.addUser(t, "initiator")

		_, err := env.service.DecideAllPending(ctx, initiator.ID, true)

		assert.ErrorIs(t, err, apperrors.ErrNoPendingSubscriptions)
	})
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")
		_, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)
		require.NoError(t, err)

		err = env.service.Unsubscribe(ctx, subscriber.ID, initiator.ID)

		require.NoError(t, err)
		_, err = env.subscriptionRepo.FindBySubscriberAndInitiator(ctx, subscriber.ID, initiator.ID)
		assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotFound)
	})

	t.Run("Failed - rejected subscription stays", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		initiator := env.addUser(t, "initiator")
		_, err := env.service.Subscribe(ctx, subscriber.ID, initiator.ID)
		require.NoError(t, err)
		_, err = env.service.DecideSubscription(ctx, initiator.ID, subscriber.ID, false)
		require.NoError(t, err)

		err = env.service.Unsubscribe(ctx, subscriber.ID, initiator.ID)

		assert.ErrorIs(t, err, apperrors.ErrSubscriptionConflict)
	})
}

func TestSubscriptionService_GetFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("OnlyConfirmedInitiatorsVisible", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		followed := env.addUser(t, "followed")
		stranger := env.addUser(t, "stranger")
		category := env.addCategory(t, "meetups")

		publish := func(initiatorID int64) *model.Event {
			return env.addEvent(t, initiatorID, category.ID, func(e *model.Event) {
				e.State = model.EventStatePublished
				e.PublishedOn = testNow.Add(-time.Hour)
			})
		}
		followedEvent := publish(followed.ID)
		publish(stranger.ID)

		_, err := env.service.Subscribe(ctx, subscriber.ID, followed.ID)
		require.NoError(t, err)
		_, err = env.service.DecideSubscription(ctx, followed.ID, subscriber.ID, true)
		require.NoError(t, err)

		feed, err := env.service.GetFeed(ctx, subscriber.ID, 0, 10)

		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, followedEvent.ID, feed[0].ID)
	})

	t.Run("EmptyWhilePending", func(t *testing.T) {
		env := newSubscriptionTestEnv()
		subscriber := env.addUser(t, "subscriber")
		followed := env.addUser(t, "followed")
		category := env.addCategory(t, "meetups")
		env.addEvent(t, followed.ID, category.ID, func(e *model.Event) {
			e.State = model.EventStatePublished
			e.PublishedOn = testNow.Add(-time.Hour)
		})
		_, err := env.service.Subscribe(ctx, subscriber.ID, followed.ID)
		require.NoError(t, err)

		feed, err := env.service.GetFeed(ctx, subscriber.ID, 0, 10)

		require.NoError(t, err)
		assert.Empty(t, feed)
	})
}
