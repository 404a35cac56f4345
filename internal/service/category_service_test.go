package service

import (
	"context"
	"testing"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_DeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - unused category", func(t *testing.T) {
		env := newEventTestEnv()
		service := NewCategoryService(env.categoryRepo, env.eventRepo)
		category := env.addCategory(t, "empty")

		err := service.DeleteCategory(ctx, category.ID)

		require.NoError(t, err)
		_, err = env.categoryRepo.FindByID(ctx, category.ID)
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})

	t.Run("Failed - category still referenced", func(t *testing.T) {
		env := newEventTestEnv()
		service := NewCategoryService(env.categoryRepo, env.eventRepo)
		initiator := env.addUser(t, "initiator")
		category := env.addCategory(t, "concerts")
		env.addEvent(t, initiator.ID, category.ID, nil)

		err := service.DeleteCategory(ctx, category.ID)

		assert.ErrorIs(t, err, apperrors.ErrCategoryInUse)
	})

	t.Run("Failed - category not found", func(t *testing.T) {
		env := newEventTestEnv()
		service := NewCategoryService(env.categoryRepo, env.eventRepo)

		err := service.DeleteCategory(ctx, 999)

		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	ctx := context.Background()
	env := newEventTestEnv()
	service := NewCategoryService(env.categoryRepo, env.eventRepo)

	t.Run("Success", func(t *testing.T) {
		category := env.addCategory(t, "old name")

		updated, err := service.UpdateCategory(ctx, category.ID, "new name")

		require.NoError(t, err)
		assert.Equal(t, "new name", updated.Name)
	})

	t.Run("Failed - not found", func(t *testing.T) {
		_, err := service.UpdateCategory(ctx, 999, "whatever")

		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})
}

func TestCategoryService_GetCategories(t *testing.T) {
	ctx := context.Background()
	env := newEventTestEnv()
	service := NewCategoryService(env.categoryRepo, env.eventRepo)

	for _, name := range []string{"a", "b", "c"} {
		env.addCategory(t, name)
	}

	categories, err := service.GetCategories(ctx, 1, 10)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, []model.CategoryResponse{{ID: 2, Name: "b"}, {ID: 3, Name: "c"}}, categories)
}
