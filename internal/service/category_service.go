package service

import (
	"context"

	"go-event-platform/internal/model"
	"go-event-platform/internal/repository"
	apperrors "go-event-platform/pkg/app_errors"
)

type CategoryService interface {
	AddCategory(ctx context.Context, name string) (model.CategoryResponse, error)
	GetCategories(ctx context.Context, from, size int) ([]model.CategoryResponse, error)
	GetCategory(ctx context.Context, id int64) (model.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, name string) (model.CategoryResponse, error)
	// DeleteCategory 分類仍有活動引用時拒絕刪除
	DeleteCategory(ctx context.Context, id int64) error
}

type CategoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
	eventRepo    repository.EventRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, eventRepo repository.EventRepository) CategoryService {
	return &CategoryServiceImpl{
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
	}
}

func (s *CategoryServiceImpl) AddCategory(ctx context.Context, name string) (model.CategoryResponse, error) {
	category, err := s.categoryRepo.Create(ctx, &model.Category{Name: name})
	if err != nil {
		return model.CategoryResponse{}, err
	}
	return model.NewCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) GetCategories(ctx context.Context, from, size int) ([]model.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx, from, size)
	if err != nil {
		return nil, err
	}
	responses := make([]model.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, model.NewCategoryResponse(category))
	}
	return responses, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id int64) (model.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return model.CategoryResponse{}, err
	}
	return model.NewCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id int64, name string) (model.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return model.CategoryResponse{}, err
	}

	category.Name = name
	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return model.CategoryResponse{}, err
	}
	return model.NewCategoryResponse(updated), nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.eventRepo.ExistsByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrCategoryInUse
	}
	return s.categoryRepo.Delete(ctx, id)
}
