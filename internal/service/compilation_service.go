package service

import (
	"context"

	"go-event-platform/internal/model"
	"go-event-platform/internal/repository"
	"go-event-platform/internal/stats"
)

type CompilationService interface {
	AddCompilation(ctx context.Context, title string, pinned bool, eventIDs []int64) (model.CompilationResponse, error)
	GetCompilations(ctx context.Context, pinned *bool, from, size int) ([]model.CompilationResponse, error)
	GetCompilation(ctx context.Context, id int64) (model.CompilationResponse, error)
	UpdateCompilation(ctx context.Context, id int64, params model.UpdateCompilationParams) (model.CompilationResponse, error)
	DeleteCompilation(ctx context.Context, id int64) error
}

type CompilationServiceImpl struct {
	compilationRepo repository.CompilationRepository
	requestRepo     repository.RequestRepository
	views           stats.ViewsProvider
}

func NewCompilationService(
	compilationRepo repository.CompilationRepository,
	requestRepo repository.RequestRepository,
	views stats.ViewsProvider,
) CompilationService {
	return &CompilationServiceImpl{
		compilationRepo: compilationRepo,
		requestRepo:     requestRepo,
		views:           views,
	}
}

func (s *CompilationServiceImpl) AddCompilation(ctx context.Context, title string, pinned bool, eventIDs []int64) (model.CompilationResponse, error) {
	compilation := &model.Compilation{
		Title:  title,
		Pinned: pinned,
	}
	created, err := s.compilationRepo.Create(ctx, compilation, eventIDs)
	if err != nil {
		return model.CompilationResponse{}, err
	}
	return s.makeResponse(ctx, created)
}

func (s *CompilationServiceImpl) GetCompilations(ctx context.Context, pinned *bool, from, size int) ([]model.CompilationResponse, error) {
	compilations, err := s.compilationRepo.List(ctx, pinned, from, size)
	if err != nil {
		return nil, err
	}
	responses := make([]model.CompilationResponse, 0, len(compilations))
	for _, compilation := range compilations {
		response, err := s.makeResponse(ctx, compilation)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (s *CompilationServiceImpl) GetCompilation(ctx context.Context, id int64) (model.CompilationResponse, error) {
	compilation, err := s.compilationRepo.FindByID(ctx, id)
	if err != nil {
		return model.CompilationResponse{}, err
	}
	return s.makeResponse(ctx, compilation)
}

func (s *CompilationServiceImpl) UpdateCompilation(ctx context.Context, id int64, params model.UpdateCompilationParams) (model.CompilationResponse, error) {
	if _, err := s.compilationRepo.FindByID(ctx, id); err != nil {
		return model.CompilationResponse{}, err
	}
	updated, err := s.compilationRepo.Update(ctx, id, params)
	if err != nil {
		return model.CompilationResponse{}, err
	}
	return s.makeResponse(ctx, updated)
}

func (s *CompilationServiceImpl) DeleteCompilation(ctx context.Context, id int64) error {
	if _, err := s.compilationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.compilationRepo.Delete(ctx, id)
}

func (s *CompilationServiceImpl) makeResponse(ctx context.Context, compilation *model.Compilation) (model.CompilationResponse, error) {
	ids := make([]int64, 0, len(compilation.Events))
	for _, event := range compilation.Events {
		ids = append(ids, event.ID)
	}
	confirmed, err := s.requestRepo.CountConfirmedByEventIDs(ctx, ids)
	if err != nil {
		return model.CompilationResponse{}, err
	}
	views := s.views.GetViews(ctx, compilation.Events)

	events := make([]model.EventShortResponse, 0, len(compilation.Events))
	for _, event := range compilation.Events {
		events = append(events, model.NewEventShortResponse(event, confirmed[event.ID], views[event.ID]))
	}
	return model.CompilationResponse{
		ID:     compilation.ID,
		Pinned: compilation.Pinned,
		Title:  compilation.Title,
		Events: events,
	}, nil
}
