package service

import (
	"context"

	"go-event-platform/internal/model"
	"go-event-platform/internal/repository"
)

type UserService interface {
	AddUser(ctx context.Context, name, email string) (*model.User, error)
	GetUsers(ctx context.Context, ids []int64, from, size int) ([]*model.User, error)
	UpdateUser(ctx context.Context, id int64, params model.UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) AddUser(ctx context.Context, name, email string) (*model.User, error) {
	user := &model.User{
		Name:  name,
		Email: email,
	}
	return s.userRepo.Create(ctx, user)
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, ids []int64, from, size int) ([]*model.User, error) {
	return s.userRepo.List(ctx, ids, from, size)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, params model.UpdateUserParams) (*model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.userRepo.Update(ctx, id, params)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
