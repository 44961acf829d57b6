package service

import (
	"context"

	"eventbuddy/internal/errors"
	"eventbuddy/internal/repository"
)

// UserService exposes administrative account operations.
type UserService interface {
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// DeleteUser removes an account; the user's bookings cascade with it.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}
