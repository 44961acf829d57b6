package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventbuddy/internal/errors"
)

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(7)).Return(int64(1), nil)

		svc := NewUserService(mockRepo)
		assert.NoError(t, svc.DeleteUser(context.Background(), 7))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, uint(99)).Return(int64(0), nil)

		svc := NewUserService(mockRepo)
		err := svc.DeleteUser(context.Background(), 99)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}
