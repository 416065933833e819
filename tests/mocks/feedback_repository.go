package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
)

type FeedbackRepository struct {
	mock.Mock
}

func (m *FeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *FeedbackRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Feedback, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *FeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FeedbackStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
