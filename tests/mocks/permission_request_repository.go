package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
)

type PermissionRequestRepository struct {
	mock.Mock
}

func (m *PermissionRequestRepository) Create(ctx context.Context, req *domain.PermissionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *PermissionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PermissionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermissionRequest), args.Error(1)
}

func (m *PermissionRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.PermissionRequest), args.Get(1).(int64), args.Error(2)
}

func (m *PermissionRequestRepository) ListByStatus(ctx context.Context, status domain.PermissionRequestStatus, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.PermissionRequest), args.Get(1).(int64), args.Error(2)
}

func (m *PermissionRequestRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status domain.PermissionRequestStatus, reviewedBy uuid.UUID) error {
	args := m.Called(ctx, id, status, reviewedBy)
	return args.Error(0)
}

func (m *PermissionRequestRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
