package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
)

type ClubRepository struct {
	mock.Mock
}

func (m *ClubRepository) Create(ctx context.Context, club *domain.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

func (m *ClubRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Club, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Club), args.Get(1).(int64), args.Error(2)
}

func (m *ClubRepository) Update(ctx context.Context, club *domain.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *ClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ClubRepository) AddMember(ctx context.Context, clubID, userID uuid.UUID) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *ClubRepository) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *ClubRepository) IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clubID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ClubRepository) ListMembers(ctx context.Context, clubID uuid.UUID) ([]domain.User, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *ClubRepository) CountMembers(ctx context.Context, clubID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clubID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ClubRepository) ListRandom(ctx context.Context, limit int) ([]domain.Club, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Club), args.Error(1)
}

func (m *ClubRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
