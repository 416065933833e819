package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, link *string) error {
	args := m.Called(ctx, userID, title, message, link)
	return args.Error(0)
}

func (m *NotificationService) NotifyWelcome(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *NotificationService) NotifyPermissionRequested(ctx context.Context, req *domain.PermissionRequest, requester *domain.User) error {
	args := m.Called(ctx, req, requester)
	return args.Error(0)
}

func (m *NotificationService) NotifyPermissionDecision(ctx context.Context, req *domain.PermissionRequest, result *domain.ProvisionResult) error {
	args := m.Called(ctx, req, result)
	return args.Error(0)
}

func (m *NotificationService) NotifyFeedbackSubmitted(ctx context.Context, fb *domain.Feedback, author *domain.User) error {
	args := m.Called(ctx, fb, author)
	return args.Error(0)
}
