package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, username string) error {
	args := m.Called(ctx, toEmail, username)
	return args.Error(0)
}

func (m *EmailService) SendPermissionRequestEmail(ctx context.Context, toEmail, recipientName, requesterName, permissionLabel, reason string) error {
	args := m.Called(ctx, toEmail, recipientName, requesterName, permissionLabel, reason)
	return args.Error(0)
}

func (m *EmailService) SendPermissionDecisionEmail(ctx context.Context, toEmail, recipientName, permissionLabel, decision string) error {
	args := m.Called(ctx, toEmail, recipientName, permissionLabel, decision)
	return args.Error(0)
}
