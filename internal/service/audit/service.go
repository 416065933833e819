package audit

import (
	"context"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
)

type Service interface {
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
