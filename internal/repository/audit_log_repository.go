package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"smart-campus/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db sqlx.ExtContext
}

func NewAuditLogRepository(db sqlx.ExtContext) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_id, user_id, action, entity_type, entity_id, old_value, new_value, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.OldValue, log.NewValue, log.IPAddress, log.UserAgent,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	query := `SELECT * FROM audit_logs ORDER BY created_at DESC LIMIT $1`
	err := sqlx.SelectContext(ctx, r.db, &logs, query, limit)
	return logs, err
}
