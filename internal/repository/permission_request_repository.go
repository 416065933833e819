package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smart-campus/internal/domain"
)

type PermissionRequestRepository interface {
	Create(ctx context.Context, req *domain.PermissionRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PermissionRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error)
	ListByStatus(ctx context.Context, status domain.PermissionRequestStatus, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error)
	MarkReviewed(ctx context.Context, id uuid.UUID, status domain.PermissionRequestStatus, reviewedBy uuid.UUID) error
	CountPending(ctx context.Context) (int64, error)
}

type permissionRequestRepository struct {
	db sqlx.ExtContext
}

func NewPermissionRequestRepository(db sqlx.ExtContext) PermissionRequestRepository {
	return &permissionRequestRepository{db: db}
}

func (r *permissionRequestRepository) Create(ctx context.Context, req *domain.PermissionRequest) error {
	query := `
		INSERT INTO permission_requests (request_id, user_id, permission_type, reason,
			event_title, event_description, event_location, event_start_date, event_end_date, event_image, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.PermissionType, req.Reason,
		req.EventTitle, req.EventDesc, req.EventLocation,
		req.EventStartDate, req.EventEndDate, req.EventImage, req.Status,
	).Scan(&req.CreatedAt)
}

func (r *permissionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PermissionRequest, error) {
	var req domain.PermissionRequest
	query := `SELECT * FROM permission_requests WHERE request_id = $1`

	err := sqlx.GetContext(ctx, r.db, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *permissionRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM permission_requests WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var requests []domain.PermissionRequest
	query := `
		SELECT * FROM permission_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := sqlx.SelectContext(ctx, r.db, &requests, query, userID, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *permissionRequestRepository) ListByStatus(ctx context.Context, status domain.PermissionRequestStatus, params domain.PaginationParams) ([]domain.PermissionRequest, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM permission_requests WHERE status = $1`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, status); err != nil {
		return nil, 0, err
	}

	var requests []domain.PermissionRequest
	query := `
		SELECT * FROM permission_requests
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := sqlx.SelectContext(ctx, r.db, &requests, query, status, params.PageSize, params.Offset())
	return requests, total, err
}

// MarkReviewed moves a request out of pending. The WHERE clause doubles as a
// compare-and-set: if another reviewer already decided the request, zero rows
// match and ErrAlreadyProcessed is returned, so a terminal status is reached
// exactly once even under concurrent reviewers.
func (r *permissionRequestRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status domain.PermissionRequestStatus, reviewedBy uuid.UUID) error {
	query := `
		UPDATE permission_requests
		SET status = $2, reviewed_by = $3, reviewed_at = NOW()
		WHERE request_id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id, status, reviewedBy)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlreadyProcessed
	}
	return nil
}

func (r *permissionRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM permission_requests WHERE status = 'pending'`
	err := sqlx.GetContext(ctx, r.db, &count, query)
	return count, err
}
