package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smart-campus/internal/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Feedback, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FeedbackStatus) error
}

type feedbackRepository struct {
	db sqlx.ExtContext
}

func NewFeedbackRepository(db sqlx.ExtContext) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedback (feedback_id, title, description, category, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		fb.ID, fb.Title, fb.Description, fb.Category, fb.Status, fb.UserID,
	).Scan(&fb.CreatedAt, &fb.UpdatedAt)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	var fb domain.Feedback
	query := `SELECT * FROM feedback WHERE feedback_id = $1`

	err := sqlx.GetContext(ctx, r.db, &fb, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Feedback, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM feedback`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var feedback []domain.Feedback
	query := `
		SELECT * FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := sqlx.SelectContext(ctx, r.db, &feedback, query, params.PageSize, params.Offset())
	return feedback, total, err
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FeedbackStatus) error {
	query := `UPDATE feedback SET status = $2, updated_at = NOW() WHERE feedback_id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
