package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smart-campus/internal/domain"
)

type LostItemRepository interface {
	Create(ctx context.Context, item *domain.LostItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error)
	List(ctx context.Context, status *domain.LostItemStatus, params domain.PaginationParams) ([]domain.LostItem, int64, error)
	Update(ctx context.Context, item *domain.LostItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListRecent(ctx context.Context, status domain.LostItemStatus, limit int) ([]domain.LostItem, error)
}

type lostItemRepository struct {
	db sqlx.ExtContext
}

func NewLostItemRepository(db sqlx.ExtContext) LostItemRepository {
	return &lostItemRepository{db: db}
}

func (r *lostItemRepository) Create(ctx context.Context, item *domain.LostItem) error {
	query := `
		INSERT INTO lost_items (item_id, title, description, location, date, image, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		item.ID, item.Title, item.Description, item.Location,
		item.Date, item.Image, item.Status, item.UserID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *lostItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error) {
	var item domain.LostItem
	query := `SELECT * FROM lost_items WHERE item_id = $1`

	err := sqlx.GetContext(ctx, r.db, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lostItemRepository) List(ctx context.Context, status *domain.LostItemStatus, params domain.PaginationParams) ([]domain.LostItem, int64, error) {
	params.Validate()

	var total int64
	var items []domain.LostItem

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM lost_items WHERE status = $1`
		if err := sqlx.GetContext(ctx, r.db, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM lost_items
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := sqlx.SelectContext(ctx, r.db, &items, query, *status, params.PageSize, params.Offset())
		return items, total, err
	}

	countQuery := `SELECT COUNT(*) FROM lost_items`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM lost_items
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := sqlx.SelectContext(ctx, r.db, &items, query, params.PageSize, params.Offset())
	return items, total, err
}

func (r *lostItemRepository) Update(ctx context.Context, item *domain.LostItem) error {
	query := `
		UPDATE lost_items
		SET title = :title, description = :description, location = :location,
			date = :date, image = :image, status = :status, updated_at = NOW()
		WHERE item_id = :item_id`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, item)
	return err
}

func (r *lostItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM lost_items WHERE item_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *lostItemRepository) ListRecent(ctx context.Context, status domain.LostItemStatus, limit int) ([]domain.LostItem, error) {
	var items []domain.LostItem
	query := `SELECT * FROM lost_items WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
	err := sqlx.SelectContext(ctx, r.db, &items, query, status, limit)
	return items, err
}
