package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smart-campus/internal/domain"
)

type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Club, int64, error)
	Update(ctx context.Context, club *domain.Club) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, clubID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error
	IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, clubID uuid.UUID) ([]domain.User, error)
	CountMembers(ctx context.Context, clubID uuid.UUID) (int64, error)
	ListRandom(ctx context.Context, limit int) ([]domain.Club, error)
	Count(ctx context.Context) (int64, error)
}

type clubRepository struct {
	db sqlx.ExtContext
}

func NewClubRepository(db sqlx.ExtContext) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(ctx context.Context, club *domain.Club) error {
	query := `
		INSERT INTO clubs (club_id, name, description, logo, president_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		club.ID, club.Name, club.Description, club.Logo, club.PresidentID,
	).Scan(&club.CreatedAt, &club.UpdatedAt)
}

func (r *clubRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	var club domain.Club
	query := `SELECT * FROM clubs WHERE club_id = $1`

	err := sqlx.GetContext(ctx, r.db, &club, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Club, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM clubs`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var clubs []domain.Club
	query := `
		SELECT * FROM clubs
		ORDER BY name
		LIMIT $1 OFFSET $2`
	err := sqlx.SelectContext(ctx, r.db, &clubs, query, params.PageSize, params.Offset())
	return clubs, total, err
}

func (r *clubRepository) Update(ctx context.Context, club *domain.Club) error {
	query := `
		UPDATE clubs
		SET name = :name, description = :description, logo = :logo, updated_at = NOW()
		WHERE club_id = :club_id`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, club)
	return err
}

func (r *clubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clubs WHERE club_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *clubRepository) AddMember(ctx context.Context, clubID, userID uuid.UUID) error {
	query := `
		INSERT INTO club_members (club_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, clubID, userID)
	return err
}

func (r *clubRepository) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	query := `DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, clubID, userID)
	return err
}

func (r *clubRepository) IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id = $1 AND user_id = $2)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, clubID, userID)
	return exists, err
}

func (r *clubRepository) ListMembers(ctx context.Context, clubID uuid.UUID) ([]domain.User, error) {
	var members []domain.User
	query := `
		SELECT u.* FROM users u
		JOIN club_members cm ON cm.user_id = u.user_id
		WHERE cm.club_id = $1 AND u.deleted_at IS NULL
		ORDER BY u.username`
	err := sqlx.SelectContext(ctx, r.db, &members, query, clubID)
	return members, err
}

func (r *clubRepository) CountMembers(ctx context.Context, clubID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM club_members WHERE club_id = $1`
	err := sqlx.GetContext(ctx, r.db, &count, query, clubID)
	return count, err
}

func (r *clubRepository) ListRandom(ctx context.Context, limit int) ([]domain.Club, error) {
	var clubs []domain.Club
	query := `SELECT * FROM clubs ORDER BY RANDOM() LIMIT $1`
	err := sqlx.SelectContext(ctx, r.db, &clubs, query, limit)
	return clubs, err
}

func (r *clubRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM clubs`)
	return count, err
}
