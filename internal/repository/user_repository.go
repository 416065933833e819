package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"smart-campus/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	GrantCapability(ctx context.Context, userID uuid.UUID, permType domain.PermissionType) error
	GetByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, role, department, profile_picture,
			can_create_events, can_create_clubs, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role,
		user.Department, user.ProfilePicture, user.CanCreateEvents, user.CanCreateClubs, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	err := sqlx.GetContext(ctx, r.db, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE username = $1 AND deleted_at IS NULL`

	err := sqlx.GetContext(ctx, r.db, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := sqlx.GetContext(ctx, r.db, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND deleted_at IS NULL)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, username)
	return exists, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, email)
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = :email, department = :department, profile_picture = :profile_picture,
			password_hash = :password_hash, updated_at = NOW()
		WHERE user_id = :user_id AND deleted_at IS NULL`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, user)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, userID, role)
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

func (r *userRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID, active)
	return err
}

func (r *userRepository) GrantCapability(ctx context.Context, userID uuid.UUID, permType domain.PermissionType) error {
	var query string
	switch permType {
	case domain.PermissionEventCreation:
		query = `UPDATE users SET can_create_events = TRUE, updated_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	case domain.PermissionClubCreation:
		query = `UPDATE users SET can_create_clubs = TRUE, updated_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	default:
		return domain.ErrValidation
	}

	result, err := r.db.ExecContext(ctx, query, userID)
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

func (r *userRepository) GetByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error) {
	if len(roles) == 0 {
		return []domain.User{}, nil
	}

	var users []domain.User
	query := `SELECT * FROM users WHERE role = ANY($1) AND deleted_at IS NULL ORDER BY created_at DESC`

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	err := sqlx.SelectContext(ctx, r.db, &users, query, pq.Array(roleStrings))
	return users, err
}

func (r *userRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var users []domain.User
	query := `
		SELECT * FROM users
		WHERE deleted_at IS NULL
		ORDER BY username
		LIMIT $1 OFFSET $2`
	err := sqlx.SelectContext(ctx, r.db, &users, query, params.PageSize, params.Offset())
	return users, total, err
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND deleted_at IS NULL`
	err := sqlx.GetContext(ctx, r.db, &count, query, string(role))
	return count, err
}
