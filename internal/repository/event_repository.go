package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smart-campus/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int64, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	IsAttending(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	ListAttendees(ctx context.Context, eventID uuid.UUID) ([]domain.User, error)
	CountAttendees(ctx context.Context, eventID uuid.UUID) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Event, error)
	Count(ctx context.Context) (int64, error)
}

type eventRepository struct {
	db sqlx.ExtContext
}

func NewEventRepository(db sqlx.ExtContext) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (event_id, title, description, location, start_date, end_date, image, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.Title, event.Description, event.Location,
		event.StartDate, event.EndDate, event.Image, event.OrganizerID,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	query := `SELECT * FROM events WHERE event_id = $1`

	err := sqlx.GetContext(ctx, r.db, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM events`
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var events []domain.Event
	query := `
		SELECT * FROM events
		ORDER BY start_date DESC
		LIMIT $1 OFFSET $2`
	err := sqlx.SelectContext(ctx, r.db, &events, query, params.PageSize, params.Offset())
	return events, total, err
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = :title, description = :description, location = :location,
			start_date = :start_date, end_date = :end_date, image = :image, updated_at = NOW()
		WHERE event_id = :event_id`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, event)
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE event_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *eventRepository) AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	return err
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	return err
}

func (r *eventRepository) IsAttending(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, eventID, userID)
	return exists, err
}

func (r *eventRepository) ListAttendees(ctx context.Context, eventID uuid.UUID) ([]domain.User, error) {
	var attendees []domain.User
	query := `
		SELECT u.* FROM users u
		JOIN event_attendees ea ON ea.user_id = u.user_id
		WHERE ea.event_id = $1 AND u.deleted_at IS NULL
		ORDER BY u.username`
	err := sqlx.SelectContext(ctx, r.db, &attendees, query, eventID)
	return attendees, err
}

func (r *eventRepository) CountAttendees(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`
	err := sqlx.GetContext(ctx, r.db, &count, query, eventID)
	return count, err
}

func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]domain.Event, error) {
	var events []domain.Event
	query := `SELECT * FROM events ORDER BY start_date DESC LIMIT $1`
	err := sqlx.SelectContext(ctx, r.db, &events, query, limit)
	return events, err
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM events`)
	return count, err
}
