package domain

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `json:"id" db:"event_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Image       *string   `json:"image,omitempty" db:"image"`
	OrganizerID uuid.UUID `json:"organizer_id" db:"organizer_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Organizer     *User  `json:"organizer,omitempty" db:"-"`
	Attendees     []User `json:"attendees,omitempty" db:"-"`
	AttendeeCount int64  `json:"attendee_count" db:"-"`
}

type CreateEventInput struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Description string     `json:"description" validate:"required"`
	Location    string     `json:"location" validate:"required,max=100"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Image       *string    `json:"image,omitempty"`
}

type UpdateEventInput struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=100"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Image       *string    `json:"image,omitempty"`
}
