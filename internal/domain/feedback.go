package domain

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID          uuid.UUID      `json:"id" db:"feedback_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Category    string         `json:"category" db:"category"`
	Status      FeedbackStatus `json:"status" db:"status"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	Author *User `json:"author,omitempty" db:"-"`
}

type FeedbackStatus string

const (
	FeedbackPending    FeedbackStatus = "pending"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackResolved   FeedbackStatus = "resolved"
)

func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackPending, FeedbackInProgress, FeedbackResolved:
		return true
	default:
		return false
	}
}

type CreateFeedbackInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,max=50"`
}

type UpdateFeedbackStatusInput struct {
	Status FeedbackStatus `json:"status" validate:"required"`
}
