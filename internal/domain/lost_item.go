package domain

import (
	"time"

	"github.com/google/uuid"
)

type LostItem struct {
	ID          uuid.UUID      `json:"id" db:"item_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Location    string         `json:"location" db:"location"`
	Date        time.Time      `json:"date" db:"date"`
	Image       *string        `json:"image,omitempty" db:"image"`
	Status      LostItemStatus `json:"status" db:"status"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	Reporter *User `json:"reporter,omitempty" db:"-"`
}

type LostItemStatus string

const (
	ItemLost    LostItemStatus = "lost"
	ItemFound   LostItemStatus = "found"
	ItemClaimed LostItemStatus = "claimed"
)

func (s LostItemStatus) IsValid() bool {
	switch s {
	case ItemLost, ItemFound, ItemClaimed:
		return true
	default:
		return false
	}
}

type CreateLostItemInput struct {
	Title       string         `json:"title" validate:"required,max=100"`
	Description string         `json:"description" validate:"required"`
	Location    string         `json:"location" validate:"required,max=100"`
	Date        time.Time      `json:"date" validate:"required"`
	Image       *string        `json:"image,omitempty"`
	Status      LostItemStatus `json:"status,omitempty"`
}

type UpdateLostItemInput struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string         `json:"description,omitempty"`
	Location    *string         `json:"location,omitempty" validate:"omitempty,max=100"`
	Date        *time.Time      `json:"date,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Status      *LostItemStatus `json:"status,omitempty"`
}
