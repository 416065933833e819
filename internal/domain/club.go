package domain

import (
	"time"

	"github.com/google/uuid"
)

type Club struct {
	ID          uuid.UUID `json:"id" db:"club_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Logo        *string   `json:"logo,omitempty" db:"logo"`
	PresidentID uuid.UUID `json:"president_id" db:"president_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	President   *User  `json:"president,omitempty" db:"-"`
	Members     []User `json:"members,omitempty" db:"-"`
	MemberCount int64  `json:"member_count" db:"-"`
}

type CreateClubInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"required"`
	Logo        *string `json:"logo,omitempty"`
}

type UpdateClubInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty"`
	Logo        *string  `json:"logo,omitempty"`
}
