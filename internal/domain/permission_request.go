package domain

import (
	"time"

	"github.com/google/uuid"
)

// PermissionRequest is a student's application for an elevated capability.
// The row doubles as the audit record of the decision: once reviewed_by and
// reviewed_at are set they never change, and the draft fields stay in place
// even after an Event has been provisioned from them.
type PermissionRequest struct {
	ID             uuid.UUID               `json:"id" db:"request_id"`
	UserID         uuid.UUID               `json:"user_id" db:"user_id"`
	PermissionType PermissionType          `json:"permission_type" db:"permission_type"`
	Reason         string                  `json:"reason" db:"reason"`
	EventTitle     *string                 `json:"event_title,omitempty" db:"event_title"`
	EventDesc      *string                 `json:"event_description,omitempty" db:"event_description"`
	EventLocation  *string                 `json:"event_location,omitempty" db:"event_location"`
	EventStartDate *time.Time              `json:"event_start_date,omitempty" db:"event_start_date"`
	EventEndDate   *time.Time              `json:"event_end_date,omitempty" db:"event_end_date"`
	EventImage     *string                 `json:"event_image,omitempty" db:"event_image"`
	Status         PermissionRequestStatus `json:"status" db:"status"`
	ReviewedBy     *uuid.UUID              `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt     *time.Time              `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt      time.Time               `json:"created_at" db:"created_at"`

	Requester *User `json:"requester,omitempty" db:"-"`
	Reviewer  *User `json:"reviewer,omitempty" db:"-"`
}

type PermissionType string

const (
	PermissionEventCreation PermissionType = "event_creation"
	PermissionClubCreation  PermissionType = "club_creation"
)

func (t PermissionType) IsValid() bool {
	switch t {
	case PermissionEventCreation, PermissionClubCreation:
		return true
	default:
		return false
	}
}

type PermissionRequestStatus string

const (
	RequestPending  PermissionRequestStatus = "pending"
	RequestApproved PermissionRequestStatus = "approved"
	RequestRejected PermissionRequestStatus = "rejected"
)

type CreatePermissionRequestInput struct {
	PermissionType PermissionType `json:"permission_type" validate:"required"`
	Reason         string         `json:"reason" validate:"required,max=1000"`
	EventTitle     *string        `json:"event_title,omitempty"`
	EventDesc      *string        `json:"event_description,omitempty"`
	EventLocation  *string        `json:"event_location,omitempty"`
	EventStartDate *time.Time     `json:"event_start_date,omitempty"`
	EventEndDate   *time.Time     `json:"event_end_date,omitempty"`
	EventImage     *string        `json:"event_image,omitempty"`
}

// ProvisionOutcome reports what happened to the auto-provisioning step of an
// approval. Provisioning failure never fails the approval itself, so the
// outcome is carried alongside the approved request instead of as an error.
type ProvisionOutcome string

const (
	ProvisionCreated ProvisionOutcome = "created"
	ProvisionSkipped ProvisionOutcome = "skipped"
)

type ProvisionResult struct {
	Outcome ProvisionOutcome `json:"outcome"`
	Reason  string           `json:"reason,omitempty"`
	EventID *uuid.UUID       `json:"event_id,omitempty"`
	ClubID  *uuid.UUID       `json:"club_id,omitempty"`
}
