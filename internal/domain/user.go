package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID  `json:"id" db:"user_id"`
	Username        string     `json:"username" db:"username"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	Role            string     `json:"role" db:"role"`
	Department      *string    `json:"department,omitempty" db:"department"`
	ProfilePicture  *string    `json:"profile_picture,omitempty" db:"profile_picture"`
	CanCreateEvents bool       `json:"can_create_events" db:"can_create_events"`
	CanCreateClubs  bool       `json:"can_create_clubs" db:"can_create_clubs"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time `json:"-" db:"deleted_at"`
}

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	default:
		return false
	}
}

type CreateUserInput struct {
	Username   string  `json:"username" validate:"required,min=3"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Department *string `json:"department,omitempty"`
}

type UpdateUserInput struct {
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Department     *string `json:"department,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	Role string `json:"role" validate:"required,oneof=student faculty admin"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (u *User) IsStudent() bool {
	return u.Role == string(RoleStudent)
}

func (u *User) IsFaculty() bool {
	return u.Role == string(RoleFaculty)
}

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// HasEventPermission reports whether the user may create events: faculty and
// admins always may, students only after an approved permission request.
func (u *User) HasEventPermission() bool {
	return u.IsFaculty() || u.IsAdmin() || u.CanCreateEvents
}

// HasClubPermission is the club-creation counterpart of HasEventPermission.
func (u *User) HasClubPermission() bool {
	return u.IsFaculty() || u.IsAdmin() || u.CanCreateClubs
}

func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "faculty":
		return u.Role == "faculty" || u.Role == "admin"
	case "student":
		return u.Role == "student" || u.Role == "faculty" || u.Role == "admin"
	default:
		return false
	}
}
