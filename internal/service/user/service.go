package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
)

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	AssignRole(ctx context.Context, admin *domain.User, userID uuid.UUID, input domain.AssignRoleInput) (*domain.User, error)
	SetActive(ctx context.Context, admin *domain.User, userID uuid.UUID, active bool) error
	Delete(ctx context.Context, admin *domain.User, userID uuid.UUID) error
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
		}
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: email already in use", domain.ErrValidation)
			}
			user.Email = email
		}
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = input.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrPermissionDenied)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return s.userRepo.Update(ctx, user)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

// AssignRole is the admin escape hatch around the request workflow: it
// changes the role directly, which implicitly carries the role's permissions.
func (s *service) AssignRole(ctx context.Context, admin *domain.User, userID uuid.UUID, input domain.AssignRoleInput) (*domain.User, error) {
	if !admin.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may assign roles", domain.ErrPermissionDenied)
	}
	if !domain.UserRole(input.Role).IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}
	if admin.ID == userID {
		return nil, fmt.Errorf("%w: you cannot change your own role", domain.ErrValidation)
	}

	if err := s.userRepo.AssignRole(ctx, userID, input.Role); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) SetActive(ctx context.Context, admin *domain.User, userID uuid.UUID, active bool) error {
	if !admin.IsAdmin() {
		return fmt.Errorf("%w: only admins may change account status", domain.ErrPermissionDenied)
	}
	if admin.ID == userID {
		return fmt.Errorf("%w: you cannot deactivate your own account", domain.ErrValidation)
	}
	return s.userRepo.SetActive(ctx, userID, active)
}

func (s *service) Delete(ctx context.Context, admin *domain.User, userID uuid.UUID) error {
	if !admin.IsAdmin() {
		return fmt.Errorf("%w: only admins may delete accounts", domain.ErrPermissionDenied)
	}
	if admin.ID == userID {
		return fmt.Errorf("%w: you cannot delete your own account", domain.ErrValidation)
	}
	return s.userRepo.Delete(ctx, userID)
}
