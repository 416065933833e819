package club

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
)

type Service interface {
	Create(ctx context.Context, creator *domain.User, input domain.CreateClubInput) (*domain.Club, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Club], error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateClubInput) (*domain.Club, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	Join(ctx context.Context, user *domain.User, clubID uuid.UUID) error
	Leave(ctx context.Context, user *domain.User, clubID uuid.UUID) error
}

type service struct {
	clubRepo repository.ClubRepository
	userRepo repository.UserRepository
}

func NewService(clubRepo repository.ClubRepository, userRepo repository.UserRepository) Service {
	return &service{clubRepo: clubRepo, userRepo: userRepo}
}

// Create requires the club-creation capability, which students earn through
// an approved permission request.
func (s *service) Create(ctx context.Context, creator *domain.User, input domain.CreateClubInput) (*domain.Club, error) {
	if !creator.HasClubPermission() {
		return nil, fmt.Errorf("%w: you do not have permission to create clubs", domain.ErrPermissionDenied)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: club name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: club description is required", domain.ErrValidation)
	}

	club := &domain.Club{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		Logo:        input.Logo,
		PresidentID: creator.ID,
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, err
	}
	if err := s.clubRepo.AddMember(ctx, club.ID, creator.ID); err != nil {
		return nil, err
	}

	return club, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, fmt.Errorf("%w: club not found", domain.ErrNotFound)
	}

	if president, err := s.userRepo.GetByID(ctx, club.PresidentID); err == nil && president != nil {
		club.President = president
	}
	if members, err := s.clubRepo.ListMembers(ctx, id); err == nil {
		club.Members = members
		club.MemberCount = int64(len(members))
	}

	return club, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Club], error) {
	clubs, total, err := s.clubRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Club]{}, err
	}

	for i := range clubs {
		if count, err := s.clubRepo.CountMembers(ctx, clubs[i].ID); err == nil {
			clubs[i].MemberCount = count
		}
	}

	return domain.NewPaginatedResponse(clubs, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateClubInput) (*domain.Club, error) {
	club, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: club name cannot be empty", domain.ErrValidation)
		}
		club.Name = name
	}
	if input.Description != nil {
		club.Description = *input.Description
	}
	if input.Logo != nil {
		club.Logo = input.Logo
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	return s.clubRepo.Delete(ctx, id)
}

func (s *service) Join(ctx context.Context, user *domain.User, clubID uuid.UUID) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return fmt.Errorf("%w: club not found", domain.ErrNotFound)
	}
	return s.clubRepo.AddMember(ctx, clubID, user.ID)
}

func (s *service) Leave(ctx context.Context, user *domain.User, clubID uuid.UUID) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return fmt.Errorf("%w: club not found", domain.ErrNotFound)
	}
	if club.PresidentID == user.ID {
		return fmt.Errorf("%w: the president cannot leave their own club", domain.ErrValidation)
	}
	return s.clubRepo.RemoveMember(ctx, clubID, user.ID)
}

// loadOwned fetches a club and checks the actor is its president or an admin.
func (s *service) loadOwned(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, fmt.Errorf("%w: club not found", domain.ErrNotFound)
	}
	if club.PresidentID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the club president may modify this club", domain.ErrPermissionDenied)
	}
	return club, nil
}
