package lostfound

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
)

type Service interface {
	Report(ctx context.Context, reporter *domain.User, input domain.CreateLostItemInput) (*domain.LostItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error)
	List(ctx context.Context, status *domain.LostItemStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.LostItem], error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateLostItemInput) (*domain.LostItem, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

type service struct {
	itemRepo repository.LostItemRepository
	userRepo repository.UserRepository
}

func NewService(itemRepo repository.LostItemRepository, userRepo repository.UserRepository) Service {
	return &service{itemRepo: itemRepo, userRepo: userRepo}
}

func (s *service) Report(ctx context.Context, reporter *domain.User, input domain.CreateLostItemInput) (*domain.LostItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: item title is required", domain.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = domain.ItemLost
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown item status %q", domain.ErrValidation, status)
	}

	item := &domain.LostItem{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    input.Location,
		Date:        input.Date,
		Image:       input.Image,
		Status:      status,
		UserID:      reporter.ID,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: lost item not found", domain.ErrNotFound)
	}

	if reporter, err := s.userRepo.GetByID(ctx, item.UserID); err == nil && reporter != nil {
		item.Reporter = reporter
	}
	return item, nil
}

func (s *service) List(ctx context.Context, status *domain.LostItemStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.LostItem], error) {
	if status != nil && !status.IsValid() {
		return domain.PaginatedResponse[domain.LostItem]{}, fmt.Errorf("%w: unknown item status %q", domain.ErrValidation, *status)
	}

	items, total, err := s.itemRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.LostItem]{}, err
	}
	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateLostItemInput) (*domain.LostItem, error) {
	item, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: item title cannot be empty", domain.ErrValidation)
		}
		item.Title = title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.Date != nil {
		item.Date = *input.Date
	}
	if input.Image != nil {
		item.Image = input.Image
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown item status %q", domain.ErrValidation, *input.Status)
		}
		item.Status = *input.Status
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *service) loadOwned(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.LostItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: lost item not found", domain.ErrNotFound)
	}
	if item.UserID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the reporter may modify this item", domain.ErrPermissionDenied)
	}
	return item, nil
}
