package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
	"smart-campus/internal/service/notification"
)

type Service interface {
	Submit(ctx context.Context, author *domain.User, input domain.CreateFeedbackInput) (*domain.Feedback, error)
	GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Feedback, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Feedback], error)
	UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateFeedbackStatusInput) (*domain.Feedback, error)
}

type service struct {
	fbRepo   repository.FeedbackRepository
	userRepo repository.UserRepository
	notifSvc notification.Service
}

func NewService(fbRepo repository.FeedbackRepository, userRepo repository.UserRepository, notifSvc notification.Service) Service {
	return &service{fbRepo: fbRepo, userRepo: userRepo, notifSvc: notifSvc}
}

func (s *service) Submit(ctx context.Context, author *domain.User, input domain.CreateFeedbackInput) (*domain.Feedback, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: feedback title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: feedback description is required", domain.ErrValidation)
	}

	fb := &domain.Feedback{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Status:      domain.FeedbackPending,
		UserID:      author.ID,
	}

	if err := s.fbRepo.Create(ctx, fb); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		_ = s.notifSvc.NotifyFeedbackSubmitted(ctx, fb, author)
	}

	return fb, nil
}

func (s *service) GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Feedback, error) {
	fb, err := s.fbRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, fmt.Errorf("%w: feedback not found", domain.ErrNotFound)
	}

	if viewer.IsStudent() && fb.UserID != viewer.ID {
		return nil, fmt.Errorf("%w: you may only view your own feedback", domain.ErrPermissionDenied)
	}

	if author, err := s.userRepo.GetByID(ctx, fb.UserID); err == nil && author != nil {
		fb.Author = author
	}
	return fb, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Feedback], error) {
	items, total, err := s.fbRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Feedback]{}, err
	}
	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

// UpdateStatus is reserved for staff triaging feedback.
func (s *service) UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateFeedbackStatusInput) (*domain.Feedback, error) {
	if actor.IsStudent() {
		return nil, fmt.Errorf("%w: only staff may update feedback status", domain.ErrPermissionDenied)
	}
	if !input.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown feedback status %q", domain.ErrValidation, input.Status)
	}

	if err := s.fbRepo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, err
	}

	fb, err := s.fbRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, fmt.Errorf("%w: feedback not found", domain.ErrNotFound)
	}
	return fb, nil
}
