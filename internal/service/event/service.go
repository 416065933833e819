package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
)

type Service interface {
	Create(ctx context.Context, creator *domain.User, input domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Event], error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	Attend(ctx context.Context, user *domain.User, eventID uuid.UUID) error
	Unattend(ctx context.Context, user *domain.User, eventID uuid.UUID) error
}

type service struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

func NewService(eventRepo repository.EventRepository, userRepo repository.UserRepository) Service {
	return &service{eventRepo: eventRepo, userRepo: userRepo}
}

// Create requires the event-creation capability, which students earn through
// an approved permission request.
func (s *service) Create(ctx context.Context, creator *domain.User, input domain.CreateEventInput) (*domain.Event, error) {
	if !creator.HasEventPermission() {
		return nil, fmt.Errorf("%w: you do not have permission to create events", domain.ErrPermissionDenied)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", domain.ErrValidation)
	}
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: event start date is required", domain.ErrValidation)
	}

	endDate := input.StartDate
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	if endDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", domain.ErrValidation)
	}

	event := &domain.Event{
		ID:          uuid.New(),
		Title:       title,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     endDate,
		Image:       input.Image,
		OrganizerID: creator.ID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", domain.ErrNotFound)
	}

	if organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID); err == nil && organizer != nil {
		event.Organizer = organizer
	}
	if count, err := s.eventRepo.CountAttendees(ctx, id); err == nil {
		event.AttendeeCount = count
	}

	return event, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Event], error) {
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Event]{}, err
	}

	for i := range events {
		if count, err := s.eventRepo.CountAttendees(ctx, events[i].ID); err == nil {
			events[i].AttendeeCount = count
		}
	}

	return domain.NewPaginatedResponse(events, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateEventInput) (*domain.Event, error) {
	event, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: event title cannot be empty", domain.ErrValidation)
		}
		event.Title = title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if input.Image != nil {
		event.Image = input.Image
	}

	if event.EndDate.Before(event.StartDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", domain.ErrValidation)
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *service) Attend(ctx context.Context, user *domain.User, eventID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("%w: event not found", domain.ErrNotFound)
	}
	return s.eventRepo.AddAttendee(ctx, eventID, user.ID)
}

func (s *service) Unattend(ctx context.Context, user *domain.User, eventID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("%w: event not found", domain.ErrNotFound)
	}
	return s.eventRepo.RemoveAttendee(ctx, eventID, user.ID)
}

// loadOwned fetches an event and checks the actor is its organizer or an admin.
func (s *service) loadOwned(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event not found", domain.ErrNotFound)
	}
	if event.OrganizerID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the organizer may modify this event", domain.ErrPermissionDenied)
	}
	return event, nil
}
