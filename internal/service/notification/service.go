package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
	"smart-campus/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	Notify(ctx context.Context, userID uuid.UUID, title, message string, link *string) error
	NotifyWelcome(ctx context.Context, user *domain.User) error
	NotifyPermissionRequested(ctx context.Context, req *domain.PermissionRequest, requester *domain.User) error
	NotifyPermissionDecision(ctx context.Context, req *domain.PermissionRequest, result *domain.ProvisionResult) error
	NotifyFeedbackSubmitted(ctx context.Context, fb *domain.Feedback, author *domain.User) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

// MarkAsRead flips the read flag. Only the owning user may do so.
func (s *service) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notif == nil {
		return domain.ErrNotFound
	}
	if notif.UserID != userID {
		return domain.ErrPermissionDenied
	}

	return s.notifRepo.MarkAsRead(ctx, notificationID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, title, message string, link *string) error {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Link:    link,
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) NotifyWelcome(ctx context.Context, user *domain.User) error {
	link := "/users/profile"
	err := s.Notify(ctx, user.ID, "Welcome to Smart Campus!",
		fmt.Sprintf("Welcome %s! Your account has been created successfully.", user.Username), &link)
	if err != nil {
		return err
	}

	if s.emailSvc != nil && user.Email != "" {
		go func(toEmail, username string) {
			_ = s.emailSvc.SendWelcomeEmail(context.Background(), toEmail, username)
		}(user.Email, user.Username)
	}

	return nil
}

// NotifyPermissionRequested fans a new request out to every faculty and admin
// user. Each append is independent and best-effort.
func (s *service) NotifyPermissionRequested(ctx context.Context, req *domain.PermissionRequest, requester *domain.User) error {
	reviewers, err := s.userRepo.GetByRoles(ctx, []domain.UserRole{domain.RoleFaculty, domain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("failed to get reviewers: %w", err)
	}

	label := permissionLabel(req.PermissionType)
	message := fmt.Sprintf("%s requested permission for %s: %s",
		requester.Username, label, truncate(req.Reason, 100))
	link := fmt.Sprintf("/permission-requests/%s", req.ID)

	for _, reviewer := range reviewers {
		if reviewer.ID == requester.ID {
			continue
		}

		if err := s.Notify(ctx, reviewer.ID, "New Permission Request", message, &link); err != nil {
			fmt.Printf("Failed to create notification for user %s: %v\n", reviewer.ID, err)
			continue
		}

		if s.emailSvc != nil && reviewer.Email != "" {
			go func(toEmail, recipientName string) {
				_ = s.emailSvc.SendPermissionRequestEmail(context.Background(),
					toEmail, recipientName, requester.Username, label, truncate(req.Reason, 100))
			}(reviewer.Email, reviewer.Username)
		}
	}

	return nil
}

// NotifyPermissionDecision tells the requester what happened to their request,
// including whether an Event or Club was provisioned for them.
func (s *service) NotifyPermissionDecision(ctx context.Context, req *domain.PermissionRequest, result *domain.ProvisionResult) error {
	label := permissionLabel(req.PermissionType)

	var title, message string
	var link *string

	switch req.Status {
	case domain.RequestApproved:
		title = "Permission Request Approved"
		switch {
		case result != nil && result.Outcome == domain.ProvisionCreated && result.EventID != nil:
			message = fmt.Sprintf("Your request for %s was approved and your event has been created.", label)
			l := fmt.Sprintf("/events/%s", result.EventID)
			link = &l
		case result != nil && result.Outcome == domain.ProvisionCreated && result.ClubID != nil:
			message = fmt.Sprintf("Your request for %s was approved and your club has been created.", label)
			l := fmt.Sprintf("/clubs/%s", result.ClubID)
			link = &l
		case req.PermissionType == domain.PermissionEventCreation && result != nil && result.Outcome == domain.ProvisionSkipped:
			message = fmt.Sprintf("Your request for %s was approved, but your event could not be created automatically. Manual creation is required.", label)
		default:
			message = fmt.Sprintf("Your request for %s was approved.", label)
		}
	case domain.RequestRejected:
		title = "Permission Request Rejected"
		message = fmt.Sprintf("Your request for %s was rejected.", label)
	default:
		return nil
	}

	if err := s.Notify(ctx, req.UserID, title, message, link); err != nil {
		return err
	}

	if s.emailSvc != nil {
		if requester, err := s.userRepo.GetByID(ctx, req.UserID); err == nil && requester != nil && requester.Email != "" {
			decision := "Approved"
			if req.Status == domain.RequestRejected {
				decision = "Rejected"
			}
			go func(toEmail, recipientName string) {
				_ = s.emailSvc.SendPermissionDecisionEmail(context.Background(), toEmail, recipientName, label, decision)
			}(requester.Email, requester.Username)
		}
	}

	return nil
}

// NotifyFeedbackSubmitted fans new feedback out to faculty and admins.
func (s *service) NotifyFeedbackSubmitted(ctx context.Context, fb *domain.Feedback, author *domain.User) error {
	recipients, err := s.userRepo.GetByRoles(ctx, []domain.UserRole{domain.RoleFaculty, domain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("failed to get recipients: %w", err)
	}

	title := fmt.Sprintf("New Feedback from %s", author.Username)
	message := fmt.Sprintf("Category: %s\nTitle: %s\n%s", fb.Category, fb.Title, truncate(fb.Description, 100))
	link := fmt.Sprintf("/feedback/%s", fb.ID)

	for _, user := range recipients {
		if user.ID == author.ID {
			continue
		}
		_ = s.Notify(ctx, user.ID, title, message, &link)
	}

	return nil
}

func permissionLabel(t domain.PermissionType) string {
	switch t {
	case domain.PermissionEventCreation:
		return "event creation"
	case domain.PermissionClubCreation:
		return "club creation"
	default:
		return string(t)
	}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
