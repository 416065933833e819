package permissionrequest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
	"smart-campus/internal/service/notification"
)

// RequestMeta carries client details for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Transactor runs a function against transaction-scoped repositories.
// repository.Manager satisfies it.
type Transactor interface {
	InTx(ctx context.Context, fn func(*repository.Repositories) error) error
}

type Service interface {
	Submit(ctx context.Context, requester *domain.User, input domain.CreatePermissionRequestInput) (*domain.PermissionRequest, error)
	GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.PermissionRequest, error)
	List(ctx context.Context, viewer *domain.User, params domain.PaginationParams) (domain.PaginatedResponse[domain.PermissionRequest], error)
	Approve(ctx context.Context, reviewer *domain.User, id uuid.UUID, meta *RequestMeta) (*domain.PermissionRequest, *domain.ProvisionResult, error)
	Reject(ctx context.Context, reviewer *domain.User, id uuid.UUID, meta *RequestMeta) (*domain.PermissionRequest, error)
}

type service struct {
	reqRepo   repository.PermissionRequestRepository
	userRepo  repository.UserRepository
	clubRepo  repository.ClubRepository
	eventRepo repository.EventRepository
	auditRepo repository.AuditLogRepository
	tx        Transactor
	notifSvc  notification.Service
}

func NewService(
	reqRepo repository.PermissionRequestRepository,
	userRepo repository.UserRepository,
	clubRepo repository.ClubRepository,
	eventRepo repository.EventRepository,
	auditRepo repository.AuditLogRepository,
	tx Transactor,
	notifSvc notification.Service,
) Service {
	return &service{
		reqRepo:   reqRepo,
		userRepo:  userRepo,
		clubRepo:  clubRepo,
		eventRepo: eventRepo,
		auditRepo: auditRepo,
		tx:        tx,
		notifSvc:  notifSvc,
	}
}

// Submit files a new pending request. Only students may apply; faculty and
// admins already hold these permissions through their role. A student may hold
// several pending requests of the same type at once.
func (s *service) Submit(ctx context.Context, requester *domain.User, input domain.CreatePermissionRequestInput) (*domain.PermissionRequest, error) {
	if !requester.IsStudent() {
		return nil, fmt.Errorf("%w: only students may request permissions", domain.ErrPermissionDenied)
	}

	if !input.PermissionType.IsValid() {
		return nil, fmt.Errorf("%w: unknown permission type %q", domain.ErrValidation, input.PermissionType)
	}

	req := &domain.PermissionRequest{
		ID:             uuid.New(),
		UserID:         requester.ID,
		PermissionType: input.PermissionType,
		Reason:         input.Reason,
		Status:         domain.RequestPending,
	}

	// Draft fields only make sense for event requests.
	if input.PermissionType == domain.PermissionEventCreation {
		req.EventTitle = input.EventTitle
		req.EventDesc = input.EventDesc
		req.EventLocation = input.EventLocation
		req.EventStartDate = input.EventStartDate
		req.EventEndDate = input.EventEndDate
		req.EventImage = input.EventImage
	}

	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		_ = s.notifSvc.NotifyPermissionRequested(ctx, req, requester)
	}

	return req, nil
}

func (s *service) GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.PermissionRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: permission request not found", domain.ErrNotFound)
	}

	if viewer.IsStudent() && req.UserID != viewer.ID {
		return nil, fmt.Errorf("%w: you may only view your own requests", domain.ErrPermissionDenied)
	}

	s.attachUsers(ctx, req)
	return req, nil
}

// List shows a student their own requests in any status, and shows reviewers
// the system-wide pending queue, newest first.
func (s *service) List(ctx context.Context, viewer *domain.User, params domain.PaginationParams) (domain.PaginatedResponse[domain.PermissionRequest], error) {
	var (
		requests []domain.PermissionRequest
		total    int64
		err      error
	)

	if viewer.IsStudent() {
		requests, total, err = s.reqRepo.ListByUser(ctx, viewer.ID, params)
	} else {
		requests, total, err = s.reqRepo.ListByStatus(ctx, domain.RequestPending, params)
	}
	if err != nil {
		return domain.PaginatedResponse[domain.PermissionRequest]{}, err
	}

	for i := range requests {
		s.attachUsers(ctx, &requests[i])
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

// Approve moves a pending request to approved and grants the capability flag
// in one transaction, so a request can never end up approved without its
// grant. Auto-provisioning runs after commit: its failure is absorbed into a
// Skipped result and never rolls back the approval.
func (s *service) Approve(ctx context.Context, reviewer *domain.User, id uuid.UUID, meta *RequestMeta) (*domain.PermissionRequest, *domain.ProvisionResult, error) {
	req, err := s.loadForReview(ctx, reviewer, id)
	if err != nil {
		return nil, nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}
	if requester == nil {
		return nil, nil, fmt.Errorf("%w: requester no longer exists", domain.ErrNotFound)
	}

	err = s.tx.InTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.PermissionRequest.MarkReviewed(ctx, req.ID, domain.RequestApproved, reviewer.ID); err != nil {
			return err
		}
		return repos.User.GrantCapability(ctx, req.UserID, req.PermissionType)
	})
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	req.Status = domain.RequestApproved
	req.ReviewedBy = &reviewer.ID
	req.ReviewedAt = &now

	result := s.provision(ctx, req, requester)

	if s.notifSvc != nil {
		_ = s.notifSvc.NotifyPermissionDecision(ctx, req, result)
	}
	s.logAudit(ctx, reviewer.ID, "APPROVE_PERMISSION_REQUEST", req, meta)

	return req, result, nil
}

// Reject moves a pending request to rejected. No capability change.
func (s *service) Reject(ctx context.Context, reviewer *domain.User, id uuid.UUID, meta *RequestMeta) (*domain.PermissionRequest, error) {
	req, err := s.loadForReview(ctx, reviewer, id)
	if err != nil {
		return nil, err
	}

	if err := s.reqRepo.MarkReviewed(ctx, req.ID, domain.RequestRejected, reviewer.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = domain.RequestRejected
	req.ReviewedBy = &reviewer.ID
	req.ReviewedAt = &now

	if s.notifSvc != nil {
		_ = s.notifSvc.NotifyPermissionDecision(ctx, req, nil)
	}
	s.logAudit(ctx, reviewer.ID, "REJECT_PERMISSION_REQUEST", req, meta)

	return req, nil
}

// loadForReview checks the reviewer and fetches the request. Review authority
// is faculty-only: admins manage roles directly and are deliberately not
// reviewers here.
func (s *service) loadForReview(ctx context.Context, reviewer *domain.User, id uuid.UUID) (*domain.PermissionRequest, error) {
	if !reviewer.IsFaculty() {
		return nil, fmt.Errorf("%w: only faculty may review permission requests", domain.ErrPermissionDenied)
	}

	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: permission request not found", domain.ErrNotFound)
	}

	if req.Status != domain.RequestPending {
		return nil, domain.ErrAlreadyProcessed
	}

	return req, nil
}

// provision materializes the Event or Club a request asked for. Any failure
// is reported as a Skipped result, never as an error.
func (s *service) provision(ctx context.Context, req *domain.PermissionRequest, requester *domain.User) *domain.ProvisionResult {
	switch req.PermissionType {
	case domain.PermissionEventCreation:
		return s.provisionEvent(ctx, req, requester)
	case domain.PermissionClubCreation:
		return s.provisionClub(ctx, req, requester)
	default:
		return &domain.ProvisionResult{Outcome: domain.ProvisionSkipped, Reason: "unknown permission type"}
	}
}

// provisionEvent creates the drafted event when the draft carries at least a
// title and a start date. Missing description falls back to the request
// reason, missing end date to the start date.
func (s *service) provisionEvent(ctx context.Context, req *domain.PermissionRequest, requester *domain.User) *domain.ProvisionResult {
	if req.EventTitle == nil || strings.TrimSpace(*req.EventTitle) == "" || req.EventStartDate == nil {
		return &domain.ProvisionResult{
			Outcome: domain.ProvisionSkipped,
			Reason:  "draft is missing a title or start date",
		}
	}

	description := req.Reason
	if req.EventDesc != nil && *req.EventDesc != "" {
		description = *req.EventDesc
	}

	location := ""
	if req.EventLocation != nil {
		location = *req.EventLocation
	}

	endDate := *req.EventStartDate
	if req.EventEndDate != nil {
		endDate = *req.EventEndDate
	}

	event := &domain.Event{
		ID:          uuid.New(),
		Title:       *req.EventTitle,
		Description: description,
		Location:    location,
		StartDate:   *req.EventStartDate,
		EndDate:     endDate,
		Image:       req.EventImage,
		OrganizerID: requester.ID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return &domain.ProvisionResult{Outcome: domain.ProvisionSkipped, Reason: err.Error()}
	}

	return &domain.ProvisionResult{Outcome: domain.ProvisionCreated, EventID: &event.ID}
}

// provisionClub always attempts creation. The club name is the first line of
// the reason, capped at 100 characters, falling back to "Club by {username}".
// The requester becomes president and the sole initial member.
func (s *service) provisionClub(ctx context.Context, req *domain.PermissionRequest, requester *domain.User) *domain.ProvisionResult {
	name := firstLine(req.Reason)
	if name == "" {
		name = fmt.Sprintf("Club by %s", requester.Username)
	}

	description := req.Reason
	if strings.TrimSpace(description) == "" {
		description = "No description provided."
	}

	club := &domain.Club{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Logo:        req.EventImage,
		PresidentID: requester.ID,
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return &domain.ProvisionResult{Outcome: domain.ProvisionSkipped, Reason: err.Error()}
	}

	if err := s.clubRepo.AddMember(ctx, club.ID, requester.ID); err != nil {
		return &domain.ProvisionResult{Outcome: domain.ProvisionSkipped, Reason: err.Error()}
	}

	return &domain.ProvisionResult{Outcome: domain.ProvisionCreated, ClubID: &club.ID}
}

func (s *service) attachUsers(ctx context.Context, req *domain.PermissionRequest) {
	if requester, err := s.userRepo.GetByID(ctx, req.UserID); err == nil && requester != nil {
		req.Requester = requester
	}
	if req.ReviewedBy != nil {
		if reviewer, err := s.userRepo.GetByID(ctx, *req.ReviewedBy); err == nil && reviewer != nil {
			req.Reviewer = reviewer
		}
	}
}

func (s *service) logAudit(ctx context.Context, reviewerID uuid.UUID, action string, req *domain.PermissionRequest, meta *RequestMeta) {
	if s.auditRepo == nil {
		return
	}

	audit := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     reviewerID,
		Action:     action,
		EntityType: "PERMISSION_REQUEST",
		EntityID:   req.ID,
		OldValue:   json.RawMessage(`{"status":"pending"}`),
		NewValue:   json.RawMessage(`{"status":"` + string(req.Status) + `"}`),
	}

	if meta != nil {
		if meta.IPAddress != "" {
			audit.IPAddress = &meta.IPAddress
		}
		if meta.UserAgent != "" {
			audit.UserAgent = &meta.UserAgent
		}
	}

	_ = s.auditRepo.Create(ctx, audit)
}

// firstLine extracts the club name from a free-text reason: everything up to
// the first newline, trimmed, capped at 100 characters.
func firstLine(s string) string {
	line := s
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		line = s[:idx]
	}
	line = strings.TrimSpace(line)

	runes := []rune(line)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return line
}
