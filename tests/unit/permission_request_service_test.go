package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
	"smart-campus/internal/repository"
	"smart-campus/internal/service/permissionrequest"
	"smart-campus/tests/mocks"
)

type prFixture struct {
	reqRepo   *mocks.PermissionRequestRepository
	userRepo  *mocks.UserRepository
	clubRepo  *mocks.ClubRepository
	eventRepo *mocks.EventRepository
	auditRepo *mocks.AuditLogRepository
	notifSvc  *mocks.NotificationService
	svc       permissionrequest.Service
}

func newPRFixture() *prFixture {
	f := &prFixture{
		reqRepo:   new(mocks.PermissionRequestRepository),
		userRepo:  new(mocks.UserRepository),
		clubRepo:  new(mocks.ClubRepository),
		eventRepo: new(mocks.EventRepository),
		auditRepo: new(mocks.AuditLogRepository),
		notifSvc:  new(mocks.NotificationService),
	}

	tx := &mocks.Transactor{
		Repos: &repository.Repositories{
			PermissionRequest: f.reqRepo,
			User:              f.userRepo,
			Club:              f.clubRepo,
			Event:             f.eventRepo,
			AuditLog:          f.auditRepo,
		},
	}

	f.svc = permissionrequest.NewService(
		f.reqRepo, f.userRepo, f.clubRepo, f.eventRepo, f.auditRepo, tx, f.notifSvc,
	)
	return f
}

func student(username string) *domain.User {
	return &domain.User{ID: uuid.New(), Username: username, Email: username + "@campus.edu", Role: string(domain.RoleStudent), IsActive: true}
}

func faculty(username string) *domain.User {
	return &domain.User{ID: uuid.New(), Username: username, Email: username + "@campus.edu", Role: string(domain.RoleFaculty), IsActive: true}
}

func admin(username string) *domain.User {
	return &domain.User{ID: uuid.New(), Username: username, Email: username + "@campus.edu", Role: string(domain.RoleAdmin), IsActive: true}
}

func stringPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestPermissionRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Student Can Submit", func(t *testing.T) {
		f := newPRFixture()
		alice := student("alice")

		f.reqRepo.On("Create", ctx, mock.MatchedBy(func(req *domain.PermissionRequest) bool {
			return req.UserID == alice.ID &&
				req.Status == domain.RequestPending &&
				req.PermissionType == domain.PermissionClubCreation
		})).Return(nil).Once()
		f.notifSvc.On("NotifyPermissionRequested", ctx, mock.AnythingOfType("*domain.PermissionRequest"), alice).Return(nil).Maybe()

		req, err := f.svc.Submit(ctx, alice, domain.CreatePermissionRequestInput{
			PermissionType: domain.PermissionClubCreation,
			Reason:         "Chess Club\nWe play chess weekly",
		})

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, domain.RequestPending, req.Status)
		f.reqRepo.AssertExpectations(t)
	})

	t.Run("Faculty Cannot Submit", func(t *testing.T) {
		f := newPRFixture()

		req, err := f.svc.Submit(ctx, faculty("bob"), domain.CreatePermissionRequestInput{
			PermissionType: domain.PermissionClubCreation,
			Reason:         "reason",
		})

		assert.Nil(t, req)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		f.reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Permission Type", func(t *testing.T) {
		f := newPRFixture()

		req, err := f.svc.Submit(ctx, student("alice"), domain.CreatePermissionRequestInput{
			PermissionType: "superuser",
			Reason:         "reason",
		})

		assert.Nil(t, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Draft Fields Ignored For Club Requests", func(t *testing.T) {
		f := newPRFixture()
		alice := student("alice")

		f.reqRepo.On("Create", ctx, mock.MatchedBy(func(req *domain.PermissionRequest) bool {
			return req.EventTitle == nil && req.EventStartDate == nil
		})).Return(nil).Once()
		f.notifSvc.On("NotifyPermissionRequested", ctx, mock.Anything, alice).Return(nil).Maybe()

		_, err := f.svc.Submit(ctx, alice, domain.CreatePermissionRequestInput{
			PermissionType: domain.PermissionClubCreation,
			Reason:         "reason",
			EventTitle:     stringPtr("stray draft"),
			EventStartDate: timePtr(time.Now()),
		})

		assert.NoError(t, err)
		f.reqRepo.AssertExpectations(t)
	})
}

func TestPermissionRequestService_Approve_ClubScenario(t *testing.T) {
	// alice asks for club creation with "Chess Club\nWe play chess weekly";
	// bob approves. The club name is the first line of the reason.
	ctx := context.Background()
	f := newPRFixture()

	alice := student("alice")
	bob := faculty("bob")

	req := &domain.PermissionRequest{
		ID:             uuid.New(),
		UserID:         alice.ID,
		PermissionType: domain.PermissionClubCreation,
		Reason:         "Chess Club\nWe play chess weekly",
		Status:         domain.RequestPending,
	}

	f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	f.userRepo.On("GetByID", ctx, alice.ID).Return(alice, nil).Once()
	f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(nil).Once()
	f.userRepo.On("GrantCapability", ctx, alice.ID, domain.PermissionClubCreation).Return(nil).Once()

	f.clubRepo.On("Create", ctx, mock.MatchedBy(func(club *domain.Club) bool {
		return club.Name == "Chess Club" && club.PresidentID == alice.ID
	})).Return(nil).Once()
	f.clubRepo.On("AddMember", ctx, mock.AnythingOfType("uuid.UUID"), alice.ID).Return(nil).Once()

	f.notifSvc.On("NotifyPermissionDecision", ctx, req, mock.MatchedBy(func(result *domain.ProvisionResult) bool {
		return result.Outcome == domain.ProvisionCreated && result.ClubID != nil
	})).Return(nil).Once()
	f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()

	approved, result, err := f.svc.Approve(ctx, bob, req.ID, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Status)
	assert.Equal(t, &bob.ID, approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)
	assert.Equal(t, domain.ProvisionCreated, result.Outcome)
	assert.NotNil(t, result.ClubID)

	f.reqRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.clubRepo.AssertExpectations(t)
	f.notifSvc.AssertExpectations(t)
}

func TestPermissionRequestService_Approve_ClubFallbackName(t *testing.T) {
	ctx := context.Background()
	f := newPRFixture()

	dave := student("dave")
	bob := faculty("bob")

	req := &domain.PermissionRequest{
		ID:             uuid.New(),
		UserID:         dave.ID,
		PermissionType: domain.PermissionClubCreation,
		Reason:         "",
		Status:         domain.RequestPending,
	}

	f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	f.userRepo.On("GetByID", ctx, dave.ID).Return(dave, nil).Once()
	f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(nil).Once()
	f.userRepo.On("GrantCapability", ctx, dave.ID, domain.PermissionClubCreation).Return(nil).Once()

	f.clubRepo.On("Create", ctx, mock.MatchedBy(func(club *domain.Club) bool {
		return club.Name == "Club by dave" && club.Description == "No description provided."
	})).Return(nil).Once()
	f.clubRepo.On("AddMember", ctx, mock.AnythingOfType("uuid.UUID"), dave.ID).Return(nil).Once()
	f.notifSvc.On("NotifyPermissionDecision", ctx, req, mock.Anything).Return(nil).Maybe()
	f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

	_, result, err := f.svc.Approve(ctx, bob, req.ID, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.ProvisionCreated, result.Outcome)
	f.clubRepo.AssertExpectations(t)
}

func TestPermissionRequestService_Approve_EventScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("Complete Draft Creates Event", func(t *testing.T) {
		f := newPRFixture()
		erin := student("erin")
		bob := faculty("bob")
		start := time.Now().Add(48 * time.Hour)

		req := &domain.PermissionRequest{
			ID:             uuid.New(),
			UserID:         erin.ID,
			PermissionType: domain.PermissionEventCreation,
			Reason:         "I want to host a robotics demo",
			EventTitle:     stringPtr("Robotics Demo"),
			EventStartDate: timePtr(start),
			Status:         domain.RequestPending,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.userRepo.On("GetByID", ctx, erin.ID).Return(erin, nil).Once()
		f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(nil).Once()
		f.userRepo.On("GrantCapability", ctx, erin.ID, domain.PermissionEventCreation).Return(nil).Once()

		f.eventRepo.On("Create", ctx, mock.MatchedBy(func(event *domain.Event) bool {
			return event.Title == "Robotics Demo" &&
				event.OrganizerID == erin.ID &&
				event.Description == "I want to host a robotics demo" &&
				event.EndDate.Equal(start)
		})).Return(nil).Once()

		f.notifSvc.On("NotifyPermissionDecision", ctx, req, mock.MatchedBy(func(result *domain.ProvisionResult) bool {
			return result.Outcome == domain.ProvisionCreated && result.EventID != nil
		})).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		_, result, err := f.svc.Approve(ctx, bob, req.ID, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.ProvisionCreated, result.Outcome)
		assert.NotNil(t, result.EventID)
		f.eventRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Missing Title Grants Flag But Skips Event", func(t *testing.T) {
		// carol's request has no draft title, so approval grants the flag
		// and she is told to create the event manually.
		f := newPRFixture()
		carol := student("carol")
		bob := faculty("bob")

		req := &domain.PermissionRequest{
			ID:             uuid.New(),
			UserID:         carol.ID,
			PermissionType: domain.PermissionEventCreation,
			Reason:         "need to host talk",
			Status:         domain.RequestPending,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.userRepo.On("GetByID", ctx, carol.ID).Return(carol, nil).Once()
		f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(nil).Once()
		f.userRepo.On("GrantCapability", ctx, carol.ID, domain.PermissionEventCreation).Return(nil).Once()

		f.notifSvc.On("NotifyPermissionDecision", ctx, req, mock.MatchedBy(func(result *domain.ProvisionResult) bool {
			return result.Outcome == domain.ProvisionSkipped
		})).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		_, result, err := f.svc.Approve(ctx, bob, req.ID, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.ProvisionSkipped, result.Outcome)
		f.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.userRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Missing Start Date Skips Event", func(t *testing.T) {
		f := newPRFixture()
		erin := student("erin")
		bob := faculty("bob")

		req := &domain.PermissionRequest{
			ID:             uuid.New(),
			UserID:         erin.ID,
			PermissionType: domain.PermissionEventCreation,
			Reason:         "late night hackathon",
			EventTitle:     stringPtr("Hackathon"),
			Status:         domain.RequestPending,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.userRepo.On("GetByID", ctx, erin.ID).Return(erin, nil).Once()
		f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(nil).Once()
		f.userRepo.On("GrantCapability", ctx, erin.ID, domain.PermissionEventCreation).Return(nil).Once()
		f.notifSvc.On("NotifyPermissionDecision", ctx, req, mock.Anything).Return(nil).Maybe()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		_, result, err := f.svc.Approve(ctx, bob, req.ID, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.ProvisionSkipped, result.Outcome)
		f.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPermissionRequestService_Approve_ExactlyOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Already Approved", func(t *testing.T) {
		f := newPRFixture()
		bob := faculty("bob")
		reviewedAt := time.Now().Add(-time.Hour)
		reviewerID := uuid.New()

		req := &domain.PermissionRequest{
			ID:             uuid.New(),
			UserID:         uuid.New(),
			PermissionType: domain.PermissionClubCreation,
			Status:         domain.RequestApproved,
			ReviewedBy:     &reviewerID,
			ReviewedAt:     &reviewedAt,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		_, _, err := f.svc.Approve(ctx, bob, req.ID, nil)

		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		assert.Equal(t, &reviewerID, req.ReviewedBy)
		assert.Equal(t, &reviewedAt, req.ReviewedAt)
		f.reqRepo.AssertNotCalled(t, "MarkReviewed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.userRepo.AssertNotCalled(t, "GrantCapability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost Race Surfaces Conflict", func(t *testing.T) {
		// The request still looks pending when loaded, but another reviewer
		// wins the conditional update. The grant must not happen.
		f := newPRFixture()
		alice := student("alice")
		bob := faculty("bob")

		req := &domain.PermissionRequest{
			ID:             uuid.New(),
			UserID:         alice.ID,
			PermissionType: domain.PermissionClubCreation,
			Reason:         "Chess Club",
			Status:         domain.RequestPending,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.userRepo.On("GetByID", ctx, alice.ID).Return(alice, nil).Once()
		f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(domain.ErrAlreadyProcessed).Once()

		_, _, err := f.svc.Approve(ctx, bob, req.ID, nil)

		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		f.userRepo.AssertNotCalled(t, "GrantCapability", mock.Anything, mock.Anything, mock.Anything)
		f.clubRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPermissionRequestService_Approve_ReviewerPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("Student Cannot Approve", func(t *testing.T) {
		f := newPRFixture()
		_, _, err := f.svc.Approve(ctx, student("alice"), uuid.New(), nil)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Admin Cannot Approve", func(t *testing.T) {
		f := newPRFixture()
		_, _, err := f.svc.Approve(ctx, admin("root"), uuid.New(), nil)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		f := newPRFixture()
		id := uuid.New()
		f.reqRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, _, err := f.svc.Approve(ctx, faculty("bob"), id, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPermissionRequestService_Approve_GrantSurvivesProvisioningFailure(t *testing.T) {
	ctx := context.Background()
	f := newPRFixture()

	alice := student("alice")
	bob := faculty("bob")

	req := &domain.PermissionRequest{
		ID:             uuid.New(),
		UserID:         alice.ID,
		PermissionType: domain.PermissionClubCreation,
		Reason:         "Chess Club",
		Status:         domain.RequestPending,
	}

	f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	f.userRepo.On("GetByID", ctx, alice.ID).Return(alice, nil).Once()
	f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestApproved, bob.ID).Return(nil).Once()
	f.userRepo.On("GrantCapability", ctx, alice.ID, domain.PermissionClubCreation).Return(nil).Once()

	f.clubRepo.On("Create", ctx, mock.Anything).Return(errors.New("duplicate club name")).Once()

	f.notifSvc.On("NotifyPermissionDecision", ctx, req, mock.MatchedBy(func(result *domain.ProvisionResult) bool {
		return result.Outcome == domain.ProvisionSkipped
	})).Return(nil).Once()
	f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

	approved, result, err := f.svc.Approve(ctx, bob, req.ID, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Status)
	assert.Equal(t, domain.ProvisionSkipped, result.Outcome)
	assert.Contains(t, result.Reason, "duplicate club name")
	f.userRepo.AssertExpectations(t)
}

func TestPermissionRequestService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("Reject Never Grants", func(t *testing.T) {
		f := newPRFixture()
		alice := student("alice")
		bob := faculty("bob")

		req := &domain.PermissionRequest{
			ID:             uuid.New(),
			UserID:         alice.ID,
			PermissionType: domain.PermissionEventCreation,
			Reason:         "party",
			Status:         domain.RequestPending,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.reqRepo.On("MarkReviewed", ctx, req.ID, domain.RequestRejected, bob.ID).Return(nil).Once()
		f.notifSvc.On("NotifyPermissionDecision", ctx, req, (*domain.ProvisionResult)(nil)).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		rejected, err := f.svc.Reject(ctx, bob, req.ID, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.RequestRejected, rejected.Status)
		f.userRepo.AssertNotCalled(t, "GrantCapability", mock.Anything, mock.Anything, mock.Anything)
		f.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.clubRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Second Reject Conflicts", func(t *testing.T) {
		f := newPRFixture()
		bob := faculty("bob")

		req := &domain.PermissionRequest{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: domain.RequestRejected,
		}

		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		_, err := f.svc.Reject(ctx, bob, req.ID, nil)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})
}

func TestPermissionRequestService_List(t *testing.T) {
	ctx := context.Background()
	params := domain.DefaultPagination()

	t.Run("Student Sees Only Own Requests", func(t *testing.T) {
		f := newPRFixture()
		alice := student("alice")

		own := []domain.PermissionRequest{
			{ID: uuid.New(), UserID: alice.ID, Status: domain.RequestApproved},
			{ID: uuid.New(), UserID: alice.ID, Status: domain.RequestPending},
		}
		f.reqRepo.On("ListByUser", ctx, alice.ID, params).Return(own, int64(2), nil).Once()
		f.userRepo.On("GetByID", ctx, alice.ID).Return(alice, nil).Maybe()

		result, err := f.svc.List(ctx, alice, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 2)
		f.reqRepo.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Faculty Sees Pending Queue", func(t *testing.T) {
		f := newPRFixture()
		bob := faculty("bob")

		pending := []domain.PermissionRequest{
			{ID: uuid.New(), UserID: uuid.New(), Status: domain.RequestPending},
		}
		f.reqRepo.On("ListByStatus", ctx, domain.RequestPending, params).Return(pending, int64(1), nil).Once()
		f.userRepo.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, nil).Maybe()

		result, err := f.svc.List(ctx, bob, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		f.reqRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPermissionRequestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Student Cannot View Foreign Request", func(t *testing.T) {
		f := newPRFixture()
		alice := student("alice")

		foreign := &domain.PermissionRequest{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: domain.RequestPending,
		}
		f.reqRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		req, err := f.svc.GetByID(ctx, alice, foreign.ID)

		assert.Nil(t, req)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Faculty Can View Any Request", func(t *testing.T) {
		f := newPRFixture()
		bob := faculty("bob")
		requesterID := uuid.New()

		req := &domain.PermissionRequest{
			ID:     uuid.New(),
			UserID: requesterID,
			Status: domain.RequestPending,
		}
		f.reqRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.userRepo.On("GetByID", ctx, requesterID).Return(nil, nil).Maybe()

		got, err := f.svc.GetByID(ctx, bob, req.ID)

		assert.NoError(t, err)
		assert.Equal(t, req.ID, got.ID)
	})
}
