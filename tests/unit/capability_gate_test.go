package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
	"smart-campus/internal/service/club"
	"smart-campus/internal/service/event"
	"smart-campus/tests/mocks"
)

func TestClubService_Create_CapabilityGate(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateClubInput{Name: "Chess Club", Description: "We play chess weekly"}

	t.Run("Student Without Flag Denied", func(t *testing.T) {
		clubRepo := new(mocks.ClubRepository)
		svc := club.NewService(clubRepo, new(mocks.UserRepository))

		created, err := svc.Create(ctx, student("alice"), input)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		clubRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Student With Flag Allowed", func(t *testing.T) {
		clubRepo := new(mocks.ClubRepository)
		svc := club.NewService(clubRepo, new(mocks.UserRepository))

		alice := student("alice")
		alice.CanCreateClubs = true

		clubRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Club) bool {
			return c.Name == "Chess Club" && c.PresidentID == alice.ID
		})).Return(nil).Once()
		clubRepo.On("AddMember", ctx, mock.AnythingOfType("uuid.UUID"), alice.ID).Return(nil).Once()

		created, err := svc.Create(ctx, alice, input)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		clubRepo.AssertExpectations(t)
	})

	t.Run("Faculty Allowed Without Flag", func(t *testing.T) {
		clubRepo := new(mocks.ClubRepository)
		svc := club.NewService(clubRepo, new(mocks.UserRepository))

		bob := faculty("bob")
		clubRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		clubRepo.On("AddMember", ctx, mock.AnythingOfType("uuid.UUID"), bob.ID).Return(nil).Once()

		_, err := svc.Create(ctx, bob, input)
		assert.NoError(t, err)
	})
}

func TestEventService_Create_CapabilityGate(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(24 * time.Hour)
	input := domain.CreateEventInput{
		Title:       "Robotics Demo",
		Description: "Live robots",
		Location:    "Main Hall",
		StartDate:   start,
	}

	t.Run("Student Without Flag Denied", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := event.NewService(eventRepo, new(mocks.UserRepository))

		created, err := svc.Create(ctx, student("carol"), input)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Student With Flag Allowed", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := event.NewService(eventRepo, new(mocks.UserRepository))

		carol := student("carol")
		carol.CanCreateEvents = true

		eventRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.OrganizerID == carol.ID && e.EndDate.Equal(start)
		})).Return(nil).Once()

		created, err := svc.Create(ctx, carol, input)

		assert.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("End Before Start Rejected", func(t *testing.T) {
		svc := event.NewService(new(mocks.EventRepository), new(mocks.UserRepository))

		bad := input
		end := start.Add(-time.Hour)
		bad.EndDate = &end

		_, err := svc.Create(ctx, faculty("bob"), bad)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestClubService_Leave_PresidentStays(t *testing.T) {
	ctx := context.Background()
	clubRepo := new(mocks.ClubRepository)
	svc := club.NewService(clubRepo, new(mocks.UserRepository))

	alice := student("alice")
	chess := &domain.Club{ID: uuid.New(), Name: "Chess Club", PresidentID: alice.ID}

	clubRepo.On("GetByID", ctx, chess.ID).Return(chess, nil).Once()

	err := svc.Leave(ctx, alice, chess.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	clubRepo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}
