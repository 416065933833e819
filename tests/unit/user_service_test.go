package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smart-campus/internal/domain"
	"smart-campus/internal/service/user"
	"smart-campus/tests/mocks"
)

func TestUserService_AssignRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Promotes Student To Faculty", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo)

		root := admin("root")
		alice := student("alice")

		userRepo.On("AssignRole", ctx, alice.ID, "faculty").Return(nil).Once()
		promoted := *alice
		promoted.Role = string(domain.RoleFaculty)
		userRepo.On("GetByID", ctx, alice.ID).Return(&promoted, nil).Once()

		updated, err := svc.AssignRole(ctx, root, alice.ID, domain.AssignRoleInput{Role: "faculty"})

		assert.NoError(t, err)
		assert.Equal(t, string(domain.RoleFaculty), updated.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("Faculty Cannot Assign Roles", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo)

		_, err := svc.AssignRole(ctx, faculty("bob"), uuid.New(), domain.AssignRoleInput{Role: "faculty"})

		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		userRepo.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Role", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository))

		_, err := svc.AssignRole(ctx, admin("root"), uuid.New(), domain.AssignRoleInput{Role: "superuser"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Cannot Change Own Role", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository))

		root := admin("root")
		_, err := svc.AssignRole(ctx, root, root.ID, domain.AssignRoleInput{Role: "student"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUserService_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Deactivates User", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo)

		targetID := uuid.New()
		userRepo.On("SetActive", ctx, targetID, false).Return(nil).Once()

		assert.NoError(t, svc.SetActive(ctx, admin("root"), targetID, false))
		userRepo.AssertExpectations(t)
	})

	t.Run("Cannot Deactivate Self", func(t *testing.T) {
		svc := user.NewService(new(mocks.UserRepository))

		root := admin("root")
		err := svc.SetActive(ctx, root, root.ID, false)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUserRole_Predicates(t *testing.T) {
	alice := student("alice")
	assert.False(t, alice.HasEventPermission())
	assert.False(t, alice.HasClubPermission())

	alice.CanCreateEvents = true
	assert.True(t, alice.HasEventPermission())
	assert.False(t, alice.HasClubPermission())

	bob := faculty("bob")
	assert.True(t, bob.HasEventPermission())
	assert.True(t, bob.HasClubPermission())
	assert.True(t, bob.HasRole("student"))
	assert.True(t, bob.HasRole("faculty"))
	assert.False(t, bob.HasRole("admin"))

	root := admin("root")
	assert.True(t, root.HasRole("faculty"))
	assert.True(t, root.HasRole("admin"))
	assert.False(t, root.HasRole("superuser"))
}
