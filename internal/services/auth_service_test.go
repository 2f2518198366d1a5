package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, userID string, status models.UserStatus) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (f *fakeUserRepo) FindByRoleAndStatus(_ context.Context, role models.UserRole, status models.UserStatus) ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		if user.Role == role && user.Status == status {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func newAuthServiceFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	auth.Init("test-secret", time.Hour)
	repo := newFakeUserRepo()
	return NewAuthService(repo), repo
}

func registerReq(role models.UserRole, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     email,
		Password:  "secret123",
		Role:      role,
	}
}

func TestRegisterCandidate(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	resp, err := service.Register(context.Background(), registerReq(models.UserRoleCandidate, "jan@example.com"))
	require.NoError(t, err)

	assert.Equal(t, models.UserStatusActive, resp.User.Status)
	assert.NotEmpty(t, resp.Token, "active candidates log in immediately")

	claims, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.UserRoleCandidate, claims.Role)
}

func TestRegisterEmployerStaysPending(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	resp, err := service.Register(context.Background(), registerReq(models.UserRoleEmployer, "hr@example.com"))
	require.NoError(t, err)

	assert.Equal(t, models.UserStatusPending, resp.User.Status)
	assert.Empty(t, resp.Token, "pending employers get no token")
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	_, err := service.Register(context.Background(), registerReq(models.UserRoleAdmin, "root@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	_, err := service.Register(context.Background(), registerReq(models.UserRoleCandidate, "jan@example.com"))
	require.NoError(t, err)

	_, err = service.Register(context.Background(), registerReq(models.UserRoleCandidate, "jan@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	req := registerReq(models.UserRoleCandidate, "jan@example.com")
	req.Password = "short"
	_, err := service.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	_, err := service.Register(context.Background(), registerReq(models.UserRoleCandidate, "jan@example.com"))
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := service.Login(context.Background(), &dto.LoginRequest{
			Email:    "jan@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "jan@example.com", resp.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), &dto.LoginRequest{
			Email:    "jan@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestLoginBlockedStatuses(t *testing.T) {
	service, repo := newAuthServiceFixture(t)

	_, err := service.Register(context.Background(), registerReq(models.UserRoleEmployer, "hr@example.com"))
	require.NoError(t, err)

	login := &dto.LoginRequest{Email: "hr@example.com", Password: "secret123"}

	t.Run("pending employer", func(t *testing.T) {
		_, err := service.Login(context.Background(), login)
		assert.ErrorIs(t, err, apperrors.ErrEmployerNotApproved)
	})

	t.Run("rejected employer", func(t *testing.T) {
		user, err := repo.FindByEmail(context.Background(), "hr@example.com")
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(context.Background(), user.ID, models.UserStatusRejected))

		_, err = service.Login(context.Background(), login)
		assert.ErrorIs(t, err, apperrors.ErrEmployerRejected)
	})
}

func TestVerifyEmployer(t *testing.T) {
	service, _ := newAuthServiceFixture(t)

	registered, err := service.Register(context.Background(), registerReq(models.UserRoleEmployer, "hr@example.com"))
	require.NoError(t, err)
	employerID := registered.User.ID

	t.Run("listed while pending", func(t *testing.T) {
		pending, err := service.ListPendingEmployers(context.Background())
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, employerID, pending[0].ID)
	})

	t.Run("invalid action", func(t *testing.T) {
		_, err := service.VerifyEmployer(context.Background(), employerID, "ban")
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerifyAction)
	})

	t.Run("approve activates", func(t *testing.T) {
		resp, err := service.VerifyEmployer(context.Background(), employerID, VerifyActionApprove)
		require.NoError(t, err)
		assert.Equal(t, models.UserStatusActive, resp.Status)

		pending, err := service.ListPendingEmployers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("already resolved", func(t *testing.T) {
		_, err := service.VerifyEmployer(context.Background(), employerID, VerifyActionReject)
		require.Error(t, err)
	})

	t.Run("candidate cannot be verified", func(t *testing.T) {
		candidate, err := service.Register(context.Background(), registerReq(models.UserRoleCandidate, "jan@example.com"))
		require.NoError(t, err)

		_, err = service.VerifyEmployer(context.Background(), candidate.User.ID, VerifyActionApprove)
		require.Error(t, err)
	})

	t.Run("reject blocks login", func(t *testing.T) {
		another, err := service.Register(context.Background(), registerReq(models.UserRoleEmployer, "hr2@example.com"))
		require.NoError(t, err)

		resp, err := service.VerifyEmployer(context.Background(), another.User.ID, VerifyActionReject)
		require.NoError(t, err)
		assert.Equal(t, models.UserStatusRejected, resp.Status)

		_, err = service.Login(context.Background(), &dto.LoginRequest{
			Email:    "hr2@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmployerRejected)
	})
}
