package services

import (
	"context"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

const (
	VerifyActionApprove = "approve"
	VerifyActionReject  = "reject"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	ListPendingEmployers(ctx context.Context) ([]dto.UserResponse, error)
	VerifyEmployer(ctx context.Context, userID, action string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo}
}

// Register creates a new account. Candidates become active immediately
// and receive a token; employers stay pending until an admin resolves
// them and get no token.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if req.Role != models.UserRoleCandidate && req.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	status := models.UserStatusActive
	if req.Role == models.UserRoleEmployer {
		status = models.UserStatusPending
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       status,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.RegisterResponse{User: dto.NewUserResponse(user)}

	if user.Status == models.UserStatusActive {
		token, err := auth.GenerateToken(user.ID, user.Role)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.Token = token
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role, "status", user.Status)

	return resp, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := checkUserStatus(user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthServiceImpl) ListPendingEmployers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindByRoleAndStatus(ctx, models.UserRoleEmployer, models.UserStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses, nil
}

// VerifyEmployer resolves a pending employer account to active or
// rejected and returns the updated record.
func (s *AuthServiceImpl) VerifyEmployer(ctx context.Context, userID, action string) (*dto.UserResponse, error) {
	var status models.UserStatus
	switch action {
	case VerifyActionApprove:
		status = models.UserStatusActive
	case VerifyActionReject:
		status = models.UserStatusRejected
	default:
		return nil, apperrors.ErrInvalidVerifyAction
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role != models.UserRoleEmployer {
		return nil, apperrors.NewBadRequestError("User is not an employer")
	}
	if user.Status != models.UserStatusPending {
		return nil, apperrors.NewBadRequestError("Employer account is already resolved")
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "employer verification resolved", "user_id", userID, "action", action)

	resp := dto.NewUserResponse(updated)
	return &resp, nil
}

func checkUserStatus(user *models.User) error {
	switch user.Status {
	case models.UserStatusActive:
		return nil
	case models.UserStatusPending:
		return apperrors.ErrEmployerNotApproved
	case models.UserStatusRejected:
		return apperrors.ErrEmployerRejected
	default:
		return apperrors.ErrForbidden
	}
}
