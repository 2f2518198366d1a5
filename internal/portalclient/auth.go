package portalclient

import (
	"context"
	"net/http"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var resp dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	req := &dto.LoginRequest{Email: email, Password: password}

	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListPendingEmployers(ctx context.Context) ([]dto.UserResponse, error) {
	var resp []dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/pending-employers", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// VerifyEmployer resolves a pending employer; action is "approve" or
// "reject".
func (c *Client) VerifyEmployer(ctx context.Context, userID, action string) (*dto.UserResponse, error) {
	req := &dto.VerifyEmployerRequest{UserID: userID, Action: action}

	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-employer", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterCandidate is a convenience wrapper for the common signup.
func (c *Client) RegisterCandidate(ctx context.Context, firstName, lastName, email, password string) (*dto.RegisterResponse, error) {
	return c.Register(ctx, &dto.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      models.UserRoleCandidate,
	})
}
