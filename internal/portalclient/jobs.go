package portalclient

import (
	"context"
	"net/http"

	"jobportal_backend/internal/services/dto"
)

func (c *Client) ListJobs(ctx context.Context) ([]dto.JobResponse, error) {
	var resp []dto.JobResponse
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	var resp dto.JobResponse
	if err := c.do(ctx, http.MethodGet, "/jobs/"+jobID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	var resp dto.JobResponse
	if err := c.do(ctx, http.MethodPost, "/jobs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	var resp dto.JobResponse
	if err := c.do(ctx, http.MethodPut, "/jobs/"+jobID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+jobID, nil, nil)
}

func (c *Client) ListEmployerJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error) {
	var resp []dto.JobResponse
	if err := c.do(ctx, http.MethodGet, "/jobs/employer/"+employerID, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ListDeletedJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error) {
	var resp []dto.JobResponse
	if err := c.do(ctx, http.MethodGet, "/jobs/employer/"+employerID+"/deleted", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
