package portalclient

import (
	"context"
	"io"
	"net/http"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

// ApplyParams carries everything needed to submit an application. The
// cover letter goes out either as the CoverLetter text field or as the
// CoverLetterFile attachment.
type ApplyParams struct {
	JobID       string
	CoverLetter string

	Resume            io.Reader
	ResumeFilename    string
	ResumeContentType string

	CoverLetterFile        io.Reader
	CoverLetterFilename    string
	CoverLetterContentType string
}

// CreateApplication submits the multipart application form. The server
// rejects a second application to the same job with a conflict error.
func (c *Client) CreateApplication(ctx context.Context, params *ApplyParams) (*dto.ApplicationResponse, error) {
	fields := map[string]string{
		"jobId": params.JobID,
	}
	if params.CoverLetter != "" {
		fields["coverLetter"] = params.CoverLetter
	}

	files := []filePart{{
		Field:       "resume",
		Filename:    params.ResumeFilename,
		ContentType: params.ResumeContentType,
		Reader:      params.Resume,
	}}
	if params.CoverLetterFile != nil {
		files = append(files, filePart{
			Field:       "coverLetterFile",
			Filename:    params.CoverLetterFilename,
			ContentType: params.CoverLetterContentType,
			Reader:      params.CoverLetterFile,
		})
	}

	var resp dto.ApplicationResponse
	if err := c.doMultipart(ctx, "/applications", fields, files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetApplication(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error) {
	var resp dto.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, "/applications/"+applicationID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CheckApplicationExists(ctx context.Context, jobID, candidateID string) (bool, error) {
	var resp dto.ApplicationExistsResponse
	if err := c.do(ctx, http.MethodGet, "/applications/check/"+jobID+"/"+candidateID, nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *Client) ListCandidateApplications(ctx context.Context, candidateID string) ([]dto.ApplicationResponse, error) {
	var resp []dto.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, "/applications/candidate/"+candidateID, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ListEmployerApplications(ctx context.Context, employerID string) ([]dto.ApplicationResponse, error) {
	var resp []dto.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, "/applications/employer/"+employerID, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ListEmployerDeletedApplications(ctx context.Context, employerID string) ([]dto.ApplicationResponse, error) {
	var resp []dto.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, "/applications/employer/"+employerID+"/deleted", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, applicationID string, status models.ApplicationStatus, notes string) (*dto.ApplicationResponse, error) {
	req := &dto.UpdateApplicationStatusRequest{Status: status, Notes: notes}

	var resp dto.ApplicationResponse
	if err := c.do(ctx, http.MethodPatch, "/applications/"+applicationID+"/status", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WithdrawApplication removes the candidate's own application. The
// server marks it withdrawn and soft deletes it.
func (c *Client) WithdrawApplication(ctx context.Context, applicationID string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+applicationID, nil, nil)
}
