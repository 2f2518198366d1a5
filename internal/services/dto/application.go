package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// CreateApplicationRequest arrives as a multipart form alongside the
// resume file and an optional cover-letter file.
type CreateApplicationRequest struct {
	JobID       string `form:"jobId" validate:"required,uuid"`
	CoverLetter string `form:"coverLetter" validate:"omitempty,max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	Notes  string                   `json:"notes" validate:"omitempty,max=2000"`
}

// ApplicationResponse carries the cover letter either as inline text
// (CoverLetter) or as an uploaded file (CoverLetterURL), never both.
type ApplicationResponse struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"jobId"`
	CandidateID    string                   `json:"candidateId"`
	ResumeURL      string                   `json:"resumeUrl,omitempty"`
	CoverLetter    string                   `json:"coverLetter,omitempty"`
	CoverLetterURL string                   `json:"coverLetterUrl,omitempty"`
	Status         models.ApplicationStatus `json:"status"`
	Notes          string                   `json:"notes,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
	Job            *JobResponse             `json:"job,omitempty"`
	Candidate      *UserResponse            `json:"candidate,omitempty"`
}

type ApplicationExistsResponse struct {
	Exists bool `json:"exists"`
}

func NewApplicationResponse(application *models.Application, resumeURL, coverLetterURL string) ApplicationResponse {
	resp := ApplicationResponse{
		ID:             application.ID,
		JobID:          application.JobID,
		CandidateID:    application.CandidateID,
		ResumeURL:      resumeURL,
		CoverLetter:    application.CoverLetter,
		CoverLetterURL: coverLetterURL,
		Status:         application.Status,
		Notes:          application.Notes,
		CreatedAt:      application.CreatedAt,
		UpdatedAt:      application.UpdatedAt,
	}

	if coverLetterURL != "" {
		// The raw value is a storage path, not text for display.
		resp.CoverLetter = ""
	}

	if application.Job != nil {
		job := NewJobResponse(application.Job)
		resp.Job = &job
	}
	if application.Candidate != nil {
		candidate := NewUserResponse(application.Candidate)
		resp.Candidate = &candidate
	}

	return resp
}
