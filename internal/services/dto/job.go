package dto

import (
	"encoding/json"
	"time"

	"jobportal_backend/internal/models"
)

type CreateJobRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	CompanyName  string   `json:"companyName" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required"`
	Requirements []string `json:"requirements" validate:"omitempty,dive,required"`
	Salary       string   `json:"salary" validate:"required,is-salary"`
	Location     string   `json:"location" validate:"required,max=200"`
	JobType      string   `json:"jobType" validate:"required,is-job-type"`
}

type UpdateJobRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	CompanyName  string   `json:"companyName" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required"`
	Requirements []string `json:"requirements" validate:"omitempty,dive,required"`
	Salary       string   `json:"salary" validate:"required,is-salary"`
	Location     string   `json:"location" validate:"required,max=200"`
	JobType      string   `json:"jobType" validate:"required,is-job-type"`
}

type JobResponse struct {
	ID           string     `json:"id"`
	EmployerID   string     `json:"employerId"`
	Title        string     `json:"title"`
	CompanyName  string     `json:"companyName"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Salary       string     `json:"salary"`
	Location     string     `json:"location"`
	JobType      string     `json:"jobType"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

func NewJobResponse(job *models.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID,
		EmployerID:  job.EmployerID,
		Title:       job.Title,
		CompanyName: job.CompanyName,
		Description: job.Description,
		Salary:      job.Salary,
		Location:    job.Location,
		JobType:     job.JobType,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}

	if len(job.Requirements) > 0 {
		// Stored as a jsonb array; a decode failure leaves the list empty.
		_ = json.Unmarshal(job.Requirements, &resp.Requirements)
	}
	if job.DeletedAt.Valid {
		deletedAt := job.DeletedAt.Time
		resp.DeletedAt = &deletedAt
	}

	return resp
}

func NewJobListResponse(jobs []models.Job) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, NewJobResponse(&jobs[i]))
	}
	return responses
}
