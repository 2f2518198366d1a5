package services

import (
	"context"
	"encoding/json"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

type JobService interface {
	ListJobs(ctx context.Context) ([]dto.JobResponse, error)
	GetJob(ctx context.Context, id string) (*dto.JobResponse, error)
	ListEmployerJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error)
	ListDeletedJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error)
	CreateJob(ctx context.Context, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	UpdateJob(ctx context.Context, employerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, employerID, jobID string) error
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo}
}

func (s *JobServiceImpl) ListJobs(ctx context.Context) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobListResponse(jobs), nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *JobServiceImpl) ListEmployerJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobListResponse(jobs), nil
}

func (s *JobServiceImpl) ListDeletedJobs(ctx context.Context, employerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindDeletedByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobListResponse(jobs), nil
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	requirements, err := json.Marshal(req.Requirements)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job := &models.Job{
		EmployerID:   employerID,
		Title:        req.Title,
		CompanyName:  req.CompanyName,
		Description:  req.Description,
		Requirements: requirements,
		Salary:       req.Salary,
		Location:     req.Location,
		JobType:      req.JobType,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "employer_id", employerID)

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *JobServiceImpl) UpdateJob(ctx context.Context, employerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}

	requirements, err := json.Marshal(req.Requirements)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job.Title = req.Title
	job.CompanyName = req.CompanyName
	job.Description = req.Description
	job.Requirements = requirements
	job.Salary = req.Salary
	job.Location = req.Location
	job.JobType = req.JobType

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(updated)
	return &resp, nil
}

// DeleteJob soft deletes the posting. Existing applications keep
// pointing at the deleted row.
func (s *JobServiceImpl) DeleteJob(ctx context.Context, employerID, jobID string) error {
	if _, err := s.findOwnedJob(ctx, employerID, jobID); err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job deleted", "job_id", jobID, "employer_id", employerID)

	return nil
}

func (s *JobServiceImpl) findOwnedJob(ctx context.Context, employerID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}

	return job, nil
}
