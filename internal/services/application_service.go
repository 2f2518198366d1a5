package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/workflow"
)

// FileUpload describes a file attached to a new application, either
// the resume or a cover letter.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadPolicy limits the files the portal accepts.
type UploadPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

func (p UploadPolicy) check(label string, upload *FileUpload) error {
	if upload.Size > p.MaxSize {
		return apperrors.NewBadRequestError(fmt.Sprintf("%s exceeds the %d byte limit", label, p.MaxSize))
	}
	for _, allowed := range p.AllowedTypes {
		if upload.ContentType == allowed {
			return nil
		}
	}
	return apperrors.NewBadRequestError(label + " must be a PDF or Word document")
}

// coverLetterDir prefixes stored cover-letter files so a file reference
// in Application.CoverLetter is distinguishable from inline text.
const coverLetterDir = "cover-letters/"

type ApplicationService interface {
	CreateApplication(ctx context.Context, candidateID string, req *dto.CreateApplicationRequest, resume, coverLetter *FileUpload) (*dto.ApplicationResponse, error)
	GetApplication(ctx context.Context, userID string, role models.UserRole, applicationID string) (*dto.ApplicationResponse, error)
	CheckExists(ctx context.Context, candidateID, jobID string) (*dto.ApplicationExistsResponse, error)
	ListCandidateApplications(ctx context.Context, candidateID string) ([]dto.ApplicationResponse, error)
	ListJobApplications(ctx context.Context, employerID, jobID string) ([]dto.ApplicationResponse, error)
	ListEmployerApplications(ctx context.Context, employerID string) ([]dto.ApplicationResponse, error)
	ListEmployerDeletedApplications(ctx context.Context, employerID string) ([]dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, employerID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, candidateID, applicationID string) error
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	fileStorage     storage.Storage
	uploadPolicy    UploadPolicy
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	fileStorage storage.Storage,
	uploadPolicy UploadPolicy,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		fileStorage:     fileStorage,
		uploadPolicy:    uploadPolicy,
	}
}

// CreateApplication stores the resume, an optional cover-letter file,
// and records the application. A candidate may apply to any live job at
// most once. The cover letter arrives either as text or as a file, not
// both.
func (s *ApplicationServiceImpl) CreateApplication(ctx context.Context, candidateID string, req *dto.CreateApplicationRequest, resume, coverLetter *FileUpload) (*dto.ApplicationResponse, error) {
	if resume == nil {
		return nil, apperrors.NewBadRequestError("Resume file is required")
	}
	if err := s.uploadPolicy.check("Resume", resume); err != nil {
		return nil, err
	}
	if coverLetter != nil {
		if req.CoverLetter != "" {
			return nil, apperrors.NewBadRequestError("Provide the cover letter as text or as a file, not both")
		}
		if err := s.uploadPolicy.check("Cover letter", coverLetter); err != nil {
			return nil, err
		}
	}

	if _, err := s.jobRepo.FindByID(ctx, req.JobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	exists, err := s.applicationRepo.ExistsForJobAndCandidate(ctx, req.JobID, candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrApplicationAlreadyExists
	}

	resumePath := fmt.Sprintf("resumes/%s/%s%s", candidateID, uuid.NewString(), sanitizeExt(resume.Filename))
	if err := s.fileStorage.Save(ctx, resumePath, resume.Reader, resume.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	coverLetterRef := req.CoverLetter
	if coverLetter != nil {
		path := fmt.Sprintf("%s%s/%s%s", coverLetterDir, candidateID, uuid.NewString(), sanitizeExt(coverLetter.Filename))
		if err := s.fileStorage.Save(ctx, path, coverLetter.Reader, coverLetter.ContentType); err != nil {
			_ = s.fileStorage.Delete(ctx, resumePath)
			return nil, apperrors.InternalError(err)
		}
		coverLetterRef = path
	}

	application := &models.Application{
		JobID:       req.JobID,
		CandidateID: candidateID,
		ResumePath:  resumePath,
		CoverLetter: coverLetterRef,
		Status:      models.ApplicationStatusReceived,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		// Remove the orphaned uploads before reporting the failure.
		_ = s.fileStorage.Delete(ctx, resumePath)
		if coverLetter != nil {
			_ = s.fileStorage.Delete(ctx, coverLetterRef)
		}

		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrApplicationAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application created",
		"application_id", application.ID, "job_id", req.JobID, "candidate_id", candidateID)

	created, err := s.applicationRepo.FindByID(ctx, application.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := s.toResponse(ctx, created)
	return &resp, nil
}

// GetApplication returns one application to a party involved in it.
// Candidates see their own, employers see applications to their jobs,
// admins see everything.
func (s *ApplicationServiceImpl) GetApplication(ctx context.Context, userID string, role models.UserRole, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	allowed := role == models.UserRoleAdmin ||
		application.CandidateID == userID ||
		(application.Job != nil && application.Job.EmployerID == userID)
	if !allowed {
		return nil, apperrors.ErrForbidden
	}

	resp := s.toResponse(ctx, application)
	return &resp, nil
}

func (s *ApplicationServiceImpl) CheckExists(ctx context.Context, candidateID, jobID string) (*dto.ApplicationExistsResponse, error) {
	exists, err := s.applicationRepo.ExistsForJobAndCandidate(ctx, jobID, candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ApplicationExistsResponse{Exists: exists}, nil
}

func (s *ApplicationServiceImpl) ListCandidateApplications(ctx context.Context, candidateID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(ctx, applications), nil
}

func (s *ApplicationServiceImpl) ListJobApplications(ctx context.Context, employerID, jobID string) ([]dto.ApplicationResponse, error) {
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

	applications, err := s.applicationRepo.FindByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(ctx, applications), nil
}

func (s *ApplicationServiceImpl) ListEmployerApplications(ctx context.Context, employerID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(ctx, applications), nil
}

func (s *ApplicationServiceImpl) ListEmployerDeletedApplications(ctx context.Context, employerID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindDeletedByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(ctx, applications), nil
}

// UpdateStatus moves an application between employer statuses. Terminal
// applications are locked and the withdrawn status is reserved for the
// candidate.
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, employerID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	application, err := s.findForEmployer(ctx, employerID, applicationID)
	if err != nil {
		return nil, err
	}

	if workflow.IsTerminal(application.Status) {
		return nil, apperrors.ErrApplicationStatusLocked
	}
	if !workflow.CanChange(application.Status, req.Status) {
		return nil, apperrors.ErrInvalidStatusChange
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, req.Status, req.Notes); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application status changed",
		"application_id", applicationID, "from", application.Status, "to", req.Status)

	updated, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := s.toResponse(ctx, updated)
	return &resp, nil
}

// Withdraw is the candidate side of the workflow. It refuses terminal
// applications and soft deletes the record.
func (s *ApplicationServiceImpl) Withdraw(ctx context.Context, candidateID, applicationID string) error {
	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}

	if application.CandidateID != candidateID {
		return apperrors.ErrNotApplicationOwner
	}
	if !workflow.CanWithdraw(application.Status) {
		return apperrors.ErrApplicationStatusLocked
	}

	if err := s.applicationRepo.Withdraw(ctx, applicationID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application withdrawn",
		"application_id", applicationID, "candidate_id", candidateID)

	return nil
}

func (s *ApplicationServiceImpl) findForEmployer(ctx context.Context, employerID, applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if application.Job == nil || application.Job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}

	return application, nil
}

func (s *ApplicationServiceImpl) toResponse(ctx context.Context, application *models.Application) dto.ApplicationResponse {
	resumeURL := ""
	if application.ResumePath != "" {
		// A broken storage URL should not fail the whole response.
		if url, err := s.fileStorage.GetURL(ctx, application.ResumePath); err == nil {
			resumeURL = url
		}
	}
	coverLetterURL := ""
	if strings.HasPrefix(application.CoverLetter, coverLetterDir) {
		if url, err := s.fileStorage.GetURL(ctx, application.CoverLetter); err == nil {
			coverLetterURL = url
		}
	}
	return dto.NewApplicationResponse(application, resumeURL, coverLetterURL)
}

func (s *ApplicationServiceImpl) toResponses(ctx context.Context, applications []models.Application) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, s.toResponse(ctx, &applications[i]))
	}
	return responses
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".doc", ".docx":
		return ext
	default:
		return ""
	}
}
