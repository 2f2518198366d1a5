package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
)

// fakeJobRepo is an in-memory JobRepository for service tests.
type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (f *fakeJobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) FindAll(_ context.Context) ([]models.Job, error) {
	var jobs []models.Job
	for _, job := range f.jobs {
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func (f *fakeJobRepo) FindByEmployer(_ context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	for _, job := range f.jobs {
		if job.EmployerID == employerID {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (f *fakeJobRepo) FindDeletedByEmployer(_ context.Context, _ string) ([]models.Job, error) {
	return nil, nil
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", len(f.jobs)+1)
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *models.Job) error {
	if _, ok := f.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(f.jobs, id)
	return nil
}

// fakeApplicationRepo is an in-memory ApplicationRepository.
type fakeApplicationRepo struct {
	applications map[string]*models.Application
	jobs         *fakeJobRepo
	nextID       int
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[string]*models.Application),
		jobs:         jobs,
	}
}

func (f *fakeApplicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *application
	if job, ok := f.jobs.jobs[application.JobID]; ok {
		jobCopy := *job
		copied.Job = &jobCopy
	}
	return &copied, nil
}

func (f *fakeApplicationRepo) FindByCandidate(_ context.Context, candidateID string) ([]models.Application, error) {
	var applications []models.Application
	for _, application := range f.applications {
		if application.CandidateID == candidateID {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (f *fakeApplicationRepo) FindByJob(_ context.Context, jobID string) ([]models.Application, error) {
	var applications []models.Application
	for _, application := range f.applications {
		if application.JobID == jobID {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (f *fakeApplicationRepo) FindByEmployer(_ context.Context, employerID string) ([]models.Application, error) {
	var applications []models.Application
	for _, application := range f.applications {
		if job, ok := f.jobs.jobs[application.JobID]; ok && job.EmployerID == employerID {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (f *fakeApplicationRepo) FindDeletedByEmployer(_ context.Context, _ string) ([]models.Application, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) ExistsForJobAndCandidate(_ context.Context, jobID, candidateID string) (bool, error) {
	for _, application := range f.applications {
		if application.JobID == jobID && application.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) Create(ctx context.Context, application *models.Application) error {
	exists, _ := f.ExistsForJobAndCandidate(ctx, application.JobID, application.CandidateID)
	if exists {
		return repositories.ErrDuplicateApplication
	}
	f.nextID++
	application.ID = fmt.Sprintf("app-%d", f.nextID)
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus, notes string) error {
	application, ok := f.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	application.Status = status
	if notes != "" {
		application.Notes = notes
	}
	return nil
}

func (f *fakeApplicationRepo) Withdraw(_ context.Context, id string) error {
	application, ok := f.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	application.Status = models.ApplicationStatusWithdrawn
	return nil
}

// fakeStorage keeps uploaded files in memory.
type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.files[path] = data
	return nil
}

func (f *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

func testUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSize:      1024 * 1024,
		AllowedTypes: []string{"application/pdf"},
	}
}

func testResume() *FileUpload {
	content := []byte("%PDF-1.4 fake resume")
	return &FileUpload{
		Reader:      bytes.NewReader(content),
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	}
}

func testCoverLetterFile() *FileUpload {
	content := []byte("%PDF-1.4 fake cover letter")
	return &FileUpload{
		Reader:      bytes.NewReader(content),
		Filename:    "cover-letter.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	}
}

func newApplicationServiceFixture(t *testing.T) (ApplicationService, *fakeJobRepo, *fakeApplicationRepo, *fakeStorage) {
	t.Helper()
	jobs := newFakeJobRepo()
	applications := newFakeApplicationRepo(jobs)
	files := newFakeStorage()
	service := NewApplicationService(applications, jobs, files, testUploadPolicy())
	return service, jobs, applications, files
}

func seedJob(t *testing.T, jobs *fakeJobRepo, employerID string) *models.Job {
	t.Helper()
	job := &models.Job{
		EmployerID:  employerID,
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Description: "Build services",
		Salary:      "85000",
		Location:    "Remote",
		JobType:     "Full-Time",
	}
	require.NoError(t, jobs.Create(context.Background(), job))
	return job
}

func TestCreateApplication(t *testing.T) {
	service, jobs, _, files := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	resp, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID, CoverLetter: "Hi"}, testResume(), nil)

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusReceived, resp.Status)
	assert.Equal(t, job.ID, resp.JobID)
	assert.Equal(t, "candidate-1", resp.CandidateID)
	assert.NotEmpty(t, resp.ResumeURL)

	// Resume must be in storage under the recorded path.
	assert.Len(t, files.files, 1)
}

func TestCreateApplicationCoverLetterFile(t *testing.T) {
	service, jobs, _, files := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	resp, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), testCoverLetterFile())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.CoverLetterURL)
	assert.Empty(t, resp.CoverLetter)
	assert.Len(t, files.files, 2)

	stored := false
	for path := range files.files {
		if strings.HasPrefix(path, "cover-letters/candidate-1/") {
			stored = true
		}
	}
	assert.True(t, stored, "cover letter file stored under its own prefix")
}

func TestCreateApplicationCoverLetterTextAndFile(t *testing.T) {
	service, jobs, _, files := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	_, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID, CoverLetter: "Hi"}, testResume(), testCoverLetterFile())

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Empty(t, files.files)
}

func TestCreateApplicationDuplicate(t *testing.T) {
	service, jobs, _, _ := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	_, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), nil)
	require.NoError(t, err)

	_, err = service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), nil)
	assert.ErrorIs(t, err, apperrors.ErrApplicationAlreadyExists)
}

func TestCreateApplicationJobMissing(t *testing.T) {
	service, _, _, _ := newApplicationServiceFixture(t)

	_, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: "missing"}, testResume(), nil)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestCreateApplicationUploadPolicy(t *testing.T) {
	service, jobs, _, _ := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	t.Run("oversized resume", func(t *testing.T) {
		resume := testResume()
		resume.Size = 10 * 1024 * 1024
		_, err := service.CreateApplication(context.Background(), "candidate-1",
			&dto.CreateApplicationRequest{JobID: job.ID}, resume, nil)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		resume := testResume()
		resume.ContentType = "image/png"
		_, err := service.CreateApplication(context.Background(), "candidate-1",
			&dto.CreateApplicationRequest{JobID: job.ID}, resume, nil)
		require.Error(t, err)
	})

	t.Run("wrong cover letter type", func(t *testing.T) {
		cl := testCoverLetterFile()
		cl.ContentType = "image/png"
		_, err := service.CreateApplication(context.Background(), "candidate-1",
			&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), cl)
		require.Error(t, err)
	})

	t.Run("missing resume", func(t *testing.T) {
		_, err := service.CreateApplication(context.Background(), "candidate-1",
			&dto.CreateApplicationRequest{JobID: job.ID}, nil, nil)
		require.Error(t, err)
	})
}

func TestCheckExists(t *testing.T) {
	service, jobs, _, _ := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	resp, err := service.CheckExists(context.Background(), "candidate-1", job.ID)
	require.NoError(t, err)
	assert.False(t, resp.Exists)

	_, err = service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), nil)
	require.NoError(t, err)

	resp, err = service.CheckExists(context.Background(), "candidate-1", job.ID)
	require.NoError(t, err)
	assert.True(t, resp.Exists)
}

func TestUpdateStatus(t *testing.T) {
	service, jobs, applications, _ := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	created, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), nil)
	require.NoError(t, err)

	resp, err := service.UpdateStatus(context.Background(), "employer-1", created.ID,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusInterview, Notes: "strong candidate"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterview, resp.Status)
	assert.Equal(t, "strong candidate", resp.Notes)

	t.Run("same status is rejected", func(t *testing.T) {
		_, err := service.UpdateStatus(context.Background(), "employer-1", created.ID,
			&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusInterview})
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusChange)
	})

	t.Run("withdrawn is candidate only", func(t *testing.T) {
		_, err := service.UpdateStatus(context.Background(), "employer-1", created.ID,
			&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusWithdrawn})
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusChange)
	})

	t.Run("other employer is refused", func(t *testing.T) {
		_, err := service.UpdateStatus(context.Background(), "employer-2", created.ID,
			&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusHired})
		assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
	})

	t.Run("terminal status locks the record", func(t *testing.T) {
		_, err := service.UpdateStatus(context.Background(), "employer-1", created.ID,
			&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusHired})
		require.NoError(t, err)

		_, err = service.UpdateStatus(context.Background(), "employer-1", created.ID,
			&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusRejected})
		assert.ErrorIs(t, err, apperrors.ErrApplicationStatusLocked)

		assert.Equal(t, models.ApplicationStatusHired, applications.applications[created.ID].Status)
	})
}

func TestWithdraw(t *testing.T) {
	service, jobs, applications, _ := newApplicationServiceFixture(t)
	job := seedJob(t, jobs, "employer-1")

	created, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: job.ID}, testResume(), nil)
	require.NoError(t, err)

	t.Run("other candidate is refused", func(t *testing.T) {
		err := service.Withdraw(context.Background(), "candidate-2", created.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotApplicationOwner)
	})

	t.Run("non-terminal withdraws", func(t *testing.T) {
		require.NoError(t, service.Withdraw(context.Background(), "candidate-1", created.ID))
		assert.Equal(t, models.ApplicationStatusWithdrawn, applications.applications[created.ID].Status)
	})

	t.Run("terminal is locked", func(t *testing.T) {
		err := service.Withdraw(context.Background(), "candidate-1", created.ID)
		assert.ErrorIs(t, err, apperrors.ErrApplicationStatusLocked)
	})
}

func TestListEmployerApplications(t *testing.T) {
	service, jobs, _, _ := newApplicationServiceFixture(t)
	jobA := seedJob(t, jobs, "employer-1")
	jobB := seedJob(t, jobs, "employer-2")

	_, err := service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: jobA.ID}, testResume(), nil)
	require.NoError(t, err)
	_, err = service.CreateApplication(context.Background(), "candidate-1",
		&dto.CreateApplicationRequest{JobID: jobB.ID}, testResume(), nil)
	require.NoError(t, err)

	listed, err := service.ListEmployerApplications(context.Background(), "employer-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, jobA.ID, listed[0].JobID)
}
