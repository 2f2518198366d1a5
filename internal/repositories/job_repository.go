package repositories

import (
	"context"
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindAll(ctx context.Context) ([]models.Job, error)
	FindByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	FindDeletedByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindAll(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindDeletedByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).Unscoped().
		Where("employer_id = ? AND deleted_at IS NOT NULL", employerID).
		Order("deleted_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	result := r.db.WithContext(ctx).Model(job).Updates(map[string]interface{}{
		"title":        job.Title,
		"company_name": job.CompanyName,
		"description":  job.Description,
		"requirements": job.Requirements,
		"salary":       job.Salary,
		"location":     job.Location,
		"job_type":     job.JobType,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
