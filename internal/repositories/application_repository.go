package repositories

import (
	"context"
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

type ApplicationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByCandidate(ctx context.Context, candidateID string) ([]models.Application, error)
	FindByJob(ctx context.Context, jobID string) ([]models.Application, error)
	FindByEmployer(ctx context.Context, employerID string) ([]models.Application, error)
	FindDeletedByEmployer(ctx context.Context, employerID string) ([]models.Application, error)
	ExistsForJobAndCandidate(ctx context.Context, jobID, candidateID string) (bool, error)
	Create(ctx context.Context, application *models.Application) error
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string) error
	Withdraw(ctx context.Context, id string) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).Preload("Job").Preload("Candidate").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByCandidate(ctx context.Context, candidateID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).Preload("Job").Preload("Candidate").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// FindByEmployer returns applications against every job the employer owns,
// including jobs the employer has since soft deleted.
func (r *ApplicationRepositoryImpl) FindByEmployer(ctx context.Context, employerID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).Preload("Job", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).Preload("Candidate").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Order("applications.created_at DESC").
		Find(&applications).Error
	return applications, err
}

// FindDeletedByEmployer lists withdrawn applications, which live as
// soft deleted rows.
func (r *ApplicationRepositoryImpl) FindDeletedByEmployer(ctx context.Context, employerID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).Unscoped().Preload("Job", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).Preload("Candidate").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ? AND applications.deleted_at IS NOT NULL", employerID).
		Order("applications.deleted_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ExistsForJobAndCandidate(ctx context.Context, jobID, candidateID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, application *models.Application) error {
	exists, err := r.ExistsForJobAndCandidate(ctx, application.JobID, application.CandidateID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateApplication
	}

	return r.db.WithContext(ctx).Create(application).Error
}

func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}

	result := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// Withdraw marks the application withdrawn and soft deletes it in one transaction.
func (r *ApplicationRepositoryImpl) Withdraw(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Application{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     models.ApplicationStatusWithdrawn,
			"updated_at": time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrApplicationNotFound
		}

		return tx.Where("id = ?", id).Delete(&models.Application{}).Error
	})
}
