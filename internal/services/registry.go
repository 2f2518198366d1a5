package services

import (
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/storage"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService        AuthService
	JobService         JobService
	ApplicationService ApplicationService
}

func NewServiceContainer(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	fileStorage storage.Storage,
	uploadPolicy UploadPolicy,
) *ServiceContainer {
	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo),
		JobService:         NewJobService(jobRepo),
		ApplicationService: NewApplicationService(applicationRepo, jobRepo, fileStorage, uploadPolicy),
	}
}
