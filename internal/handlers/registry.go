package handlers

import (
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"
)

// AppHandlers holds every handler the router mounts.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, container.AuthService),
		JobHandler:         NewJobHandler(base, container.JobService),
		ApplicationHandler: NewApplicationHandler(base, container.ApplicationService),
	}
}
