package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)
	}

	employer := jobs.Group("")
	employer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployer))
	{
		employer.POST("", h.Create)
		employer.PUT("/:id", h.Update)
		employer.DELETE("/:id", h.Delete)
		employer.GET("/employer/:employerId", h.ListOwn)
		employer.GET("/employer/:employerId/deleted", h.ListOwnDeleted)
	}
}

func (h *JobHandler) List(c *gin.Context) {
	resp, err := h.jobService.ListJobs(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Get(c *gin.Context) {
	resp, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Create(c *gin.Context) {
	employerID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.CreateJob(c.Request.Context(), employerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) Update(c *gin.Context) {
	employerID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.UpdateJob(c.Request.Context(), employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Delete(c *gin.Context) {
	employerID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), employerID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) ListOwn(c *gin.Context) {
	employerID, ok := h.ownEmployerParam(c)
	if !ok {
		return
	}

	resp, err := h.jobService.ListEmployerJobs(c.Request.Context(), employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) ListOwnDeleted(c *gin.Context) {
	employerID, ok := h.ownEmployerParam(c)
	if !ok {
		return
	}

	resp, err := h.jobService.ListDeletedJobs(c.Request.Context(), employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ownEmployerParam verifies that the :employerId path parameter names
// the authenticated employer. Employers only see their own postings.
func (h *JobHandler) ownEmployerParam(c *gin.Context) (string, bool) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return "", false
	}

	if c.Param("employerId") != userID {
		apperrors.HandleError(c, apperrors.ErrForbidden)
		return "", false
	}

	return userID, true
}
