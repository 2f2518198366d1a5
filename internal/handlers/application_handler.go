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

const (
	resumeFormField      = "resume"
	coverLetterFormField = "coverLetterFile"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	applications := rg.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("/:id", h.Get)
	}

	candidate := applications.Group("")
	candidate.Use(middleware.RequireRoles(models.UserRoleCandidate))
	{
		candidate.POST("", h.Create)
		candidate.GET("/check/:jobId/:candidateId", h.CheckExists)
		candidate.GET("/candidate/:candidateId", h.ListOwn)
		candidate.DELETE("/:id", h.Withdraw)
	}

	employer := applications.Group("")
	employer.Use(middleware.RequireRoles(models.UserRoleEmployer))
	{
		employer.GET("/employer/:employerId", h.ListForEmployer)
		employer.GET("/employer/:employerId/deleted", h.ListDeletedForEmployer)
		employer.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create accepts a multipart form: jobId, the resume file, and the
// cover letter as either the coverLetter text field or the
// coverLetterFile part.
func (h *ApplicationHandler) Create(c *gin.Context) {
	candidateID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Resume file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	resume := &services.FileUpload{
		Reader:      file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	}

	var coverLetter *services.FileUpload
	if clHeader, clErr := c.FormFile(coverLetterFormField); clErr == nil {
		clFile, openErr := clHeader.Open()
		if openErr != nil {
			h.HandleServiceError(c, openErr)
			return
		}
		defer clFile.Close()

		coverLetter = &services.FileUpload{
			Reader:      clFile,
			Filename:    clHeader.Filename,
			ContentType: clHeader.Header.Get("Content-Type"),
			Size:        clHeader.Size,
		}
	}

	resp, err := h.applicationService.CreateApplication(c.Request.Context(), candidateID, &req, resume, coverLetter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.GetApplication(c.Request.Context(), userID, middleware.GetRole(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) CheckExists(c *gin.Context) {
	candidateID, ok := h.ownCandidateParam(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.CheckExists(c.Request.Context(), candidateID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	candidateID, ok := h.ownCandidateParam(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListCandidateApplications(c.Request.Context(), candidateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	employerID, ok := h.ownEmployerParam(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListEmployerApplications(c.Request.Context(), employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) ListDeletedForEmployer(c *gin.Context) {
	employerID, ok := h.ownEmployerParam(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.ListEmployerDeletedApplications(c.Request.Context(), employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	employerID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.applicationService.UpdateStatus(c.Request.Context(), employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	candidateID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	if err := h.applicationService.Withdraw(c.Request.Context(), candidateID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) ownCandidateParam(c *gin.Context) (string, bool) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return "", false
	}

	if c.Param("candidateId") != userID {
		apperrors.HandleError(c, apperrors.ErrForbidden)
		return "", false
	}

	return userID, true
}

func (h *ApplicationHandler) ownEmployerParam(c *gin.Context) (string, bool) {
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
