package handlers

import (
	"net/http"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
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

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Anyone may apply; applicants are identified by the email in the form.
	r.POST("/adverts/:advertId/apply", h.Apply)

	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("/my", h.GetMyApplications)
		applications.PUT("/:applicationId/decide", h.DecideApplication)
	}
}

// Apply submits a multipart application form with an attached resume.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	advertID := c.Param("advertId")

	var req dto.ApplyRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Resume file is required."))
		return
	}

	cfg := config.GetConfig()
	if fileHeader.Size > cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Resume file is too large."))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadType(contentType, cfg.Upload.AllowedTypes) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unsupported resume file type."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resume := &services.ResumeUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Reader:      file,
	}

	resp, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), advertID, &req, resume)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetMyApplications lists everything submitted under the logged-in
// user's email address.
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	email, ok := h.GetAuthenticatedEmail(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.MyApplications(c.Request.Context(), h.GetDB(c), email, ParsePage(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DecideApplication moves an application to a new status. Advert creator only.
func (h *ApplicationHandler) DecideApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicationID := c.Param("applicationId")

	var req dto.DecideApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Decide(c.Request.Context(), h.GetDB(c), userID, applicationID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func allowedUploadType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}
