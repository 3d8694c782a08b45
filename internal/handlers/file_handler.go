package handlers

import (
	"io"
	"net/http"
	"path/filepath"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler streams uploaded resumes out of storage. A resume is only
// visible to the applicant and to the creator of the advert it was
// submitted to.
type FileHandler struct {
	*BaseHandler
	storage         storage.Storage
	applicationRepo repositories.ApplicationRepository
}

func NewFileHandler(base *BaseHandler, fileStorage storage.Storage, applicationRepo repositories.ApplicationRepository) *FileHandler {
	return &FileHandler{
		BaseHandler:     base,
		storage:         fileStorage,
		applicationRepo: applicationRepo,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/applications")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/:applicationId/resume", h.ServeResume)
	}
}

func (h *FileHandler) ServeResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicationID := c.Param("applicationId")

	application, err := h.applicationRepo.FindByID(h.GetDB(c), applicationID)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}

	email := c.GetString("userEmail")
	isApplicant := email != "" && application.Email == email
	isAdvertOwner := application.JobAdvert != nil && application.JobAdvert.CreatedByID == userID

	if !isApplicant && !isAdvertOwner {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), application.ResumePath)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	filename := filepath.Base(application.ResumePath)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/octet-stream")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}
