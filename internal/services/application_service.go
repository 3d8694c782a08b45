package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResumeUpload carries the uploaded resume file into the service.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type ApplicationService interface {
	// Apply submits an application to an active advert. One application
	// per (advert, email).
	Apply(ctx context.Context, db *gorm.DB, advertID string, req *dto.ApplyRequest, resume *ResumeUpload) (*dto.ApplicationResponse, error)

	// ListByAdvert pages through an advert's applications. Advert creator only.
	ListByAdvert(ctx context.Context, db *gorm.DB, userID, advertID string, page int) (*dto.ApplicationListResponse, error)

	// MyApplications pages through everything submitted under the email.
	MyApplications(ctx context.Context, db *gorm.DB, emailAddr string, page int) (*dto.ApplicationListResponse, error)

	// Decide sets the application status. Advert creator only; a move to
	// REJECTED notifies the applicant by email.
	Decide(ctx context.Context, db *gorm.DB, userID, applicationID, status string) (*dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	advertRepo      repositories.AdvertRepository
	fileStorage     storage.Storage
	emailProvider   email.Provider
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	advertRepo repositories.AdvertRepository,
	fileStorage storage.Storage,
	emailProvider email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		advertRepo:      advertRepo,
		fileStorage:     fileStorage,
		emailProvider:   emailProvider,
	}
}

func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, advertID string, req *dto.ApplyRequest, resume *ResumeUpload) (*dto.ApplicationResponse, error) {
	advert, err := s.advertRepo.FindByID(db, advertID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !advert.IsActive(time.Now()) {
		return nil, apperrors.NewBadRequestError("This advert is no longer accepting applications.")
	}

	exists, err := s.applicationRepo.ExistsByAdvertAndEmail(db, advertID, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	resumePath, err := s.saveResume(ctx, advertID, resume)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	application := &models.JobApplication{
		Name:         req.Name,
		Email:        req.Email,
		PortfolioURL: req.PortfolioURL,
		ResumePath:   resumePath,
		Status:       models.ApplicationStatusApplied,
		JobAdvertID:  advertID,
	}

	if err := s.applicationRepo.Create(db, application); err != nil {
		// Keep storage consistent with the DB.
		if delErr := s.fileStorage.Delete(ctx, resumePath); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up resume after create failure", "path", resumePath)
		}
		return nil, apperrors.InternalError(err)
	}

	application.JobAdvert = advert
	resp := dto.NewApplicationResponse(application, s.resumeURL(ctx, resumePath))
	return &resp, nil
}

func (s *ApplicationServiceImpl) ListByAdvert(ctx context.Context, db *gorm.DB, userID, advertID string, page int) (*dto.ApplicationListResponse, error) {
	advert, err := s.advertRepo.FindByID(db, advertID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if advert.CreatedByID != userID {
		return nil, apperrors.ErrApplicationsViewForbidden
	}

	applications, total, effectivePage, err := s.applicationRepo.FindByAdvert(db, advertID, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := s.buildListResponse(ctx, applications, total, effectivePage)
	return &resp, nil
}

func (s *ApplicationServiceImpl) MyApplications(ctx context.Context, db *gorm.DB, emailAddr string, page int) (*dto.ApplicationListResponse, error) {
	applications, total, effectivePage, err := s.applicationRepo.FindByEmail(db, emailAddr, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := s.buildListResponse(ctx, applications, total, effectivePage)
	return &resp, nil
}

func (s *ApplicationServiceImpl) Decide(ctx context.Context, db *gorm.DB, userID, applicationID, status string) (*dto.ApplicationResponse, error) {
	newStatus := models.ApplicationStatus(status)
	if !newStatus.Valid() {
		return nil, apperrors.ErrUnknownApplicationStatus
	}

	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if application.JobAdvert == nil || application.JobAdvert.CreatedByID != userID {
		return nil, apperrors.ErrApplicationDecideForbidden
	}

	if err := s.applicationRepo.UpdateStatus(db, applicationID, newStatus); err != nil {
		return nil, apperrors.InternalError(err)
	}

	application.Status = newStatus

	if newStatus == models.ApplicationStatusRejected {
		s.sendRejectionEmail(application)
	}

	resp := dto.NewApplicationResponse(application, s.resumeURL(ctx, application.ResumePath))
	return &resp, nil
}

// --- Helper functions ---

func (s *ApplicationServiceImpl) saveResume(ctx context.Context, advertID string, resume *ResumeUpload) (string, error) {
	ext := filepath.Ext(resume.Filename)
	path := fmt.Sprintf("resumes/%s/%s%s", advertID, uuid.NewString(), ext)

	if err := s.fileStorage.Save(ctx, path, resume.Reader, resume.ContentType); err != nil {
		return "", fmt.Errorf("failed to save resume: %w", err)
	}

	return path, nil
}

func (s *ApplicationServiceImpl) resumeURL(ctx context.Context, path string) string {
	url, err := s.fileStorage.GetURL(ctx, path)
	if err != nil {
		return ""
	}
	return url
}

func (s *ApplicationServiceImpl) buildListResponse(ctx context.Context, applications []models.JobApplication, total int64, page int) dto.ApplicationListResponse {
	items := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, dto.NewApplicationResponse(&applications[i], s.resumeURL(ctx, applications[i].ResumePath)))
	}

	return dto.NewApplicationListResponse(items, total, page, repositories.AdvertPageSize)
}

func (s *ApplicationServiceImpl) sendRejectionEmail(application *models.JobApplication) {
	if s.emailProvider == nil || application.JobAdvert == nil {
		return
	}

	to := application.Email
	data := email.TemplateData{
		"ApplicantName": application.Name,
		"JobTitle":      application.JobAdvert.Title,
		"CompanyName":   application.JobAdvert.CompanyName,
		"Status":        string(models.ApplicationStatusRejected),
	}

	go func() {
		subject := fmt.Sprintf("Update on your application for %s", data["JobTitle"])
		if err := s.emailProvider.SendTemplate([]string{to}, subject, "job_application_update", data); err != nil {
			logger.WithError(err).Warn("failed to send application status email", "email", to)
		}
	}()
}
