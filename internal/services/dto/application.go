package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// ApplyRequest binds the multipart application form. The resume file is
// read from the request separately.
type ApplyRequest struct {
	Name         string  `form:"name" validate:"required,max=50"`
	Email        string  `form:"email" validate:"required,email"`
	PortfolioURL *string `form:"portfolio_url" validate:"omitempty,url"`
}

type DecideApplicationRequest struct {
	Status string `json:"status" validate:"required"`
}

type PageQuery struct {
	Page int `form:"page"`
}

type ApplicationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	ResumeURL    string    `json:"resume_url"`
	Status       string    `json:"status"`
	JobAdvertID  string    `json:"job_advert_id"`
	JobTitle     string    `json:"job_title,omitempty"`
	CompanyName  string    `json:"company_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"total_pages"`
}

// NewApplicationResponse maps a model to its API shape. resumeURL is
// resolved by the caller through the storage layer.
func NewApplicationResponse(application *models.JobApplication, resumeURL string) ApplicationResponse {
	resp := ApplicationResponse{
		ID:           application.ID,
		Name:         application.Name,
		Email:        application.Email,
		PortfolioURL: application.PortfolioURL,
		ResumeURL:    resumeURL,
		Status:       string(application.Status),
		JobAdvertID:  application.JobAdvertID,
		CreatedAt:    application.CreatedAt,
	}

	if application.JobAdvert != nil {
		resp.JobTitle = application.JobAdvert.Title
		resp.CompanyName = application.JobAdvert.CompanyName
	}

	return resp
}

func NewApplicationListResponse(applications []ApplicationResponse, total int64, page, pageSize int) ApplicationListResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return ApplicationListResponse{
		Applications: applications,
		Total:        total,
		Page:         page,
		TotalPages:   totalPages,
	}
}
