package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

type CreateAdvertRequest struct {
	Title           string    `json:"title" validate:"required,min=3,max=150"`
	CompanyName     string    `json:"company_name" validate:"required,max=150"`
	ExperienceLevel string    `json:"experience_level" validate:"required,oneof=ENTRY_LEVEL MID_LEVEL SENIOR_LEVEL EXECUTIVE"`
	EmploymentType  string    `json:"employment_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Description     string    `json:"description" validate:"required"`
	JobType         string    `json:"job_type" validate:"required,oneof=REMOTE ON_SITE HYBRID"`
	Location        *string   `json:"location,omitempty" validate:"omitempty,max=150"`
	IsPublished     *bool     `json:"is_published,omitempty"`
	Deadline        time.Time `json:"deadline" validate:"required"`
	Skills          *string   `json:"skills,omitempty"`
}

type UpdateAdvertRequest struct {
	Title           string    `json:"title" validate:"required,min=3,max=150"`
	CompanyName     string    `json:"company_name" validate:"required,max=150"`
	ExperienceLevel string    `json:"experience_level" validate:"required,oneof=ENTRY_LEVEL MID_LEVEL SENIOR_LEVEL EXECUTIVE"`
	EmploymentType  string    `json:"employment_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Description     string    `json:"description" validate:"required"`
	JobType         string    `json:"job_type" validate:"required,oneof=REMOTE ON_SITE HYBRID"`
	Location        *string   `json:"location,omitempty" validate:"omitempty,max=150"`
	IsPublished     *bool     `json:"is_published,omitempty"`
	Deadline        time.Time `json:"deadline" validate:"required"`
	Skills          *string   `json:"skills,omitempty"`
}

// AdvertSearchQuery binds the listing/search query string.
type AdvertSearchQuery struct {
	Keyword  string `form:"keyword"`
	Location string `form:"location"`
	Page     int    `form:"page"`
}

type AdvertResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	ExperienceLevel string    `json:"experience_level"`
	EmploymentType  string    `json:"employment_type"`
	Description     string    `json:"description"`
	JobType         string    `json:"job_type"`
	Location        *string   `json:"location,omitempty"`
	IsPublished     bool      `json:"is_published"`
	Deadline        time.Time `json:"deadline"`
	Skills          []string  `json:"skills"`
	IsActive        bool      `json:"is_active"`
	CreatedByID     string    `json:"created_by_id"`

	// ApplicationCount is only populated on the detail view.
	ApplicationCount *int64    `json:"application_count,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AdvertListResponse struct {
	Adverts    []AdvertResponse `json:"adverts"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

// NewAdvertResponse maps a model to its API shape.
func NewAdvertResponse(advert *models.JobAdvert) AdvertResponse {
	return AdvertResponse{
		ID:              advert.ID,
		Title:           advert.Title,
		CompanyName:     advert.CompanyName,
		ExperienceLevel: string(advert.ExperienceLevel),
		EmploymentType:  string(advert.EmploymentType),
		Description:     advert.Description,
		JobType:         string(advert.JobType),
		Location:        advert.Location,
		IsPublished:     advert.IsPublished,
		Deadline:        advert.Deadline,
		Skills:          advert.SkillList(),
		IsActive:        advert.IsActive(time.Now()),
		CreatedByID:     advert.CreatedByID,
		CreatedAt:       advert.CreatedAt,
		UpdatedAt:       advert.UpdatedAt,
	}
}

// NewAdvertListResponse maps a page of adverts plus pagination metadata.
func NewAdvertListResponse(adverts []models.JobAdvert, total int64, page, pageSize int) AdvertListResponse {
	items := make([]AdvertResponse, 0, len(adverts))
	for i := range adverts {
		items = append(items, NewAdvertResponse(&adverts[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return AdvertListResponse{
		Adverts:    items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}
