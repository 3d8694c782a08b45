package services

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdvertService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateAdvertRequest) (*dto.AdvertResponse, error)
	Get(db *gorm.DB, id string) (*dto.AdvertResponse, error)

	// Update replaces the advert. Only the creator may update; anyone
	// else gets a Forbidden error regardless of the payload.
	Update(db *gorm.DB, userID, id string, req *dto.UpdateAdvertRequest) (*dto.AdvertResponse, error)

	// Delete removes the advert and its applications. Creator only.
	Delete(db *gorm.DB, userID, id string) error

	// ListActive pages through published, non-expired adverts.
	ListActive(db *gorm.DB, query *dto.AdvertSearchQuery) (*dto.AdvertListResponse, error)

	// MyAdverts pages through everything the user created, active or not.
	MyAdverts(db *gorm.DB, userID string, page int) (*dto.AdvertListResponse, error)
}

type AdvertServiceImpl struct {
	advertRepo repositories.AdvertRepository
}

func NewAdvertService(advertRepo repositories.AdvertRepository) AdvertService {
	return &AdvertServiceImpl{
		advertRepo: advertRepo,
	}
}

func (s *AdvertServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateAdvertRequest) (*dto.AdvertResponse, error) {
	advert := &models.JobAdvert{
		Title:           req.Title,
		CompanyName:     req.CompanyName,
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		EmploymentType:  models.EmploymentType(req.EmploymentType),
		Description:     req.Description,
		JobType:         models.LocationType(req.JobType),
		Location:        req.Location,
		IsPublished:     true,
		Deadline:        req.Deadline,
		Skills:          normalizeSkills(req.Skills),
		CreatedByID:     userID,
	}

	if req.IsPublished != nil {
		advert.IsPublished = *req.IsPublished
	}

	if err := s.advertRepo.Create(db, advert); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewAdvertResponse(advert)
	return &resp, nil
}

func (s *AdvertServiceImpl) Get(db *gorm.DB, id string) (*dto.AdvertResponse, error) {
	advert, err := s.advertRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.advertRepo.CountApplications(db, advert.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewAdvertResponse(advert)
	resp.ApplicationCount = &count
	return &resp, nil
}

func (s *AdvertServiceImpl) Update(db *gorm.DB, userID, id string, req *dto.UpdateAdvertRequest) (*dto.AdvertResponse, error) {
	advert, err := s.advertRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if advert.CreatedByID != userID {
		return nil, apperrors.ErrAdvertOwnershipRequired
	}

	advert.Title = req.Title
	advert.CompanyName = req.CompanyName
	advert.ExperienceLevel = models.ExperienceLevel(req.ExperienceLevel)
	advert.EmploymentType = models.EmploymentType(req.EmploymentType)
	advert.Description = req.Description
	advert.JobType = models.LocationType(req.JobType)
	advert.Location = req.Location
	advert.Deadline = req.Deadline
	advert.Skills = normalizeSkills(req.Skills)
	if req.IsPublished != nil {
		advert.IsPublished = *req.IsPublished
	}

	if err := s.advertRepo.Update(db, advert); err != nil {
		return nil, apperrors.InternalError(err)
	}

	advert.UpdatedAt = time.Now()
	resp := dto.NewAdvertResponse(advert)
	return &resp, nil
}

func (s *AdvertServiceImpl) Delete(db *gorm.DB, userID, id string) error {
	advert, err := s.advertRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if advert.CreatedByID != userID {
		return apperrors.ErrAdvertOwnershipRequired
	}

	if err := s.advertRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *AdvertServiceImpl) ListActive(db *gorm.DB, query *dto.AdvertSearchQuery) (*dto.AdvertListResponse, error) {
	var (
		adverts []models.JobAdvert
		total   int64
		page    int
		err     error
	)

	keyword := strings.TrimSpace(query.Keyword)
	location := strings.TrimSpace(query.Location)

	if keyword == "" && location == "" {
		adverts, total, page, err = s.advertRepo.FindActive(db, query.Page)
	} else {
		adverts, total, page, err = s.advertRepo.Search(db, repositories.AdvertSearchCriteria{
			Keyword:  keyword,
			Location: location,
			Page:     query.Page,
		})
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewAdvertListResponse(adverts, total, page, repositories.AdvertPageSize)
	return &resp, nil
}

func (s *AdvertServiceImpl) MyAdverts(db *gorm.DB, userID string, page int) (*dto.AdvertListResponse, error) {
	adverts, total, effectivePage, err := s.advertRepo.FindByOwner(db, userID, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewAdvertListResponse(adverts, total, effectivePage, repositories.AdvertPageSize)
	return &resp, nil
}

// normalizeSkills trims each comma-separated entry and drops blanks.
func normalizeSkills(skills *string) *string {
	if skills == nil {
		return nil
	}

	parts := strings.Split(*skills, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	joined := strings.Join(cleaned, ",")
	return &joined
}
