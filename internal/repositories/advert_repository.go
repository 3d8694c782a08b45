package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAdvertNotFound = errors.New("job advert not found")

// AdvertPageSize is the fixed page size for advert and application listings.
const AdvertPageSize = 10

// AdvertSearchCriteria narrows the active-advert listing. Keyword is
// OR-matched across title, description, company name and skills; Location
// is intersected with the keyword match.
type AdvertSearchCriteria struct {
	Keyword  string
	Location string
	Page     int
}

type AdvertRepository interface {
	Create(db *gorm.DB, advert *models.JobAdvert) error
	FindByID(db *gorm.DB, id string) (*models.JobAdvert, error)
	Update(db *gorm.DB, advert *models.JobAdvert) error
	Delete(db *gorm.DB, id string) error

	// FindActive lists published adverts whose deadline has not passed,
	// newest first, paginated.
	FindActive(db *gorm.DB, page int) ([]models.JobAdvert, int64, int, error)

	// Search filters the active set by keyword/location substrings.
	Search(db *gorm.DB, criteria AdvertSearchCriteria) ([]models.JobAdvert, int64, int, error)

	// FindByOwner lists all adverts created by the user, newest first.
	FindByOwner(db *gorm.DB, ownerID string, page int) ([]models.JobAdvert, int64, int, error)

	CountApplications(db *gorm.DB, advertID string) (int64, error)
}

type AdvertRepositoryImpl struct{}

func NewAdvertRepository() AdvertRepository {
	return &AdvertRepositoryImpl{}
}

func (r *AdvertRepositoryImpl) Create(db *gorm.DB, advert *models.JobAdvert) error {
	return db.Create(advert).Error
}

func (r *AdvertRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobAdvert, error) {
	var advert models.JobAdvert
	err := db.First(&advert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvertNotFound
		}
		return nil, err
	}
	return &advert, nil
}

func (r *AdvertRepositoryImpl) Update(db *gorm.DB, advert *models.JobAdvert) error {
	result := db.Model(advert).Updates(map[string]interface{}{
		"title":            advert.Title,
		"company_name":     advert.CompanyName,
		"experience_level": advert.ExperienceLevel,
		"employment_type":  advert.EmploymentType,
		"description":      advert.Description,
		"job_type":         advert.JobType,
		"location":         advert.Location,
		"is_published":     advert.IsPublished,
		"deadline":         advert.Deadline,
		"skills":           advert.Skills,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdvertNotFound
	}
	return nil
}

func (r *AdvertRepositoryImpl) Delete(db *gorm.DB, id string) error {
	// Applications are owned by the advert, remove them with it.
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_advert_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.JobAdvert{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAdvertNotFound
		}
		return nil
	})
}

func (r *AdvertRepositoryImpl) FindActive(db *gorm.DB, page int) ([]models.JobAdvert, int64, int, error) {
	query := activeScope(db)
	return paginateAdverts(query, page)
}

func (r *AdvertRepositoryImpl) Search(db *gorm.DB, criteria AdvertSearchCriteria) ([]models.JobAdvert, int64, int, error) {
	query := activeScope(db)

	if criteria.Keyword != "" {
		pattern := "%" + criteria.Keyword + "%"
		query = query.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("LOWER(title) LIKE LOWER(?)", pattern).
				Or("LOWER(description) LIKE LOWER(?)", pattern).
				Or("LOWER(company_name) LIKE LOWER(?)", pattern).
				Or("LOWER(skills) LIKE LOWER(?)", pattern),
		)
	}

	if criteria.Location != "" {
		query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+criteria.Location+"%")
	}

	return paginateAdverts(query, criteria.Page)
}

func (r *AdvertRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string, page int) ([]models.JobAdvert, int64, int, error) {
	query := db.Model(&models.JobAdvert{}).Where("created_by_id = ?", ownerID)
	return paginateAdverts(query, page)
}

func (r *AdvertRepositoryImpl) CountApplications(db *gorm.DB, advertID string) (int64, error) {
	var count int64
	err := db.Model(&models.JobApplication{}).Where("job_advert_id = ?", advertID).Count(&count).Error
	return count, err
}

// activeScope limits a query to adverts that should appear publicly.
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Model(&models.JobAdvert{}).
		Where("is_published = ?", true).
		Where("deadline >= ?", time.Now())
}

// paginateAdverts applies clamped pagination: pages are 1-indexed, a page
// below 1 becomes 1, a page past the end becomes the last page.
func paginateAdverts(query *gorm.DB, page int) ([]models.JobAdvert, int64, int, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	page = ClampPage(page, total, AdvertPageSize)

	var adverts []models.JobAdvert
	err := query.Order("created_at DESC").
		Limit(AdvertPageSize).
		Offset((page - 1) * AdvertPageSize).
		Find(&adverts).Error
	if err != nil {
		return nil, 0, 0, err
	}

	return adverts, total, page, nil
}

// ClampPage maps any requested page onto the valid [1, lastPage] range.
func ClampPage(page int, total int64, pageSize int) int {
	if page < 1 {
		return 1
	}
	lastPage := int((total + int64(pageSize) - 1) / int64(pageSize))
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		return lastPage
	}
	return page
}
