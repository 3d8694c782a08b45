package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("job application not found")

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.JobApplication) error

	// FindByID preloads the advert so callers can check ownership and
	// build notification payloads without a second query.
	FindByID(db *gorm.DB, id string) (*models.JobApplication, error)

	// ExistsByAdvertAndEmail reports whether the email has already applied
	// to the advert.
	ExistsByAdvertAndEmail(db *gorm.DB, advertID, email string) (bool, error)

	// FindByAdvert lists applications to one advert, newest first.
	FindByAdvert(db *gorm.DB, advertID string, page int) ([]models.JobApplication, int64, int, error)

	// FindByEmail lists all applications an applicant has submitted across
	// adverts, with the advert preloaded.
	FindByEmail(db *gorm.DB, email string, page int) ([]models.JobApplication, int64, int, error)

	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.JobApplication) error {
	return db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := db.Preload("JobAdvert").First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) ExistsByAdvertAndEmail(db *gorm.DB, advertID, email string) (bool, error) {
	var count int64
	err := db.Model(&models.JobApplication{}).
		Where("job_advert_id = ? AND email = ?", advertID, email).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) FindByAdvert(db *gorm.DB, advertID string, page int) ([]models.JobApplication, int64, int, error) {
	query := db.Model(&models.JobApplication{}).Where("job_advert_id = ?", advertID)
	return paginateApplications(query, page, false)
}

func (r *ApplicationRepositoryImpl) FindByEmail(db *gorm.DB, email string, page int) ([]models.JobApplication, int64, int, error) {
	query := db.Model(&models.JobApplication{}).Where("email = ?", email)
	return paginateApplications(query, page, true)
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.JobApplication{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func paginateApplications(query *gorm.DB, page int, preloadAdvert bool) ([]models.JobApplication, int64, int, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	page = ClampPage(page, total, AdvertPageSize)

	if preloadAdvert {
		query = query.Preload("JobAdvert")
	}

	var applications []models.JobApplication
	err := query.Order("created_at DESC").
		Limit(AdvertPageSize).
		Offset((page - 1) * AdvertPageSize).
		Find(&applications).Error
	if err != nil {
		return nil, 0, 0, err
	}

	return applications, total, page, nil
}
