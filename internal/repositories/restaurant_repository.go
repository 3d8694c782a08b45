package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

type RestaurantRepository interface {
	FindAll(db *gorm.DB) ([]models.Restaurant, error)
	FindByID(db *gorm.DB, id string) (*models.Restaurant, error)
	FindByCity(db *gorm.DB, city string) ([]models.Restaurant, error)
	Create(db *gorm.DB, restaurant *models.Restaurant) error
}

type RestaurantRepositoryImpl struct{}

func NewRestaurantRepository() RestaurantRepository {
	return &RestaurantRepositoryImpl{}
}

func (r *RestaurantRepositoryImpl) FindAll(db *gorm.DB) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := db.Order("rating DESC, name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := db.First(&restaurant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepositoryImpl) FindByCity(db *gorm.DB, city string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := db.Where("LOWER(city) = LOWER(?)", city).
		Order("rating DESC, name ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepositoryImpl) Create(db *gorm.DB, restaurant *models.Restaurant) error {
	return db.Create(restaurant).Error
}
