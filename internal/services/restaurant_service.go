package services

import (
	"errors"
	"strings"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RestaurantService interface {
	// List returns all restaurants, optionally narrowed to one city,
	// best rated first.
	List(db *gorm.DB, query *dto.RestaurantListQuery) ([]dto.RestaurantResponse, error)

	Get(db *gorm.DB, id string) (*dto.RestaurantResponse, error)
}

type RestaurantServiceImpl struct {
	restaurantRepo repositories.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repositories.RestaurantRepository) RestaurantService {
	return &RestaurantServiceImpl{
		restaurantRepo: restaurantRepo,
	}
}

func (s *RestaurantServiceImpl) List(db *gorm.DB, query *dto.RestaurantListQuery) ([]dto.RestaurantResponse, error) {
	var (
		restaurants []models.Restaurant
		err         error
	)

	city := strings.TrimSpace(query.City)
	if city == "" {
		restaurants, err = s.restaurantRepo.FindAll(db)
	} else {
		restaurants, err = s.restaurantRepo.FindByCity(db, city)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		items = append(items, dto.NewRestaurantResponse(&restaurants[i]))
	}

	return items, nil
}

func (s *RestaurantServiceImpl) Get(db *gorm.DB, id string) (*dto.RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRestaurantNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewRestaurantResponse(restaurant)
	return &resp, nil
}
