package dto

import (
	"encoding/json"
	"time"

	"jobboard_backend/internal/models"
)

type RestaurantListQuery struct {
	City string `form:"city"`
}

type RestaurantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"image_url"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRestaurantResponse(restaurant *models.Restaurant) RestaurantResponse {
	tags := []string{}
	if len(restaurant.Tags) > 0 {
		// Stored as a JSON array; ignore malformed rows.
		_ = json.Unmarshal(restaurant.Tags, &tags)
	}

	return RestaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Description: restaurant.Description,
		Address:     restaurant.Address,
		City:        restaurant.City,
		Rating:      restaurant.Rating,
		ImageURL:    restaurant.ImageURL,
		Tags:        tags,
		CreatedAt:   restaurant.CreatedAt,
	}
}
