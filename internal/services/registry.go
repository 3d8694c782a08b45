package services

import (
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/storage"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService        AuthService
	AdvertService      AdvertService
	ApplicationService ApplicationService
	RestaurantService  RestaurantService
	EmailService       email.Provider
	Storage            storage.Storage
}
