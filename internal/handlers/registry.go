package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	AdvertHandler      *AdvertHandler
	ApplicationHandler *ApplicationHandler
	RestaurantHandler  *RestaurantHandler
	FileHandler        *FileHandler
}
