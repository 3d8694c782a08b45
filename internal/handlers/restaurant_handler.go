package handlers

import (
	"net/http"

	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves the read-only restaurant listing site.
type RestaurantHandler struct {
	*BaseHandler
	restaurantService services.RestaurantService
}

func NewRestaurantHandler(base *BaseHandler, restaurantService services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		BaseHandler:       base,
		restaurantService: restaurantService,
	}
}

func (h *RestaurantHandler) RegisterRoutes(r *gin.RouterGroup) {
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("", h.ListRestaurants)
		restaurants.GET("/:restaurantId", h.GetRestaurant)
	}
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var query dto.RestaurantListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	restaurants, err := h.restaurantService.List(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"total":       len(restaurants),
	})
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurantID := c.Param("restaurantId")

	resp, err := h.restaurantService.Get(h.GetDB(c), restaurantID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
