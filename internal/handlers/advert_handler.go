package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdvertHandler struct {
	*BaseHandler
	advertService      services.AdvertService
	applicationService services.ApplicationService
}

func NewAdvertHandler(base *BaseHandler, advertService services.AdvertService, applicationService services.ApplicationService) *AdvertHandler {
	return &AdvertHandler{
		BaseHandler:        base,
		advertService:      advertService,
		applicationService: applicationService,
	}
}

func (h *AdvertHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/adverts")
	{
		public.GET("", h.ListAdverts)
		public.GET("/search", h.ListAdverts)
		public.GET("/:advertId", h.GetAdvert)
	}

	// Protected routes - advert owners
	adverts := r.Group("/adverts")
	adverts.Use(middleware.AuthMiddleware())
	{
		adverts.POST("", h.CreateAdvert)
		adverts.GET("/my", h.GetMyAdverts)
		adverts.PUT("/:advertId", h.UpdateAdvert)
		adverts.DELETE("/:advertId", h.DeleteAdvert)
		adverts.GET("/:advertId/applications", h.GetAdvertApplications)
	}
}

// --- Public handlers ---

// ListAdverts serves the public board: active adverts only, optionally
// filtered by keyword and location.
func (h *AdvertHandler) ListAdverts(c *gin.Context) {
	var query dto.AdvertSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.advertService.ListActive(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdvertHandler) GetAdvert(c *gin.Context) {
	advertID := c.Param("advertId")

	resp, err := h.advertService.Get(h.GetDB(c), advertID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --- Owner handlers ---

func (h *AdvertHandler) CreateAdvert(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAdvertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.advertService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AdvertHandler) GetMyAdverts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.advertService.MyAdverts(h.GetDB(c), userID, ParsePage(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdvertHandler) UpdateAdvert(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	advertID := c.Param("advertId")

	var req dto.UpdateAdvertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.advertService.Update(h.GetDB(c), userID, advertID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdvertHandler) DeleteAdvert(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	advertID := c.Param("advertId")

	if err := h.advertService.Delete(h.GetDB(c), userID, advertID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Advert deleted.",
	})
}

// GetAdvertApplications lists the applications to one advert. Only the
// advert's creator may see them.
func (h *AdvertHandler) GetAdvertApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	advertID := c.Param("advertId")

	resp, err := h.applicationService.ListByAdvert(c.Request.Context(), h.GetDB(c), userID, advertID, ParsePage(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
