package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/middleware"
	"github.com/kennywood/park-api/internal/models"
	"github.com/kennywood/park-api/internal/services"
)

// ItineraryHandler serves /itineraryitems. Retrieve, update and destroy
// address attractions by id, not itineraries.
type ItineraryHandler struct {
	itineraryRepository  *database.ItineraryRepository
	attractionRepository *database.AttractionRepository
	parkAreaRepository   *database.ParkAreaRepository
	customerRepository   *database.CustomerRepository
	auditService         *services.AuditService
	publicBaseURL        string
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(
	itineraryRepository *database.ItineraryRepository,
	attractionRepository *database.AttractionRepository,
	parkAreaRepository *database.ParkAreaRepository,
	customerRepository *database.CustomerRepository,
	auditService *services.AuditService,
	publicBaseURL string,
) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryRepository:  itineraryRepository,
		attractionRepository: attractionRepository,
		parkAreaRepository:   parkAreaRepository,
		customerRepository:   customerRepository,
		auditService:         auditService,
		publicBaseURL:        publicBaseURL,
	}
}

// RegisterRoutes mounts the five operations on rg
func (h *ItineraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Retrieve)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Destroy)
}

// Create handles POST /api/v1/itineraryitems
func (h *ItineraryHandler) Create(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		respondError(c, models.ErrUnauthenticated)
		return
	}

	var req models.CreateItineraryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	customer, err := h.customerRepository.GetByUserID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	attraction, err := h.attractionRepository.GetByID(*req.RideID)
	if err != nil {
		respondError(c, err)
		return
	}

	itinerary := &models.Itinerary{
		StartTime:    req.StartTime.UTC(),
		CustomerID:   customer.ID,
		AttractionID: attraction.ID,
		Attraction:   attraction,
	}
	if err := h.itineraryRepository.Create(itinerary); err != nil {
		respondError(c, err)
		return
	}

	h.safeLogItineraryCreated(c, userCtx.UserID, itinerary.ID, attraction.ID, itinerary.StartTime)

	c.JSON(http.StatusOK, newRepresenter(c, h.publicBaseURL).itinerary(itinerary))
}

// Retrieve handles GET /api/v1/itineraryitems/:id
func (h *ItineraryHandler) Retrieve(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	attraction, err := h.attractionRepository.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRepresenter(c, h.publicBaseURL).attraction(attraction))
}

// Update handles PUT /api/v1/itineraryitems/:id
func (h *ItineraryHandler) Update(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		respondError(c, models.ErrUnauthenticated)
		return
	}

	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateAttractionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	attraction, err := h.attractionRepository.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	area, err := h.parkAreaRepository.GetByID(*req.AreaID)
	if err != nil {
		respondError(c, err)
		return
	}

	attraction.Name = *req.Name
	attraction.AreaID = area.ID
	attraction.Area = area
	if err := h.attractionRepository.Update(attraction); err != nil {
		respondError(c, err)
		return
	}

	h.safeLogAttractionUpdated(c, userCtx.UserID, attraction.ID, attraction.Name, area.ID)

	c.Status(http.StatusNoContent)
}

// Destroy handles DELETE /api/v1/itineraryitems/:id
func (h *ItineraryHandler) Destroy(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		respondError(c, models.ErrUnauthenticated)
		return
	}

	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	attraction, err := h.attractionRepository.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.attractionRepository.Delete(attraction.ID); err != nil {
		respondError(c, err)
		return
	}

	h.safeLogAttractionDeleted(c, userCtx.UserID, attraction.ID)

	c.Status(http.StatusNoContent)
}

// List handles GET /api/v1/itineraryitems
func (h *ItineraryHandler) List(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		respondError(c, models.ErrUnauthenticated)
		return
	}

	customer, err := h.customerRepository.GetByUserID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.itineraryRepository.ListByCustomer(customer.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRepresenter(c, h.publicBaseURL).itineraries(items))
}
