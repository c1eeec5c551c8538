package destinations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wisata/internal/shared/utils/response"
)

type Controller interface {
	CreateDestination(c *gin.Context)
	GetDestination(c *gin.Context)
	GetDestinationBySlug(c *gin.Context)
	UpdateDestination(c *gin.Context)
	DeleteDestination(c *gin.Context)
	GetAllDestinations(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateDestination(c *gin.Context) {
	var req CreateDestinationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	// Get admin user ID from context (set by auth middleware)
	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	destination, err := ctrl.service.CreateDestination(c.Request.Context(), adminUUID, req)
	if err != nil {
		if errors.Is(err, ErrSlugAlreadyExists) {
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Destination created successfully", destination, nil)
}

func (ctrl *controller) GetDestination(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destinationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid destination ID", nil, err.Error())
		return
	}

	destination, err := ctrl.service.GetDestinationByID(c.Request.Context(), destinationID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrDestinationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Destination retrieved successfully", destination, nil)
}

func (ctrl *controller) GetDestinationBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid destination slug", nil, nil)
		return
	}

	destination, err := ctrl.service.GetDestinationBySlug(c.Request.Context(), slug)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrDestinationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Destination retrieved successfully", destination, nil)
}

func (ctrl *controller) UpdateDestination(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destinationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid destination ID", nil, err.Error())
		return
	}

	var req UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	destination, err := ctrl.service.UpdateDestination(c.Request.Context(), destinationID, adminUUID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrDestinationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Destination updated successfully", destination, nil)
}

func (ctrl *controller) DeleteDestination(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destinationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid destination ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteDestination(c.Request.Context(), destinationID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrDestinationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Destination deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllDestinations(c *gin.Context) {
	var query DestinationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	// Public listings only ever see published destinations; admins may filter.
	role, _ := c.Get("user_role")
	if roleStr, _ := role.(string); roleStr != "ADMIN" && query.Status == "" {
		query.Status = string(StatusPublished)
	}

	result, err := ctrl.service.GetAllDestinations(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Destinations retrieved successfully", result, nil)
}
