package tickets

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wisata/internal/shared/utils/response"
)

type Controller interface {
	CreateTicket(c *gin.Context)
	GetTicket(c *gin.Context)
	GetCatalog(c *gin.Context)
	QuotePrice(c *gin.Context)
	UpdateTicket(c *gin.Context)
	DeleteTicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.CreateTicket(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDestinationNotExists):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrDuplicateTicketType):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket created successfully", ticket, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID format", nil, nil)
		return
	}

	ticket, err := ctrl.service.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get ticket", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) GetCatalog(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destinationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid destination ID format", nil, nil)
		return
	}

	// Admins see the full catalog, public callers only ACTIVE entries.
	activeOnly := true
	if role, ok := c.Get("user_role"); ok {
		if roleStr, _ := role.(string); roleStr == "ADMIN" {
			activeOnly = false
		}
	}

	catalog, err := ctrl.service.GetCatalog(c.Request.Context(), destinationID, activeOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get ticket catalog", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket catalog retrieved successfully", catalog, nil)
}

// QuotePrice resolves the unit price a visit date would cost, letting the
// frontend show totals before the draft is confirmed.
func (ctrl *controller) QuotePrice(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destinationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid destination ID format", nil, nil)
		return
	}

	visitDate, err := time.Parse("2006-01-02", c.Query("visit_date"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "visit_date must be in YYYY-MM-DD format", nil, nil)
		return
	}

	price, err := ctrl.service.PriceFor(c.Request.Context(), destinationID, visitDate)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to resolve price", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price resolved successfully", gin.H{
		"destination_id": destinationID.String(),
		"visit_date":     visitDate.Format("2006-01-02"),
		"ticket_type":    TypeForDate(visitDate),
		"unit_price":     price,
	}, nil)
}

func (ctrl *controller) UpdateTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID format", nil, nil)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.UpdateTicket(c.Request.Context(), ticketID, req)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket updated successfully", ticket, nil)
}

func (ctrl *controller) DeleteTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID format", nil, nil)
		return
	}

	if err := ctrl.service.DeleteTicket(c.Request.Context(), ticketID); err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete ticket", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket deleted successfully", nil, nil)
}
