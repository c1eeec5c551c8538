package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wisata/internal/shared/middleware"
	"wisata/internal/shared/utils/response"
)

type Controller interface {
	StoreDraft(c *gin.Context)
	GetDraft(c *gin.Context)
	ConfirmBooking(c *gin.Context)

	GetBooking(c *gin.Context)
	GetBookingByCode(c *gin.Context)
	ListBookings(c *gin.Context)
	SettlePayment(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) StoreDraft(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking session not established", nil, nil)
		return
	}

	var req StoreDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	draft, err := ctrl.service.StoreDraft(c.Request.Context(), sessionID, req)
	if err != nil {
		if errors.Is(err, ErrDestinationNotBookable) || errors.Is(err, ErrInvalidVisitDate) {
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking draft stored successfully", draft, nil)
}

func (ctrl *controller) GetDraft(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking session not established", nil, nil)
		return
	}

	draft, err := ctrl.service.GetDraft(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get booking draft", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking draft retrieved successfully", draft, nil)
}

func (ctrl *controller) ConfirmBooking(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking session not established", nil, nil)
		return
	}

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.ConfirmBooking(c.Request.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDraftNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrTotalMismatch):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
		case errors.Is(err, ErrCodeGeneration):
			response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID format", nil, nil)
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get booking", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) GetBookingByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Transaction code is required", nil, nil)
		return
	}

	booking, err := ctrl.service.GetBookingByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get booking", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) ListBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, err := ctrl.service.ListBookings(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (ctrl *controller) SettlePayment(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID format", nil, nil)
		return
	}

	var req SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID := ""
	if id, exists := c.Get("user_id"); exists {
		adminID, _ = id.(string)
	}

	booking, err := ctrl.service.SettlePayment(c.Request.Context(), bookingID, req.IsPaid, adminID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update payment status", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment status updated successfully", booking, nil)
}
