package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wisata/internal/bookings"
	"wisata/internal/shared/utils/response"
)

type Controller interface {
	DownloadETicket(c *gin.Context)
	DownloadInvoice(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) DownloadETicket(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID format", nil, nil)
		return
	}

	pdfBytes, filename, err := ctrl.service.GenerateETicket(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrBookingNotPaid):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to generate e-ticket", nil, nil)
		}
		return
	}

	serveAttachment(c, pdfBytes, filename)
}

func (ctrl *controller) DownloadInvoice(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID format", nil, nil)
		return
	}

	pdfBytes, filename, err := ctrl.service.GenerateInvoice(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to generate invoice", nil, nil)
		return
	}

	serveAttachment(c, pdfBytes, filename)
}

func serveAttachment(c *gin.Context, pdfBytes []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
