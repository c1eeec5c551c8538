package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wisata/internal/shared/utils/response"
)

type Controller interface {
	GetDashboard(c *gin.Context)
	GetOverview(c *gin.Context)
	GetDailyBookings(c *gin.Context)
	GetMonthlyIncome(c *gin.Context)
	GetTopDestinations(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboard(c *gin.Context) {
	dashboard, err := ctrl.service.GetDashboard(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get dashboard analytics", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get overview metrics", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Overview metrics retrieved successfully", overview, nil)
}

func (ctrl *controller) GetDailyBookings(c *gin.Context) {
	days := queryInt(c, "days", 30, 1, 365)

	stats, err := ctrl.service.GetDailyBookingStats(c.Request.Context(), days)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get daily booking stats", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Daily booking stats retrieved successfully", stats, nil)
}

func (ctrl *controller) GetMonthlyIncome(c *gin.Context) {
	months := queryInt(c, "months", 12, 1, 36)

	stats, err := ctrl.service.GetMonthlyIncome(c.Request.Context(), months)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get monthly income", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Monthly income retrieved successfully", stats, nil)
}

func (ctrl *controller) GetTopDestinations(c *gin.Context) {
	limit := queryInt(c, "limit", 5, 1, 50)

	performances, err := ctrl.service.GetTopDestinations(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get top destinations", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Top destinations retrieved successfully", performances, nil)
}

func queryInt(c *gin.Context, key string, def, min, max int) int {
	value, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil || value < min || value > max {
		return def
	}
	return value
}
