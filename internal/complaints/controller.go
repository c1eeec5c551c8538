package complaints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wisata/internal/shared/utils/response"
)

type Controller interface {
	CreateComplaint(c *gin.Context)
	GetComplaint(c *gin.Context)
	ListComplaints(c *gin.Context)
	ResolveComplaint(c *gin.Context)
	DeleteComplaint(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	complaint, err := ctrl.service.CreateComplaint(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Complaint submitted successfully", complaint, nil)
}

func (ctrl *controller) GetComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("complaintId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid complaint ID format", nil, nil)
		return
	}

	complaint, err := ctrl.service.GetComplaint(c.Request.Context(), complaintID)
	if err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get complaint", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Complaint retrieved successfully", complaint, nil)
}

func (ctrl *controller) ListComplaints(c *gin.Context) {
	var query ComplaintListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	complaints, err := ctrl.service.ListComplaints(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list complaints", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Complaints retrieved successfully", complaints, nil)
}

func (ctrl *controller) ResolveComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("complaintId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid complaint ID format", nil, nil)
		return
	}

	var req ResolveComplaintRequest
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

	complaint, err := ctrl.service.ResolveComplaint(c.Request.Context(), complaintID, adminUUID, req)
	if err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to resolve complaint", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Complaint resolved successfully", complaint, nil)
}

func (ctrl *controller) DeleteComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("complaintId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid complaint ID format", nil, nil)
		return
	}

	if err := ctrl.service.DeleteComplaint(c.Request.Context(), complaintID); err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete complaint", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Complaint deleted successfully", nil, nil)
}
