package complaints

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	StatusOpen     ComplaintStatus = "OPEN"
	StatusResolved ComplaintStatus = "RESOLVED"
)

func (s ComplaintStatus) IsValid() bool {
	return s == StatusOpen || s == StatusResolved
}

// Complaint is visitor feedback submitted from the public site and
// handled by admins.
type Complaint struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string          `json:"name" gorm:"not null;size:255"`
	Email         string          `json:"email" gorm:"not null;size:255"`
	Subject       string          `json:"subject" gorm:"not null;size:255"`
	Message       string          `json:"message" gorm:"not null;type:text"`
	DestinationID *uuid.UUID      `json:"destination_id" gorm:"type:uuid;index"`
	Status        ComplaintStatus `json:"status" gorm:"type:varchar(20);default:'OPEN'"`
	AdminReply    string          `json:"admin_reply" gorm:"type:text"`
	RepliedBy     *uuid.UUID      `json:"replied_by" gorm:"type:uuid"`
	RepliedAt     *time.Time      `json:"replied_at"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Complaint) TableName() string {
	return "complaints"
}

type CreateComplaintRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Subject       string `json:"subject" binding:"required,min=3,max=255"`
	Message       string `json:"message" binding:"required,min=10"`
	DestinationID string `json:"destination_id" binding:"omitempty,uuid"`
}

type ResolveComplaintRequest struct {
	Reply string `json:"reply" binding:"required,min=3"`
}

type ComplaintListQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=OPEN RESOLVED"`
}

type ComplaintResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Subject       string          `json:"subject"`
	Message       string          `json:"message"`
	DestinationID string          `json:"destination_id,omitempty"`
	Status        ComplaintStatus `json:"status"`
	AdminReply    string          `json:"admin_reply,omitempty"`
	RepliedAt     *time.Time      `json:"replied_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (cp *Complaint) ToResponse() ComplaintResponse {
	resp := ComplaintResponse{
		ID:         cp.ID.String(),
		Name:       cp.Name,
		Email:      cp.Email,
		Subject:    cp.Subject,
		Message:    cp.Message,
		Status:     cp.Status,
		AdminReply: cp.AdminReply,
		RepliedAt:  cp.RepliedAt,
		CreatedAt:  cp.CreatedAt,
	}
	if cp.DestinationID != nil {
		resp.DestinationID = cp.DestinationID.String()
	}
	return resp
}

type PaginatedComplaints struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}
