package destinations

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string            `json:"name" gorm:"not null;size:255"`
	Slug        string            `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Description string            `json:"description" gorm:"type:text"`
	Location    string            `json:"location" gorm:"not null;size:255"`
	ImageURL    string            `json:"image_url" gorm:"size:500"`
	Status      DestinationStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Destination) TableName() string {
	return "destinations"
}

type DestinationResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	ImageURL    string            `json:"image_url"`
	Status      DestinationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (d *Destination) ToResponse() DestinationResponse {
	return DestinationResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Location:    d.Location,
		ImageURL:    d.ImageURL,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type CreateDestinationRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Location    string `json:"location" binding:"required,min=3,max=255"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

type UpdateDestinationRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Location    *string `json:"location" binding:"omitempty,min=3,max=255"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type DestinationListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=draft published archived"`
}

type PaginatedDestinations struct {
	Destinations []DestinationResponse `json:"destinations"`
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}
