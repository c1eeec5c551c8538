package tickets

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a priced admission product for a destination, differentiated
// by weekday/weekend/holiday type.
type Ticket struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	DestinationID uuid.UUID    `json:"destination_id" gorm:"type:uuid;index;not null"`
	Name          string       `json:"name" gorm:"not null;size:255"`
	Type          TicketType   `json:"type" gorm:"type:varchar(20);not null"`
	Price         float64      `json:"price" gorm:"not null;check:price >= 0"`
	QuotaPerDay   int          `json:"quota_per_day" gorm:"not null;default:0;check:quota_per_day >= 0"`
	Status        TicketStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type TicketResponse struct {
	ID            string       `json:"id"`
	DestinationID string       `json:"destination_id"`
	Name          string       `json:"name"`
	Type          TicketType   `json:"type"`
	Price         float64      `json:"price"`
	QuotaPerDay   int          `json:"quota_per_day"`
	Status        TicketStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (t *Ticket) ToResponse() TicketResponse {
	return TicketResponse{
		ID:            t.ID.String(),
		DestinationID: t.DestinationID.String(),
		Name:          t.Name,
		Type:          t.Type,
		Price:         t.Price,
		QuotaPerDay:   t.QuotaPerDay,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

type CreateTicketRequest struct {
	DestinationID string  `json:"destination_id" binding:"required,uuid"`
	Name          string  `json:"name" binding:"required,min=3,max=255"`
	Type          string  `json:"type" binding:"required,oneof=WEEKDAY WEEKEND HOLIDAY"`
	Price         float64 `json:"price" binding:"min=0"`
	QuotaPerDay   int     `json:"quota_per_day" binding:"min=0"`
}

type UpdateTicketRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=3,max=255"`
	Type        *string  `json:"type" binding:"omitempty,oneof=WEEKDAY WEEKEND HOLIDAY"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	QuotaPerDay *int     `json:"quota_per_day" binding:"omitempty,min=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}
