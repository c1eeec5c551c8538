package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a confirmed ticket purchase awaiting or holding manual
// payment settlement. Mutated only by the admin payment flip.
type Booking struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TransactionCode string    `json:"transaction_code" gorm:"uniqueIndex;not null;size:20"`
	CustomerName    string    `json:"customer_name" gorm:"not null;size:255"`
	CustomerEmail   string    `json:"customer_email" gorm:"not null;size:255"`
	CustomerPhone   string    `json:"customer_phone" gorm:"not null;size:30"`
	DestinationID   uuid.UUID `json:"destination_id" gorm:"type:uuid;index;not null"`
	VisitDate       time.Time `json:"visit_date" gorm:"type:date;not null"`
	VehicleType     string    `json:"vehicle_type" gorm:"size:50"`
	VehicleCount    int       `json:"vehicle_count" gorm:"default:0"`
	Quantity        int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice       float64   `json:"unit_price" gorm:"not null"`
	TotalAmount     float64   `json:"total_amount" gorm:"not null"`
	BankName        string    `json:"bank_name" gorm:"size:100"`
	BankAccountName string    `json:"bank_account_name" gorm:"size:255"`
	BankAccountNo   string    `json:"bank_account_number" gorm:"size:50"`
	PaymentProofURL string    `json:"payment_proof_url" gorm:"size:512"`
	IsPaid          bool      `json:"is_paid" gorm:"not null;default:false"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Visitors []Visitor `json:"visitors" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Visitor is one named guest on a booking, created atomically with it.
type Visitor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Age       int       `json:"age" gorm:"not null;check:age >= 0"`
	Email     string    `json:"email" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Visitor) TableName() string {
	return "visitors"
}

// BookingDraft is the pre-payment booking state held in Redis against the
// browser session. It never touches the database.
type BookingDraft struct {
	DestinationID string         `json:"destination_id"`
	VisitDate     string         `json:"visit_date"`
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
	CustomerPhone string         `json:"customer_phone"`
	VehicleType   string         `json:"vehicle_type"`
	VehicleCount  int            `json:"vehicle_count"`
	Visitors      []VisitorInput `json:"visitors"`
	UnitPrice     float64        `json:"unit_price"`
	TotalAmount   float64        `json:"total_amount"`
	CreatedAt     time.Time      `json:"created_at"`
}

type VisitorInput struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Age   int    `json:"age" binding:"min=0,max=150"`
	Email string `json:"email" binding:"omitempty,email"`
}

type StoreDraftRequest struct {
	DestinationID string         `json:"destination_id" binding:"required,uuid"`
	VisitDate     string         `json:"visit_date" binding:"required,datetime=2006-01-02"`
	CustomerName  string         `json:"customer_name" binding:"required,min=2,max=255"`
	CustomerEmail string         `json:"customer_email" binding:"required,email"`
	CustomerPhone string         `json:"customer_phone" binding:"required,min=6,max=30"`
	VehicleType   string         `json:"vehicle_type" binding:"omitempty,max=50"`
	VehicleCount  int            `json:"vehicle_count" binding:"min=0"`
	Visitors      []VisitorInput `json:"visitors" binding:"required,min=1,dive"`
	UnitPrice     float64        `json:"unit_price" binding:"min=0"`
	TotalAmount   float64        `json:"total_amount" binding:"min=0"`
}

type ConfirmBookingRequest struct {
	BankName        string `json:"bank_name" binding:"required,min=2,max=100"`
	BankAccountName string `json:"bank_account_name" binding:"required,min=2,max=255"`
	BankAccountNo   string `json:"bank_account_number" binding:"required,min=4,max=50"`
	PaymentProofURL string `json:"payment_proof_url" binding:"required,url"`
}

type SettlePaymentRequest struct {
	IsPaid bool `json:"is_paid"`
}

type BookingListQuery struct {
	Page          int    `form:"page,default=1" binding:"min=1"`
	Limit         int    `form:"limit,default=20" binding:"min=1,max=100"`
	IsPaid        *bool  `form:"is_paid"`
	DestinationID string `form:"destination_id" binding:"omitempty,uuid"`
}

type VisitorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID              string            `json:"id"`
	TransactionCode string            `json:"transaction_code"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	DestinationID   string            `json:"destination_id"`
	VisitDate       string            `json:"visit_date"`
	VehicleType     string            `json:"vehicle_type"`
	VehicleCount    int               `json:"vehicle_count"`
	Quantity        int               `json:"quantity"`
	UnitPrice       float64           `json:"unit_price"`
	TotalAmount     float64           `json:"total_amount"`
	BankName        string            `json:"bank_name"`
	BankAccountName string            `json:"bank_account_name"`
	BankAccountNo   string            `json:"bank_account_number"`
	PaymentProofURL string            `json:"payment_proof_url"`
	IsPaid          bool              `json:"is_paid"`
	PaidAt          *time.Time        `json:"paid_at"`
	CreatedAt       time.Time         `json:"created_at"`
	Visitors        []VisitorResponse `json:"visitors"`
}

func (b *Booking) ToResponse() BookingResponse {
	visitors := make([]VisitorResponse, 0, len(b.Visitors))
	for i := range b.Visitors {
		v := &b.Visitors[i]
		visitors = append(visitors, VisitorResponse{
			ID:    v.ID.String(),
			Name:  v.Name,
			Age:   v.Age,
			Email: v.Email,
		})
	}
	return BookingResponse{
		ID:              b.ID.String(),
		TransactionCode: b.TransactionCode,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		DestinationID:   b.DestinationID.String(),
		VisitDate:       b.VisitDate.Format("2006-01-02"),
		VehicleType:     b.VehicleType,
		VehicleCount:    b.VehicleCount,
		Quantity:        b.Quantity,
		UnitPrice:       b.UnitPrice,
		TotalAmount:     b.TotalAmount,
		BankName:        b.BankName,
		BankAccountName: b.BankAccountName,
		BankAccountNo:   b.BankAccountNo,
		PaymentProofURL: b.PaymentProofURL,
		IsPaid:          b.IsPaid,
		PaidAt:          b.PaidAt,
		CreatedAt:       b.CreatedAt,
		Visitors:        visitors,
	}
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
