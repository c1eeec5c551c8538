package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationTypePaymentConfirmed NotificationType = "PAYMENT_CONFIRMED"
	NotificationTypeComplaintReplied NotificationType = "COMPLAINT_REPLIED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusExpired  NotificationStatus = "EXPIRED"
)

// EmailNotification is the message shape carried through Kafka to the
// email workers. Recipients are booking customers, not accounts, so the
// partition key is the recipient email.
type EmailNotification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID       *uuid.UUID `json:"booking_id,omitempty"`
	DestinationID   *uuid.UUID `json:"destination_id,omitempty"`
	TransactionCode string     `json:"transaction_code,omitempty"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

func NewEmailNotification(notType NotificationType, email, name string) *EmailNotification {
	return &EmailNotification{
		ID:             uuid.New(),
		Type:           notType,
		Priority:       GetDefaultPriority(notType),
		RecipientEmail: email,
		RecipientName:  name,
		Status:         NotificationStatusPending,
		MaxRetries:     3,
		TemplateData:   make(map[string]interface{}),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypePaymentConfirmed:
		return NotificationPriorityHigh
	case NotificationTypeBookingCreated:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityLow
	}
}

func (en *EmailNotification) GetPartitionKey() string {
	return en.RecipientEmail
}

func (en *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(en)
}

func (en *EmailNotification) IsExpired() bool {
	return en.ExpiresAt != nil && time.Now().After(*en.ExpiresAt)
}

func (en *EmailNotification) ShouldRetry() bool {
	return en.RetryCount < en.MaxRetries &&
		en.Status == NotificationStatusFailed &&
		!en.IsExpired()
}

func (en *EmailNotification) MarkSent() {
	now := time.Now()
	en.Status = NotificationStatusSent
	en.SentAt = &now
	en.UpdatedAt = now
}

func (en *EmailNotification) MarkFailed(err error) {
	en.Status = NotificationStatusFailed
	en.UpdatedAt = time.Now()

	errorStr := err.Error()
	en.LastError = &errorStr
}
