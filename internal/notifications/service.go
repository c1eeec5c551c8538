package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"wisata/internal/shared/config"
)

// BookingEmail carries the booking facts an email needs, decoupled from
// the bookings package types.
type BookingEmail struct {
	BookingID       uuid.UUID
	DestinationID   uuid.UUID
	TransactionCode string
	CustomerName    string
	CustomerEmail   string
	DestinationName string
	VisitDate       string
	Quantity        int
	TotalAmount     float64
}

type NotificationService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	PublishBookingCreated(ctx context.Context, email BookingEmail) error
	PublishPaymentConfirmed(ctx context.Context, email BookingEmail) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type EmailNotificationService struct {
	cfg          *config.Config
	producer     NotificationProducer
	consumer     NotificationConsumer
	emailService EmailService

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewEmailNotificationService(cfg *config.Config) (NotificationService, error) {
	var emailService EmailService
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		smtpService, err := NewSMTPEmailService(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    true,
		})
		if err != nil {
			return nil, err
		}
		emailService = smtpService
	} else {
		log.Println("📧 SMTP not configured, using mock email service")
		emailService = NewMockEmailService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &EmailNotificationService{
		cfg:          cfg,
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (ens *EmailNotificationService) Start(ctx context.Context) error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if ens.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("🚀 Starting email notification service...")

	if err := ens.consumer.StartConsumers(ens.ctx, ens.cfg.Kafka.ConsumerWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	ens.isRunning = true
	log.Printf("✅ Email notification service started")
	return nil
}

func (ens *EmailNotificationService) Stop() error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if !ens.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("🛑 Stopping email notification service...")

	ens.cancel()

	if err := ens.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}
	if err := ens.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	ens.isRunning = false
	log.Printf("✅ Email notification service stopped")
	return nil
}

func (ens *EmailNotificationService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	return ens.producer.PublishNotification(ctx, notification)
}

func (ens *EmailNotificationService) PublishBookingCreated(ctx context.Context, email BookingEmail) error {
	notification := NewEmailNotification(NotificationTypeBookingCreated, email.CustomerEmail, email.CustomerName)
	notification.Subject = fmt.Sprintf("Booking received - %s", email.TransactionCode)
	notification.BookingID = &email.BookingID
	notification.DestinationID = &email.DestinationID
	notification.TransactionCode = email.TransactionCode
	notification.TemplateData = map[string]interface{}{
		"destination_name": email.DestinationName,
		"visit_date":       email.VisitDate,
		"quantity":         email.Quantity,
		"total_amount":     email.TotalAmount,
	}
	return ens.producer.PublishNotification(ctx, notification)
}

func (ens *EmailNotificationService) PublishPaymentConfirmed(ctx context.Context, email BookingEmail) error {
	notification := NewEmailNotification(NotificationTypePaymentConfirmed, email.CustomerEmail, email.CustomerName)
	notification.Subject = fmt.Sprintf("Payment confirmed - %s", email.TransactionCode)
	notification.BookingID = &email.BookingID
	notification.DestinationID = &email.DestinationID
	notification.TransactionCode = email.TransactionCode
	return ens.producer.PublishNotification(ctx, notification)
}

func (ens *EmailNotificationService) HealthCheck(ctx context.Context) error {
	ens.mu.RLock()
	isRunning := ens.isRunning
	ens.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := ens.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}
	if err := ens.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}
	return nil
}
