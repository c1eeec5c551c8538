package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// NotificationProducer publishes notifications to the broker.
type NotificationProducer interface {
	PublishNotification(ctx context.Context, notification *EmailNotification) error
	PublishBatchNotifications(ctx context.Context, notifications []*EmailNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type KafkaProducerConfig struct {
	Brokers           []string
	NotificationTopic string
	RetryMax          int
	TimeoutMs         int
	RequiredAcks      sarama.RequiredAcks
	CompressionType   sarama.CompressionCodec
	IdempotentWrites  bool
	MaxMessageBytes   int
}

func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:           []string{"localhost:9092"},
		NotificationTopic: "notifications",
		RetryMax:          3,
		TimeoutMs:         10000,
		RequiredAcks:      sarama.WaitForAll,
		CompressionType:   sarama.CompressionSnappy,
		IdempotentWrites:  true,
		MaxMessageBytes:   1000000,
	}
}

type KafkaNotificationProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

func NewKafkaNotificationProducer(config *KafkaProducerConfig) (NotificationProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps every email for one recipient on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka notification producer created successfully")
	return &KafkaNotificationProducer{producer: producer, config: config}, nil
}

func (knp *KafkaNotificationProducer) PublishNotification(ctx context.Context, notification *EmailNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     knp.config.NotificationTopic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   knp.createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := knp.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	log.Printf("📤 Notification published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Recipient: %s",
		knp.config.NotificationTopic, partition, offset, notification.Type, notification.RecipientEmail)

	return nil
}

func (knp *KafkaNotificationProducer) PublishBatchNotifications(ctx context.Context, notifications []*EmailNotification) error {
	if len(notifications) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(notifications))
	for _, notification := range notifications {
		notification.Status = NotificationStatusQueued
		notification.UpdatedAt = time.Now()

		messageBytes, err := notification.ToJSON()
		if err != nil {
			log.Printf("Failed to marshal notification for %s: %v", notification.RecipientEmail, err)
			continue
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic:     knp.config.NotificationTopic,
			Key:       sarama.StringEncoder(notification.GetPartitionKey()),
			Value:     sarama.ByteEncoder(messageBytes),
			Headers:   knp.createHeaders(notification),
			Timestamp: notification.CreatedAt,
		})
	}

	if err := knp.producer.SendMessages(messages); err != nil {
		for _, notification := range notifications {
			notification.MarkFailed(err)
		}
		return fmt.Errorf("failed to send batch notifications to Kafka: %w", err)
	}

	log.Printf("📤 Batch of %d notifications published to topic: %s", len(messages), knp.config.NotificationTopic)
	return nil
}

func (knp *KafkaNotificationProducer) createHeaders(notification *EmailNotification) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		{Key: []byte("priority"), Value: []byte(notification.Priority)},
		{Key: []byte("recipient_email"), Value: []byte(notification.RecipientEmail)},
		{Key: []byte("producer"), Value: []byte("wisata-notifications")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}

	if notification.BookingID != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("booking_id"),
			Value: []byte(notification.BookingID.String()),
		})
	}
	if notification.TransactionCode != "" {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("transaction_code"),
			Value: []byte(notification.TransactionCode),
		})
	}

	return headers
}

func (knp *KafkaNotificationProducer) Close() error {
	if knp.producer != nil {
		if err := knp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka notification producer closed")
	}
	return nil
}

func (knp *KafkaNotificationProducer) HealthCheck(ctx context.Context) error {
	if knp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if knp.config.NotificationTopic == "" {
		return fmt.Errorf("health check failed - notification topic not configured")
	}
	return nil
}
