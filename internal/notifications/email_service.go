package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"
	"time"
)

// EmailService renders and delivers notification emails.
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

func NewSMTPConfigFromEnv() *SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	timeout, _ := time.ParseDuration(os.Getenv("SMTP_TIMEOUT"))
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      port,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("FROM_EMAIL"),
		FromName:  "Wisata",
		UseTLS:    true,
		Timeout:   timeout,
	}
}

type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	return &SMTPEmailService{config: config}, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [SMTP] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)

	htmlBody, textBody := generateContent(notification)
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS upgrades a plain connection to TLS before
// authenticating, which is what most providers expect on port 587.
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

func generateContent(notification *EmailNotification) (string, string) {
	data := notification.TemplateData

	switch notification.Type {
	case NotificationTypeBookingCreated:
		htmlBody := fmt.Sprintf(`
			<h2>Booking Received</h2>
			<p>Hi %s,</p>
			<p>We received your booking for <strong>%v</strong> on <strong>%v</strong>.</p>
			<p>Transaction Code: <strong>%s</strong></p>
			<p>Visitors: %v</p>
			<p>Total Amount: Rp %v</p>
			<p>We will confirm your payment once the transfer proof has been reviewed.</p>
			<p>Best regards,<br>Wisata Team</p>
		`,
			notification.RecipientName,
			data["destination_name"],
			data["visit_date"],
			notification.TransactionCode,
			data["quantity"],
			data["total_amount"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nWe received your booking for %v on %v.\nTransaction Code: %s\nVisitors: %v\nTotal Amount: Rp %v\n\nWe will confirm your payment once the transfer proof has been reviewed.\n\nBest regards,\nWisata Team",
			notification.RecipientName,
			data["destination_name"],
			data["visit_date"],
			notification.TransactionCode,
			data["quantity"],
			data["total_amount"],
		)

		return htmlBody, textBody

	case NotificationTypePaymentConfirmed:
		htmlBody := fmt.Sprintf(`
			<h2>Payment Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your payment for booking <strong>%s</strong> has been confirmed.</p>
			<p>Show your transaction code at the entrance on your visit date.</p>
			<p>Best regards,<br>Wisata Team</p>
		`,
			notification.RecipientName,
			notification.TransactionCode,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour payment for booking %s has been confirmed.\nShow your transaction code at the entrance on your visit date.\n\nBest regards,\nWisata Team",
			notification.RecipientName,
			notification.TransactionCode,
		)

		return htmlBody, textBody

	case NotificationTypeComplaintReplied:
		htmlBody := fmt.Sprintf(`
			<h2>We replied to your complaint</h2>
			<p>Hi %s,</p>
			<p>%v</p>
			<p>Best regards,<br>Wisata Team</p>
		`,
			notification.RecipientName,
			data["reply"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\n%v\n\nBest regards,\nWisata Team",
			notification.RecipientName,
			data["reply"],
		)

		return htmlBody, textBody

	default:
		htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>This is a notification from Wisata.</p>
			<p>Best regards,<br>Wisata Team</p>
		`,
			notification.Subject,
			notification.RecipientName,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThis is a notification from Wisata.\n\nBest regards,\nWisata Team",
			notification.RecipientName,
		)

		return htmlBody, textBody
	}
}

// MockEmailService logs instead of sending, for local development
// without SMTP credentials.
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [MOCK] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	return nil
}
