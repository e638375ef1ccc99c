package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"text/template"
	"time"

	"cinebook/pkg/logger"
)

// EmailService delivers a rendered booking notification.
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
}

const confirmationTemplate = `Hi {{.RecipientName}},

Your booking is confirmed.

  Reference: {{.BookingRef}}
  Movie:     {{.MovieTitle}}
  Screen:    {{.ScreenName}}
  Showtime:  {{.ShowDateTime.Format "Mon, 02 Jan 2006 15:04 MST"}}
  Seat:      {{.SeatNumber}}

Bookings can be cancelled up to 2 hours before the show starts.

CineBook
`

const cancellationTemplate = `Hi {{.RecipientName}},

Your booking {{.BookingRef}} for {{.MovieTitle}} on screen {{.ScreenName}} ({{.ShowDateTime.Format "Mon, 02 Jan 2006 15:04 MST"}}, seat {{.SeatNumber}}) has been cancelled.

The seat is now available to other customers.

CineBook
`

func renderBody(notification *EmailNotification) (string, error) {
	var text string
	switch notification.Type {
	case NotificationTypeBookingCancelled:
		text = cancellationTemplate
	default:
		text = confirmationTemplate
	}

	tmpl, err := template.New(string(notification.Type)).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, notification); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

// SMTPConfig holds SMTP configuration
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

// NewSMTPConfigFromEnv creates SMTP config from environment variables
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
		FromName:  "CineBook",
		UseTLS:    true,
		Timeout:   timeout,
	}
}

// NewEmailServiceFromEnv returns the SMTP service when a host is
// configured, otherwise the console service so local setups work
// without a mail server.
func NewEmailServiceFromEnv() EmailService {
	config := NewSMTPConfigFromEnv()
	if config.Host == "" {
		return NewConsoleEmailService()
	}
	return NewSMTPEmailService(config)
}

// SMTPEmailService delivers notifications over SMTP.
type SMTPEmailService struct {
	config *SMTPConfig
	log    *logger.Logger
}

func NewSMTPEmailService(config *SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		log:    logger.GetDefault(),
	}
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	body, err := renderBody(notification)
	if err != nil {
		return err
	}

	message := s.buildMessage(notification.RecipientEmail, notification.Subject, body)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, notification.RecipientEmail, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{notification.RecipientEmail}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.InfoContext(ctx, "email sent",
		"to", notification.RecipientEmail,
		"type", string(notification.Type),
		"booking_ref", notification.BookingRef,
	)
	return nil
}

func (s *SMTPEmailService) buildMessage(to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		ServerName: s.config.Host,
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

// ConsoleEmailService logs rendered emails instead of sending them.
type ConsoleEmailService struct {
	log *logger.Logger
}

func NewConsoleEmailService() *ConsoleEmailService {
	return &ConsoleEmailService{
		log: logger.GetDefault(),
	}
}

func (s *ConsoleEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	body, err := renderBody(notification)
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email (console)",
		"to", notification.RecipientEmail,
		"subject", notification.Subject,
		"body", body,
	)
	return nil
}
