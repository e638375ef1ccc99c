package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// EmailNotification is the message published to the notifications topic
// for every booking confirmation or cancellation.
type EmailNotification struct {
	ID     uuid.UUID          `json:"id"`
	Type   NotificationType   `json:"type"`
	Status NotificationStatus `json:"status"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	Subject        string `json:"subject"`

	// Booking context
	BookingRef   string    `json:"booking_ref"`
	MovieTitle   string    `json:"movie_title"`
	ScreenName   string    `json:"screen_name"`
	ShowDateTime time.Time `json:"show_date_time"`
	SeatNumber   int       `json:"seat_number"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	LastError *string    `json:"last_error,omitempty"`
}

func (n *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// GetPartitionKey keeps all messages for one recipient on the same
// partition so they are delivered in order.
func (n *EmailNotification) GetPartitionKey() string {
	return n.RecipientEmail
}

func (n *EmailNotification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *EmailNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	errStr := err.Error()
	n.LastError = &errStr
	n.UpdatedAt = time.Now()
}

func subjectFor(notificationType NotificationType, movieTitle string) string {
	switch notificationType {
	case NotificationTypeBookingConfirmed:
		if movieTitle != "" {
			return fmt.Sprintf("Booking Confirmed: %s", movieTitle)
		}
		return "Your booking is confirmed"
	case NotificationTypeBookingCancelled:
		if movieTitle != "" {
			return fmt.Sprintf("Booking Cancelled: %s", movieTitle)
		}
		return "Your booking has been cancelled"
	default:
		return "Notification from CineBook"
	}
}
