package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusLifecycle(t *testing.T) {
	tests := []struct {
		status     Status
		valid      bool
		active     bool
		terminal   bool
		cancelable bool
	}{
		{StatusBooked, true, true, false, true},
		{StatusCancelled, true, false, true, false},
		{StatusExpired, true, false, true, false},
		{Status("pending"), false, false, false, false},
		{Status(""), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.cancelable, tt.status.CanBeCancelled())
		})
	}
}

func TestBookingCancel(t *testing.T) {
	booking := &Booking{Status: StatusBooked}
	now := time.Now()

	booking.Cancel(now)

	assert.Equal(t, StatusCancelled, booking.Status)
	assert.NotNil(t, booking.CancelledAt)
	assert.Equal(t, now, *booking.CancelledAt)
	assert.False(t, booking.IsActive())
}
