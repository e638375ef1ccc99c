package shows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowDeadlines(t *testing.T) {
	start := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)
	show := &Show{DateTime: start, TotalSeats: 100}

	assert.Equal(t, start.Add(-30*time.Minute), show.BookingDeadline())
	assert.Equal(t, start.Add(-2*time.Hour), show.CancellationDeadline())
}

func TestShowHasStarted(t *testing.T) {
	start := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)
	show := &Show{DateTime: start}

	assert.False(t, show.HasStarted(start.Add(-time.Second)))
	assert.True(t, show.HasStarted(start), "start instant counts as started")
	assert.True(t, show.HasStarted(start.Add(time.Second)))
}

func TestShowIsValidSeat(t *testing.T) {
	show := &Show{TotalSeats: 60}

	assert.False(t, show.IsValidSeat(0))
	assert.False(t, show.IsValidSeat(-3))
	assert.True(t, show.IsValidSeat(1))
	assert.True(t, show.IsValidSeat(60))
	assert.False(t, show.IsValidSeat(61))
}

func TestShowToResponse(t *testing.T) {
	start := time.Now().Add(6 * time.Hour)
	show := &Show{DateTime: start, TotalSeats: 80, ScreenName: "Screen 2", Price: 400}

	resp := show.ToResponse(time.Now())

	assert.Equal(t, "upcoming", resp.ShowStatus)
	assert.Equal(t, 80, resp.TotalSeats)
	assert.Equal(t, start.Add(-BookingCutoff), resp.BookingDeadline)
	assert.Equal(t, start.Add(-CancellationCutoff), resp.CancelDeadline)

	past := &Show{DateTime: time.Now().Add(-time.Hour), TotalSeats: 80}
	assert.Equal(t, "started", past.ToResponse(time.Now()).ShowStatus)
}
