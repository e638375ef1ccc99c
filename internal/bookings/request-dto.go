package bookings

type BookSeatRequest struct {
	SeatNumber int `json:"seat_number" binding:"required,min=1"`
}
