package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints that enforce booking
// correctness under concurrency. The partial unique index on active
// bookings is the single source of truth for seat exclusivity: two
// transactions inserting the same (show_id, seat_number) cannot both
// commit, whatever the application layer saw when it checked.
func MigrateConstraints(db *gorm.DB) error {
	// One active booking per seat per show. Cancelled and expired rows
	// fall outside the predicate, so a freed seat is immediately
	// insertable again.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_booking_per_seat
		ON bookings (show_id, seat_number)
		WHERE status = 'booked';
	`).Error
	if err != nil {
		return err
	}

	// No two shows on the same screen at the same time.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_show_screen_datetime
		ON shows (screen_name, date_time);
	`).Error
	if err != nil {
		return err
	}

	// Availability reads scan active bookings per show.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_show_status
		ON bookings (show_id, status);
	`).Error
	if err != nil {
		return err
	}

	// The expiry sweep and per-user listings filter on these.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_id
		ON bookings (user_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
