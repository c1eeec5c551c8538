package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints the schema relies on for
// correctness under concurrent writes.
func MigrateConstraints(db *gorm.DB) error {
	// Transaction codes are probabilistically unique only at generation time;
	// the unique index is what actually guarantees the invariant. The booking
	// repository retries with a fresh code on a conflict here.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_transaction_code
		ON bookings (transaction_code);
	`).Error
	if err != nil {
		return err
	}

	// Visitor manifests are always read through their booking.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_visitors_booking_id
		ON visitors (booking_id);
	`).Error
	if err != nil {
		return err
	}

	// Settlement dashboards filter on is_paid constantly.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_is_paid_created_at
		ON bookings (is_paid, created_at);
	`).Error
	if err != nil {
		return err
	}

	// One catalog entry per destination and ticket type keeps the pricing
	// resolver deterministic.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_destination_type
		ON tickets (destination_id, type) WHERE status = 'ACTIVE';
	`).Error
	if err != nil {
		return err
	}

	return nil
}
