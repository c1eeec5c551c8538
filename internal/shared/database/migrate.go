package database

import (
	"wisata/internal/bookings"
	"wisata/internal/complaints"
	"wisata/internal/destinations"
	"wisata/internal/tickets"
	"wisata/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&destinations.Destination{},
		&tickets.Ticket{},
		&bookings.Booking{},
		&bookings.Visitor{},
		&complaints.Complaint{},
	)
}
