package main

import (
	"fmt"
	"log"
	"time"

	"wisata/internal/bookings"
	"wisata/internal/complaints"
	"wisata/internal/destinations"
	"wisata/internal/shared/config"
	"wisata/internal/shared/database"
	"wisata/internal/tickets"
	"wisata/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB

	destinationIDs map[string]uuid.UUID
}

func main() {
	fmt.Println("🌱 Starting Wisata Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:             db,
		destinationIDs: make(map[string]uuid.UUID),
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"visitors",
		"bookings",
		"complaints",
		"tickets",
		"destinations",
		"users",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedDestinations(); err != nil {
		return fmt.Errorf("failed to seed destinations: %w", err)
	}
	if err := s.seedTickets(); err != nil {
		return fmt.Errorf("failed to seed tickets: %w", err)
	}
	if err := s.seedBookings(); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}
	if err := s.seedComplaints(); err != nil {
		return fmt.Errorf("failed to seed complaints: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	fmt.Println("  👤 Seeding users...")

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{
			Email:    "admin@wisata.id",
			Password: string(adminHash),
			Name:     "Site Admin",
			Role:     users.RoleAdmin,
		},
		{
			Email:    "budi@example.com",
			Password: string(userHash),
			Name:     "Budi Santoso",
			Phone:    "081234567890",
			Role:     users.RoleUser,
		},
	}

	for i := range seedUsers {
		if err := s.db.GetPostgreSQL().Create(&seedUsers[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("     Created %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedDestinations() error {
	fmt.Println("  🏝️  Seeding destinations...")

	seedDestinations := []destinations.Destination{
		{
			Name:        "Pantai Pasir Putih",
			Slug:        "pantai-pasir-putih",
			Description: "White sand beach with calm water, ideal for families.",
			Location:    "Situbondo, Jawa Timur",
			Status:      destinations.StatusPublished,
		},
		{
			Name:        "Kawah Ijen",
			Slug:        "kawah-ijen",
			Description: "Crater lake famous for its blue fire at dawn.",
			Location:    "Banyuwangi, Jawa Timur",
			Status:      destinations.StatusPublished,
		},
		{
			Name:        "Taman Nasional Baluran",
			Slug:        "taman-nasional-baluran",
			Description: "Savanna landscape and wildlife viewing.",
			Location:    "Situbondo, Jawa Timur",
			Status:      destinations.StatusDraft,
		},
	}

	for i := range seedDestinations {
		if err := s.db.GetPostgreSQL().Create(&seedDestinations[i]).Error; err != nil {
			return err
		}
		s.destinationIDs[seedDestinations[i].Slug] = seedDestinations[i].ID
	}
	fmt.Printf("     Created %d destinations\n", len(seedDestinations))
	return nil
}

func (s *Seeder) seedTickets() error {
	fmt.Println("  🎟️  Seeding tickets...")

	type ticketSpec struct {
		slug  string
		name  string
		tType tickets.TicketType
		price float64
		quota int
	}

	specs := []ticketSpec{
		{"pantai-pasir-putih", "Weekday Admission", tickets.TypeWeekday, 10000, 500},
		{"pantai-pasir-putih", "Weekend Admission", tickets.TypeWeekend, 15000, 800},
		{"kawah-ijen", "Weekday Admission", tickets.TypeWeekday, 25000, 300},
		{"kawah-ijen", "Weekend Admission", tickets.TypeWeekend, 35000, 400},
		{"kawah-ijen", "Holiday Admission", tickets.TypeHoliday, 50000, 400},
	}

	count := 0
	for _, spec := range specs {
		destinationID, ok := s.destinationIDs[spec.slug]
		if !ok {
			continue
		}
		ticket := tickets.Ticket{
			DestinationID: destinationID,
			Name:          spec.name,
			Type:          spec.tType,
			Price:         spec.price,
			QuotaPerDay:   spec.quota,
			Status:        tickets.StatusActive,
		}
		if err := s.db.GetPostgreSQL().Create(&ticket).Error; err != nil {
			return err
		}
		count++
	}
	fmt.Printf("     Created %d tickets\n", count)
	return nil
}

func (s *Seeder) seedBookings() error {
	fmt.Println("  📒 Seeding bookings...")

	beachID, ok := s.destinationIDs["pantai-pasir-putih"]
	if !ok {
		return fmt.Errorf("missing seeded destination")
	}

	now := time.Now()
	paidAt := now.Add(-24 * time.Hour)

	seedBookings := []bookings.Booking{
		{
			TransactionCode: fmt.Sprintf("TRX-%s-0101", now.AddDate(0, 0, -3).Format("20060102")),
			CustomerName:    "Siti Rahma",
			CustomerEmail:   "siti@example.com",
			CustomerPhone:   "081234567890",
			DestinationID:   beachID,
			VisitDate:       now.AddDate(0, 0, 2),
			VehicleType:     "car",
			VehicleCount:    1,
			Quantity:        3,
			UnitPrice:       15000,
			TotalAmount:     45000,
			BankName:        "BCA",
			BankAccountName: "Siti Rahma",
			BankAccountNo:   "1234567890",
			PaymentProofURL: "https://files.wisata.id/proofs/siti-transfer.jpg",
			IsPaid:          true,
			PaidAt:          &paidAt,
			Visitors: []bookings.Visitor{
				{Name: "Siti Rahma", Age: 34, Email: "siti@example.com"},
				{Name: "Andi Rahma", Age: 36},
				{Name: "Dewi Rahma", Age: 8},
			},
		},
		{
			TransactionCode: fmt.Sprintf("TRX-%s-0202", now.Format("20060102")),
			CustomerName:    "Budi Santoso",
			CustomerEmail:   "budi@example.com",
			CustomerPhone:   "081298765432",
			DestinationID:   beachID,
			VisitDate:       now.AddDate(0, 0, 7),
			Quantity:        2,
			UnitPrice:       10000,
			TotalAmount:     20000,
			BankName:        "Mandiri",
			BankAccountName: "Budi Santoso",
			BankAccountNo:   "9876543210",
			PaymentProofURL: "https://files.wisata.id/proofs/budi-transfer.jpg",
			IsPaid:          false,
			Visitors: []bookings.Visitor{
				{Name: "Budi Santoso", Age: 29, Email: "budi@example.com"},
				{Name: "Rina Santoso", Age: 27},
			},
		},
	}

	for i := range seedBookings {
		if err := s.db.GetPostgreSQL().Create(&seedBookings[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("     Created %d bookings\n", len(seedBookings))
	return nil
}

func (s *Seeder) seedComplaints() error {
	fmt.Println("  📮 Seeding complaints...")

	beachID := s.destinationIDs["pantai-pasir-putih"]
	complaint := complaints.Complaint{
		Name:          "Agus Wijaya",
		Email:         "agus@example.com",
		Subject:       "Parking area condition",
		Message:       "The parking area near the beach entrance was muddy after the rain and hard to use with a sedan.",
		DestinationID: &beachID,
		Status:        complaints.StatusOpen,
	}

	if err := s.db.GetPostgreSQL().Create(&complaint).Error; err != nil {
		return err
	}
	fmt.Println("     Created 1 complaint")
	return nil
}
