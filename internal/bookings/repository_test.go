package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return NewRepository(gdb), mock
}

func bookingRow(id, destinationID uuid.UUID, code string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "transaction_code", "customer_name", "customer_email", "customer_phone",
		"destination_id", "visit_date", "vehicle_type", "vehicle_count", "quantity",
		"unit_price", "total_amount", "bank_name", "bank_account_name", "bank_account_no",
		"payment_proof_url", "is_paid", "paid_at", "created_at", "updated_at",
	}).AddRow(
		id.String(), code, "Siti Rahma", "siti@example.com", "081234567890",
		destinationID.String(), time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), "car", 1, 2,
		15000.0, 30000.0, "BCA", "Siti Rahma", "1234567890",
		"https://files.wisata.id/proofs/transfer.jpg", false, nil, time.Now(), time.Now(),
	)
}

func TestGetByTransactionCodeLoadsVisitors(t *testing.T) {
	repo, mock := newMockRepository(t)
	bookingID := uuid.New()
	destinationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE transaction_code = \$1`).
		WithArgs("TRX-20260905-0042", 1).
		WillReturnRows(bookingRow(bookingID, destinationID, "TRX-20260905-0042"))
	mock.ExpectQuery(`SELECT \* FROM "visitors" WHERE "visitors"\."booking_id" = \$1`).
		WithArgs(bookingID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "name", "age", "email", "created_at"}).
			AddRow(uuid.NewString(), bookingID.String(), "Siti Rahma", 34, "siti@example.com", time.Now()).
			AddRow(uuid.NewString(), bookingID.String(), "Andi Rahma", 36, "", time.Now()))

	booking, err := repo.GetByTransactionCode(context.Background(), "TRX-20260905-0042")
	if err != nil {
		t.Fatalf("GetByTransactionCode returned error: %v", err)
	}
	if booking.TransactionCode != "TRX-20260905-0042" {
		t.Fatalf("transaction code = %s", booking.TransactionCode)
	}
	if len(booking.Visitors) != 2 {
		t.Fatalf("visitors = %d, want 2", len(booking.Visitors))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByTransactionCodeMissing(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE transaction_code = \$1`).
		WithArgs("TRX-20260905-9999", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByTransactionCode(context.Background(), "TRX-20260905-9999")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestSetPaymentStatusMissingBooking(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := repo.SetPaymentStatus(context.Background(), id, true)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
