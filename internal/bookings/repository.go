package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateCode reports a transaction code collision so the service
// can regenerate and retry.
var ErrDuplicateCode = errors.New("transaction code already exists")

type Repository interface {
	// CreateWithVisitors inserts the booking and all of its visitor rows
	// in one transaction so a failure never leaves an orphaned booking.
	CreateWithVisitors(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByTransactionCode(ctx context.Context, code string) (*Booking, error)
	List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, isPaid bool) (*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithVisitors(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Visitors").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByTransactionCode(ctx context.Context, code string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Visitors").First(&booking, "transaction_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	db := r.db.WithContext(ctx).Model(&Booking{})
	if query.IsPaid != nil {
		db = db.Where("is_paid = ?", *query.IsPaid)
	}
	if query.DestinationID != "" {
		db = db.Where("destination_id = ?", query.DestinationID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Preload("Visitors").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) SetPaymentStatus(ctx context.Context, id uuid.UUID, isPaid bool) (*Booking, error) {
	updates := map[string]interface{}{"is_paid": isPaid}
	if isPaid {
		updates["paid_at"] = gorm.Expr("NOW()")
	} else {
		updates["paid_at"] = nil
	}

	result := r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
