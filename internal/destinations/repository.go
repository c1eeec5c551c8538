package destinations

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, destination *Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*Destination, error)
	GetBySlug(ctx context.Context, slug string) (*Destination, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query DestinationListQuery) ([]Destination, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, destination *Destination) error {
	return r.db.WithContext(ctx).Create(destination).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Destination, error) {
	var destination Destination
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&destination).Error
	if err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Destination, error) {
	var destination Destination
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&destination).Error
	if err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Destination, error) {
	var destination Destination

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&destination).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&destination).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&destination).Error; err != nil {
		return nil, err
	}

	return &destination, nil
}

// Delete removes a destination and everything hanging off it. Tickets,
// bookings and visitors are owned rows, so they go in the same transaction.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM visitors WHERE booking_id IN (SELECT id FROM bookings WHERE destination_id = ?)`, id).Error; err != nil {
			return fmt.Errorf("failed to delete visitors: %w", err)
		}

		if err := tx.Exec(`DELETE FROM bookings WHERE destination_id = ?`, id).Error; err != nil {
			return fmt.Errorf("failed to delete bookings: %w", err)
		}

		if err := tx.Exec(`DELETE FROM tickets WHERE destination_id = ?`, id).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}

		if err := tx.Where("id = ?", id).Delete(&Destination{}).Error; err != nil {
			return fmt.Errorf("failed to delete destination: %w", err)
		}

		return nil
	})
}

func (r *repository) GetAll(ctx context.Context, query DestinationListQuery) ([]Destination, int64, error) {
	var results []Destination
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Destination{})

	// Apply filters
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	// Get total count
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit
	err := db.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Destination{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
