package complaints

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, complaint *Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	List(ctx context.Context, query ComplaintListQuery) ([]Complaint, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, complaint *Complaint) error {
	if err := r.db.WithContext(ctx).Create(complaint).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error) {
	var complaint Complaint
	if err := r.db.WithContext(ctx).First(&complaint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *repository) List(ctx context.Context, query ComplaintListQuery) ([]Complaint, int64, error) {
	var complaints []Complaint
	var total int64

	db := r.db.WithContext(ctx).Model(&Complaint{})
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&complaints).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, total, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Complaint{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Complaint{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
