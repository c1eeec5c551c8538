package tickets

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetByDestination(ctx context.Context, destinationID uuid.UUID, activeOnly bool) ([]Ticket, error)
	GetActiveByDestinationAndType(ctx context.Context, destinationID uuid.UUID, ticketType TicketType) (*Ticket, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByDestination(ctx context.Context, destinationID uuid.UUID, activeOnly bool) ([]Ticket, error) {
	var list []Ticket
	query := r.db.WithContext(ctx).Where("destination_id = ?", destinationID)
	if activeOnly {
		query = query.Where("status = ?", StatusActive)
	}
	if err := query.Order("type ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return list, nil
}

func (r *repository) GetActiveByDestinationAndType(ctx context.Context, destinationID uuid.UUID, ticketType TicketType) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Where("destination_id = ? AND type = ? AND status = ?", destinationID, ticketType, StatusActive).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Ticket{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Ticket{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
