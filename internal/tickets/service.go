package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wisata/internal/shared/constants"
	"wisata/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrDuplicateTicketType  = errors.New("destination already has an active ticket of this type")
	ErrDestinationNotExists = errors.New("destination does not exist")
)

// DestinationChecker reports whether a destination can carry tickets.
type DestinationChecker interface {
	IsBookable(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service interface {
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*TicketResponse, error)
	GetTicket(ctx context.Context, id uuid.UUID) (*TicketResponse, error)
	GetCatalog(ctx context.Context, destinationID uuid.UUID, activeOnly bool) ([]TicketResponse, error)
	UpdateTicket(ctx context.Context, id uuid.UUID, req UpdateTicketRequest) (*TicketResponse, error)
	DeleteTicket(ctx context.Context, id uuid.UUID) error

	// PriceFor resolves the unit price a visit date costs at a destination.
	PriceFor(ctx context.Context, destinationID uuid.UUID, visitDate time.Time) (float64, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	destinations DestinationChecker
	cacheService cache.Service
}

func NewService(repo Repository, destinations DestinationChecker) Service {
	return &service{repo: repo, destinations: destinations}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*TicketResponse, error) {
	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, ErrDestinationNotExists
	}
	if _, err := s.destinations.IsBookable(ctx, destinationID); err != nil {
		return nil, ErrDestinationNotExists
	}

	ticketType := TicketType(req.Type)
	if existing, err := s.repo.GetActiveByDestinationAndType(ctx, destinationID, ticketType); err == nil && existing != nil {
		return nil, ErrDuplicateTicketType
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing tickets: %w", err)
	}

	ticket := &Ticket{
		DestinationID: destinationID,
		Name:          req.Name,
		Type:          ticketType,
		Price:         req.Price,
		QuotaPerDay:   req.QuotaPerDay,
		Status:        StatusActive,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx, destinationID)
	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) GetTicket(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) GetCatalog(ctx context.Context, destinationID uuid.UUID, activeOnly bool) ([]TicketResponse, error) {
	if activeOnly && s.cacheService != nil {
		cacheKey := constants.TicketCatalogKey(destinationID.String())
		var cached []TicketResponse
		err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_SEMI_STATIC_QUICK, func() (interface{}, error) {
			return s.fetchCatalog(ctx, destinationID, true)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.fetchCatalog(ctx, destinationID, activeOnly)
}

func (s *service) fetchCatalog(ctx context.Context, destinationID uuid.UUID, activeOnly bool) ([]TicketResponse, error) {
	tickets, err := s.repo.GetByDestination(ctx, destinationID, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, tickets[i].ToResponse())
	}
	return responses, nil
}

func (s *service) UpdateTicket(ctx context.Context, id uuid.UUID, req UpdateTicketRequest) (*TicketResponse, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.QuotaPerDay != nil {
		updates["quota_per_day"] = *req.QuotaPerDay
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTicketNotFound
			}
			return nil, err
		}
	}

	s.invalidateCatalogCache(ctx, ticket.DestinationID)
	return s.GetTicket(ctx, id)
}

func (s *service) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		return err
	}
	s.invalidateCatalogCache(ctx, ticket.DestinationID)
	return nil
}

func (s *service) PriceFor(ctx context.Context, destinationID uuid.UUID, visitDate time.Time) (float64, error) {
	catalog, err := s.repo.GetByDestination(ctx, destinationID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to load ticket catalog: %w", err)
	}
	price, _ := ResolvePrice(visitDate, catalog)
	return price, nil
}

func (s *service) invalidateCatalogCache(ctx context.Context, destinationID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.TicketCatalogKey(destinationID.String()))
}
