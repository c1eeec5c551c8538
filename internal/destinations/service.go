package destinations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"wisata/internal/shared/constants"
	"wisata/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrSlugAlreadyExists   = errors.New("destination with this name already exists")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateDestination(ctx context.Context, adminID uuid.UUID, req CreateDestinationRequest) (*DestinationResponse, error)
	GetDestinationByID(ctx context.Context, id uuid.UUID) (*DestinationResponse, error)
	GetDestinationBySlug(ctx context.Context, slug string) (*DestinationResponse, error)
	UpdateDestination(ctx context.Context, id uuid.UUID, adminID uuid.UUID, req UpdateDestinationRequest) (*DestinationResponse, error)
	DeleteDestination(ctx context.Context, id uuid.UUID) error
	GetAllDestinations(ctx context.Context, query DestinationListQuery) (*PaginatedDestinations, error)

	// Used by the booking confirmer to gate bookings on published destinations
	IsBookable(ctx context.Context, id uuid.UUID) (bool, error)
	DestinationName(ctx context.Context, id uuid.UUID) (string, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// generateSlug builds a URL-safe slug from a destination name
func generateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^\w\s-]`)
	slug = reg.ReplaceAllString(slug, "")

	reg = regexp.MustCompile(`[\s-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func (s *service) CreateDestination(ctx context.Context, adminID uuid.UUID, req CreateDestinationRequest) (*DestinationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("destination name cannot be empty")
	}

	slug := generateSlug(name)
	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return nil, ErrSlugAlreadyExists
	}

	destination := &Destination{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		ImageURL:    req.ImageURL,
		Status:      StatusDraft,
		CreatedBy:   adminID,
	}

	if err := s.repo.Create(ctx, destination); err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}

	s.invalidateListCache(ctx)

	resp := destination.ToResponse()
	return &resp, nil
}

func (s *service) GetDestinationByID(ctx context.Context, id uuid.UUID) (*DestinationResponse, error) {
	if s.cacheService != nil {
		var cached DestinationResponse
		key := constants.DestinationDetailKey(id.String())
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_SEMI_STATIC_MEDIUM, func() (interface{}, error) {
			return s.fetchDestination(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		// fall through to a direct read on cache trouble
	}

	return s.fetchDestination(ctx, id)
}

func (s *service) fetchDestination(ctx context.Context, id uuid.UUID) (*DestinationResponse, error) {
	destination, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}
	resp := destination.ToResponse()
	return &resp, nil
}

func (s *service) GetDestinationBySlug(ctx context.Context, slug string) (*DestinationResponse, error) {
	destination, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}
	resp := destination.ToResponse()
	return &resp, nil
}

func (s *service) UpdateDestination(ctx context.Context, id uuid.UUID, adminID uuid.UUID, req UpdateDestinationRequest) (*DestinationResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("destination name cannot be empty")
		}
		updates["name"] = name
		updates["slug"] = generateSlug(name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Status != nil {
		status := DestinationStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid destination status: %s", *req.Status)
		}
		updates["status"] = status
	}

	if len(updates) == 0 {
		return s.GetDestinationByID(ctx, id)
	}

	updates["updated_by"] = adminID

	destination, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}

	s.invalidateCache(ctx, id)

	resp := destination.ToResponse()
	return &resp, nil
}

func (s *service) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDestinationNotFound
		}
		return fmt.Errorf("failed to get destination: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *service) GetAllDestinations(ctx context.Context, query DestinationListQuery) (*PaginatedDestinations, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	// Search results are too varied to be worth caching; plain listings
	// are served from the list cache invalidated on every write.
	if query.Search == "" && s.cacheService != nil {
		var cached PaginatedDestinations
		key := constants.DestinationListKey(query.Page, query.Limit, query.Status)
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_SEMI_STATIC_SHORT, func() (interface{}, error) {
			return s.fetchDestinations(ctx, query)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
	}

	return s.fetchDestinations(ctx, query)
}

func (s *service) fetchDestinations(ctx context.Context, query DestinationListQuery) (*PaginatedDestinations, error) {
	results, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	responses := make([]DestinationResponse, 0, len(results))
	for _, d := range results {
		responses = append(responses, d.ToResponse())
	}

	return &PaginatedDestinations{
		Destinations: responses,
		TotalCount:   totalCount,
		Page:         query.Page,
		Limit:        query.Limit,
		TotalPages:   int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) IsBookable(ctx context.Context, id uuid.UUID) (bool, error) {
	destination, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrDestinationNotFound
		}
		return false, fmt.Errorf("failed to get destination: %w", err)
	}
	return destination.Status.IsBookable(), nil
}

func (s *service) DestinationName(ctx context.Context, id uuid.UUID) (string, error) {
	destination, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDestinationNotFound
		}
		return "", fmt.Errorf("failed to get destination: %w", err)
	}
	return destination.Name, nil
}

func (s *service) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.DestinationDetailKey(id.String()))
	s.invalidateListCache(ctx)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_DESTINATIONS_LIST+"*")
}
