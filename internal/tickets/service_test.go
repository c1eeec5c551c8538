package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wisata/pkg/cache"
)

type fakeTicketRepo struct {
	tickets          []Ticket
	destinationReads int
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *Ticket) error {
	ticket.ID = uuid.New()
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			copied := r.tickets[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) GetByDestination(ctx context.Context, destinationID uuid.UUID, activeOnly bool) ([]Ticket, error) {
	r.destinationReads++
	var out []Ticket
	for _, t := range r.tickets {
		if t.DestinationID != destinationID {
			continue
		}
		if activeOnly && t.Status != StatusActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTicketRepo) GetActiveByDestinationAndType(ctx context.Context, destinationID uuid.UUID, ticketType TicketType) (*Ticket, error) {
	for i := range r.tickets {
		t := r.tickets[i]
		if t.DestinationID == destinationID && t.Type == ticketType && t.Status == StatusActive {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			if v, ok := updates["price"]; ok {
				r.tickets[i].Price = v.(float64)
			}
			if v, ok := updates["status"]; ok {
				r.tickets[i].Status = TicketStatus(v.(string))
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type alwaysBookable struct{}

func (alwaysBookable) IsBookable(ctx context.Context, id uuid.UUID) (bool, error) {
	return true, nil
}

// memoryCache mirrors the redis-backed cache service for tests: JSON
// payloads, synchronous writes.
type memoryCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	data, ok := m.store[key]
	m.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.store[key] = data
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.store, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	m.store = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Exists(ctx context.Context, key string) bool {
	m.mu.Lock()
	_, ok := m.store[key]
	m.mu.Unlock()
	return ok
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

func seedTicket(repo *fakeTicketRepo, destinationID uuid.UUID, ticketType TicketType, price float64, status TicketStatus) {
	repo.tickets = append(repo.tickets, Ticket{
		ID:            uuid.New(),
		DestinationID: destinationID,
		Name:          string(ticketType) + " admission",
		Type:          ticketType,
		Price:         price,
		Status:        status,
	})
}

func TestGetCatalogServesActiveReadsFromCache(t *testing.T) {
	repo := &fakeTicketRepo{}
	destinationID := uuid.New()
	seedTicket(repo, destinationID, TypeWeekday, 10000, StatusActive)
	seedTicket(repo, destinationID, TypeWeekend, 15000, StatusActive)

	svc := NewService(repo, alwaysBookable{})
	svc.SetCacheService(newMemoryCache())
	ctx := context.Background()

	first, err := svc.GetCatalog(ctx, destinationID, true)
	if err != nil {
		t.Fatalf("GetCatalog returned error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("catalog size = %d, want 2", len(first))
	}
	if repo.destinationReads != 1 {
		t.Fatalf("repository reads after first call = %d, want 1", repo.destinationReads)
	}

	second, err := svc.GetCatalog(ctx, destinationID, true)
	if err != nil {
		t.Fatalf("second GetCatalog returned error: %v", err)
	}
	if repo.destinationReads != 1 {
		t.Fatalf("second call should be served from cache, repository reads = %d", repo.destinationReads)
	}
	if len(second) != 2 || second[0].Price != first[0].Price {
		t.Fatalf("cached catalog differs from the fetched one")
	}
}

func TestGetCatalogFullListingBypassesCache(t *testing.T) {
	repo := &fakeTicketRepo{}
	destinationID := uuid.New()
	seedTicket(repo, destinationID, TypeWeekday, 10000, StatusActive)
	seedTicket(repo, destinationID, TypeHoliday, 50000, StatusInactive)

	svc := NewService(repo, alwaysBookable{})
	svc.SetCacheService(newMemoryCache())
	ctx := context.Background()

	full, err := svc.GetCatalog(ctx, destinationID, false)
	if err != nil {
		t.Fatalf("GetCatalog returned error: %v", err)
	}
	if len(full) != 2 {
		t.Fatalf("full catalog size = %d, want 2", len(full))
	}

	if _, err := svc.GetCatalog(ctx, destinationID, false); err != nil {
		t.Fatalf("second GetCatalog returned error: %v", err)
	}
	if repo.destinationReads != 2 {
		t.Fatalf("admin listing must hit the repository every time, reads = %d", repo.destinationReads)
	}
}

func TestUpdateTicketInvalidatesCatalogCache(t *testing.T) {
	repo := &fakeTicketRepo{}
	destinationID := uuid.New()
	seedTicket(repo, destinationID, TypeWeekday, 10000, StatusActive)
	ticketID := repo.tickets[0].ID

	svc := NewService(repo, alwaysBookable{})
	svc.SetCacheService(newMemoryCache())
	ctx := context.Background()

	if _, err := svc.GetCatalog(ctx, destinationID, true); err != nil {
		t.Fatalf("GetCatalog returned error: %v", err)
	}

	newPrice := 12500.0
	if _, err := svc.UpdateTicket(ctx, ticketID, UpdateTicketRequest{Price: &newPrice}); err != nil {
		t.Fatalf("UpdateTicket returned error: %v", err)
	}

	catalog, err := svc.GetCatalog(ctx, destinationID, true)
	if err != nil {
		t.Fatalf("GetCatalog after update returned error: %v", err)
	}
	if catalog[0].Price != 12500 {
		t.Fatalf("stale catalog after update: price = %v, want 12500", catalog[0].Price)
	}
}

func TestGetTicketUnknownID(t *testing.T) {
	svc := NewService(&fakeTicketRepo{}, alwaysBookable{})

	_, err := svc.GetTicket(context.Background(), uuid.New())
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}
