package destinations

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wisata/pkg/cache"
)

type fakeDestinationRepo struct {
	destinations []Destination
	listReads    int
}

func (r *fakeDestinationRepo) Create(ctx context.Context, destination *Destination) error {
	destination.ID = uuid.New()
	destination.CreatedAt = time.Now()
	r.destinations = append(r.destinations, *destination)
	return nil
}

func (r *fakeDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (*Destination, error) {
	for i := range r.destinations {
		if r.destinations[i].ID == id {
			copied := r.destinations[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDestinationRepo) GetBySlug(ctx context.Context, slug string) (*Destination, error) {
	for i := range r.destinations {
		if r.destinations[i].Slug == slug {
			copied := r.destinations[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDestinationRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Destination, error) {
	for i := range r.destinations {
		if r.destinations[i].ID == id {
			if v, ok := updates["name"]; ok {
				r.destinations[i].Name = v.(string)
			}
			if v, ok := updates["status"]; ok {
				r.destinations[i].Status = v.(DestinationStatus)
			}
			copied := r.destinations[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.destinations {
		if r.destinations[i].ID == id {
			r.destinations = append(r.destinations[:i], r.destinations[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeDestinationRepo) GetAll(ctx context.Context, query DestinationListQuery) ([]Destination, int64, error) {
	r.listReads++
	var out []Destination
	for _, d := range r.destinations {
		if query.Status != "" && string(d.Status) != query.Status {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(query.Search)) {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDestinationRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

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
	prefix := strings.TrimSuffix(pattern, "*")
	m.mu.Lock()
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
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

func newListFixture(t *testing.T) (*fakeDestinationRepo, Service) {
	t.Helper()
	repo := &fakeDestinationRepo{}
	svc := NewService(repo)
	svc.SetCacheService(newMemoryCache())

	adminID := uuid.New()
	names := []string{"Pantai Pasir Putih", "Kawah Ijen"}
	for _, name := range names {
		created, err := svc.CreateDestination(context.Background(), adminID, CreateDestinationRequest{
			Name:     name,
			Location: "Banyuwangi",
		})
		if err != nil {
			t.Fatalf("CreateDestination(%s) returned error: %v", name, err)
		}
		if created.Slug == "" {
			t.Fatalf("destination %s has no slug", name)
		}
	}
	return repo, svc
}

func TestGetAllDestinationsServedFromCache(t *testing.T) {
	repo, svc := newListFixture(t)
	ctx := context.Background()

	first, err := svc.GetAllDestinations(ctx, DestinationListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("GetAllDestinations returned error: %v", err)
	}
	if first.TotalCount != 2 {
		t.Fatalf("total = %d, want 2", first.TotalCount)
	}
	readsAfterFirst := repo.listReads

	second, err := svc.GetAllDestinations(ctx, DestinationListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("second GetAllDestinations returned error: %v", err)
	}
	if repo.listReads != readsAfterFirst {
		t.Fatalf("second listing should be served from cache, reads went %d -> %d", readsAfterFirst, repo.listReads)
	}
	if len(second.Destinations) != len(first.Destinations) {
		t.Fatalf("cached listing differs from the fetched one")
	}
}

func TestGetAllDestinationsCacheInvalidatedOnWrite(t *testing.T) {
	_, svc := newListFixture(t)
	ctx := context.Background()

	if _, err := svc.GetAllDestinations(ctx, DestinationListQuery{Page: 1, Limit: 10}); err != nil {
		t.Fatalf("GetAllDestinations returned error: %v", err)
	}

	if _, err := svc.CreateDestination(ctx, uuid.New(), CreateDestinationRequest{
		Name:     "Taman Nasional Baluran",
		Location: "Situbondo",
	}); err != nil {
		t.Fatalf("CreateDestination returned error: %v", err)
	}

	listing, err := svc.GetAllDestinations(ctx, DestinationListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("GetAllDestinations after create returned error: %v", err)
	}
	if listing.TotalCount != 3 {
		t.Fatalf("stale listing after create: total = %d, want 3", listing.TotalCount)
	}
}

func TestGetAllDestinationsSearchBypassesCache(t *testing.T) {
	repo, svc := newListFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := svc.GetAllDestinations(ctx, DestinationListQuery{Page: 1, Limit: 10, Search: "ijen"})
		if err != nil {
			t.Fatalf("search listing returned error: %v", err)
		}
		if result.TotalCount != 1 {
			t.Fatalf("search total = %d, want 1", result.TotalCount)
		}
	}
	if repo.listReads != 2 {
		t.Fatalf("search must hit the repository every time, reads = %d", repo.listReads)
	}
}

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Pantai Pasir Putih":  "pantai-pasir-putih",
		"Kawah  Ijen!":        "kawah-ijen",
		" Taman   Nasional ":  "taman-nasional",
		"Air Terjun Tumpak-7": "air-terjun-tumpak-7",
	}
	for in, want := range cases {
		if got := generateSlug(in); got != want {
			t.Fatalf("generateSlug(%q) = %q, want %q", in, got, want)
		}
	}
}
