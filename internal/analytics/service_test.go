package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"wisata/pkg/cache"
)

type fakeAnalyticsRepo struct {
	overviewReads int
}

func (r *fakeAnalyticsRepo) GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error) {
	r.overviewReads++
	return &OverviewMetrics{
		TotalBookings:  12,
		PaidBookings:   9,
		UnpaidBookings: 3,
		SettledIncome:  450000,
		PendingIncome:  60000,
	}, nil
}

func (r *fakeAnalyticsRepo) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStat, error) {
	return []DailyBookingStat{{Date: "2026-09-01", Bookings: 2, Visitors: 5, Income: 75000}}, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyIncome(ctx context.Context, months int) ([]MonthlyIncomeStat, error) {
	return []MonthlyIncomeStat{{Month: "2026-09", Income: 450000}}, nil
}

func (r *fakeAnalyticsRepo) GetTopDestinations(ctx context.Context, limit int) ([]DestinationPerformance, error) {
	return []DestinationPerformance{{DestinationName: "Pantai Pasir Putih", Bookings: 7, Income: 300000}}, nil
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

func TestGetDashboardCachesBuiltResult(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewService(repo)
	svc.SetCacheService(newMemoryCache())
	ctx := context.Background()

	first, err := svc.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("GetDashboard returned error: %v", err)
	}
	if first.Overview.TotalBookings != 12 || len(first.DailyBookings) != 1 {
		t.Fatalf("unexpected dashboard contents: %+v", first)
	}
	if repo.overviewReads != 1 {
		t.Fatalf("overview reads after first call = %d, want 1", repo.overviewReads)
	}

	second, err := svc.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("second GetDashboard returned error: %v", err)
	}
	if repo.overviewReads != 1 {
		t.Fatalf("second call should be served from cache, overview reads = %d", repo.overviewReads)
	}
	if second.Overview.SettledIncome != first.Overview.SettledIncome {
		t.Fatalf("cached dashboard differs from the built one")
	}
}

func TestGetDashboardWithoutCacheRebuilds(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.GetDashboard(ctx); err != nil {
		t.Fatalf("GetDashboard returned error: %v", err)
	}
	if _, err := svc.GetDashboard(ctx); err != nil {
		t.Fatalf("second GetDashboard returned error: %v", err)
	}
	if repo.overviewReads != 2 {
		t.Fatalf("without a cache every call rebuilds, overview reads = %d", repo.overviewReads)
	}
}
