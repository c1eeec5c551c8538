package analytics

import (
	"context"

	"wisata/internal/shared/constants"
	"wisata/pkg/cache"
)

type Service interface {
	GetDashboard(ctx context.Context) (*DashboardAnalytics, error)
	GetOverview(ctx context.Context) (*OverviewMetrics, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStat, error)
	GetMonthlyIncome(ctx context.Context, months int) ([]MonthlyIncomeStat, error)
	GetTopDestinations(ctx context.Context, limit int) ([]DestinationPerformance, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	if s.cacheService != nil {
		var cached DashboardAnalytics
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_ANALYTICS_DASHBOARD, constants.TTL_DYNAMIC_MEDIUM, func() (interface{}, error) {
			return s.buildDashboard(ctx)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
	}
	return s.buildDashboard(ctx)
}

func (s *service) buildDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	overview, err := s.repo.GetOverviewMetrics(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.repo.GetDailyBookingStats(ctx, 30)
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.GetMonthlyIncome(ctx, 12)
	if err != nil {
		return nil, err
	}

	top, err := s.repo.GetTopDestinations(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardAnalytics{
		Overview:        *overview,
		DailyBookings:   daily,
		MonthlyIncome:   monthly,
		TopDestinations: top,
	}, nil
}

func (s *service) GetOverview(ctx context.Context) (*OverviewMetrics, error) {
	return s.repo.GetOverviewMetrics(ctx)
}

func (s *service) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStat, error) {
	return s.repo.GetDailyBookingStats(ctx, days)
}

func (s *service) GetMonthlyIncome(ctx context.Context, months int) ([]MonthlyIncomeStat, error) {
	return s.repo.GetMonthlyIncome(ctx, months)
}

func (s *service) GetTopDestinations(ctx context.Context, limit int) ([]DestinationPerformance, error) {
	return s.repo.GetTopDestinations(ctx, limit)
}
