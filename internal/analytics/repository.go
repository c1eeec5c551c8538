package analytics

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStat, error)
	GetMonthlyIncome(ctx context.Context, months int) ([]MonthlyIncomeStat, error)
	GetTopDestinations(ctx context.Context, limit int) ([]DestinationPerformance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error) {
	var overview OverviewMetrics
	db := r.db.WithContext(ctx)

	var totalBookings, paidBookings int64
	if err := db.Table("bookings").Count(&totalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	overview.TotalBookings = int(totalBookings)

	if err := db.Table("bookings").Where("is_paid = ?", true).Count(&paidBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count paid bookings: %w", err)
	}
	overview.PaidBookings = int(paidBookings)
	overview.UnpaidBookings = int(totalBookings - paidBookings)

	var totalVisitors int64
	if err := db.Table("visitors").Count(&totalVisitors).Error; err != nil {
		return nil, fmt.Errorf("failed to count visitors: %w", err)
	}
	overview.TotalVisitors = int(totalVisitors)

	var totalDestinations int64
	if err := db.Table("destinations").Count(&totalDestinations).Error; err != nil {
		return nil, fmt.Errorf("failed to count destinations: %w", err)
	}
	overview.TotalDestinations = int(totalDestinations)

	var openComplaints int64
	if err := db.Table("complaints").Where("status = ?", "OPEN").Count(&openComplaints).Error; err != nil {
		return nil, fmt.Errorf("failed to count open complaints: %w", err)
	}
	overview.OpenComplaints = int(openComplaints)

	// Only settled bookings count as income
	err := db.Table("bookings").
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&overview.SettledIncome).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate settled income: %w", err)
	}

	err = db.Table("bookings").
		Where("is_paid = ?", false).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&overview.PendingIncome).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate pending income: %w", err)
	}

	return &overview, nil
}

func (r *repository) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStat, error) {
	var stats []DailyBookingStat

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS bookings,
			COALESCE(SUM(quantity), 0) AS visitors,
			COALESCE(SUM(total_amount) FILTER (WHERE is_paid), 0) AS income
		FROM bookings
		WHERE created_at >= CURRENT_DATE - INTERVAL '1 day' * ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)
	`, days).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}
	return stats, nil
}

func (r *repository) GetMonthlyIncome(ctx context.Context, months int) ([]MonthlyIncomeStat, error) {
	var stats []MonthlyIncomeStat

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') AS month,
			COALESCE(SUM(total_amount), 0) AS income
		FROM bookings
		WHERE is_paid = TRUE
		  AND created_at >= DATE_TRUNC('month', CURRENT_DATE) - INTERVAL '1 month' * ?
		GROUP BY DATE_TRUNC('month', created_at)
		ORDER BY DATE_TRUNC('month', created_at)
	`, months-1).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly income: %w", err)
	}
	return stats, nil
}

func (r *repository) GetTopDestinations(ctx context.Context, limit int) ([]DestinationPerformance, error) {
	var performances []DestinationPerformance

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.id AS destination_id,
			d.name AS destination_name,
			COUNT(b.id) AS bookings,
			COALESCE(SUM(b.quantity), 0) AS visitors,
			COALESCE(SUM(b.total_amount) FILTER (WHERE b.is_paid), 0) AS income
		FROM destinations d
		LEFT JOIN bookings b ON b.destination_id = d.id
		GROUP BY d.id, d.name
		ORDER BY COUNT(b.id) DESC, d.name ASC
		LIMIT ?
	`, limit).Scan(&performances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top destinations: %w", err)
	}
	return performances, nil
}
