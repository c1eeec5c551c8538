package analytics

// OverviewMetrics is the headline card row on the admin dashboard.
type OverviewMetrics struct {
	TotalBookings     int     `json:"total_bookings"`
	PaidBookings      int     `json:"paid_bookings"`
	UnpaidBookings    int     `json:"unpaid_bookings"`
	TotalVisitors     int     `json:"total_visitors"`
	TotalDestinations int     `json:"total_destinations"`
	OpenComplaints    int     `json:"open_complaints"`
	SettledIncome     float64 `json:"settled_income"`
	PendingIncome     float64 `json:"pending_income"`
}

type DailyBookingStat struct {
	Date     string  `json:"date"`
	Bookings int     `json:"bookings"`
	Visitors int     `json:"visitors"`
	Income   float64 `json:"income"`
}

type MonthlyIncomeStat struct {
	Month  string  `json:"month"`
	Income float64 `json:"income"`
}

type DestinationPerformance struct {
	DestinationID   string  `json:"destination_id"`
	DestinationName string  `json:"destination_name"`
	Bookings        int     `json:"bookings"`
	Visitors        int     `json:"visitors"`
	Income          float64 `json:"income"`
}

// DashboardAnalytics is everything the admin dashboard renders in one call.
type DashboardAnalytics struct {
	Overview        OverviewMetrics          `json:"overview"`
	DailyBookings   []DailyBookingStat       `json:"daily_bookings"`
	MonthlyIncome   []MonthlyIncomeStat      `json:"monthly_income"`
	TopDestinations []DestinationPerformance `json:"top_destinations"`
}
