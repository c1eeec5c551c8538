package tickets

import (
	"testing"
	"time"
)

func TestTypeForDate(t *testing.T) {
	cases := []struct {
		date string
		want TicketType
	}{
		{"2026-09-05", TypeWeekend}, // Saturday
		{"2026-09-06", TypeWeekend}, // Sunday
		{"2026-09-07", TypeWeekday}, // Monday
		{"2026-09-04", TypeWeekday}, // Friday
	}

	for _, tc := range cases {
		date, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("bad test date %s: %v", tc.date, err)
		}
		if got := TypeForDate(date); got != tc.want {
			t.Fatalf("TypeForDate(%s) = %s, want %s", tc.date, got, tc.want)
		}
	}
}

func TestResolvePricePicksMatchingActiveTicket(t *testing.T) {
	catalog := []Ticket{
		{Name: "Weekday Admission", Type: TypeWeekday, Price: 10000, Status: StatusActive},
		{Name: "Weekend Admission", Type: TypeWeekend, Price: 15000, Status: StatusActive},
	}

	saturday, _ := time.Parse("2006-01-02", "2026-09-05")
	price, ticket := ResolvePrice(saturday, catalog)
	if price != 15000 {
		t.Fatalf("saturday price = %v, want 15000", price)
	}
	if ticket == nil || ticket.Type != TypeWeekend {
		t.Fatalf("expected the weekend ticket to be selected")
	}

	monday, _ := time.Parse("2006-01-02", "2026-09-07")
	price, ticket = ResolvePrice(monday, catalog)
	if price != 10000 {
		t.Fatalf("monday price = %v, want 10000", price)
	}
	if ticket == nil || ticket.Type != TypeWeekday {
		t.Fatalf("expected the weekday ticket to be selected")
	}
}

func TestResolvePriceSkipsInactiveTickets(t *testing.T) {
	catalog := []Ticket{
		{Name: "Old Weekend Admission", Type: TypeWeekend, Price: 12000, Status: StatusInactive},
		{Name: "Weekend Admission", Type: TypeWeekend, Price: 15000, Status: StatusActive},
	}

	saturday, _ := time.Parse("2006-01-02", "2026-09-05")
	price, ticket := ResolvePrice(saturday, catalog)
	if price != 15000 {
		t.Fatalf("price = %v, want 15000 from the active entry", price)
	}
	if ticket == nil || ticket.Name != "Weekend Admission" {
		t.Fatalf("inactive ticket was selected")
	}
}

func TestResolvePriceFallsBackToZeroWithoutMatch(t *testing.T) {
	catalog := []Ticket{
		{Name: "Weekday Admission", Type: TypeWeekday, Price: 10000, Status: StatusActive},
	}

	saturday, _ := time.Parse("2006-01-02", "2026-09-05")
	price, ticket := ResolvePrice(saturday, catalog)
	if price != 0 {
		t.Fatalf("price = %v, want 0 when no entry matches", price)
	}
	if ticket != nil {
		t.Fatalf("expected no ticket for an unmatched date")
	}

	price, ticket = ResolvePrice(saturday, nil)
	if price != 0 || ticket != nil {
		t.Fatalf("empty catalog should resolve to zero")
	}
}

func TestResolvePriceNeverPicksHolidayAutomatically(t *testing.T) {
	catalog := []Ticket{
		{Name: "Holiday Admission", Type: TypeHoliday, Price: 50000, Status: StatusActive},
	}

	saturday, _ := time.Parse("2006-01-02", "2026-09-05")
	if price, _ := ResolvePrice(saturday, catalog); price != 0 {
		t.Fatalf("holiday ticket selected for a regular weekend, price = %v", price)
	}
}
