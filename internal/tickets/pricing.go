package tickets

import "time"

// TypeForDate maps a visit date to the ticket type that prices it.
// Saturday and Sunday are weekend days, everything else is a weekday.
// Holiday tickets are never selected automatically.
func TypeForDate(visitDate time.Time) TicketType {
	switch visitDate.Weekday() {
	case time.Saturday, time.Sunday:
		return TypeWeekend
	default:
		return TypeWeekday
	}
}

// ResolvePrice picks the unit price for a visit date from a destination's
// ticket catalog. Only ACTIVE tickets of the matching type count. When the
// catalog has no matching entry the price resolves to zero so the caller
// can decide whether a free booking is acceptable.
func ResolvePrice(visitDate time.Time, catalog []Ticket) (float64, *Ticket) {
	want := TypeForDate(visitDate)
	for i := range catalog {
		t := &catalog[i]
		if t.Status == StatusActive && t.Type == want {
			return t.Price, t
		}
	}
	return 0, nil
}
