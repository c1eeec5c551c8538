package tickets

// TicketType classifies which visit days a ticket prices.
type TicketType string

const (
	TypeWeekday TicketType = "WEEKDAY"
	TypeWeekend TicketType = "WEEKEND"
	TypeHoliday TicketType = "HOLIDAY"
)

func (t TicketType) IsValid() bool {
	switch t {
	case TypeWeekday, TypeWeekend, TypeHoliday:
		return true
	}
	return false
}

func (t TicketType) String() string {
	return string(t)
}

type TicketStatus string

const (
	StatusActive   TicketStatus = "ACTIVE"
	StatusInactive TicketStatus = "INACTIVE"
)

func (s TicketStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s TicketStatus) String() string {
	return string(s)
}
