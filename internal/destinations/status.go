package destinations

type DestinationStatus string

const (
	StatusDraft     DestinationStatus = "draft"
	StatusPublished DestinationStatus = "published"
	StatusArchived  DestinationStatus = "archived"
)

// IsValid checks if the destination status is valid
func (s DestinationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func (s DestinationStatus) String() string {
	return string(s)
}

// IsBookable reports whether visitors can book tickets for this destination
func (s DestinationStatus) IsBookable() bool {
	return s == StatusPublished
}
