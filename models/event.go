package models

// EventType represents the standardized event categories
type EventType string

// Predefined EventType values
const (
	EventTypeService    EventType = "Service"
	EventTypeStudy      EventType = "Study"
	EventTypeFellowship EventType = "Fellowship"
	EventTypeOutreach   EventType = "Outreach"
	EventTypeMeeting    EventType = "Meeting"
)

// ValidEventTypes returns all valid EventType values
func ValidEventTypes() []EventType {
	return []EventType{
		EventTypeService,
		EventTypeStudy,
		EventTypeFellowship,
		EventTypeOutreach,
		EventTypeMeeting,
	}
}

// IsValid checks if the EventType value is one of the predefined constants
func (t EventType) IsValid() bool {
	for _, valid := range ValidEventTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// Event holds the structure for one record in the events collection.
// There is no recurrence model; each occurrence is its own record.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
}
