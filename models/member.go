package models

// MemberStatus represents the standardized membership states
type MemberStatus string

// Predefined MemberStatus values
const (
	MemberStatusActive   MemberStatus = "Active"
	MemberStatusInactive MemberStatus = "Inactive"
)

// ValidMemberStatuses returns all valid MemberStatus values
func ValidMemberStatuses() []MemberStatus {
	return []MemberStatus{
		MemberStatusActive,
		MemberStatusInactive,
	}
}

// IsValid checks if the MemberStatus value is one of the predefined constants
func (s MemberStatus) IsValid() bool {
	for _, valid := range ValidMemberStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Member holds the structure for one record in the members collection.
// The ID is assigned at creation time and is never reused or mutated.
type Member struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email,omitempty"`
	Address   string       `json:"address"`
	Residence string       `json:"residence"`
	JoinDate  string       `json:"joinDate"` // ISO 8601 calendar date, e.g. "2023-01-15"
	Ministry  string       `json:"ministry"`
	Status    MemberStatus `json:"status"`
}
