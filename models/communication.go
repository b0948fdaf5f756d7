package models

// CommunicationType represents the standardized communication categories
type CommunicationType string

// Predefined CommunicationType values
const (
	CommunicationTypeNewsletter    CommunicationType = "Newsletter"
	CommunicationTypeAnnouncement  CommunicationType = "Announcement"
	CommunicationTypePrayerRequest CommunicationType = "Prayer Request"
	CommunicationTypeEventInvite   CommunicationType = "Event Invite"
)

// ValidCommunicationTypes returns all valid CommunicationType values
func ValidCommunicationTypes() []CommunicationType {
	return []CommunicationType{
		CommunicationTypeNewsletter,
		CommunicationTypeAnnouncement,
		CommunicationTypePrayerRequest,
		CommunicationTypeEventInvite,
	}
}

// IsValid checks if the CommunicationType value is one of the predefined constants
func (t CommunicationType) IsValid() bool {
	for _, valid := range ValidCommunicationTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// RecipientGroup represents the standardized recipient groups
type RecipientGroup string

// Predefined RecipientGroup values
const (
	RecipientGroupAllMembers    RecipientGroup = "All Members"
	RecipientGroupLeadership    RecipientGroup = "Leadership"
	RecipientGroupYouthGroup    RecipientGroup = "Youth Group"
	RecipientGroupMinistryTeams RecipientGroup = "Ministry Teams"
)

// ValidRecipientGroups returns all valid RecipientGroup values
func ValidRecipientGroups() []RecipientGroup {
	return []RecipientGroup{
		RecipientGroupAllMembers,
		RecipientGroupLeadership,
		RecipientGroupYouthGroup,
		RecipientGroupMinistryTeams,
	}
}

// IsValid checks if the RecipientGroup value is one of the predefined constants
func (g RecipientGroup) IsValid() bool {
	for _, valid := range ValidRecipientGroups() {
		if g == valid {
			return true
		}
	}
	return false
}

// Communication holds the structure for one record in the communications collection
type Communication struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Date       string            `json:"date"`
	Type       CommunicationType `json:"type"`
	Recipients RecipientGroup    `json:"recipients"`
}
