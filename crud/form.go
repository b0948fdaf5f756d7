package crud

import (
	"github.com/nanaopoku/church-admin-api/models"
)

// Form is the closed set of modal form payloads, one variant per entity
// kind that shares the modal workflow. Sealed so a switch over the
// variants stays exhaustive when a new kind is added.
type Form interface {
	Kind() models.EntityKind
	sealedForm()
}

// MemberForm carries the member modal fields
type MemberForm struct {
	Name      string              `json:"name"`
	Phone     string              `json:"phone"`
	Email     string              `json:"email,omitempty"`
	Address   string              `json:"address"`
	Residence string              `json:"residence"`
	JoinDate  string              `json:"joinDate"`
	Ministry  string              `json:"ministry"`
	Status    models.MemberStatus `json:"status"`
}

// Kind returns the entity kind this form belongs to
func (MemberForm) Kind() models.EntityKind { return models.EntityKindMember }

func (MemberForm) sealedForm() {}

// EventForm carries the event modal fields
type EventForm struct {
	Title       string           `json:"title"`
	Date        string           `json:"date"`
	Time        string           `json:"time"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	Type        models.EventType `json:"type"`
}

// Kind returns the entity kind this form belongs to
func (EventForm) Kind() models.EntityKind { return models.EntityKindEvent }

func (EventForm) sealedForm() {}

// TitheForm carries the tithe modal fields. Amount stays a string here;
// the orchestrator does its own numeric parsing and coerces invalid
// input to 0, the same way the form widgets hand values back.
type TitheForm struct {
	Donor  string             `json:"donor"`
	Amount string             `json:"amount"`
	Date   string             `json:"date"`
	Method models.TitheMethod `json:"method"`
}

// Kind returns the entity kind this form belongs to
func (TitheForm) Kind() models.EntityKind { return models.EntityKindTithe }

func (TitheForm) sealedForm() {}

// CommunicationForm carries the communication modal fields
type CommunicationForm struct {
	Title      string                   `json:"title"`
	Content    string                   `json:"content"`
	Type       models.CommunicationType `json:"type"`
	Recipients models.RecipientGroup    `json:"recipients"`
}

// Kind returns the entity kind this form belongs to
func (CommunicationForm) Kind() models.EntityKind { return models.EntityKindCommunication }

func (CommunicationForm) sealedForm() {}

// defaultForm returns the empty form pre-populated with each entity's
// field defaults, matching what a fresh modal shows.
func defaultForm(kind models.EntityKind) Form {
	switch kind {
	case models.EntityKindMember:
		return MemberForm{Status: models.MemberStatusActive}
	case models.EntityKindEvent:
		return EventForm{Type: models.EventTypeService}
	case models.EntityKindTithe:
		return TitheForm{Method: models.TitheMethodCash}
	case models.EntityKindCommunication:
		return CommunicationForm{
			Type:       models.CommunicationTypeNewsletter,
			Recipients: models.RecipientGroupAllMembers,
		}
	}
	return nil
}
