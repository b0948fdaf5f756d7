package models

// EntityKind tags the record kinds that share the modal form workflow.
// Dues records are edited through the ledger, not the modal, so they do
// not appear here.
type EntityKind string

// Predefined EntityKind values
const (
	EntityKindMember        EntityKind = "member"
	EntityKindEvent         EntityKind = "event"
	EntityKindTithe         EntityKind = "tithe"
	EntityKindCommunication EntityKind = "communication"
)

// ValidEntityKinds returns all valid EntityKind values
func ValidEntityKinds() []EntityKind {
	return []EntityKind{
		EntityKindMember,
		EntityKindEvent,
		EntityKindTithe,
		EntityKindCommunication,
	}
}

// IsValid checks if the EntityKind value is one of the predefined constants
func (k EntityKind) IsValid() bool {
	for _, valid := range ValidEntityKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// String returns the string representation of the EntityKind
func (k EntityKind) String() string {
	return string(k)
}
