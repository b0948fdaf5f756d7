package storage

import (
	"strings"
	"sync"
	"time"

	"github.com/nanaopoku/church-admin-api/models"
)

// Store owns the five record collections. Each collection is an ordered
// sequence persisted wholesale through its own cell; insertion order is
// display order. The logical actor is a single user, but the HTTP layer
// can serve requests concurrently, so a mutex guards all access.
type Store struct {
	mu     sync.Mutex
	health *Health
	lastID int64

	members        *Cell[[]models.Member]
	events         *Cell[[]models.Event]
	tithes         *Cell[[]models.Tithe]
	dues           *Cell[[]models.DuesRecord]
	communications *Cell[[]models.Communication]
}

// NewStore binds the five collection cells, seeding any that have no
// stored value with the sample dataset.
func NewStore(kv KV) *Store {
	h := NewHealth()
	return &Store{
		health:         h,
		members:        Bind(kv, KeyMembers, models.SeedMembers(), h),
		events:         Bind(kv, KeyEvents, models.SeedEvents(), h),
		tithes:         Bind(kv, KeyTithes, models.SeedTithes(), h),
		dues:           Bind(kv, KeyDues, models.SeedDues(), h),
		communications: Bind(kv, KeyCommunications, models.SeedCommunications(), h),
	}
}

// Health returns the shared save-health signal
func (s *Store) Health() *Health {
	return s.health
}

// NextID returns a fresh identity. IDs are timestamp-derived, with a
// bump so two creates in the same millisecond still come out distinct
// and ascending. Never reused, never mutated.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// --- members ---

// Members returns the full members collection in insertion order
func (s *Store) Members() []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Member(nil), s.members.Get()...)
}

// MemberByID returns the member with the given identity
func (s *Store) MemberByID(id int64) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members.Get() {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Member{}, ErrNotFound
}

// SearchMembers filters members by a case-insensitive substring match
// against name or residence. An empty term returns the full collection.
func (s *Store) SearchMembers(term string) []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(term)
	var out []models.Member
	for _, m := range s.members.Get() {
		if strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Residence), needle) {
			out = append(out, m)
		}
	}
	return out
}

// InsertMember assigns a new identity and appends the member
func (s *Store) InsertMember(m models.Member) models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextIDLocked()
	s.members.Mutate(append(s.members.Get(), m))
	return m
}

// UpdateMember replaces the member with m.ID in place, preserving order
func (s *Store) UpdateMember(m models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.members.Get()
	for i := range cur {
		if cur[i].ID == m.ID {
			next := append([]models.Member(nil), cur...)
			next[i] = m
			s.members.Mutate(next)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteMember removes the member with the given identity. Tithes and
// dues that reference the member are left alone; orphaned references
// are tolerated.
func (s *Store) DeleteMember(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.members.Get()
	for i := range cur {
		if cur[i].ID == id {
			next := append([]models.Member(nil), cur[:i]...)
			s.members.Mutate(append(next, cur[i+1:]...))
			return nil
		}
	}
	return ErrNotFound
}

// --- events ---

// Events returns the full events collection in insertion order
func (s *Store) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Event(nil), s.events.Get()...)
}

// EventByID returns the event with the given identity
func (s *Store) EventByID(id int64) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events.Get() {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, ErrNotFound
}

// InsertEvent assigns a new identity and appends the event
func (s *Store) InsertEvent(e models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextIDLocked()
	s.events.Mutate(append(s.events.Get(), e))
	return e
}

// UpdateEvent replaces the event with e.ID in place
func (s *Store) UpdateEvent(e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.events.Get()
	for i := range cur {
		if cur[i].ID == e.ID {
			next := append([]models.Event(nil), cur...)
			next[i] = e
			s.events.Mutate(next)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteEvent removes the event with the given identity
func (s *Store) DeleteEvent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.events.Get()
	for i := range cur {
		if cur[i].ID == id {
			next := append([]models.Event(nil), cur[:i]...)
			s.events.Mutate(append(next, cur[i+1:]...))
			return nil
		}
	}
	return ErrNotFound
}

// --- tithes ---

// Tithes returns the full tithes collection in insertion order
func (s *Store) Tithes() []models.Tithe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Tithe(nil), s.tithes.Get()...)
}

// TitheByID returns the tithe with the given identity
func (s *Store) TitheByID(id int64) (models.Tithe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tithes.Get() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Tithe{}, ErrNotFound
}

// TithesTotal sums every tithe amount across the entire collection
func (s *Store) TithesTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, t := range s.tithes.Get() {
		total += t.Amount
	}
	return total
}

// InsertTithe assigns a new identity and appends the tithe
func (s *Store) InsertTithe(t models.Tithe) models.Tithe {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextIDLocked()
	s.tithes.Mutate(append(s.tithes.Get(), t))
	return t
}

// UpdateTithe replaces the tithe with t.ID in place
func (s *Store) UpdateTithe(t models.Tithe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.tithes.Get()
	for i := range cur {
		if cur[i].ID == t.ID {
			next := append([]models.Tithe(nil), cur...)
			next[i] = t
			s.tithes.Mutate(next)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteTithe removes the tithe with the given identity
func (s *Store) DeleteTithe(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.tithes.Get()
	for i := range cur {
		if cur[i].ID == id {
			next := append([]models.Tithe(nil), cur[:i]...)
			s.tithes.Mutate(append(next, cur[i+1:]...))
			return nil
		}
	}
	return ErrNotFound
}

// --- dues ---

// DuesRecords returns the full dues collection in insertion order
func (s *Store) DuesRecords() []models.DuesRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DuesRecord, 0, len(s.dues.Get()))
	for _, d := range s.dues.Get() {
		out = append(out, copyDues(d))
	}
	return out
}

// DuesByMemberYear returns the record for (memberID, year) if one exists
func (s *Store) DuesByMemberYear(memberID int64, year int) (models.DuesRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.dues.Get() {
		if d.MemberID == memberID && d.Year == year {
			return copyDues(d), true
		}
	}
	return models.DuesRecord{}, false
}

// InsertDuesRecord assigns a new identity and appends the record
func (s *Store) InsertDuesRecord(d models.DuesRecord) models.DuesRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextIDLocked()
	s.dues.Mutate(append(s.dues.Get(), copyDues(d)))
	return d
}

// SetDuesMonth replaces one month's amount on the record keyed by
// (memberID, year), leaving the other eleven untouched
func (s *Store) SetDuesMonth(memberID int64, year int, month string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.dues.Get()
	for i := range cur {
		if cur[i].MemberID == memberID && cur[i].Year == year {
			next := make([]models.DuesRecord, 0, len(cur))
			for _, d := range cur {
				next = append(next, copyDues(d))
			}
			next[i].Months[month] = amount
			s.dues.Mutate(next)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteDuesRecord removes the dues record with the given identity
func (s *Store) DeleteDuesRecord(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.dues.Get()
	for i := range cur {
		if cur[i].ID == id {
			next := append([]models.DuesRecord(nil), cur[:i]...)
			s.dues.Mutate(append(next, cur[i+1:]...))
			return nil
		}
	}
	return ErrNotFound
}

func copyDues(d models.DuesRecord) models.DuesRecord {
	months := make(models.MonthAmounts, len(d.Months))
	for k, v := range d.Months {
		months[k] = v
	}
	d.Months = months
	return d
}

// --- communications ---

// Communications returns the full communications collection in insertion order
func (s *Store) Communications() []models.Communication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Communication(nil), s.communications.Get()...)
}

// CommunicationByID returns the communication with the given identity
func (s *Store) CommunicationByID(id int64) (models.Communication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.communications.Get() {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Communication{}, ErrNotFound
}

// InsertCommunication assigns a new identity and appends the communication
func (s *Store) InsertCommunication(c models.Communication) models.Communication {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextIDLocked()
	s.communications.Mutate(append(s.communications.Get(), c))
	return c
}

// UpdateCommunication replaces the communication with c.ID in place
func (s *Store) UpdateCommunication(c models.Communication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.communications.Get()
	for i := range cur {
		if cur[i].ID == c.ID {
			next := append([]models.Communication(nil), cur...)
			next[i] = c
			s.communications.Mutate(next)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteCommunication removes the communication with the given identity
func (s *Store) DeleteCommunication(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.communications.Get()
	for i := range cur {
		if cur[i].ID == id {
			next := append([]models.Communication(nil), cur[:i]...)
			s.communications.Mutate(append(next, cur[i+1:]...))
			return nil
		}
	}
	return ErrNotFound
}
