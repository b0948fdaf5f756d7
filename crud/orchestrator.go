// Package crud mediates create, update and delete across the record
// collections through one shared modal/form workflow. At most one modal
// session is open at a time; every write path funnels through Submit so
// identity assignment and identity preservation live in one place.
package crud

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

var (
	// ErrSessionOpen is returned when opening a modal while one is open
	ErrSessionOpen = errors.New("a form session is already open")
	// ErrNoSession is returned when submitting without an open session
	ErrNoSession = errors.New("no form session is open")
	// ErrKindMismatch is returned when the submitted form's kind does not
	// match the open session's kind
	ErrKindMismatch = errors.New("submitted form does not match the open session")
	// ErrUnknownKind is returned for an entity kind outside the closed set
	ErrUnknownKind = errors.New("unknown entity kind")
)

type session struct {
	kind    models.EntityKind
	editing int64 // 0 when creating
}

// Orchestrator is the modal session state machine over the store
type Orchestrator struct {
	mu      sync.Mutex
	store   *storage.Store
	current *session
}

// New returns an orchestrator over the given store
func New(store *storage.Store) *Orchestrator {
	return &Orchestrator{store: store}
}

// OpenCreate transitions Closed -> Open(kind) and returns the empty form
// pre-populated with that entity's field defaults.
func (o *Orchestrator) OpenCreate(kind models.EntityKind) (Form, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		return nil, ErrSessionOpen
	}
	o.current = &session{kind: kind}
	return defaultForm(kind), nil
}

// OpenEdit transitions Closed -> Open(kind, record) and returns the form
// pre-populated from the existing record's fields.
func (o *Orchestrator) OpenEdit(kind models.EntityKind, id int64) (Form, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		return nil, ErrSessionOpen
	}

	form, err := o.formFromRecord(kind, id)
	if err != nil {
		return nil, err
	}
	o.current = &session{kind: kind, editing: id}
	return form, nil
}

func (o *Orchestrator) formFromRecord(kind models.EntityKind, id int64) (Form, error) {
	switch kind {
	case models.EntityKindMember:
		m, err := o.store.MemberByID(id)
		if err != nil {
			return nil, err
		}
		return MemberForm{
			Name: m.Name, Phone: m.Phone, Email: m.Email, Address: m.Address,
			Residence: m.Residence, JoinDate: m.JoinDate, Ministry: m.Ministry,
			Status: m.Status,
		}, nil
	case models.EntityKindEvent:
		e, err := o.store.EventByID(id)
		if err != nil {
			return nil, err
		}
		return EventForm{
			Title: e.Title, Date: e.Date, Time: e.Time, Location: e.Location,
			Description: e.Description, Type: e.Type,
		}, nil
	case models.EntityKindTithe:
		t, err := o.store.TitheByID(id)
		if err != nil {
			return nil, err
		}
		return TitheForm{
			Donor:  t.Donor,
			Amount: strconv.FormatFloat(t.Amount, 'f', -1, 64),
			Date:   t.Date,
			Method: t.Method,
		}, nil
	case models.EntityKindCommunication:
		c, err := o.store.CommunicationByID(id)
		if err != nil {
			return nil, err
		}
		return CommunicationForm{
			Title: c.Title, Content: c.Content, Type: c.Type, Recipients: c.Recipients,
		}, nil
	}
	return nil, ErrUnknownKind
}

// Submit applies the form values and transitions Open -> Closed. Editing
// replaces the record matching the session's stored identity, preserving
// that identity regardless of the form contents; creating assigns a new
// identity and appends. Returns the resulting record.
func (o *Orchestrator) Submit(form Form) (interface{}, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return nil, ErrNoSession
	}
	if form == nil || form.Kind() != o.current.kind {
		return nil, ErrKindMismatch
	}

	sess := o.current
	record, err := o.apply(sess, form)
	if err != nil {
		return nil, err
	}
	o.current = nil
	return record, nil
}

func (o *Orchestrator) apply(sess *session, form Form) (interface{}, error) {
	switch f := form.(type) {
	case MemberForm:
		m := models.Member{
			Name: f.Name, Phone: f.Phone, Email: f.Email, Address: f.Address,
			Residence: f.Residence, JoinDate: f.JoinDate, Ministry: f.Ministry,
			Status: f.Status,
		}
		if sess.editing != 0 {
			m.ID = sess.editing
			return m, o.store.UpdateMember(m)
		}
		if m.JoinDate == "" {
			m.JoinDate = today()
		}
		return o.store.InsertMember(m), nil

	case EventForm:
		e := models.Event{
			Title: f.Title, Date: f.Date, Time: f.Time, Location: f.Location,
			Description: f.Description, Type: f.Type,
		}
		if sess.editing != 0 {
			e.ID = sess.editing
			return e, o.store.UpdateEvent(e)
		}
		return o.store.InsertEvent(e), nil

	case TitheForm:
		t := models.Tithe{
			Donor:  f.Donor,
			Amount: parseAmount(f.Amount),
			Date:   f.Date,
			Method: f.Method,
		}
		if sess.editing != 0 {
			t.ID = sess.editing
			return t, o.store.UpdateTithe(t)
		}
		if t.Date == "" {
			t.Date = today()
		}
		return o.store.InsertTithe(t), nil

	case CommunicationForm:
		c := models.Communication{
			Title: f.Title, Content: f.Content, Type: f.Type, Recipients: f.Recipients,
		}
		if sess.editing != 0 {
			c.ID = sess.editing
			existing, err := o.store.CommunicationByID(sess.editing)
			if err != nil {
				return nil, err
			}
			c.Date = existing.Date
			return c, o.store.UpdateCommunication(c)
		}
		c.Date = today()
		return o.store.InsertCommunication(c), nil
	}
	return nil, ErrUnknownKind
}

// Cancel transitions to Closed, discarding the in-progress form without
// mutating any collection. Cancelling with no open session is a no-op.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = nil
}

// Open reports the kind of the currently open session, if any
func (o *Orchestrator) Open() (models.EntityKind, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return "", false
	}
	return o.current.kind, true
}

// Delete removes the record with the given identity from its collection.
// The caller passes the user's answer to the confirmation gate; declining
// is a no-op, reported through the deleted return.
func (o *Orchestrator) Delete(kind models.EntityKind, id int64, confirmed bool) (deleted bool, err error) {
	if !kind.IsValid() {
		return false, ErrUnknownKind
	}
	if !confirmed {
		return false, nil
	}
	switch kind {
	case models.EntityKindMember:
		err = o.store.DeleteMember(id)
	case models.EntityKindEvent:
		err = o.store.DeleteEvent(id)
	case models.EntityKindTithe:
		err = o.store.DeleteTithe(id)
	case models.EntityKindCommunication:
		err = o.store.DeleteCommunication(id)
	}
	return err == nil, err
}

// parseAmount coerces the raw amount text to a float, treating anything
// unparseable as 0 rather than rejecting it.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func today() string {
	return time.Now().Format("2006-01-02")
}
