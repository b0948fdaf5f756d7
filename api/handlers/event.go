package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// Event exported for testing purposes
type Event struct {
	Store *storage.Store
	Orc   *crud.Orchestrator
}

// EventsHandler returns the events collection in insertion order
func (e Event) EventsHandler(w http.ResponseWriter, r *http.Request) {
	resp := e.Store.Events()
	if resp == nil {
		resp = []models.Event{}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EventByIDHandler returns an event by ID
func (e Event) EventByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["event_id"])
	if err != nil {
		config.ErrorStatus("failed to parse event id", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := e.Store.EventByID(id)
	if err != nil {
		config.ErrorStatus("failed to get event by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateEventHandler creates a new event through the form workflow
func (e Event) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var form crud.EventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if form.Type == "" {
		form.Type = models.EventTypeService
	}
	if !form.Type.IsValid() {
		config.ErrorStatus("invalid event type", http.StatusBadRequest, w, fmt.Errorf("type %q is not valid", form.Type))
		return
	}

	if _, err := e.Orc.OpenCreate(models.EntityKindEvent); err != nil {
		config.ErrorStatus("failed to open event form", statusForError(err), w, err)
		return
	}
	record, err := e.Orc.Submit(form)
	if err != nil {
		e.Orc.Cancel()
		config.ErrorStatus("failed to create event", statusForError(err), w, err)
		return
	}

	b, err := json.Marshal(record)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateEventHandler replaces the event's fields in place, preserving
// its identity
func (e Event) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["event_id"])
	if err != nil {
		config.ErrorStatus("failed to parse event id", http.StatusBadRequest, w, err)
		return
	}

	var form crud.EventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !form.Type.IsValid() {
		config.ErrorStatus("invalid event type", http.StatusBadRequest, w, fmt.Errorf("type %q is not valid", form.Type))
		return
	}

	if _, err := e.Orc.OpenEdit(models.EntityKindEvent, id); err != nil {
		config.ErrorStatus("failed to open event form", statusForError(err), w, err)
		return
	}
	record, err := e.Orc.Submit(form)
	if err != nil {
		e.Orc.Cancel()
		config.ErrorStatus("failed to update event", statusForError(err), w, err)
		return
	}

	b, err := json.Marshal(record)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteEventHandler removes an event after the confirmation gate
func (e Event) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["event_id"])
	if err != nil {
		config.ErrorStatus("failed to parse event id", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := e.Orc.Delete(models.EntityKindEvent, id, deleteConfirmed(r))
	if err != nil {
		config.ErrorStatus("failed to delete event", statusForError(err), w, err)
		return
	}

	resp := deleteResponse{Deleted: deleted}
	if !deleted {
		resp.Message = "delete not confirmed"
	}
	b, _ := json.Marshal(resp)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
