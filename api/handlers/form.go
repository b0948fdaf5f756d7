package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/models"
)

// FormSession exposes the modal form workflow directly: open a create or
// edit session, submit it, or cancel it. One session at a time; opening
// while a session is open is rejected.
type FormSession struct {
	Orc *crud.Orchestrator
}

type formOpenResponse struct {
	Kind models.EntityKind `json:"kind"`
	Form crud.Form         `json:"form"`
}

// OpenCreateHandler opens a create session and returns the form
// pre-populated with the entity's field defaults
func (f FormSession) OpenCreateHandler(w http.ResponseWriter, r *http.Request) {
	kind := models.EntityKind(mux.Vars(r)["entity"])

	form, err := f.Orc.OpenCreate(kind)
	if err != nil {
		config.ErrorStatus("failed to open form", statusForError(err), w, err)
		return
	}

	b, err := json.Marshal(formOpenResponse{Kind: kind, Form: form})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// OpenEditHandler opens an edit session and returns the form
// pre-populated from the existing record
func (f FormSession) OpenEditHandler(w http.ResponseWriter, r *http.Request) {
	kind := models.EntityKind(mux.Vars(r)["entity"])
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("failed to parse id", http.StatusBadRequest, w, err)
		return
	}

	form, err := f.Orc.OpenEdit(kind, id)
	if err != nil {
		config.ErrorStatus("failed to open form", statusForError(err), w, err)
		return
	}

	b, err := json.Marshal(formOpenResponse{Kind: kind, Form: form})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SubmitHandler applies the submitted form values to the open session
// and returns the resulting record
func (f FormSession) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	kind, open := f.Orc.Open()
	if !open {
		config.ErrorStatus("failed to submit form", http.StatusBadRequest, w, crud.ErrNoSession)
		return
	}

	form, err := decodeForm(kind, r)
	if err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	record, err := f.Orc.Submit(form)
	if err != nil {
		config.ErrorStatus("failed to submit form", statusForError(err), w, err)
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

// CancelHandler discards the in-progress form without touching any
// collection. Cancelling with nothing open is still a success.
func (f FormSession) CancelHandler(w http.ResponseWriter, r *http.Request) {
	f.Orc.Cancel()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"cancelled": true}`))
}

func decodeForm(kind models.EntityKind, r *http.Request) (crud.Form, error) {
	switch kind {
	case models.EntityKindMember:
		var form crud.MemberForm
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	case models.EntityKindEvent:
		var form crud.EventForm
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	case models.EntityKindTithe:
		var form crud.TitheForm
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	case models.EntityKindCommunication:
		var form crud.CommunicationForm
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	}
	return nil, crud.ErrUnknownKind
}
