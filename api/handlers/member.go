package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// Member exported for testing purposes
type Member struct {
	Store *storage.Store
	Orc   *crud.Orchestrator
}

// MembersHandler returns the members collection in insertion order. An
// optional search term filters by case-insensitive substring match on
// name or residence.
func (m Member) MembersHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	resp := m.Store.SearchMembers(term)
	if resp == nil {
		resp = []models.Member{}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MemberByIDHandler returns a member by ID
func (m Member) MemberByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["member_id"])
	if err != nil {
		config.ErrorStatus("failed to parse member id", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := m.Store.MemberByID(id)
	if err != nil {
		config.ErrorStatus("failed to get member by ID", http.StatusNotFound, w, err)
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

// CreateMemberHandler creates a new member through the form workflow
func (m Member) CreateMemberHandler(w http.ResponseWriter, r *http.Request) {
	var form crud.MemberForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if form.Status == "" {
		form.Status = models.MemberStatusActive
	}
	if !form.Status.IsValid() {
		config.ErrorStatus("invalid member status", http.StatusBadRequest, w, fmt.Errorf("status %q is not valid", form.Status))
		return
	}

	if _, err := m.Orc.OpenCreate(models.EntityKindMember); err != nil {
		config.ErrorStatus("failed to open member form", statusForError(err), w, err)
		return
	}
	record, err := m.Orc.Submit(form)
	if err != nil {
		m.Orc.Cancel()
		config.ErrorStatus("failed to create member", statusForError(err), w, err)
		return
	}

	zap.S().Debugw("member created", "member", record)
	b, err := json.Marshal(record)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateMemberHandler replaces the member's fields in place, preserving
// its identity
func (m Member) UpdateMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["member_id"])
	if err != nil {
		config.ErrorStatus("failed to parse member id", http.StatusBadRequest, w, err)
		return
	}

	var form crud.MemberForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !form.Status.IsValid() {
		config.ErrorStatus("invalid member status", http.StatusBadRequest, w, fmt.Errorf("status %q is not valid", form.Status))
		return
	}

	if _, err := m.Orc.OpenEdit(models.EntityKindMember, id); err != nil {
		config.ErrorStatus("failed to open member form", statusForError(err), w, err)
		return
	}
	record, err := m.Orc.Submit(form)
	if err != nil {
		m.Orc.Cancel()
		config.ErrorStatus("failed to update member", statusForError(err), w, err)
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

// DeleteMemberHandler removes a member after the confirmation gate.
// Tithes and dues that reference the member keep their stale copies.
func (m Member) DeleteMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["member_id"])
	if err != nil {
		config.ErrorStatus("failed to parse member id", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := m.Orc.Delete(models.EntityKindMember, id, deleteConfirmed(r))
	if err != nil {
		config.ErrorStatus("failed to delete member", statusForError(err), w, err)
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
