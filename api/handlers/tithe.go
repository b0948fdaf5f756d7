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

// Tithe exported for testing purposes
type Tithe struct {
	Store *storage.Store
	Orc   *crud.Orchestrator
}

// TithesHandler returns the tithes collection in insertion order
func (t Tithe) TithesHandler(w http.ResponseWriter, r *http.Request) {
	resp := t.Store.Tithes()
	if resp == nil {
		resp = []models.Tithe{}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TithesTotalHandler returns the running total across the entire tithes
// collection, not filtered by date or year
func (t Tithe) TithesTotalHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(map[string]float64{"total": t.Store.TithesTotal()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TitheByIDHandler returns a tithe by ID
func (t Tithe) TitheByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["tithe_id"])
	if err != nil {
		config.ErrorStatus("failed to parse tithe id", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := t.Store.TitheByID(id)
	if err != nil {
		config.ErrorStatus("failed to get tithe by ID", http.StatusNotFound, w, err)
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

// CreateTitheHandler records a new contribution through the form
// workflow. A missing date defaults to today. The donor name is stored
// as a copy; later member renames do not propagate.
func (t Tithe) CreateTitheHandler(w http.ResponseWriter, r *http.Request) {
	var form crud.TitheForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if form.Method == "" {
		form.Method = models.TitheMethodCash
	}
	if !form.Method.IsValid() {
		config.ErrorStatus("invalid tithe method", http.StatusBadRequest, w, fmt.Errorf("method %q is not valid", form.Method))
		return
	}

	if _, err := t.Orc.OpenCreate(models.EntityKindTithe); err != nil {
		config.ErrorStatus("failed to open tithe form", statusForError(err), w, err)
		return
	}
	record, err := t.Orc.Submit(form)
	if err != nil {
		t.Orc.Cancel()
		config.ErrorStatus("failed to create tithe", statusForError(err), w, err)
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

// UpdateTitheHandler replaces the tithe's fields in place, preserving
// its identity
func (t Tithe) UpdateTitheHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["tithe_id"])
	if err != nil {
		config.ErrorStatus("failed to parse tithe id", http.StatusBadRequest, w, err)
		return
	}

	var form crud.TitheForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !form.Method.IsValid() {
		config.ErrorStatus("invalid tithe method", http.StatusBadRequest, w, fmt.Errorf("method %q is not valid", form.Method))
		return
	}

	if _, err := t.Orc.OpenEdit(models.EntityKindTithe, id); err != nil {
		config.ErrorStatus("failed to open tithe form", statusForError(err), w, err)
		return
	}
	record, err := t.Orc.Submit(form)
	if err != nil {
		t.Orc.Cancel()
		config.ErrorStatus("failed to update tithe", statusForError(err), w, err)
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

// DeleteTitheHandler removes a tithe after the confirmation gate
func (t Tithe) DeleteTitheHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["tithe_id"])
	if err != nil {
		config.ErrorStatus("failed to parse tithe id", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := t.Orc.Delete(models.EntityKindTithe, id, deleteConfirmed(r))
	if err != nil {
		config.ErrorStatus("failed to delete tithe", statusForError(err), w, err)
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
