package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/mailer"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// Communication exported for testing purposes
type Communication struct {
	Store *storage.Store
	Orc   *crud.Orchestrator
	Mail  *mailer.Mailer
}

// communicationResponse wraps a created communication with the outcome
// of an optional email dispatch
type communicationResponse struct {
	models.Communication
	EmailsSent int    `json:"emailsSent,omitempty"`
	SendError  string `json:"sendError,omitempty"`
}

// CommunicationsHandler returns the communications collection in
// insertion order
func (c Communication) CommunicationsHandler(w http.ResponseWriter, r *http.Request) {
	resp := c.Store.Communications()
	if resp == nil {
		resp = []models.Communication{}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CommunicationByIDHandler returns a communication by ID
func (c Communication) CommunicationByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["communication_id"])
	if err != nil {
		config.ErrorStatus("failed to parse communication id", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := c.Store.CommunicationByID(id)
	if err != nil {
		config.ErrorStatus("failed to get communication by ID", http.StatusNotFound, w, err)
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

// CreateCommunicationHandler creates a communication through the form
// workflow. With ?send=true and a configured mailer, the communication
// is also emailed to its recipient group; a failed dispatch never fails
// the create.
func (c Communication) CreateCommunicationHandler(w http.ResponseWriter, r *http.Request) {
	var form crud.CommunicationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if form.Type == "" {
		form.Type = models.CommunicationTypeNewsletter
	}
	if form.Recipients == "" {
		form.Recipients = models.RecipientGroupAllMembers
	}
	if !form.Type.IsValid() {
		config.ErrorStatus("invalid communication type", http.StatusBadRequest, w, fmt.Errorf("type %q is not valid", form.Type))
		return
	}
	if !form.Recipients.IsValid() {
		config.ErrorStatus("invalid recipient group", http.StatusBadRequest, w, fmt.Errorf("recipients %q is not valid", form.Recipients))
		return
	}

	if _, err := c.Orc.OpenCreate(models.EntityKindCommunication); err != nil {
		config.ErrorStatus("failed to open communication form", statusForError(err), w, err)
		return
	}
	record, err := c.Orc.Submit(form)
	if err != nil {
		c.Orc.Cancel()
		config.ErrorStatus("failed to create communication", statusForError(err), w, err)
		return
	}

	comm := record.(models.Communication)
	resp := communicationResponse{Communication: comm}
	if r.URL.Query().Get("send") == "true" && c.Mail.Enabled() {
		sent, sendErr := c.Mail.Dispatch(comm, c.Store.Members())
		resp.EmailsSent = sent
		if sendErr != nil {
			resp.SendError = sendErr.Error()
		}
		zap.S().Infow("communication dispatched",
			"communicationId", comm.ID,
			"recipients", comm.Recipients,
			"sent", sent,
		)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateCommunicationHandler replaces the communication's fields in
// place, preserving its identity and creation date
func (c Communication) UpdateCommunicationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["communication_id"])
	if err != nil {
		config.ErrorStatus("failed to parse communication id", http.StatusBadRequest, w, err)
		return
	}

	var form crud.CommunicationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !form.Type.IsValid() {
		config.ErrorStatus("invalid communication type", http.StatusBadRequest, w, fmt.Errorf("type %q is not valid", form.Type))
		return
	}
	if !form.Recipients.IsValid() {
		config.ErrorStatus("invalid recipient group", http.StatusBadRequest, w, fmt.Errorf("recipients %q is not valid", form.Recipients))
		return
	}

	if _, err := c.Orc.OpenEdit(models.EntityKindCommunication, id); err != nil {
		config.ErrorStatus("failed to open communication form", statusForError(err), w, err)
		return
	}
	record, err := c.Orc.Submit(form)
	if err != nil {
		c.Orc.Cancel()
		config.ErrorStatus("failed to update communication", statusForError(err), w, err)
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

// DeleteCommunicationHandler removes a communication after the
// confirmation gate
func (c Communication) DeleteCommunicationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["communication_id"])
	if err != nil {
		config.ErrorStatus("failed to parse communication id", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := c.Orc.Delete(models.EntityKindCommunication, id, deleteConfirmed(r))
	if err != nil {
		config.ErrorStatus("failed to delete communication", statusForError(err), w, err)
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
