package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/nanaopoku/church-admin-api/api/handlers"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/models"
)

func TestFormSession_OpenCreateReturnsDefaults(t *testing.T) {
	_, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}

	req, err := http.NewRequest("POST", "/api/v1/form/member/open", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"entity": "member"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.OpenCreateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Kind models.EntityKind `json:"kind"`
		Form crud.MemberForm   `json:"form"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.EntityKindMember, resp.Kind)
	assert.Equal(t, models.MemberStatusActive, resp.Form.Status)
}

func TestFormSession_OpenCreateUnknownEntity(t *testing.T) {
	_, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}

	req, err := http.NewRequest("POST", "/api/v1/form/widget/open", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"entity": "widget"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.OpenCreateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFormSession_SecondOpenConflicts(t *testing.T) {
	_, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}

	open := func() *httptest.ResponseRecorder {
		req, err := http.NewRequest("POST", "/api/v1/form/member/open", nil)
		if err != nil {
			t.Fatal(err)
		}
		req = mux.SetURLVars(req, map[string]string{"entity": "member"})
		rr := httptest.NewRecorder()
		http.HandlerFunc(f.OpenCreateHandler).ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, open().Code)
	assert.Equal(t, http.StatusConflict, open().Code)
}

func TestFormSession_OpenEditPrefills(t *testing.T) {
	_, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}

	req, err := http.NewRequest("POST", "/api/v1/form/member/1/open", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"entity": "member", "id": "1"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(f.OpenEditHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Form crud.MemberForm `json:"form"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "John Smith", resp.Form.Name)
}

func TestFormSession_SubmitWithoutSession(t *testing.T) {
	_, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}

	req, err := http.NewRequest("POST", "/api/v1/form/submit", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(f.SubmitHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFormSession_OpenSubmitFlow(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}
	before := len(store.Events())

	openReq, err := http.NewRequest("POST", "/api/v1/form/event/open", nil)
	if err != nil {
		t.Fatal(err)
	}
	openReq = mux.SetURLVars(openReq, map[string]string{"entity": "event"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(f.OpenCreateHandler).ServeHTTP(rr, openReq)
	assert.Equal(t, http.StatusOK, rr.Code)

	body, _ := json.Marshal(map[string]string{
		"title":    "Harvest Service",
		"date":     "2025-11-02",
		"time":     "9:00 AM",
		"location": "Main Sanctuary",
		"type":     "Service",
	})
	submitReq, err := http.NewRequest("POST", "/api/v1/form/submit", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rr = httptest.NewRecorder()
	http.HandlerFunc(f.SubmitHandler).ServeHTTP(rr, submitReq)
	assert.Equal(t, http.StatusOK, rr.Code)

	var created models.Event
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, before+1, len(store.Events()))

	// the session closed on submit, so a fresh open succeeds
	rr = httptest.NewRecorder()
	openReq2, err := http.NewRequest("POST", "/api/v1/form/event/open", nil)
	if err != nil {
		t.Fatal(err)
	}
	openReq2 = mux.SetURLVars(openReq2, map[string]string{"entity": "event"})
	http.HandlerFunc(f.OpenCreateHandler).ServeHTTP(rr, openReq2)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestFormSession_CancelDiscards(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	f := handlers.FormSession{Orc: orc}
	before := len(store.Members())

	openReq, err := http.NewRequest("POST", "/api/v1/form/member/open", nil)
	if err != nil {
		t.Fatal(err)
	}
	openReq = mux.SetURLVars(openReq, map[string]string{"entity": "member"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(f.OpenCreateHandler).ServeHTTP(rr, openReq)
	assert.Equal(t, http.StatusOK, rr.Code)

	cancelReq, err := http.NewRequest("DELETE", "/api/v1/form", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr = httptest.NewRecorder()
	http.HandlerFunc(f.CancelHandler).ServeHTTP(rr, cancelReq)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"cancelled": true}`, rr.Body.String())
	assert.Equal(t, before, len(store.Members()))

	// cancelling with nothing open is still a success
	rr = httptest.NewRecorder()
	cancelAgain, err := http.NewRequest("DELETE", "/api/v1/form", nil)
	if err != nil {
		t.Fatal(err)
	}
	http.HandlerFunc(f.CancelHandler).ServeHTTP(rr, cancelAgain)
	assert.Equal(t, http.StatusOK, rr.Code)
}
