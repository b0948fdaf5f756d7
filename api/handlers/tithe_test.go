package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/nanaopoku/church-admin-api/api/handlers"
	"github.com/nanaopoku/church-admin-api/models"
)

func TestTithe_TithesTotalHandler(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	h := handlers.Tithe{Store: store, Orc: orc}

	req, err := http.NewRequest("GET", "/api/v1/tithes/total", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.TithesTotalHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"total": 350}`, rr.Body.String())
}

func TestTithe_TotalRecomputesAfterCreateAndDelete(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	h := handlers.Tithe{Store: store, Orc: orc}

	total := func() float64 {
		req, err := http.NewRequest("GET", "/api/v1/tithes/total", nil)
		if err != nil {
			t.Fatal(err)
		}
		rr := httptest.NewRecorder()
		http.HandlerFunc(h.TithesTotalHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]float64
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp["total"]
	}

	assert.Equal(t, 350.0, total())

	body, _ := json.Marshal(map[string]string{
		"donor": "Kwame Mensah", "amount": "75.50", "method": "Mobile Money",
	})
	req, err := http.NewRequest("POST", "/api/v1/tithes", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.CreateTitheHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Tithe
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, 425.5, total())

	delReq, err := http.NewRequest("DELETE", "/api/v1/tithe/x?confirm=true", nil)
	if err != nil {
		t.Fatal(err)
	}
	delReq = mux.SetURLVars(delReq, map[string]string{"tithe_id": jsonID(created.ID)})
	rr = httptest.NewRecorder()
	http.HandlerFunc(h.DeleteTitheHandler).ServeHTTP(rr, delReq)
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 350.0, total())
}

func TestTithe_CreateTitheHandlerDefaultsDateAndMethod(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	h := handlers.Tithe{Store: store, Orc: orc}

	body, _ := json.Marshal(map[string]string{"donor": "Kwame Mensah", "amount": "20"})
	req, err := http.NewRequest("POST", "/api/v1/tithes", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.CreateTitheHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Tithe
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, models.TitheMethodCash, created.Method)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.Date)
}

func TestTithe_CreateTitheHandlerInvalidMethod(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	h := handlers.Tithe{Store: store, Orc: orc}

	body, _ := json.Marshal(map[string]string{"donor": "Kwame Mensah", "method": "Barter"})
	req, err := http.NewRequest("POST", "/api/v1/tithes", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.CreateTitheHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTithe_CreateTitheHandlerCoercesInvalidAmount(t *testing.T) {
	store, orc := newTestOrchestrator(t)
	h := handlers.Tithe{Store: store, Orc: orc}

	body, _ := json.Marshal(map[string]string{"donor": "Kwame Mensah", "amount": "abc"})
	req, err := http.NewRequest("POST", "/api/v1/tithes", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.CreateTitheHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Tithe
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, 0.0, created.Amount)
}
