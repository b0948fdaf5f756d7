package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanaopoku/church-admin-api/api/handlers"
	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return storage.NewStore(kv)
}

func newTestApp(t *testing.T) *handlers.App {
	t.Helper()
	a := &handlers.App{Store: newTestStore(t), Config: config.Config{}}
	a.Router = a.New()
	return a
}

func TestApp_HealthCheck(t *testing.T) {
	a := newTestApp(t)

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestApp_StorageHealth(t *testing.T) {
	a := newTestApp(t)

	req, err := http.NewRequest("GET", "/api/v1/storage/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	err = json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, true, resp["lastSaveOk"])
	assert.Equal(t, "", resp["lastSaveError"])
}

func TestApp_UnknownRouteReturns404(t *testing.T) {
	a := newTestApp(t)

	req, err := http.NewRequest("GET", "/api/v1/nope", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func newTestOrchestrator(t *testing.T) (*storage.Store, *crud.Orchestrator) {
	t.Helper()
	store := newTestStore(t)
	return store, crud.New(store)
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}
