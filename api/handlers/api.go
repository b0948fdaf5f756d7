package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/api"
	"github.com/nanaopoku/church-admin-api/api/scheduler"
	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/ledger"
	"github.com/nanaopoku/church-admin-api/mailer"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// App stores the router and the storage layer, so it can be reused
type App struct {
	Router    *mux.Router
	Store     *storage.Store
	Config    config.Config
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	orc := crud.New(a.Store)
	eng := ledger.New(a.Store)
	mail := mailer.New(a.Config.SendGridAPIKey, a.Config.EmailFrom, a.Config.EmailFromName)

	r := mux.NewRouter()

	m := Member{Store: a.Store, Orc: orc}
	e := Event{Store: a.Store, Orc: orc}
	t := Tithe{Store: a.Store, Orc: orc}
	c := Communication{Store: a.Store, Orc: orc, Mail: mail}
	d := Dues{Store: a.Store, Ledger: eng}
	st := Stats{Store: a.Store}
	f := FormSession{Orc: orc}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/members", api.Middleware(http.HandlerFunc(m.MembersHandler))).Methods("GET")
	apiCreate.Handle("/members", api.Middleware(http.HandlerFunc(m.CreateMemberHandler))).Methods("POST")
	apiCreate.Handle("/member/{member_id}", api.Middleware(http.HandlerFunc(m.MemberByIDHandler))).Methods("GET")
	apiCreate.Handle("/member/{member_id}", api.Middleware(http.HandlerFunc(m.UpdateMemberHandler))).Methods("PUT")
	apiCreate.Handle("/member/{member_id}", api.Middleware(http.HandlerFunc(m.DeleteMemberHandler))).Methods("DELETE")

	apiCreate.Handle("/events", api.Middleware(http.HandlerFunc(e.EventsHandler))).Methods("GET")
	apiCreate.Handle("/events", api.Middleware(http.HandlerFunc(e.CreateEventHandler))).Methods("POST")
	apiCreate.Handle("/event/{event_id}", api.Middleware(http.HandlerFunc(e.EventByIDHandler))).Methods("GET")
	apiCreate.Handle("/event/{event_id}", api.Middleware(http.HandlerFunc(e.UpdateEventHandler))).Methods("PUT")
	apiCreate.Handle("/event/{event_id}", api.Middleware(http.HandlerFunc(e.DeleteEventHandler))).Methods("DELETE")

	apiCreate.Handle("/tithes", api.Middleware(http.HandlerFunc(t.TithesHandler))).Methods("GET")
	apiCreate.Handle("/tithes", api.Middleware(http.HandlerFunc(t.CreateTitheHandler))).Methods("POST")
	apiCreate.Handle("/tithes/total", api.Middleware(http.HandlerFunc(t.TithesTotalHandler))).Methods("GET")
	apiCreate.Handle("/tithe/{tithe_id}", api.Middleware(http.HandlerFunc(t.TitheByIDHandler))).Methods("GET")
	apiCreate.Handle("/tithe/{tithe_id}", api.Middleware(http.HandlerFunc(t.UpdateTitheHandler))).Methods("PUT")
	apiCreate.Handle("/tithe/{tithe_id}", api.Middleware(http.HandlerFunc(t.DeleteTitheHandler))).Methods("DELETE")

	apiCreate.Handle("/communications", api.Middleware(http.HandlerFunc(c.CommunicationsHandler))).Methods("GET")
	apiCreate.Handle("/communications", api.Middleware(http.HandlerFunc(c.CreateCommunicationHandler))).Methods("POST")
	apiCreate.Handle("/communication/{communication_id}", api.Middleware(http.HandlerFunc(c.CommunicationByIDHandler))).Methods("GET")
	apiCreate.Handle("/communication/{communication_id}", api.Middleware(http.HandlerFunc(c.UpdateCommunicationHandler))).Methods("PUT")
	apiCreate.Handle("/communication/{communication_id}", api.Middleware(http.HandlerFunc(c.DeleteCommunicationHandler))).Methods("DELETE")

	apiCreate.Handle("/dues", api.Middleware(http.HandlerFunc(d.DuesHandler))).Methods("GET")
	apiCreate.Handle("/dues/years", api.Middleware(http.HandlerFunc(d.YearsHandler))).Methods("GET")
	apiCreate.Handle("/dues/ledger/{year}", api.Middleware(http.HandlerFunc(d.LedgerHandler))).Methods("GET")
	apiCreate.Handle("/dues/payment", api.Middleware(http.HandlerFunc(d.RecordPaymentHandler))).Methods("PUT")

	apiCreate.Handle("/stats", api.Middleware(http.HandlerFunc(st.StatsHandler))).Methods("GET")
	apiCreate.Handle("/storage/health", api.Middleware(http.HandlerFunc(a.storageHealthHandler))).Methods("GET")

	apiCreate.Handle("/form/{entity}/open", api.Middleware(http.HandlerFunc(f.OpenCreateHandler))).Methods("POST")
	apiCreate.Handle("/form/{entity}/{id}/open", api.Middleware(http.HandlerFunc(f.OpenEditHandler))).Methods("POST")
	apiCreate.Handle("/form/submit", api.Middleware(http.HandlerFunc(f.SubmitHandler))).Methods("POST")
	apiCreate.Handle("/form", api.Middleware(http.HandlerFunc(f.CancelHandler))).Methods("DELETE")

	return r
}

// Initialize is invoked by main to bind the durable storage cells and
// create a router
func (a *App) Initialize() error {
	kv, err := a.newKV()
	if err != nil {
		// if we fail to open the storage backend, then kill the process
		zap.S().With(err).Error("failed to open storage backend")
		return err
	}
	a.Store = storage.NewStore(kv)
	zap.S().Infow("church-admin-api storage is bound",
		"backend", a.Config.StorageBackend,
	)

	a.initializeRoutes()

	if a.Config.EventRemindersEnabled {
		mail := mailer.New(a.Config.SendGridAPIKey, a.Config.EmailFrom, a.Config.EmailFromName)
		a.scheduler = scheduler.New(a.Store, mail)
		a.scheduler.Start()
	}
	return nil
}

func (a *App) newKV() (storage.KV, error) {
	if a.Config.StorageBackend == "mongo" {
		ctx, cancel := api.WithQueryTimeout(context.Background())
		defer cancel()
		return storage.NewMongoKV(ctx, a.Config.DatabaseURL, a.Config.DatabaseName)
	}
	return storage.NewFileKV(a.Config.DataDir)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

// storageHealthHandler reports whether the last durable save succeeded.
// A failed save is not fatal (the in-memory state still serves reads) but
// the presentation layer may want to warn that a reload could lose data.
func (a *App) storageHealthHandler(w http.ResponseWriter, r *http.Request) {
	ok, lastError, lastSave := a.Store.Health().Status()
	b, err := json.Marshal(map[string]interface{}{
		"lastSaveOk":    ok,
		"lastSaveError": lastError,
		"lastSaveTime":  lastSave,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
