package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// Stats exported for testing purposes
type Stats struct {
	Store *storage.Store
}

// StatsResponse holds the dashboard card values
type StatsResponse struct {
	TotalMembers   int     `json:"totalMembers"`
	ActiveMembers  int     `json:"activeMembers"`
	NewThisMonth   int     `json:"newThisMonth"`
	UpcomingEvents int     `json:"upcomingEvents"`
	TotalTithes    float64 `json:"totalTithes"`
}

// StatsHandler returns the dashboard aggregates. New-this-month is
// evaluated against wall-clock now at request time, not a frozen
// snapshot.
func (s Stats) StatsHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	resp := StatsResponse{TotalTithes: s.Store.TithesTotal()}

	for _, m := range s.Store.Members() {
		resp.TotalMembers++
		if m.Status == models.MemberStatusActive {
			resp.ActiveMembers++
		}
		if joined, err := time.Parse("2006-01-02", m.JoinDate); err == nil {
			if joined.Month() == now.Month() && joined.Year() == now.Year() {
				resp.NewThisMonth++
			}
		}
	}

	today := now.Format("2006-01-02")
	for _, e := range s.Store.Events() {
		if e.Date >= today {
			resp.UpcomingEvents++
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
