package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/config"
	"github.com/nanaopoku/church-admin-api/ledger"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// Dues exported for testing purposes
type Dues struct {
	Store  *storage.Store
	Ledger *ledger.Engine
}

// duesPaymentRequest carries one cell edit of the ledger grid. Amount
// arrives as whatever the input widget hands back, number or text; the
// core does its own parsing and treats cleared/invalid input as 0.
type duesPaymentRequest struct {
	MemberID int64       `json:"memberId"`
	Year     int         `json:"year"`
	Month    string      `json:"month"`
	Amount   interface{} `json:"amount"`
}

// DuesHandler returns the raw dues collection in insertion order
func (d Dues) DuesHandler(w http.ResponseWriter, r *http.Request) {
	resp := d.Store.DuesRecords()
	if resp == nil {
		resp = []models.DuesRecord{}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// YearsHandler returns the selectable ledger years, newest first
func (d Dues) YearsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(d.Ledger.Years())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LedgerHandler derives the month-by-month grid for the selected year.
// A year with no eligible members yields an empty grid, not an error.
func (d Dues) LedgerHandler(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		config.ErrorStatus("failed to parse year", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(d.Ledger.BuildYear(year))
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RecordPaymentHandler upserts one month's payment for a member-year.
// The first payment for a pair creates the record with the other eleven
// months zeroed; later payments mutate the same record.
func (d Dues) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req duesPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	amount := coerceAmount(req.Amount)
	record, err := d.Ledger.RecordPayment(req.MemberID, req.Year, req.Month, amount)
	if err != nil {
		config.ErrorStatus("failed to record dues payment", paymentErrorStatus(err), w, err)
		return
	}

	zap.S().Debugw("dues payment recorded",
		"memberId", req.MemberID,
		"year", req.Year,
		"month", req.Month,
		"amount", amount,
	)
	b, err := json.Marshal(record)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func paymentErrorStatus(err error) int {
	switch err {
	case ledger.ErrInvalidMonth, ledger.ErrNegativeAmount:
		return http.StatusBadRequest
	case storage.ErrNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// coerceAmount accepts the amount as a JSON number or string. A cleared
// input ("" or null) and unparseable text both count as 0.
func coerceAmount(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
