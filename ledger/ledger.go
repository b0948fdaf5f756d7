// Package ledger derives the year-by-month dues grid: who owes what,
// per member per year, with mid-year enrollment handled by marking the
// months before the join month not-applicable.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// MonthlyRate is the fixed per-month due in GH₵, a policy constant
const MonthlyRate = 50.0

// EpochYear is the first year dues were tracked
const EpochYear = 2012

// ErrInvalidMonth is returned for a month key outside jan..dec
var ErrInvalidMonth = errors.New("invalid month key")

// ErrNegativeAmount is returned when a payment amount is below zero
var ErrNegativeAmount = errors.New("amount must not be negative")

// MonthCell is one month in a member's row of the grid. Months before a
// same-year join month are not applicable: never editable, never counted
// toward the expected amount.
type MonthCell struct {
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	Applicable bool    `json:"applicable"`
}

// MemberRow is one member's derived ledger row for a year
type MemberRow struct {
	MemberID   int64       `json:"memberId"`
	MemberName string      `json:"memberName"`
	Year       int         `json:"year"`
	Months     []MonthCell `json:"months"`
	Expected   float64     `json:"expected"`
	Paid       float64     `json:"paid"`
	Arrears    float64     `json:"arrears"`
	FullyPaid  bool        `json:"fullyPaid"`
	Status     string      `json:"status"`
}

// Engine derives ledger rows from the member and dues collections and
// records payments back through the store.
type Engine struct {
	store *storage.Store
}

// New returns an engine over the given store
func New(store *storage.Store) *Engine {
	return &Engine{store: store}
}

// Years enumerates the selectable years, epoch through the current
// calendar year, newest first.
func (e *Engine) Years() []int {
	current := time.Now().Year()
	years := make([]int, 0, current-EpochYear+1)
	for y := current; y >= EpochYear; y-- {
		years = append(years, y)
	}
	return years
}

// BuildYear derives the ledger for the selected year. A member appears
// iff their join year is at or before the selected year. A year with no
// eligible members yields an empty grid.
func (e *Engine) BuildYear(year int) []MemberRow {
	rows := []MemberRow{}
	for _, m := range e.store.Members() {
		joinYear, joinMonth, ok := parseJoinDate(m.JoinDate)
		if !ok || joinYear > year {
			continue
		}
		record, found := e.store.DuesByMemberYear(m.ID, year)
		if !found {
			// zero-filled virtual record for display; nothing is
			// persisted until a payment is entered
			record = models.DuesRecord{
				MemberID:   m.ID,
				MemberName: m.Name,
				Year:       year,
				Months:     models.ZeroMonths(),
			}
		}
		rows = append(rows, buildRow(m, record, year, joinYear, joinMonth))
	}
	return rows
}

func buildRow(m models.Member, record models.DuesRecord, year, joinYear, joinMonth int) MemberRow {
	activeMonths := 12
	if joinYear == year {
		activeMonths = 12 - joinMonth
	}

	months := make([]MonthCell, 0, len(models.MonthKeys))
	for i, key := range models.MonthKeys {
		months = append(months, MonthCell{
			Month:      key,
			Amount:     record.Months[key],
			Applicable: !(joinYear == year && i < joinMonth),
		})
	}

	expected := float64(activeMonths) * MonthlyRate
	paid := record.Months.Total()
	arrears := expected - paid
	if arrears < 0 {
		arrears = 0
	}

	return MemberRow{
		MemberID:   m.ID,
		MemberName: m.Name,
		Year:       year,
		Months:     months,
		Expected:   expected,
		Paid:       paid,
		Arrears:    arrears,
		FullyPaid:  arrears == 0,
		Status:     statusFor(arrears),
	}
}

func statusFor(arrears float64) string {
	if arrears == 0 {
		return "Fully Paid"
	}
	return fmt.Sprintf("Owes GH₵%.2f", arrears)
}

// RecordPayment upserts one month's amount for (memberID, year). When no
// record exists yet, one is created with the other eleven months zeroed;
// otherwise only the given month is replaced. Never produces a second
// record for the same (memberID, year) key.
func (e *Engine) RecordPayment(memberID int64, year int, month string, amount float64) (models.DuesRecord, error) {
	if !validMonth(month) {
		return models.DuesRecord{}, ErrInvalidMonth
	}
	if amount < 0 {
		return models.DuesRecord{}, ErrNegativeAmount
	}

	member, err := e.store.MemberByID(memberID)
	if err != nil {
		return models.DuesRecord{}, err
	}

	if _, found := e.store.DuesByMemberYear(memberID, year); found {
		if err := e.store.SetDuesMonth(memberID, year, month, amount); err != nil {
			return models.DuesRecord{}, err
		}
		record, _ := e.store.DuesByMemberYear(memberID, year)
		return record, nil
	}

	months := models.ZeroMonths()
	months[month] = amount
	return e.store.InsertDuesRecord(models.DuesRecord{
		MemberID:   memberID,
		MemberName: member.Name,
		Year:       year,
		Months:     months,
	}), nil
}

func validMonth(month string) bool {
	for _, k := range models.MonthKeys {
		if k == month {
			return true
		}
	}
	return false
}

// parseJoinDate extracts the join year and 0-based join month from an
// ISO 8601 date. Unparseable dates exclude the member from the grid.
func parseJoinDate(date string) (year, month int, ok bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), int(t.Month()) - 1, true
}
