package models

// MonthKeys lists the twelve calendar-month keys in order. Ledger math
// indexes into this slice with 0-based month offsets.
var MonthKeys = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// MonthAmounts maps each calendar-month key to the amount paid that month.
type MonthAmounts map[string]float64

// ZeroMonths returns a fresh mapping with all twelve months at 0.
func ZeroMonths() MonthAmounts {
	m := make(MonthAmounts, len(MonthKeys))
	for _, k := range MonthKeys {
		m[k] = 0
	}
	return m
}

// Total sums the stored month values. Missing keys count as 0.
func (m MonthAmounts) Total() float64 {
	var sum float64
	for _, k := range MonthKeys {
		sum += m[k]
	}
	return sum
}

// DuesRecord holds the structure for one record in the dues collection.
// MemberName is a point-in-time copy and is not kept in sync with the
// member record. At most one record exists per (memberID, year) pair;
// the ledger engine upserts against that key.
type DuesRecord struct {
	ID         int64        `json:"id"`
	MemberID   int64        `json:"memberId"`
	MemberName string       `json:"memberName"`
	Year       int          `json:"year"`
	Months     MonthAmounts `json:"months"`
}
