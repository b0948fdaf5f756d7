package models

// TitheMethod represents the standardized contribution methods
type TitheMethod string

// Predefined TitheMethod values
const (
	TitheMethodCash        TitheMethod = "Cash"
	TitheMethodCheck       TitheMethod = "Check"
	TitheMethodCreditCard  TitheMethod = "Credit Card"
	TitheMethodOnline      TitheMethod = "Online"
	TitheMethodMobileMoney TitheMethod = "Mobile Money"
)

// ValidTitheMethods returns all valid TitheMethod values
func ValidTitheMethods() []TitheMethod {
	return []TitheMethod{
		TitheMethodCash,
		TitheMethodCheck,
		TitheMethodCreditCard,
		TitheMethodOnline,
		TitheMethodMobileMoney,
	}
}

// IsValid checks if the TitheMethod value is one of the predefined constants
func (m TitheMethod) IsValid() bool {
	for _, valid := range ValidTitheMethods() {
		if m == valid {
			return true
		}
	}
	return false
}

// Tithe holds the structure for one record in the tithes collection.
// Donor is a point-in-time copy of the member's name, not a foreign key;
// renaming the member later does not propagate here.
type Tithe struct {
	ID     int64       `json:"id"`
	Donor  string      `json:"donor"`
	Amount float64     `json:"amount"`
	Date   string      `json:"date"`
	Method TitheMethod `json:"method"`
}
