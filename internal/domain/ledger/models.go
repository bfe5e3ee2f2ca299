package ledger

import "time"

// Entry is one record of the shared financial journal. Entries are
// immutable once created; the engine only ever appends.
type Entry struct {
	ID          string    `json:"id"`
	Branch      string    `json:"branch"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	EntryDate   string    `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Coarse entry types shared with the rest of the accounting screens.
const (
	TypeSalary   = "salary"
	TypeMaterial = "material"
	TypeFixed    = "fixed"
	TypeOther    = "other"
)

type Summary struct {
	Branch        string             `json:"branch"`
	StartDate     string             `json:"startDate"`
	EndDate       string             `json:"endDate"`
	TotalsByType  map[string]float64 `json:"totalsByType"`
	TotalExpenses float64            `json:"totalExpenses"`
}
