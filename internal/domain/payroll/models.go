package payroll

import "atelier/internal/domain/workers"

// Operation is one advance or debt movement shown in a worker's month
// drill-down.
type Operation struct {
	EntryID string  `json:"entryId"`
	Class   Class   `json:"class"`
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Note    string  `json:"note,omitempty"`
}

// PieceItem is one completed work item available for pricing in the
// selected month.
type PieceItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	CompletedAt string `json:"completedAt"`
}

// WorkerSummary is the per-worker slice of the month view: the current
// balances plus whatever the last settlement recorded about defaults.
type WorkerSummary struct {
	Worker            workers.Identity `json:"worker"`
	OutstandingDebt   float64          `json:"outstandingDebt"`
	MonthAdvances     float64          `json:"monthAdvances"`
	DefaultScheme     string           `json:"defaultScheme"`
	DefaultBaseSalary float64          `json:"defaultBaseSalary"`
	LastSettledMonth  string           `json:"lastSettledMonth,omitempty"`
	SettledThisMonth  bool             `json:"settledThisMonth"`
	Operations        []Operation      `json:"operations"`
	PieceItems        []PieceItem      `json:"pieceItems,omitempty"`
}

// MonthView is the full reconciliation screen for one branch and month.
// Partial is set when a collaborator read failed and a section came back
// empty instead of blocking the whole view.
type MonthView struct {
	Branch  string             `json:"branch"`
	Month   string             `json:"month"`
	Workers []WorkerSummary    `json:"workers"`
	Totals  map[string]float64 `json:"totals"`
	Partial bool               `json:"partial,omitempty"`
}
