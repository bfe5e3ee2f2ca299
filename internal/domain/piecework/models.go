package piecework

// LineItem is a completed piece of work pulled from the orders system.
// Prices are not stored here; the operator supplies them at settlement
// time and only a settlement captures them durably.
type LineItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	CompletedAt string `json:"completedAt"`
}
