package payroll

const (
	SchemeFixed     = "fixed"
	SchemePieceRate = "piece_rate"

	// Fallback category vocabulary for legacy untagged entries. These
	// strings are shared with existing journal data and must not change
	// without a migration.
	CategoryAdvance       = "advance"
	CategorySmallAdvance  = "small_advance"
	CategoryDebt          = "debt"
	CategoryLargeDebt     = "large_debt"
	CategoryDeduction     = "deduction"
	CategoryMonthlySalary = "monthly_salary"
	CategoryPieceRate     = "piece_rate"
)
