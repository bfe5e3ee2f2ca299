package payroll

import (
	"fmt"

	"atelier/internal/domain/ledger"
)

// BuildSettlementEntry turns a validated calculation into the journal
// entry that records it. The amount is the net payout, the date is the
// last day of the settled month, and the full calculation rides along in
// the notes metadata.
func BuildSettlementEntry(branch string, calc Calculation) (ledger.Entry, error) {
	if err := calc.Validate(); err != nil {
		return ledger.Entry{}, err
	}
	monthEnd, err := MonthEnd(calc.Month)
	if err != nil {
		return ledger.Entry{}, err
	}

	category := CategoryMonthlySalary
	if calc.PayScheme == SchemePieceRate {
		category = CategoryPieceRate
	}

	items := make([]LineItemMeta, 0, len(calc.LineItems))
	for _, item := range calc.LineItems {
		items = append(items, LineItemMeta{ItemID: item.ID, ItemLabel: item.Label, Price: item.Price})
	}

	notes, err := EncodeMeta(Meta{
		Kind:                KindSettlement,
		WorkerID:            calc.WorkerID,
		WorkerName:          calc.WorkerName,
		Month:               calc.Month,
		PayScheme:           calc.PayScheme,
		BaseSalary:          calc.BaseSalary,
		OvertimeHours:       calc.OvertimeHours,
		OvertimeRate:        calc.OvertimeRate,
		OvertimeValue:       calc.OvertimeValue,
		PieceIncome:         calc.PieceIncome,
		SmallAdvances:       calc.SmallAdvances,
		DebtBeforeRepayment: calc.DebtBeforeRepayment,
		DebtRepayment:       calc.DebtRepayment,
		GrossIncome:         calc.GrossIncome,
		NetSalary:           calc.NetSalary,
		LineItems:           items,
	})
	if err != nil {
		return ledger.Entry{}, err
	}

	return ledger.Entry{
		Branch:      branch,
		Type:        ledger.TypeSalary,
		Category:    category,
		Description: fmt.Sprintf("Salary settlement for %s (%s)", calc.WorkerName, calc.Month),
		Amount:      calc.NetSalary,
		EntryDate:   monthEnd,
		Notes:       notes,
	}, nil
}

// BuildTransactionEntry records an advance or a debt issuance as a
// tagged journal entry. kind must be KindSmallAdvance or KindLargeDebt.
func BuildTransactionEntry(branch, kind, workerID, workerName, date string, amount float64, note string) (ledger.Entry, error) {
	if amount <= 0 {
		return ledger.Entry{}, ErrInvalidAmount
	}

	category := CategorySmallAdvance
	label := "Advance"
	if kind == KindLargeDebt {
		category = CategoryLargeDebt
		label = "Debt issued"
	}

	notes, err := EncodeMeta(Meta{
		Kind:       kind,
		WorkerID:   workerID,
		WorkerName: workerName,
		Month:      MonthOfDate(date),
		Amount:     amount,
		Note:       note,
	})
	if err != nil {
		return ledger.Entry{}, err
	}

	return ledger.Entry{
		Branch:      branch,
		Type:        ledger.TypeSalary,
		Category:    category,
		Description: fmt.Sprintf("%s for %s", label, workerName),
		Amount:      amount,
		EntryDate:   date,
		Notes:       notes,
	}, nil
}
