package payroll

import "github.com/shopspring/decimal"

// OutstandingDebt folds the complete history into a worker's current
// balance: everything issued minus everything repaid through settlements,
// floored at zero. No state is kept between calls; the result depends
// only on the journal slice passed in.
func OutstandingDebt(entries []ClassifiedEntry, workerID string) float64 {
	if workerID == "" {
		return 0
	}
	issued := decimal.Zero
	repaid := decimal.Zero
	for _, classified := range entries {
		if classified.WorkerID != workerID {
			continue
		}
		switch classified.Class {
		case ClassDebtIssuance:
			issued = issued.Add(decimal.NewFromFloat(entryAmount(classified)))
		case ClassSettlement:
			if classified.Meta != nil {
				repaid = repaid.Add(decimal.NewFromFloat(classified.Meta.DebtRepayment))
			}
		}
	}
	outstanding := issued.Sub(repaid)
	if outstanding.IsNegative() {
		return 0
	}
	return round2(outstanding)
}

// MonthAdvances sums a worker's small advances inside one month. Unlike
// debt, advances reset every period.
func MonthAdvances(entries []ClassifiedEntry, workerID, month string) float64 {
	if workerID == "" {
		return 0
	}
	total := decimal.Zero
	for _, classified := range entries {
		if classified.Class != ClassSmallAdvance || classified.WorkerID != workerID {
			continue
		}
		if entryMonth(classified) != month {
			continue
		}
		total = total.Add(decimal.NewFromFloat(entryAmount(classified)))
	}
	return round2(total)
}

// LatestSettlement returns the most recent settlement payload for a
// worker, ordered by entry date with the journal creation time as
// tie-break. Nil when the worker has never been settled.
func LatestSettlement(entries []ClassifiedEntry, workerID string) *Meta {
	var best *ClassifiedEntry
	for i := range entries {
		classified := &entries[i]
		if classified.Class != ClassSettlement || classified.WorkerID != workerID || classified.Meta == nil {
			continue
		}
		if best == nil || newerThan(classified, best) {
			best = classified
		}
	}
	if best == nil {
		return nil
	}
	return best.Meta
}

func newerThan(a, b *ClassifiedEntry) bool {
	if a.Entry.EntryDate != b.Entry.EntryDate {
		return a.Entry.EntryDate > b.Entry.EntryDate
	}
	return a.Entry.CreatedAt.After(b.Entry.CreatedAt)
}

// entryAmount prefers the tagged amount over the raw journal amount so
// that manual edits to the visible figure cannot skew aggregates.
func entryAmount(classified ClassifiedEntry) float64 {
	if classified.Meta != nil && classified.Meta.Amount != 0 {
		return classified.Meta.Amount
	}
	return classified.Entry.Amount
}

// entryMonth resolves the month an entry belongs to from its date,
// falling back to the tagged month when the date cannot be parsed.
func entryMonth(classified ClassifiedEntry) string {
	if month := MonthOfDate(classified.Entry.EntryDate); month != "" {
		return month
	}
	if classified.Meta != nil {
		return classified.Meta.Month
	}
	return ""
}
