package payroll

import (
	"errors"
	"strings"
	"testing"

	"atelier/internal/domain/ledger"
)

func TestBuildSettlementEntryFixed(t *testing.T) {
	calc := ComputeFixed(FixedInput{
		WorkerID:      "w1",
		WorkerName:    "Anna",
		Month:         "2026-02",
		BaseSalary:    800,
		OvertimeHours: 2,
		OvertimeRate:  12.5,
	})

	entry, err := BuildSettlementEntry("tailoring", calc)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	if entry.Type != ledger.TypeSalary {
		t.Fatalf("expected salary type, got %q", entry.Type)
	}
	if entry.Category != CategoryMonthlySalary {
		t.Fatalf("expected monthly_salary category, got %q", entry.Category)
	}
	if entry.EntryDate != "2026-02-28" {
		t.Fatalf("expected month-end date, got %q", entry.EntryDate)
	}
	if entry.Amount != calc.NetSalary {
		t.Fatalf("expected amount to equal net %v, got %v", calc.NetSalary, entry.Amount)
	}
	if !strings.Contains(entry.Description, "Anna") || !strings.Contains(entry.Description, "2026-02") {
		t.Fatalf("unexpected description %q", entry.Description)
	}

	meta, ok := DecodeMeta(entry.Notes)
	if !ok || meta.Kind != KindSettlement {
		t.Fatalf("expected settlement metadata, got %+v ok=%v", meta, ok)
	}
	if meta.GrossIncome != calc.GrossIncome || meta.NetSalary != calc.NetSalary {
		t.Fatalf("metadata does not mirror calculation: %+v", meta)
	}
}

func TestBuildSettlementEntryPieceRate(t *testing.T) {
	calc := ComputePieceRate(PieceRateInput{
		WorkerID:   "w1",
		WorkerName: "Anna",
		Month:      "2026-03",
		Items:      []PricedItem{{ID: "i1", Label: "Dress", Price: 120}},
	})

	entry, err := BuildSettlementEntry("tailoring", calc)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if entry.Category != CategoryPieceRate {
		t.Fatalf("expected piece_rate category, got %q", entry.Category)
	}

	meta, _ := DecodeMeta(entry.Notes)
	if len(meta.LineItems) != 1 || meta.LineItems[0].ItemLabel != "Dress" || meta.LineItems[0].Price != 120 {
		t.Fatalf("line items not carried: %+v", meta.LineItems)
	}
}

func TestBuildSettlementEntryRejectsNegativeNet(t *testing.T) {
	calc := ComputeFixed(FixedInput{BaseSalary: 100, SmallAdvances: 300})
	calc.Month = "2026-02"
	if _, err := BuildSettlementEntry("tailoring", calc); !errors.Is(err, ErrNegativeNet) {
		t.Fatalf("expected ErrNegativeNet, got %v", err)
	}
}

func TestBuildTransactionEntry(t *testing.T) {
	entry, err := BuildTransactionEntry("tailoring", KindSmallAdvance, "w1", "Anna", "2026-03-10", 75, "for fabric")
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if entry.Category != CategorySmallAdvance || entry.Amount != 75 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	meta, ok := DecodeMeta(entry.Notes)
	if !ok || meta.Kind != KindSmallAdvance || meta.Month != "2026-03" || meta.Note != "for fabric" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestBuildTransactionEntryDebtCategory(t *testing.T) {
	entry, err := BuildTransactionEntry("tailoring", KindLargeDebt, "w1", "Anna", "2026-03-10", 400, "")
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if entry.Category != CategoryLargeDebt {
		t.Fatalf("expected large_debt category, got %q", entry.Category)
	}
}

func TestBuildTransactionEntryRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -10} {
		if _, err := BuildTransactionEntry("tailoring", KindSmallAdvance, "w1", "Anna", "2026-03-10", amount, ""); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %v, got %v", amount, err)
		}
	}
}
