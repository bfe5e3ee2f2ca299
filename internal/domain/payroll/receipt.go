package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"atelier/internal/platform/crypto"
)

// Receipts renders settlement entries as PDF payout receipts. Each
// generated receipt is also archived on disk, encrypted when a data key
// is configured.
type Receipts struct {
	journal Journal
	crypto  *crypto.Service
	dir     string
}

func NewReceipts(journal Journal, cryptoSvc *crypto.Service, dir string) *Receipts {
	return &Receipts{journal: journal, crypto: cryptoSvc, dir: dir}
}

// Generate renders the receipt for one settlement entry. Entries without
// settlement metadata are rejected with ErrNotSettlement.
func (r *Receipts) Generate(ctx context.Context, entryID string) ([]byte, error) {
	entry, err := r.journal.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	meta, ok := DecodeMeta(entry.Notes)
	if !ok || meta.Kind != KindSettlement {
		return nil, ErrNotSettlement
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Salary Settlement Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	receiptRow(pdf, "Worker", meta.WorkerName)
	receiptRow(pdf, "Month", meta.Month)
	receiptRow(pdf, "Scheme", meta.PayScheme)
	receiptRow(pdf, "Entry date", entry.EntryDate)
	pdf.Ln(4)

	if meta.PayScheme == SchemePieceRate {
		receiptAmountRow(pdf, "Piece income", meta.PieceIncome)
		for _, item := range meta.LineItems {
			receiptAmountRow(pdf, "  "+item.ItemLabel, item.Price)
		}
	} else {
		receiptAmountRow(pdf, "Base salary", meta.BaseSalary)
		receiptAmountRow(pdf, fmt.Sprintf("Overtime (%.1f h x %.2f)", meta.OvertimeHours, meta.OvertimeRate), meta.OvertimeValue)
	}
	receiptAmountRow(pdf, "Gross income", meta.GrossIncome)
	receiptAmountRow(pdf, "Advances taken", -meta.SmallAdvances)
	receiptAmountRow(pdf, "Debt repayment", -meta.DebtRepayment)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 12)
	receiptAmountRow(pdf, "Net salary", meta.NetSalary)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering receipt: %w", err)
	}

	r.archive(entry.ID, buf.Bytes())
	return buf.Bytes(), nil
}

// archive writes an at-rest copy of the receipt. Failures are logged and
// ignored; the caller still gets the rendered bytes.
func (r *Receipts) archive(entryID string, plain []byte) {
	if r.dir == "" {
		return
	}
	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		slog.Warn("receipt archive directory unavailable", "dir", r.dir, "error", err)
		return
	}
	data, err := r.crypto.Encrypt(plain)
	if err != nil {
		slog.Warn("receipt encryption failed, skipping archive", "entryId", entryID, "error", err)
		return
	}
	name := entryID + ".pdf"
	if r.crypto.Configured() {
		name += ".enc"
	}
	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0o640); err != nil {
		slog.Warn("receipt archive write failed", "entryId", entryID, "error", err)
	}
}

func receiptRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}

func receiptAmountRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.CellFormat(100, 8, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
}
