package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"atelier/internal/domain/ledger"
	"atelier/internal/domain/piecework"
	"atelier/internal/domain/workers"
	"atelier/internal/platform/metrics"
)

type Journal interface {
	Query(ctx context.Context, branch, entryType string) ([]ledger.Entry, error)
	Append(ctx context.Context, entry ledger.Entry) (ledger.Entry, error)
	Get(ctx context.Context, id string) (ledger.Entry, error)
}

type Directory interface {
	List(ctx context.Context) ([]workers.Identity, error)
}

type CompletedWork interface {
	ListCompleted(ctx context.Context, workerID, month string) ([]piecework.LineItem, error)
}

type Prefs interface {
	Get(ctx context.Context, workerID string) (Pref, error)
	Put(ctx context.Context, pref Pref) error
}

// Service is the reconciliation engine. It owns no state of its own:
// every answer is recomputed from the journal and the collaborator
// stores on each call.
type Service struct {
	journal      Journal
	roster       Directory
	completed    CompletedWork
	prefs        Prefs
	collector    *metrics.Collector
	branch       string
	overtimeRate float64
}

func NewService(journal Journal, roster Directory, completed CompletedWork, prefs Prefs, collector *metrics.Collector, branch string, overtimeRate float64) *Service {
	return &Service{
		journal:      journal,
		roster:       roster,
		completed:    completed,
		prefs:        prefs,
		collector:    collector,
		branch:       branch,
		overtimeRate: overtimeRate,
	}
}

func (s *Service) OvertimeRate() float64 { return s.overtimeRate }

// MonthView assembles the reconciliation screen for one month. Reads are
// fail-open: a collaborator failure degrades its section to empty and
// marks the view partial instead of blocking the whole screen.
func (s *Service) MonthView(ctx context.Context, month string) (MonthView, error) {
	if !ValidMonth(month) {
		return MonthView{}, ErrInvalidMonth
	}

	view := MonthView{Branch: s.branch, Month: month, Totals: map[string]float64{}}

	roster, err := s.roster.List(ctx)
	if err != nil {
		slog.Warn("worker roster unavailable, continuing with empty roster", "error", err)
		view.Partial = true
		roster = nil
	}

	entries, err := s.journal.Query(ctx, s.branch, ledger.TypeSalary)
	if err != nil {
		slog.Warn("journal unavailable, continuing with empty history", "error", err)
		view.Partial = true
		entries = nil
	}
	classified := Classify(entries, roster)

	view.Workers = make([]WorkerSummary, 0, len(roster))
	for _, worker := range roster {
		summary := s.workerSummary(ctx, classified, worker, month)
		if summary.PieceItems == nil && worker.CanPieceRate {
			view.Partial = true
		}
		view.Totals["monthAdvances"] += summary.MonthAdvances
		view.Totals["outstandingDebt"] += summary.OutstandingDebt
		view.Workers = append(view.Workers, summary)
	}
	view.Totals["settledNet"] = settledNetForMonth(classified, month)
	return view, nil
}

func (s *Service) workerSummary(ctx context.Context, classified []ClassifiedEntry, worker workers.Identity, month string) WorkerSummary {
	summary := WorkerSummary{
		Worker:          worker,
		OutstandingDebt: OutstandingDebt(classified, worker.ID),
		MonthAdvances:   MonthAdvances(classified, worker.ID, month),
		DefaultScheme:   SchemeFixed,
		Operations:      []Operation{},
	}

	if pref, err := s.prefs.Get(ctx, worker.ID); err != nil {
		slog.Warn("worker preference read failed", "workerId", worker.ID, "error", err)
	} else if pref.PayScheme != "" {
		summary.DefaultScheme = pref.PayScheme
		summary.DefaultBaseSalary = pref.BaseSalary
	}

	if last := LatestSettlement(classified, worker.ID); last != nil {
		summary.LastSettledMonth = last.Month
		summary.SettledThisMonth = last.Month == month || settledInMonth(classified, worker.ID, month)
		if summary.DefaultBaseSalary == 0 && last.PayScheme == SchemeFixed {
			summary.DefaultBaseSalary = last.BaseSalary
			summary.DefaultScheme = last.PayScheme
		}
	}

	for _, entry := range classified {
		if entry.WorkerID != worker.ID || entryMonth(entry) != month {
			continue
		}
		if entry.Class != ClassSmallAdvance && entry.Class != ClassDebtIssuance {
			continue
		}
		op := Operation{
			EntryID: entry.Entry.ID,
			Class:   entry.Class,
			Date:    entry.Entry.EntryDate,
			Amount:  entryAmount(entry),
		}
		if entry.Meta != nil {
			op.Note = entry.Meta.Note
		}
		summary.Operations = append(summary.Operations, op)
	}

	if worker.CanPieceRate {
		items, err := s.completed.ListCompleted(ctx, worker.ID, month)
		if err != nil {
			slog.Warn("completed work read failed", "workerId", worker.ID, "error", err)
		} else {
			summary.PieceItems = make([]PieceItem, 0, len(items))
			for _, item := range items {
				summary.PieceItems = append(summary.PieceItems, PieceItem{
					ID:          item.ID,
					Label:       item.Label,
					CompletedAt: item.CompletedAt,
				})
			}
		}
	}
	return summary
}

func settledInMonth(classified []ClassifiedEntry, workerID, month string) bool {
	for _, entry := range classified {
		if entry.Class == ClassSettlement && entry.WorkerID == workerID && entry.Meta != nil && entry.Meta.Month == month {
			return true
		}
	}
	return false
}

func settledNetForMonth(classified []ClassifiedEntry, month string) float64 {
	total := 0.0
	for _, entry := range classified {
		if entry.Class == ClassSettlement && entry.Meta != nil && entry.Meta.Month == month {
			total += entry.Meta.NetSalary
		}
	}
	return total
}

// ItemPrice is one completed work item with the price the operator typed
// for it.
type ItemPrice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price string `json:"price"`
}

// SettleRequest is a settlement as the operator submits it. Amounts
// arrive as raw text and tolerate both decimal comma and decimal point.
type SettleRequest struct {
	WorkerID      string      `json:"workerId"`
	Month         string      `json:"month"`
	PayScheme     string      `json:"payScheme"`
	BaseSalary    string      `json:"baseSalary"`
	OvertimeHours string      `json:"overtimeHours"`
	DebtRepayment string      `json:"debtRepayment"`
	Items         []ItemPrice `json:"items"`
}

// Settle computes and records one worker's monthly settlement. Unlike
// the view, settlement reads are NOT fail-open: deducting against a
// stale balance is worse than failing the request.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (Calculation, ledger.Entry, error) {
	if !ValidMonth(req.Month) {
		return Calculation{}, ledger.Entry{}, ErrInvalidMonth
	}

	roster, err := s.roster.List(ctx)
	if err != nil {
		return Calculation{}, ledger.Entry{}, fmt.Errorf("listing roster: %w", err)
	}
	worker, ok := findInRoster(roster, req.WorkerID)
	if !ok {
		return Calculation{}, ledger.Entry{}, ErrUnknownWorker
	}
	if req.PayScheme == SchemePieceRate && !worker.CanPieceRate {
		return Calculation{}, ledger.Entry{}, ErrSchemeNotAllowed
	}

	entries, err := s.journal.Query(ctx, s.branch, ledger.TypeSalary)
	if err != nil {
		return Calculation{}, ledger.Entry{}, fmt.Errorf("reading journal: %w", err)
	}
	classified := Classify(entries, roster)

	advances := MonthAdvances(classified, worker.ID, req.Month)
	outstanding := OutstandingDebt(classified, worker.ID)
	repayment := ParseAmount(req.DebtRepayment)

	var calc Calculation
	if req.PayScheme == SchemePieceRate {
		items := make([]PricedItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, PricedItem{ID: item.ID, Label: item.Label, Price: ParseAmount(item.Price)})
		}
		calc = ComputePieceRate(PieceRateInput{
			WorkerID:           worker.ID,
			WorkerName:         worker.Name,
			Month:              req.Month,
			Items:              items,
			SmallAdvances:      advances,
			OutstandingDebt:    outstanding,
			RequestedRepayment: repayment,
		})
	} else {
		calc = ComputeFixed(FixedInput{
			WorkerID:           worker.ID,
			WorkerName:         worker.Name,
			Month:              req.Month,
			BaseSalary:         ParseAmount(req.BaseSalary),
			OvertimeHours:      ParseAmount(req.OvertimeHours),
			OvertimeRate:       s.overtimeRate,
			SmallAdvances:      advances,
			OutstandingDebt:    outstanding,
			RequestedRepayment: repayment,
		})
	}

	entry, err := BuildSettlementEntry(s.branch, calc)
	if err != nil {
		s.collector.RecordSettlement(true)
		return calc, ledger.Entry{}, err
	}

	written, err := s.journal.Append(ctx, entry)
	if err != nil {
		s.collector.RecordSettlement(true)
		return calc, ledger.Entry{}, fmt.Errorf("%w: %v", ErrAppendFailed, err)
	}
	s.collector.RecordSettlement(false)

	pref := Pref{WorkerID: worker.ID, PayScheme: calc.PayScheme, BaseSalary: calc.BaseSalary}
	if err := s.prefs.Put(ctx, pref); err != nil {
		slog.Warn("saving worker preference failed", "workerId", worker.ID, "error", err)
	}
	return calc, written, nil
}

// TransactionRequest registers an advance or a debt issuance.
type TransactionRequest struct {
	WorkerID string `json:"workerId"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Note     string `json:"note"`
}

func (s *Service) RecordAdvance(ctx context.Context, req TransactionRequest) (ledger.Entry, error) {
	return s.recordTransaction(ctx, KindSmallAdvance, req)
}

func (s *Service) RecordDebt(ctx context.Context, req TransactionRequest) (ledger.Entry, error) {
	return s.recordTransaction(ctx, KindLargeDebt, req)
}

func (s *Service) recordTransaction(ctx context.Context, kind string, req TransactionRequest) (ledger.Entry, error) {
	worker, err := s.findWorker(ctx, req.WorkerID)
	if err != nil {
		return ledger.Entry{}, err
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	entry, err := BuildTransactionEntry(s.branch, kind, worker.ID, worker.Name, date, ParseAmount(req.Amount), req.Note)
	if err != nil {
		return ledger.Entry{}, err
	}
	written, err := s.journal.Append(ctx, entry)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("%w: %v", ErrAppendFailed, err)
	}
	return written, nil
}

func (s *Service) SavePreference(ctx context.Context, pref Pref) error {
	if _, err := s.findWorker(ctx, pref.WorkerID); err != nil {
		return err
	}
	return s.prefs.Put(ctx, pref)
}

func (s *Service) findWorker(ctx context.Context, workerID string) (workers.Identity, error) {
	roster, err := s.roster.List(ctx)
	if err != nil {
		return workers.Identity{}, fmt.Errorf("listing roster: %w", err)
	}
	worker, ok := findInRoster(roster, workerID)
	if !ok {
		return workers.Identity{}, ErrUnknownWorker
	}
	return worker, nil
}

func findInRoster(roster []workers.Identity, workerID string) (workers.Identity, bool) {
	for _, worker := range roster {
		if worker.ID == workerID {
			return worker, true
		}
	}
	return workers.Identity{}, false
}
