package salary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"atelier/internal/domain/ledger"
	"atelier/internal/domain/payroll"
	"atelier/internal/domain/workers"
	"atelier/internal/requestctx"
	"atelier/internal/transport/http/api"
	"atelier/internal/transport/http/shared"
)

type Engine interface {
	MonthView(ctx context.Context, month string) (payroll.MonthView, error)
	Settle(ctx context.Context, req payroll.SettleRequest) (payroll.Calculation, ledger.Entry, error)
	RecordAdvance(ctx context.Context, req payroll.TransactionRequest) (ledger.Entry, error)
	RecordDebt(ctx context.Context, req payroll.TransactionRequest) (ledger.Entry, error)
	SavePreference(ctx context.Context, pref payroll.Pref) error
}

type Roster interface {
	List(ctx context.Context) ([]workers.Identity, error)
	AddLocal(ctx context.Context, name string) (workers.Identity, error)
}

type ReceiptSource interface {
	Generate(ctx context.Context, entryID string) ([]byte, error)
}

type Handler struct {
	engine   Engine
	roster   Roster
	receipts ReceiptSource
}

func NewHandler(engine Engine, roster Roster, receipts ReceiptSource) *Handler {
	return &Handler{engine: engine, roster: roster, receipts: receipts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/view", h.handleView)
	r.Post("/settle", h.handleSettle)
	r.Post("/advances", h.handleAdvance)
	r.Post("/debts", h.handleDebt)
	r.Get("/export", h.handleExport)
	r.Get("/receipts/{entryID}", h.handleReceipt)
	r.Get("/workers", h.handleListWorkers)
	r.Post("/workers", h.handleAddWorker)
	r.Put("/prefs/{workerID}", h.handleSavePref)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	month := r.URL.Query().Get("month")
	if month == "" {
		month = shared.CurrentMonth()
	}

	view, err := h.engine.MonthView(r.Context(), month)
	if errors.Is(err, payroll.ErrInvalidMonth) {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", reqID)
		return
	}
	if err != nil {
		slog.Error("salary view failed", "month", month, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to build salary view", reqID)
		return
	}
	api.Success(w, view, reqID)
}

func (h *Handler) handleSettle(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var req payroll.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", reqID)
		return
	}

	calc, entry, err := h.engine.Settle(r.Context(), req)
	switch {
	case errors.Is(err, payroll.ErrNegativeNet):
		api.Fail(w, http.StatusBadRequest, "negative_net", fmt.Sprintf("net salary is negative (%.2f); reduce deductions before settling", calc.NetSalary), reqID)
		return
	case errors.Is(err, payroll.ErrInvalidMonth):
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", reqID)
		return
	case errors.Is(err, payroll.ErrSchemeNotAllowed):
		api.Fail(w, http.StatusBadRequest, "scheme_not_allowed", "worker cannot be settled on piece rate", reqID)
		return
	case errors.Is(err, payroll.ErrUnknownWorker):
		api.Fail(w, http.StatusNotFound, "worker_not_found", "worker not found", reqID)
		return
	case errors.Is(err, payroll.ErrAppendFailed):
		slog.Error("settlement append failed", "workerId", req.WorkerID, "month", req.Month, "error", err)
		api.Fail(w, http.StatusBadGateway, "append_failed", "settlement could not be recorded", reqID)
		return
	case err != nil:
		slog.Error("settlement failed", "workerId", req.WorkerID, "month", req.Month, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "settlement failed", reqID)
		return
	}

	api.Created(w, map[string]any{"calculation": calc, "entry": entry}, reqID)
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.handleTransaction(w, r, h.engine.RecordAdvance)
}

func (h *Handler) handleDebt(w http.ResponseWriter, r *http.Request) {
	h.handleTransaction(w, r, h.engine.RecordDebt)
}

func (h *Handler) handleTransaction(w http.ResponseWriter, r *http.Request, record func(context.Context, payroll.TransactionRequest) (ledger.Entry, error)) {
	reqID := requestctx.GetRequestID(r.Context())
	var req payroll.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", reqID)
		return
	}
	if req.Date != "" {
		if _, err := shared.ParseDate(req.Date); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", reqID)
			return
		}
	}

	entry, err := record(r.Context(), req)
	switch {
	case errors.Is(err, payroll.ErrUnknownWorker):
		api.Fail(w, http.StatusNotFound, "worker_not_found", "worker not found", reqID)
		return
	case errors.Is(err, payroll.ErrInvalidAmount):
		api.Fail(w, http.StatusBadRequest, "invalid_amount", "amount must be positive", reqID)
		return
	case errors.Is(err, payroll.ErrAppendFailed):
		slog.Error("transaction append failed", "workerId", req.WorkerID, "error", err)
		api.Fail(w, http.StatusBadGateway, "append_failed", "transaction could not be recorded", reqID)
		return
	case err != nil:
		slog.Error("transaction failed", "workerId", req.WorkerID, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "transaction failed", reqID)
		return
	}

	api.Created(w, entry, reqID)
}

func (h *Handler) handleReceipt(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	entryID := chi.URLParam(r, "entryID")

	pdf, err := h.receipts.Generate(r.Context(), entryID)
	switch {
	case errors.Is(err, ledger.ErrEntryNotFound):
		api.Fail(w, http.StatusNotFound, "entry_not_found", "journal entry not found", reqID)
		return
	case errors.Is(err, payroll.ErrNotSettlement):
		api.Fail(w, http.StatusBadRequest, "not_settlement", "entry is not a salary settlement", reqID)
		return
	case err != nil:
		slog.Error("receipt generation failed", "entryId", entryID, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "receipt generation failed", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", entryID))
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("receipt write failed", "entryId", entryID, "error", err)
	}
}

func (h *Handler) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	roster, err := h.roster.List(r.Context())
	if err != nil {
		slog.Error("roster list failed", "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list workers", reqID)
		return
	}
	api.Success(w, roster, reqID)
}

func (h *Handler) handleAddWorker(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", reqID)
		return
	}

	worker, err := h.roster.AddLocal(r.Context(), req.Name)
	if errors.Is(err, workers.ErrEmptyName) {
		api.Fail(w, http.StatusBadRequest, "invalid_name", "worker name is required", reqID)
		return
	}
	if err != nil {
		slog.Error("add local worker failed", "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to add worker", reqID)
		return
	}
	api.Created(w, worker, reqID)
}

func (h *Handler) handleSavePref(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var req struct {
		PayScheme  string `json:"payScheme"`
		BaseSalary string `json:"baseSalary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", reqID)
		return
	}
	if req.PayScheme != payroll.SchemeFixed && req.PayScheme != payroll.SchemePieceRate {
		api.Fail(w, http.StatusBadRequest, "invalid_scheme", "payScheme must be fixed or piece_rate", reqID)
		return
	}

	pref := payroll.Pref{
		WorkerID:   chi.URLParam(r, "workerID"),
		PayScheme:  req.PayScheme,
		BaseSalary: payroll.ParseAmount(req.BaseSalary),
	}
	err := h.engine.SavePreference(r.Context(), pref)
	if errors.Is(err, payroll.ErrUnknownWorker) {
		api.Fail(w, http.StatusNotFound, "worker_not_found", "worker not found", reqID)
		return
	}
	if err != nil {
		slog.Error("save preference failed", "workerId", pref.WorkerID, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to save preference", reqID)
		return
	}
	api.Success(w, pref, reqID)
}
