package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"atelier/internal/domain/ledger"
	"atelier/internal/requestctx"
	"atelier/internal/transport/http/api"
	"atelier/internal/transport/http/shared"
)

type Journal interface {
	Query(ctx context.Context, branch, entryType string) ([]ledger.Entry, error)
	Append(ctx context.Context, entry ledger.Entry) (ledger.Entry, error)
	Summarize(ctx context.Context, branch, startDate, endDate string) (ledger.Summary, error)
}

// Handler exposes the raw journal for manual bookkeeping. Salary entries
// written here are untagged; the payroll engine picks them up through
// its category and name heuristics.
type Handler struct {
	journal Journal
	branch  string
}

func NewHandler(journal Journal, branch string) *Handler {
	return &Handler{journal: journal, branch: branch}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/entries", h.handleList)
	r.Post("/entries", h.handleAppend)
	r.Get("/summary", h.handleSummary)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	entryType := r.URL.Query().Get("type")
	if entryType == "" {
		entryType = ledger.TypeSalary
	}

	entries, err := h.journal.Query(r.Context(), h.branch, entryType)
	if err != nil {
		slog.Error("journal query failed", "type", entryType, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list entries", reqID)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	api.Success(w, entries, reqID)
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var req struct {
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Notes       string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", reqID)
		return
	}
	if req.Type == "" || req.Description == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_entry", "type and description are required", reqID)
		return
	}
	if req.Amount <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_amount", "amount must be positive", reqID)
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	} else if _, err := shared.ParseDate(req.Date); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", reqID)
		return
	}

	entry, err := h.journal.Append(r.Context(), ledger.Entry{
		Branch:      h.branch,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		EntryDate:   req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		slog.Error("journal append failed", "error", err)
		api.Fail(w, http.StatusBadGateway, "append_failed", "entry could not be recorded", reqID)
		return
	}
	api.Created(w, entry, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		now := time.Now()
		startDate = now.Format("2006-01") + "-01"
		endDate = now.Format("2006-01-02")
	}

	summary, err := h.journal.Summarize(r.Context(), h.branch, startDate, endDate)
	if err != nil {
		slog.Error("journal summary failed", "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to summarize entries", reqID)
		return
	}
	api.Success(w, summary, reqID)
}
