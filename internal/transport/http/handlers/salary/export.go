package salary

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"atelier/internal/domain/payroll"
	"atelier/internal/requestctx"
	"atelier/internal/transport/http/api"
	"atelier/internal/transport/http/shared"
)

// handleExport downloads the month view as an xlsx register, one row per
// worker, for the bookkeeper's offline records.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
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
		slog.Error("salary export failed", "month", month, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to build salary export", reqID)
		return
	}

	file, err := buildRegister(view)
	if err != nil {
		slog.Error("salary register build failed", "month", month, "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to build salary export", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=salary-register-%s.xlsx", month))
	if err := file.Write(w); err != nil {
		slog.Warn("salary export write failed", "month", month, "error", err)
	}
}

func buildRegister(view payroll.MonthView) (*excelize.File, error) {
	file := excelize.NewFile()
	sheet := "Register"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Worker", "Origin", "Scheme", "Outstanding debt", "Advances this month", "Last settled month"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, worker := range view.Workers {
		values := []any{
			worker.Worker.Name,
			worker.Worker.Origin,
			worker.DefaultScheme,
			worker.OutstandingDebt,
			worker.MonthAdvances,
			worker.LastSettledMonth,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	totalsRow := len(view.Workers) + 3
	if err := file.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow), "Totals for "+view.Month); err != nil {
		return nil, err
	}
	if err := file.SetCellValue(sheet, fmt.Sprintf("D%d", totalsRow), view.Totals["outstandingDebt"]); err != nil {
		return nil, err
	}
	if err := file.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow), view.Totals["monthAdvances"]); err != nil {
		return nil, err
	}
	return file, nil
}
