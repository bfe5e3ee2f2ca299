package salary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"atelier/internal/domain/ledger"
	"atelier/internal/domain/payroll"
	"atelier/internal/domain/workers"
)

type fakeEngine struct {
	view      payroll.MonthView
	viewErr   error
	calc      payroll.Calculation
	entry     ledger.Entry
	settleErr error
	txErr     error
	prefErr   error
}

func (f *fakeEngine) MonthView(ctx context.Context, month string) (payroll.MonthView, error) {
	return f.view, f.viewErr
}

func (f *fakeEngine) Settle(ctx context.Context, req payroll.SettleRequest) (payroll.Calculation, ledger.Entry, error) {
	return f.calc, f.entry, f.settleErr
}

func (f *fakeEngine) RecordAdvance(ctx context.Context, req payroll.TransactionRequest) (ledger.Entry, error) {
	return f.entry, f.txErr
}

func (f *fakeEngine) RecordDebt(ctx context.Context, req payroll.TransactionRequest) (ledger.Entry, error) {
	return f.entry, f.txErr
}

func (f *fakeEngine) SavePreference(ctx context.Context, pref payroll.Pref) error {
	return f.prefErr
}

type fakeRoster struct {
	list []workers.Identity
	err  error
}

func (f *fakeRoster) List(ctx context.Context) ([]workers.Identity, error) {
	return f.list, f.err
}

func (f *fakeRoster) AddLocal(ctx context.Context, name string) (workers.Identity, error) {
	if name == "" {
		return workers.Identity{}, workers.ErrEmptyName
	}
	return workers.Identity{ID: "l1", Name: name, Origin: workers.OriginLocal}, f.err
}

type fakeReceipts struct {
	pdf []byte
	err error
}

func (f *fakeReceipts) Generate(ctx context.Context, entryID string) ([]byte, error) {
	return f.pdf, f.err
}

func newTestRouter(engine Engine, roster Roster, receipts ReceiptSource) http.Handler {
	r := chi.NewRouter()
	r.Route("/salary", NewHandler(engine, roster, receipts).Routes)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeEnvelope(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestHandleViewDefaultsToCurrentMonth(t *testing.T) {
	engine := &fakeEngine{view: payroll.MonthView{Branch: "tailoring", Month: "2026-03"}}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salary/view", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
}

func TestHandleViewInvalidMonth(t *testing.T) {
	engine := &fakeEngine{viewErr: payroll.ErrInvalidMonth}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salary/view?month=bad", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_month" {
		t.Fatalf("expected invalid_month, got %q", code)
	}
}

func TestHandleSettleNegativeNet(t *testing.T) {
	engine := &fakeEngine{settleErr: payroll.ErrNegativeNet, calc: payroll.Calculation{NetSalary: -150}}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/settle", strings.NewReader(`{"workerId":"w1","month":"2026-03"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "negative_net" {
		t.Fatalf("expected negative_net, got %q", code)
	}
}

func TestHandleSettleAppendFailure(t *testing.T) {
	engine := &fakeEngine{settleErr: payroll.ErrAppendFailed}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/settle", strings.NewReader(`{"workerId":"w1","month":"2026-03"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "append_failed" {
		t.Fatalf("expected append_failed, got %q", code)
	}
}

func TestHandleSettleUnknownWorker(t *testing.T) {
	engine := &fakeEngine{settleErr: payroll.ErrUnknownWorker}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/settle", strings.NewReader(`{"workerId":"ghost","month":"2026-03"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleSettleCreated(t *testing.T) {
	engine := &fakeEngine{
		calc:  payroll.Calculation{WorkerID: "w1", NetSalary: 700},
		entry: ledger.Entry{ID: "s1", Amount: 700},
	}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/settle", strings.NewReader(`{"workerId":"w1","month":"2026-03","payScheme":"fixed","baseSalary":"800"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSettleMalformedBody(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/settle", strings.NewReader(`{"workerId":`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAdvanceInvalidAmount(t *testing.T) {
	engine := &fakeEngine{txErr: payroll.ErrInvalidAmount}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/advances", strings.NewReader(`{"workerId":"w1","amount":"-5"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_amount" {
		t.Fatalf("expected invalid_amount, got %q", code)
	}
}

func TestHandleReceiptNotSettlement(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, &fakeRoster{}, &fakeReceipts{err: payroll.ErrNotSettlement})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salary/receipts/a1", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleReceiptPDF(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, &fakeRoster{}, &fakeReceipts{pdf: []byte("%PDF-1.4 fake")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salary/receipts/s1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", got)
	}
}

func TestHandleAddWorker(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/salary/workers", strings.NewReader(`{"name":"Mira"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/salary/workers", strings.NewReader(`{"name":""}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", rec.Code)
	}
}

func TestHandleSavePrefInvalidScheme(t *testing.T) {
	router := newTestRouter(&fakeEngine{}, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/salary/prefs/w1", strings.NewReader(`{"payScheme":"hourly"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	engine := &fakeEngine{view: payroll.MonthView{
		Branch: "tailoring",
		Month:  "2026-03",
		Workers: []payroll.WorkerSummary{{
			Worker:          workers.Identity{Name: "Anna", Origin: workers.OriginDirectory},
			OutstandingDebt: 200,
			MonthAdvances:   100,
			DefaultScheme:   payroll.SchemeFixed,
		}},
		Totals: map[string]float64{"outstandingDebt": 200, "monthAdvances": 100},
	}}
	router := newTestRouter(engine, &fakeRoster{}, &fakeReceipts{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salary/export?month=2026-03", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("expected xlsx content type, got %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected non-empty workbook")
	}
}
