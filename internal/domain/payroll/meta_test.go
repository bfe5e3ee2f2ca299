package payroll

import "testing"

func TestEncodeDecodeMetaRoundTrip(t *testing.T) {
	encoded, err := EncodeMeta(Meta{
		Kind:       KindSmallAdvance,
		WorkerID:   "w1",
		WorkerName: "Anna",
		Month:      "2026-03",
		Amount:     150,
		Note:       "fabric advance",
	})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	decoded, ok := DecodeMeta(encoded)
	if !ok {
		t.Fatal("expected payload to decode")
	}
	if decoded.Kind != KindSmallAdvance || decoded.WorkerID != "w1" || decoded.Amount != 150 {
		t.Fatalf("payload mismatch: %+v", decoded)
	}
	if !decoded.Marker || decoded.Version != metaVersion {
		t.Fatalf("marker/version not stamped: %+v", decoded)
	}
}

func TestDecodeMetaRejectsPlainText(t *testing.T) {
	for _, notes := range []string{"", "paid in cash", "advance for Anna"} {
		if _, ok := DecodeMeta(notes); ok {
			t.Fatalf("expected plain text %q to be rejected", notes)
		}
	}
}

func TestDecodeMetaRejectsMalformedJSON(t *testing.T) {
	if _, ok := DecodeMeta(`{"marker":true,"version":1,"kind":`); ok {
		t.Fatal("expected malformed JSON to be rejected")
	}
}

func TestDecodeMetaRejectsMissingMarker(t *testing.T) {
	if _, ok := DecodeMeta(`{"version":1,"kind":"small_advance","workerId":"w1"}`); ok {
		t.Fatal("expected payload without marker to be rejected")
	}
}

func TestDecodeMetaRejectsVersionMismatch(t *testing.T) {
	if _, ok := DecodeMeta(`{"marker":true,"version":2,"kind":"small_advance"}`); ok {
		t.Fatal("expected future version to be rejected")
	}
}

func TestDecodeMetaRejectsUnknownKind(t *testing.T) {
	if _, ok := DecodeMeta(`{"marker":true,"version":1,"kind":"bonus"}`); ok {
		t.Fatal("expected unknown kind to be rejected")
	}
}

func TestDecodeMetaSettlementFields(t *testing.T) {
	notes := `{"marker":true,"version":1,"kind":"salary_settlement","workerId":"w2","workerName":"Lena","month":"2026-02","payScheme":"fixed","baseSalary":800,"overtimeHours":4,"overtimeRate":12.5,"overtimeValue":50,"smallAdvances":100,"debtBeforeRepayment":200,"debtRepayment":50,"grossIncome":850,"netSalary":700}`
	decoded, ok := DecodeMeta(notes)
	if !ok {
		t.Fatal("expected settlement payload to decode")
	}
	if decoded.NetSalary != 700 || decoded.DebtRepayment != 50 || decoded.PayScheme != SchemeFixed {
		t.Fatalf("settlement fields mismatch: %+v", decoded)
	}
}
