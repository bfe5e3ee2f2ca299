package payroll

import (
	"encoding/json"
	"strings"
)

// Journal entries carry structured facts inside the free-text notes
// column. Only payloads with the marker flag and the expected version are
// trusted; anything else is treated as plain text and left to the
// category/name heuristics.
const metaVersion = 1

const (
	KindSmallAdvance = "small_advance"
	KindLargeDebt    = "large_debt"
	KindSettlement   = "salary_settlement"
)

type LineItemMeta struct {
	ItemID    string  `json:"itemId"`
	ItemLabel string  `json:"itemLabel"`
	Price     float64 `json:"price"`
}

// Meta is the tagged payload. Kind selects the variant: the transaction
// kinds use Amount/Note, the settlement kind uses the salary fields.
type Meta struct {
	Marker     bool   `json:"marker"`
	Version    int    `json:"version"`
	Kind       string `json:"kind"`
	WorkerID   string `json:"workerId"`
	WorkerName string `json:"workerName"`
	Month      string `json:"month"`

	Amount float64 `json:"amount,omitempty"`
	Note   string  `json:"note,omitempty"`

	PayScheme           string         `json:"payScheme,omitempty"`
	BaseSalary          float64        `json:"baseSalary,omitempty"`
	OvertimeHours       float64        `json:"overtimeHours,omitempty"`
	OvertimeRate        float64        `json:"overtimeRate,omitempty"`
	OvertimeValue       float64        `json:"overtimeValue,omitempty"`
	PieceIncome         float64        `json:"pieceIncome,omitempty"`
	SmallAdvances       float64        `json:"smallAdvances,omitempty"`
	DebtBeforeRepayment float64        `json:"debtBeforeRepayment,omitempty"`
	DebtRepayment       float64        `json:"debtRepayment,omitempty"`
	GrossIncome         float64        `json:"grossIncome,omitempty"`
	NetSalary           float64        `json:"netSalary,omitempty"`
	LineItems           []LineItemMeta `json:"lineItems,omitempty"`
}

// EncodeMeta serializes a payload for the notes column, stamping the
// marker and current version.
func EncodeMeta(meta Meta) (string, error) {
	meta.Marker = true
	meta.Version = metaVersion
	raw, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeMeta attempts to read a trusted payload out of a notes value.
// Malformed JSON, a missing marker, a version mismatch, or an unknown
// kind all mean "no metadata present" — never an error.
func DecodeMeta(notes string) (Meta, bool) {
	trimmed := strings.TrimSpace(notes)
	if !strings.HasPrefix(trimmed, "{") {
		return Meta{}, false
	}
	var meta Meta
	if err := json.Unmarshal([]byte(trimmed), &meta); err != nil {
		return Meta{}, false
	}
	if !meta.Marker || meta.Version != metaVersion {
		return Meta{}, false
	}
	switch meta.Kind {
	case KindSmallAdvance, KindLargeDebt, KindSettlement:
		return meta, true
	}
	return Meta{}, false
}
