package payroll

import "github.com/shopspring/decimal"

// PricedItem is one completed work item with the price the operator
// assigned to it for this settlement.
type PricedItem struct {
	ID    string  `json:"itemId"`
	Label string  `json:"itemLabel"`
	Price float64 `json:"price"`
}

// Calculation is a fully evaluated month for one worker. It is produced
// by ComputeFixed or ComputePieceRate and later serialized verbatim into
// the settlement entry's metadata.
type Calculation struct {
	WorkerID   string `json:"workerId"`
	WorkerName string `json:"workerName"`
	Month      string `json:"month"`
	PayScheme  string `json:"payScheme"`

	BaseSalary    float64 `json:"baseSalary"`
	OvertimeHours float64 `json:"overtimeHours"`
	OvertimeRate  float64 `json:"overtimeRate"`
	OvertimeValue float64 `json:"overtimeValue"`
	PieceIncome   float64 `json:"pieceIncome"`

	SmallAdvances       float64 `json:"smallAdvances"`
	DebtBeforeRepayment float64 `json:"debtBeforeRepayment"`
	DebtRepayment       float64 `json:"debtRepayment"`

	GrossIncome float64 `json:"grossIncome"`
	NetSalary   float64 `json:"netSalary"`

	LineItems []PricedItem `json:"lineItems,omitempty"`
}

// FixedInput carries everything a fixed-salary computation needs. The
// repayment is a request; the computation clamps it to what is actually
// owed.
type FixedInput struct {
	WorkerID           string
	WorkerName         string
	Month              string
	BaseSalary         float64
	OvertimeHours      float64
	OvertimeRate       float64
	SmallAdvances      float64
	OutstandingDebt    float64
	RequestedRepayment float64
}

type PieceRateInput struct {
	WorkerID           string
	WorkerName         string
	Month              string
	Items              []PricedItem
	SmallAdvances      float64
	OutstandingDebt    float64
	RequestedRepayment float64
}

// ComputeFixed evaluates a fixed-salary month: base plus overtime, minus
// the month's advances and the clamped debt repayment.
func ComputeFixed(in FixedInput) Calculation {
	base := decimal.NewFromFloat(in.BaseSalary)
	overtime := decimal.NewFromFloat(in.OvertimeHours).Mul(decimal.NewFromFloat(in.OvertimeRate))
	gross := base.Add(overtime)

	calc := Calculation{
		WorkerID:      in.WorkerID,
		WorkerName:    in.WorkerName,
		Month:         in.Month,
		PayScheme:     SchemeFixed,
		BaseSalary:    round2(base),
		OvertimeHours: in.OvertimeHours,
		OvertimeRate:  in.OvertimeRate,
		OvertimeValue: round2(overtime),
	}
	applyDeductions(&calc, gross, in.SmallAdvances, in.OutstandingDebt, in.RequestedRepayment)
	return calc
}

// ComputePieceRate evaluates a piece-rate month: the sum of the priced
// items, minus the same deductions as the fixed scheme.
func ComputePieceRate(in PieceRateInput) Calculation {
	gross := decimal.Zero
	for _, item := range in.Items {
		gross = gross.Add(decimal.NewFromFloat(item.Price))
	}

	calc := Calculation{
		WorkerID:    in.WorkerID,
		WorkerName:  in.WorkerName,
		Month:       in.Month,
		PayScheme:   SchemePieceRate,
		PieceIncome: round2(gross),
		LineItems:   in.Items,
	}
	applyDeductions(&calc, gross, in.SmallAdvances, in.OutstandingDebt, in.RequestedRepayment)
	return calc
}

// applyDeductions fills the shared tail of a calculation. The debt
// repayment is clamped to [0, outstanding]; the net may still come out
// negative, which Validate turns into a settlement-blocking error.
func applyDeductions(calc *Calculation, gross decimal.Decimal, advances, outstanding, requested float64) {
	repayment := decimal.NewFromFloat(requested)
	debt := decimal.NewFromFloat(outstanding)
	if repayment.IsNegative() {
		repayment = decimal.Zero
	}
	if repayment.GreaterThan(debt) {
		repayment = debt
	}

	net := gross.Sub(decimal.NewFromFloat(advances)).Sub(repayment)

	calc.SmallAdvances = advances
	calc.DebtBeforeRepayment = outstanding
	calc.DebtRepayment = round2(repayment)
	calc.GrossIncome = round2(gross)
	calc.NetSalary = round2(net)
}

// Validate reports whether the calculation may be settled.
func (c Calculation) Validate() error {
	if c.NetSalary < 0 {
		return ErrNegativeNet
	}
	return nil
}
