package models

// SaleOutcomeKind enumerates how a sale settled against the money handed over.
type SaleOutcomeKind string

const (
	// OutcomeDebtIncurred means the customer paid less than the total and a
	// new debt record was created for the difference.
	OutcomeDebtIncurred SaleOutcomeKind = "debt_incurred"
	// OutcomeDebtReduced means the customer paid more than the total and the
	// surplus was applied against outstanding debt.
	OutcomeDebtReduced SaleOutcomeKind = "debt_reduced"
	// OutcomeExact means the customer paid the total exactly.
	OutcomeExact SaleOutcomeKind = "exact"
)

// SaleOutcome is the result of a completed sale, returned for display.
// Amount carries the debt incurred or the surplus applied, depending on Kind;
// it is zero for an exact payment.
type SaleOutcome struct {
	Kind      SaleOutcomeKind `json:"kind"`
	Total     float64         `json:"total"`
	CashAdded float64         `json:"cash_added"`
	Amount    float64         `json:"amount,omitempty"`
}
