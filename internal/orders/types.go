package orders

import "github.com/shopspring/decimal"

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Kind selects the exchange order type and determines which price fields
// the request must carry.
type Kind string

const (
	KindMarket     Kind = "MARKET"
	KindLimit      Kind = "LIMIT"
	KindStopMarket Kind = "STOP_MARKET"
)

// Request is a fully validated order, produced by the validate package.
// Price is set only for LIMIT orders, StopPrice only for STOP_MARKET —
// the dispatcher sends exactly the fields the kind requires.
type Request struct {
	Symbol    string
	Side      Side
	Kind      Kind
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	StopPrice decimal.Decimal
}

// Result is the normalized outcome of one dispatch, regardless of order
// kind. Invariant: Success == true iff Error == "" iff OrderID != 0; on
// failure every numeric field is zero.
type Result struct {
	Success     bool
	OrderID     int64
	Symbol      string
	Side        string
	Kind        string
	Status      string
	Quantity    decimal.Decimal
	ExecutedQty decimal.Decimal
	AvgPrice    decimal.Decimal
	LimitPrice  decimal.Decimal
	Error       string

	// Raw is the exchange response as received, kept for audit only.
	Raw map[string]any
}

// Failed builds a failure Result carrying a single human-readable error.
func Failed(msg string) Result {
	return Result{Error: msg}
}
