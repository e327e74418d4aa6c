// Package validate normalizes and constrains user-supplied order fields
// before they reach the dispatcher. Everything here is pure: no network,
// no clock, no state.
package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aoltyan/futures-trading/internal/orders"
)

// FieldError identifies the offending field and the value it was given.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return len(s) > 0
}

// Symbol trims and uppercases, then requires 3-20 alphanumeric characters.
func Symbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !isAlphanumeric(symbol) {
		return "", &FieldError{Field: "symbol", Value: symbol, Reason: "must be alphanumeric (e.g. BTCUSDT)"}
	}
	if len(symbol) < 3 || len(symbol) > 20 {
		return "", &FieldError{Field: "symbol", Value: symbol, Reason: "length must be 3-20 characters"}
	}
	return symbol, nil
}

// Side accepts BUY or SELL, case-insensitive.
func Side(raw string) (orders.Side, error) {
	side := orders.Side(strings.ToUpper(strings.TrimSpace(raw)))
	switch side {
	case orders.SideBuy, orders.SideSell:
		return side, nil
	}
	return "", &FieldError{Field: "side", Value: raw, Reason: "must be BUY or SELL"}
}

// Kind accepts MARKET, LIMIT or STOP_MARKET, case-insensitive.
func Kind(raw string) (orders.Kind, error) {
	kind := orders.Kind(strings.ToUpper(strings.TrimSpace(raw)))
	switch kind {
	case orders.KindMarket, orders.KindLimit, orders.KindStopMarket:
		return kind, nil
	}
	return "", &FieldError{Field: "type", Value: raw, Reason: "must be one of MARKET, LIMIT, STOP_MARKET"}
}

// Quantity parses a positive decimal.
func Quantity(raw string) (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &FieldError{Field: "quantity", Value: raw, Reason: "not a valid number"}
	}
	if qty.Sign() <= 0 {
		return decimal.Zero, &FieldError{Field: "quantity", Value: raw, Reason: "must be positive"}
	}
	return qty, nil
}

// Price is required and must be positive when kind is LIMIT. A price given
// for any other kind is accepted but only LIMIT dispatch will send it.
func Price(raw string, kind orders.Kind) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if kind == orders.KindLimit {
			return decimal.Zero, &FieldError{Field: "price", Value: raw, Reason: "required for LIMIT orders"}
		}
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FieldError{Field: "price", Value: raw, Reason: "not a valid number"}
	}
	if price.Sign() <= 0 {
		return decimal.Zero, &FieldError{Field: "price", Value: raw, Reason: "must be positive"}
	}
	return price, nil
}

// StopPrice is required and must be positive when kind is STOP_MARKET;
// for other kinds it is ignored entirely.
func StopPrice(raw string, kind orders.Kind) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if kind != orders.KindStopMarket {
		return decimal.Zero, nil
	}
	if raw == "" {
		return decimal.Zero, &FieldError{Field: "stop_price", Value: raw, Reason: "required for STOP_MARKET orders"}
	}
	stop, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FieldError{Field: "stop_price", Value: raw, Reason: "not a valid number"}
	}
	if stop.Sign() <= 0 {
		return decimal.Zero, &FieldError{Field: "stop_price", Value: raw, Reason: "must be positive"}
	}
	return stop, nil
}

// Request validates every field and assembles an orders.Request. It is
// all-or-nothing: the first failing field rejects the whole request, and
// no partially normalized value leaks out.
func Request(symbol, side, kind, quantity, price, stopPrice string) (orders.Request, error) {
	sym, err := Symbol(symbol)
	if err != nil {
		return orders.Request{}, err
	}
	sd, err := Side(side)
	if err != nil {
		return orders.Request{}, err
	}
	kd, err := Kind(kind)
	if err != nil {
		return orders.Request{}, err
	}
	qty, err := Quantity(quantity)
	if err != nil {
		return orders.Request{}, err
	}
	pr, err := Price(price, kd)
	if err != nil {
		return orders.Request{}, err
	}
	sp, err := StopPrice(stopPrice, kd)
	if err != nil {
		return orders.Request{}, err
	}

	req := orders.Request{
		Symbol:   sym,
		Side:     sd,
		Kind:     kd,
		Quantity: qty,
	}
	// Only the fields this kind requires are carried forward.
	switch kd {
	case orders.KindLimit:
		req.Price = pr
	case orders.KindStopMarket:
		req.StopPrice = sp
	}
	return req, nil
}
