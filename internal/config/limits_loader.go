package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SymbolLimit caps order size for one symbol. Empty fields mean uncapped.
type SymbolLimit struct {
	MaxQuantity string `yaml:"max_quantity"`
	MaxNotional string `yaml:"max_notional"`
}

// OrderLimits is the optional order_limits.yaml: a default cap plus
// per-symbol overrides. A zero OrderLimits allows everything.
type OrderLimits struct {
	Default SymbolLimit            `yaml:"default"`
	Symbols map[string]SymbolLimit `yaml:"symbols"`
}

func LoadOrderLimits(path string) (OrderLimits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OrderLimits{}, fmt.Errorf("read order limits: %w", err)
	}

	var limits OrderLimits
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return OrderLimits{}, fmt.Errorf("parse order limits: %w", err)
	}

	// Surface malformed numbers at load time, not on the order path.
	check := func(scope string, l SymbolLimit) error {
		for name, v := range map[string]string{"max_quantity": l.MaxQuantity, "max_notional": l.MaxNotional} {
			if v == "" {
				continue
			}
			if _, err := decimal.NewFromString(v); err != nil {
				return fmt.Errorf("order limits: %s %s %q: %w", scope, name, v, err)
			}
		}
		return nil
	}
	if err := check("default", limits.Default); err != nil {
		return OrderLimits{}, err
	}
	for sym, l := range limits.Symbols {
		if err := check(sym, l); err != nil {
			return OrderLimits{}, err
		}
	}
	return limits, nil
}

func (ol OrderLimits) limitFor(symbol string) SymbolLimit {
	if l, ok := ol.Symbols[symbol]; ok {
		return l
	}
	return ol.Default
}

// Check reports whether an order of the given quantity (and price, zero
// when the order carries none) stays inside the configured caps. The
// notional cap only applies when a price is known.
func (ol OrderLimits) Check(symbol string, quantity, price decimal.Decimal) error {
	limit := ol.limitFor(symbol)

	if limit.MaxQuantity != "" {
		maxQty, _ := decimal.NewFromString(limit.MaxQuantity)
		if quantity.GreaterThan(maxQty) {
			return fmt.Errorf("quantity %s exceeds cap %s for %s", quantity, maxQty, symbol)
		}
	}
	if limit.MaxNotional != "" && price.Sign() > 0 {
		maxNotional, _ := decimal.NewFromString(limit.MaxNotional)
		if notional := quantity.Mul(price); notional.GreaterThan(maxNotional) {
			return fmt.Errorf("notional %s exceeds cap %s for %s", notional, maxNotional, symbol)
		}
	}
	return nil
}
