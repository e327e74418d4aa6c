package display

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aoltyan/futures-trading/internal/orders"
)

func TestResultSuccess(t *testing.T) {
	var buf strings.Builder
	Result(&buf, orders.Result{
		Success:     true,
		OrderID:     123,
		Symbol:      "BTCUSDT",
		Side:        "BUY",
		Kind:        "MARKET",
		Status:      "FILLED",
		Quantity:    decimal.RequireFromString("0.01"),
		ExecutedQty: decimal.RequireFromString("0.01"),
		AvgPrice:    decimal.NewFromInt(50000),
	})

	out := buf.String()
	require.Contains(t, out, "ORDER PLACED")
	require.Contains(t, out, "123")
	require.Contains(t, out, "50000")
	require.NotContains(t, out, "Limit Price")
}

func TestResultFailure(t *testing.T) {
	var buf strings.Builder
	Result(&buf, orders.Failed("binance API error -1121: Invalid symbol."))

	out := buf.String()
	require.Contains(t, out, "ORDER FAILED")
	require.Contains(t, out, "-1121")
	require.NotContains(t, out, "Order ID")
}
