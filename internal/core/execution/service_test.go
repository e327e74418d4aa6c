package execution

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aoltyan/futures-trading/internal/adapters/outbound/binance_http"
	"github.com/aoltyan/futures-trading/internal/config"
	"github.com/aoltyan/futures-trading/internal/orders"
)

type fakePlacer struct {
	calls  int
	params url.Values
	resp   *binance_http.OrderResponse
	err    error
}

func (f *fakePlacer) PlaceOrder(_ context.Context, params url.Values) (*binance_http.OrderResponse, error) {
	f.calls++
	f.params = params
	return f.resp, f.err
}

func newTestService(placer OrderPlacer, limits config.OrderLimits) *Service {
	svc := NewService(placer, limits)
	svc.newClientID = func() string { return "test-client-id" }
	return svc
}

func marketReq() orders.Request {
	return orders.Request{
		Symbol:   "BTCUSDT",
		Side:     orders.SideBuy,
		Kind:     orders.KindMarket,
		Quantity: decimal.RequireFromString("0.01"),
	}
}

func filledResponse() *binance_http.OrderResponse {
	return &binance_http.OrderResponse{
		OrderID:     123,
		Symbol:      "BTCUSDT",
		Side:        "BUY",
		Type:        "MARKET",
		Status:      "FILLED",
		OrigQty:     "0.01",
		ExecutedQty: "0.01",
		AvgPrice:    "50000",
		Raw:         map[string]any{"orderId": float64(123)},
	}
}

func TestMarketOrderParamsAndResult(t *testing.T) {
	placer := &fakePlacer{resp: filledResponse()}
	svc := newTestService(placer, config.OrderLimits{})

	result := svc.Place(context.Background(), marketReq())

	require.Equal(t, 1, placer.calls)
	require.Equal(t, "BTCUSDT", placer.params.Get("symbol"))
	require.Equal(t, "BUY", placer.params.Get("side"))
	require.Equal(t, "MARKET", placer.params.Get("type"))
	require.Equal(t, "0.01", placer.params.Get("quantity"))
	require.Equal(t, "test-client-id", placer.params.Get("newClientOrderId"))
	// Only the fields MARKET requires go out.
	require.NotContains(t, placer.params, "price")
	require.NotContains(t, placer.params, "stopPrice")
	require.NotContains(t, placer.params, "timeInForce")

	require.True(t, result.Success)
	require.Equal(t, int64(123), result.OrderID)
	require.Equal(t, "FILLED", result.Status)
	require.True(t, result.ExecutedQty.Equal(decimal.RequireFromString("0.01")))
	require.True(t, result.AvgPrice.Equal(decimal.NewFromInt(50000)))
	require.Empty(t, result.Error)
	require.NotNil(t, result.Raw)
}

func TestLimitOrderCarriesPriceAndGTC(t *testing.T) {
	placer := &fakePlacer{resp: filledResponse()}
	svc := newTestService(placer, config.OrderLimits{})

	req := orders.Request{
		Symbol:   "BTCUSDT",
		Side:     orders.SideSell,
		Kind:     orders.KindLimit,
		Quantity: decimal.RequireFromString("0.01"),
		Price:    decimal.NewFromInt(100000),
	}
	svc.Place(context.Background(), req)

	require.Equal(t, "LIMIT", placer.params.Get("type"))
	require.Equal(t, "100000", placer.params.Get("price"))
	require.Equal(t, "GTC", placer.params.Get("timeInForce"))
	require.NotContains(t, placer.params, "stopPrice")
}

func TestStopMarketOrderCarriesStopPrice(t *testing.T) {
	placer := &fakePlacer{resp: filledResponse()}
	svc := newTestService(placer, config.OrderLimits{})

	req := orders.Request{
		Symbol:    "BTCUSDT",
		Side:      orders.SideSell,
		Kind:      orders.KindStopMarket,
		Quantity:  decimal.RequireFromString("0.01"),
		StopPrice: decimal.NewFromInt(85000),
	}
	svc.Place(context.Background(), req)

	require.Equal(t, "STOP_MARKET", placer.params.Get("type"))
	require.Equal(t, "85000", placer.params.Get("stopPrice"))
	require.NotContains(t, placer.params, "price")
	require.NotContains(t, placer.params, "timeInForce")
}

func TestExchangeRejectionBecomesFailedResult(t *testing.T) {
	placer := &fakePlacer{err: &binance_http.APIError{Code: -1121, Message: "Invalid symbol."}}
	svc := newTestService(placer, config.OrderLimits{})

	result := svc.Place(context.Background(), marketReq())

	require.False(t, result.Success)
	require.Contains(t, result.Error, "-1121")
	require.Contains(t, result.Error, "Invalid symbol.")
	require.Zero(t, result.OrderID)
	require.True(t, result.Quantity.IsZero())
	require.True(t, result.ExecutedQty.IsZero())
	require.True(t, result.AvgPrice.IsZero())
}

func TestNetworkFailureIsTerminal(t *testing.T) {
	placer := &fakePlacer{err: binance_http.ErrNetwork}
	svc := newTestService(placer, config.OrderLimits{})

	result := svc.Place(context.Background(), marketReq())

	require.False(t, result.Success)
	require.Contains(t, result.Error, "unreachable")
	// One attempt, no retry.
	require.Equal(t, 1, placer.calls)
}

func TestUnexpectedErrorIsWrapped(t *testing.T) {
	placer := &fakePlacer{err: errors.New("boom")}
	svc := newTestService(placer, config.OrderLimits{})

	result := svc.Place(context.Background(), marketReq())
	require.False(t, result.Success)
	require.Contains(t, result.Error, "unexpected error")
	require.Contains(t, result.Error, "boom")
}

func TestResultInvariant(t *testing.T) {
	placer := &fakePlacer{resp: filledResponse()}
	svc := newTestService(placer, config.OrderLimits{})

	success := svc.Place(context.Background(), marketReq())
	require.True(t, success.Success == (success.Error == ""))
	require.True(t, success.Success == (success.OrderID != 0))

	placer.resp, placer.err = nil, &binance_http.APIError{Code: -2019, Message: "Margin is insufficient."}
	failure := svc.Place(context.Background(), marketReq())
	require.True(t, failure.Success == (failure.Error == ""))
	require.True(t, failure.Success == (failure.OrderID != 0))
}

func TestOrderCapBlocksBeforeDispatch(t *testing.T) {
	placer := &fakePlacer{resp: filledResponse()}
	limits := config.OrderLimits{
		Symbols: map[string]config.SymbolLimit{
			"BTCUSDT": {MaxQuantity: "0.005"},
		},
	}
	svc := newTestService(placer, limits)

	result := svc.Place(context.Background(), marketReq())

	require.False(t, result.Success)
	require.Contains(t, result.Error, "order blocked")
	require.Zero(t, placer.calls)
}
