// Package execution dispatches validated orders to the exchange and
// normalizes whatever comes back — raw fill, rejection, or transport
// failure — into a single orders.Result. No error ever escapes it.
package execution

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aoltyan/futures-trading/internal/adapters/outbound/binance_http"
	"github.com/aoltyan/futures-trading/internal/config"
	"github.com/aoltyan/futures-trading/internal/orders"
	"github.com/aoltyan/futures-trading/internal/telemetry"
)

// timeInForce for LIMIT orders when the caller does not say otherwise.
const defaultTimeInForce = "GTC"

// Service turns one validated orders.Request into one orders.Result.
// It checks configured caps, maps the request onto the exchange's
// kind-specific parameter names, and parses the response.
type Service struct {
	client OrderPlacer
	limits config.OrderLimits

	// newClientID generates the idempotency token sent as newClientOrderId.
	newClientID func() string
}

func NewService(client OrderPlacer, limits config.OrderLimits) *Service {
	return &Service{
		client:      client,
		limits:      limits,
		newClientID: uuid.NewString,
	}
}

// Place routes the request to the entry point for its kind.
func (s *Service) Place(ctx context.Context, req orders.Request) orders.Result {
	switch req.Kind {
	case orders.KindLimit:
		return s.PlaceLimit(ctx, req)
	case orders.KindStopMarket:
		return s.PlaceStopMarket(ctx, req)
	default:
		return s.PlaceMarket(ctx, req)
	}
}

func (s *Service) PlaceMarket(ctx context.Context, req orders.Request) orders.Result {
	telemetry.Infof("execution: MARKET %s %s qty=%s", req.Side, req.Symbol, req.Quantity)

	params := s.baseParams(req)
	return s.dispatch(ctx, req, params)
}

func (s *Service) PlaceLimit(ctx context.Context, req orders.Request) orders.Result {
	telemetry.Infof("execution: LIMIT %s %s qty=%s price=%s", req.Side, req.Symbol, req.Quantity, req.Price)

	params := s.baseParams(req)
	params.Set("price", req.Price.String())
	params.Set("timeInForce", defaultTimeInForce)
	return s.dispatch(ctx, req, params)
}

func (s *Service) PlaceStopMarket(ctx context.Context, req orders.Request) orders.Result {
	telemetry.Infof("execution: STOP_MARKET %s %s qty=%s stop=%s", req.Side, req.Symbol, req.Quantity, req.StopPrice)

	params := s.baseParams(req)
	params.Set("stopPrice", req.StopPrice.String())
	return s.dispatch(ctx, req, params)
}

// baseParams maps the fields every kind shares.
func (s *Service) baseParams(req orders.Request) url.Values {
	params := url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("side", string(req.Side))
	params.Set("type", string(req.Kind))
	params.Set("quantity", req.Quantity.String())
	params.Set("newClientOrderId", s.newClientID())
	return params
}

func (s *Service) dispatch(ctx context.Context, req orders.Request, params url.Values) orders.Result {
	// Price is zero except for LIMIT, so the notional cap binds only
	// where a price is actually known.
	if err := s.limits.Check(req.Symbol, req.Quantity, req.Price); err != nil {
		telemetry.Warnf("execution: order blocked: %v", err)
		return orders.Failed("order blocked: " + err.Error())
	}

	resp, err := s.client.PlaceOrder(ctx, params)
	if err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return fail(req, err)
	}

	result := normalize(resp)
	telemetry.Metrics.OrdersSent.Inc()
	telemetry.Infof("execution: %s order placed orderId=%d status=%s", req.Kind, result.OrderID, result.Status)
	return result
}

// normalize maps the raw exchange response onto the uniform Result shape.
// Missing or empty numeric fields become zero; a genuine zero from the
// exchange is indistinguishable, which is accepted.
func normalize(resp *binance_http.OrderResponse) orders.Result {
	return orders.Result{
		Success:     true,
		OrderID:     resp.OrderID,
		Symbol:      resp.Symbol,
		Side:        resp.Side,
		Kind:        resp.Type,
		Status:      resp.Status,
		Quantity:    toDecimal(resp.OrigQty),
		ExecutedQty: toDecimal(resp.ExecutedQty),
		AvgPrice:    toDecimal(resp.AvgPrice),
		LimitPrice:  toDecimal(resp.Price),
		Raw:         resp.Raw,
	}
}

// fail converts any dispatch error into a failed Result. Exchange
// rejections keep their code and message verbatim; everything else gets
// a wrapped generic message.
func fail(req orders.Request, err error) orders.Result {
	var apiErr *binance_http.APIError
	switch {
	case errors.As(err, &apiErr):
		telemetry.Errorf("execution: %s order rejected: %v", req.Kind, err)
		return orders.Failed(apiErr.Error())
	case errors.Is(err, binance_http.ErrNetwork), errors.Is(err, binance_http.ErrTimeout):
		telemetry.Errorf("execution: %s order failed: %v", req.Kind, err)
		return orders.Failed(err.Error())
	default:
		telemetry.Errorf("execution: unexpected error placing %s order: %v", req.Kind, err)
		return orders.Failed(fmt.Sprintf("unexpected error: %v", err))
	}
}

func toDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
