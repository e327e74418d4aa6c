package execution

import (
	"context"
	"net/url"

	"github.com/aoltyan/futures-trading/internal/adapters/outbound/binance_http"
)

var _ OrderPlacer = (*binance_http.Client)(nil)

// OrderPlacer abstracts the exchange order endpoint.
// Satisfied by *binance_http.Client.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, params url.Values) (*binance_http.OrderResponse, error)
}
