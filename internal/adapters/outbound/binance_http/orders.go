package binance_http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const orderPath = "/fapi/v1/order"

// OrderResponse mirrors the fields of /fapi/v1/order this bot consumes.
// Binance sends every quantity and price as a string; absent fields decode
// to "" and are treated as zero downstream.
type OrderResponse struct {
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	AvgPrice      string `json:"avgPrice"`
	Price         string `json:"price"`
	StopPrice     string `json:"stopPrice"`
	TimeInForce   string `json:"timeInForce"`

	// Raw keeps the response exactly as received, for audit.
	Raw map[string]any `json:"-"`
}

func (c *Client) decodeOrder(body []byte) (*OrderResponse, error) {
	var resp OrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	_ = json.Unmarshal(body, &resp.Raw)
	return &resp, nil
}

// PlaceOrder submits a signed POST /fapi/v1/order with the exchange
// parameter names already mapped by the caller.
func (c *Client) PlaceOrder(ctx context.Context, params url.Values) (*OrderResponse, error) {
	body, err := c.do(ctx, http.MethodPost, orderPath, true, nil, params)
	if err != nil {
		return nil, err
	}
	return c.decodeOrder(body)
}

// GetOrder fetches the current state of one order.
func (c *Client) GetOrder(ctx context.Context, symbol string, orderID int64) (*OrderResponse, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("orderId", strconv.FormatInt(orderID, 10))

	body, err := c.do(ctx, http.MethodGet, orderPath, true, params, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeOrder(body)
}

// CancelOrder cancels an open order.
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) (*OrderResponse, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("orderId", strconv.FormatInt(orderID, 10))

	body, err := c.do(ctx, http.MethodDelete, orderPath, true, params, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeOrder(body)
}
