package binance_http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// PriceTicker is the payload of GET /fapi/v1/ticker/price.
type PriceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   int64  `json:"time"`
}

// Price looks up the latest price for one symbol. Unsigned.
func (c *Client) Price(ctx context.Context, symbol string) (*PriceTicker, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	body, err := c.do(ctx, http.MethodGet, "/fapi/v1/ticker/price", false, params, nil)
	if err != nil {
		return nil, err
	}
	var ticker PriceTicker
	if err := json.Unmarshal(body, &ticker); err != nil {
		return nil, fmt.Errorf("decode price ticker: %w", err)
	}
	return &ticker, nil
}

// SymbolInfo is the subset of exchangeInfo symbol metadata the bot reads.
type SymbolInfo struct {
	Symbol     string `json:"symbol"`
	Status     string `json:"status"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
}

// ExchangeInfo is the payload of GET /fapi/v1/exchangeInfo.
type ExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime int64        `json:"serverTime"`
	Symbols    []SymbolInfo `json:"symbols"`
}

// GetExchangeInfo fetches exchange trading rules and symbol metadata. Unsigned.
func (c *Client) GetExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	body, err := c.do(ctx, http.MethodGet, "/fapi/v1/exchangeInfo", false, nil, nil)
	if err != nil {
		return nil, err
	}
	var info ExchangeInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode exchange info: %w", err)
	}
	return &info, nil
}

// AccountAsset is one asset line of the account snapshot.
type AccountAsset struct {
	Asset            string `json:"asset"`
	WalletBalance    string `json:"walletBalance"`
	AvailableBalance string `json:"availableBalance"`
	UnrealizedProfit string `json:"unrealizedProfit"`
}

// Account is the payload of GET /fapi/v2/account.
type Account struct {
	TotalWalletBalance string         `json:"totalWalletBalance"`
	AvailableBalance   string         `json:"availableBalance"`
	Assets             []AccountAsset `json:"assets"`
}

// GetAccount fetches the signed account snapshot.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	body, err := c.do(ctx, http.MethodGet, "/fapi/v2/account", true, nil, nil)
	if err != nil {
		return nil, err
	}
	var acct Account
	if err := json.Unmarshal(body, &acct); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return &acct, nil
}
