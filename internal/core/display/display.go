// Package display renders results to a terminal. It makes no decisions;
// everything it prints was decided upstream.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/aoltyan/futures-trading/internal/adapters/outbound/binance_http"
	"github.com/aoltyan/futures-trading/internal/orders"
)

const sep = "----------------------------------------------------"

// Summary prints the order about to be sent.
func Summary(w io.Writer, req orders.Request) {
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "  Order Summary")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  Symbol        : %s\n", req.Symbol)
	fmt.Fprintf(w, "  Side          : %s\n", req.Side)
	fmt.Fprintf(w, "  Type          : %s\n", req.Kind)
	fmt.Fprintf(w, "  Quantity      : %s\n", req.Quantity)
	if req.Kind == orders.KindLimit {
		fmt.Fprintf(w, "  Price         : %s\n", req.Price)
	}
	if req.Kind == orders.KindStopMarket {
		fmt.Fprintf(w, "  Stop Price    : %s\n", req.StopPrice)
	}
	fmt.Fprintln(w, sep)
}

// Result prints the normalized outcome of one dispatch.
func Result(w io.Writer, r orders.Result) {
	fmt.Fprintln(w, sep)
	if r.Success {
		fmt.Fprintln(w, "  ORDER PLACED")
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, "  Order ID      : %d\n", r.OrderID)
		fmt.Fprintf(w, "  Symbol        : %s\n", r.Symbol)
		fmt.Fprintf(w, "  Side          : %s\n", r.Side)
		fmt.Fprintf(w, "  Type          : %s\n", r.Kind)
		fmt.Fprintf(w, "  Status        : %s\n", r.Status)
		fmt.Fprintf(w, "  Quantity      : %s\n", r.Quantity)
		fmt.Fprintf(w, "  Executed Qty  : %s\n", r.ExecutedQty)
		if r.AvgPrice.Sign() > 0 {
			fmt.Fprintf(w, "  Avg Price     : %s\n", r.AvgPrice)
		}
		if r.LimitPrice.Sign() > 0 {
			fmt.Fprintf(w, "  Limit Price   : %s\n", r.LimitPrice)
		}
	} else {
		fmt.Fprintln(w, "  ORDER FAILED")
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, "  Error         : %s\n", r.Error)
	}
	fmt.Fprintln(w, sep)
}

// Price prints one ticker line.
func Price(w io.Writer, t *binance_http.PriceTicker) {
	fmt.Fprintf(w, "  %s  %s\n", t.Symbol, t.Price)
}

// Account prints the wallet snapshot, skipping empty asset lines.
func Account(w io.Writer, a *binance_http.Account) {
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "  Account")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  Total Balance     : %s\n", a.TotalWalletBalance)
	fmt.Fprintf(w, "  Available Balance : %s\n", a.AvailableBalance)
	for _, asset := range a.Assets {
		if strings.TrimLeft(asset.WalletBalance, "0.") == "" {
			continue
		}
		fmt.Fprintf(w, "  %-6s wallet=%s available=%s\n", asset.Asset, asset.WalletBalance, asset.AvailableBalance)
	}
	fmt.Fprintln(w, sep)
}
