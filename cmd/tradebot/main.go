package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aoltyan/futures-trading/internal/adapters/outbound/binance_http"
	"github.com/aoltyan/futures-trading/internal/config"
	"github.com/aoltyan/futures-trading/internal/core/display"
	"github.com/aoltyan/futures-trading/internal/core/execution"
	"github.com/aoltyan/futures-trading/internal/core/validate"
	"github.com/aoltyan/futures-trading/internal/orders"
	"github.com/aoltyan/futures-trading/internal/telemetry"
)

const usage = `Binance Futures Testnet - Trading Bot

Usage:
  tradebot place-order --symbol BTCUSDT --side BUY --type MARKET --quantity 0.01
  tradebot place-order --symbol BTCUSDT --side SELL --type LIMIT --quantity 0.01 --price 100000
  tradebot place-order --symbol BTCUSDT --side SELL --type STOP_MARKET --quantity 0.01 --stop-price 85000
  tradebot interactive
  tradebot price <symbol>
  tradebot account
  tradebot status --symbol BTCUSDT --order-id 123
  tradebot cancel --symbol BTCUSDT --order-id 123
`

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel), cfg.LogDir)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "place-order":
		runPlaceOrder(ctx, cfg, os.Args[2:])
	case "interactive":
		runInteractive(ctx, cfg)
	case "price":
		runPrice(ctx, cfg, os.Args[2:])
	case "account":
		runAccount(ctx, cfg)
	case "status":
		runOrderLookup(ctx, cfg, os.Args[2:], false)
	case "cancel":
		runOrderLookup(ctx, cfg, os.Args[2:], true)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

// signedClient builds the REST client, exiting when credentials are
// missing — every caller here needs signed endpoints.
func signedClient(cfg *config.Config) *binance_http.Client {
	if !cfg.HasCredentials() {
		fmt.Fprintln(os.Stderr, "BINANCE_API_KEY and BINANCE_API_SECRET must be set (env or .env file).")
		telemetry.Errorf("missing API credentials")
		os.Exit(1)
	}
	signer := binance_http.NewSigner(cfg.APIKey, cfg.APISecret)
	return binance_http.NewClient(cfg.BaseURL, signer)
}

func loadLimits(cfg *config.Config) config.OrderLimits {
	if cfg.OrderLimitsPath == "" {
		return config.OrderLimits{}
	}
	limits, err := config.LoadOrderLimits(cfg.OrderLimitsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "order limits: %v\n", err)
		os.Exit(1)
	}
	return limits
}

func runPlaceOrder(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("place-order", flag.ExitOnError)
	symbol := fs.String("symbol", "", "trading pair, e.g. BTCUSDT")
	side := fs.String("side", "", "BUY or SELL")
	kind := fs.String("type", "", "MARKET, LIMIT or STOP_MARKET")
	quantity := fs.String("quantity", "", "quantity to trade")
	price := fs.String("price", "", "limit price (required for LIMIT)")
	stopPrice := fs.String("stop-price", "", "stop price (required for STOP_MARKET)")
	_ = fs.Parse(args)

	req, err := validate.Request(*symbol, *side, *kind, *quantity, *price, *stopPrice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation error: %v\n", err)
		telemetry.Warnf("validation error: %v", err)
		os.Exit(1)
	}

	placeAndReport(ctx, cfg, req)
}

func placeAndReport(ctx context.Context, cfg *config.Config, req orders.Request) {
	display.Summary(os.Stdout, req)

	client := signedClient(cfg)
	svc := execution.NewService(client, loadLimits(cfg))

	result := svc.Place(ctx, req)
	display.Result(os.Stdout, result)
	if !result.Success {
		os.Exit(1)
	}
}

func runPrice(ctx context.Context, cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: tradebot price <symbol>")
		os.Exit(2)
	}
	symbol, err := validate.Symbol(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation error: %v\n", err)
		os.Exit(1)
	}

	// Price lookup is unsigned; no credentials required.
	client := binance_http.NewClient(cfg.BaseURL, binance_http.NewSigner(cfg.APIKey, cfg.APISecret))
	ticker, err := client.Price(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "price lookup failed: %v\n", err)
		os.Exit(1)
	}
	display.Price(os.Stdout, ticker)
}

func runAccount(ctx context.Context, cfg *config.Config) {
	client := signedClient(cfg)
	acct, err := client.GetAccount(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "account lookup failed: %v\n", err)
		os.Exit(1)
	}
	display.Account(os.Stdout, acct)
}

func runOrderLookup(ctx context.Context, cfg *config.Config, args []string, cancel bool) {
	name := "status"
	if cancel {
		name = "cancel"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	symbol := fs.String("symbol", "", "trading pair, e.g. BTCUSDT")
	orderID := fs.Int64("order-id", 0, "exchange order id")
	_ = fs.Parse(args)

	sym, err := validate.Symbol(*symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation error: %v\n", err)
		os.Exit(1)
	}
	if *orderID <= 0 {
		fmt.Fprintln(os.Stderr, "validation error: --order-id must be a positive integer")
		os.Exit(1)
	}

	client := signedClient(cfg)
	var resp *binance_http.OrderResponse
	if cancel {
		resp, err = client.CancelOrder(ctx, sym, *orderID)
	} else {
		resp, err = client.GetOrder(ctx, sym, *orderID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("  order %d %s: status=%s executed=%s/%s\n",
		resp.OrderID, resp.Symbol, resp.Status, resp.ExecutedQty, resp.OrigQty)
}

// runInteractive walks through each order field with inline validation,
// then dispatches the same way flag parsing does. 'q' quits at any prompt.
func runInteractive(ctx context.Context, cfg *config.Config) {
	fmt.Println("Interactive order wizard (type 'q' to quit at any prompt)")
	in := bufio.NewScanner(os.Stdin)

	symbol := ask(in, "Symbol (e.g. BTCUSDT)", func(raw string) error {
		_, err := validate.Symbol(raw)
		return err
	})
	side := ask(in, "Side [BUY/SELL]", func(raw string) error {
		_, err := validate.Side(raw)
		return err
	})
	fmt.Println("  Order types: MARKET | LIMIT | STOP_MARKET")
	kindRaw := ask(in, "Order type", func(raw string) error {
		_, err := validate.Kind(raw)
		return err
	})
	kind, _ := validate.Kind(kindRaw)
	quantity := ask(in, "Quantity", func(raw string) error {
		_, err := validate.Quantity(raw)
		return err
	})

	var price, stopPrice string
	switch kind {
	case orders.KindLimit:
		price = ask(in, "Limit price", func(raw string) error {
			_, err := validate.Price(raw, orders.KindLimit)
			return err
		})
	case orders.KindStopMarket:
		stopPrice = ask(in, "Stop price", func(raw string) error {
			_, err := validate.StopPrice(raw, orders.KindStopMarket)
			return err
		})
	}

	req, err := validate.Request(symbol, side, kindRaw, quantity, price, stopPrice)
	if err != nil {
		// Every field already validated; this only trips on a bug.
		fmt.Fprintf(os.Stderr, "validation error: %v\n", err)
		os.Exit(1)
	}

	placeAndReport(ctx, cfg, req)
}

func ask(in *bufio.Scanner, prompt string, check func(string) error) string {
	for {
		fmt.Printf("  %s: ", prompt)
		if !in.Scan() {
			fmt.Println("\nBye!")
			os.Exit(0)
		}
		raw := strings.TrimSpace(in.Text())
		if strings.EqualFold(raw, "q") {
			fmt.Println("Bye!")
			os.Exit(0)
		}
		if err := check(raw); err != nil {
			fmt.Printf("    ! %v\n", err)
			continue
		}
		return raw
	}
}
