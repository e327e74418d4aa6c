package binance_http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aoltyan/futures-trading/internal/telemetry"
)

const (
	TestnetURL = "https://testnet.binancefuture.com"
	MainnetURL = "https://fapi.binance.com"

	// CodeNonJSON is the local sentinel for a body the exchange never
	// produced: real Binance error codes are negative four-digit values.
	CodeNonJSON = -1

	requestTimeout = 10 * time.Second
	logBodyLimit   = 512
)

var (
	// ErrNetwork classifies connection failures: the exchange was unreachable.
	ErrNetwork = errors.New("binance unreachable")
	// ErrTimeout classifies requests that got no response within the bound.
	ErrTimeout = errors.New("binance request timed out")
)

// APIError is an exchange-level rejection: a non-200 status, a negative
// "code" field in the body, or a body that was not JSON at all.
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance API error %d: %s", e.Code, e.Message)
}

// Client talks to the Binance USDⓈ-M Futures REST API. It holds the base
// URL and one credential pair for its lifetime and is otherwise stateless.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	signer       *Signer
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter
}

func NewClient(baseURL string, signer *Signer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		signer:       signer,
		readLimiter:  rate.NewLimiter(rate.Limit(20), 20),
		writeLimiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// do performs one HTTP call and classifies its outcome. For signed calls
// the query and form params are merged, timestamped and signed, then the
// whole payload rides the query string for GET/DELETE and the form body
// for everything else — never both.
func (c *Client) do(ctx context.Context, method, path string, signed bool, query, form url.Values) ([]byte, error) {
	lim := c.readLimiter
	if method != http.MethodGet {
		lim = c.writeLimiter
	}
	if err := lim.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var rawQuery, rawBody string
	if signed {
		payload := c.signer.SignedQuery(merge(query, form))
		if method == http.MethodGet || method == http.MethodDelete {
			rawQuery = payload
		} else {
			rawBody = payload
		}
	} else {
		if len(query) > 0 {
			rawQuery = query.Encode()
		}
		if len(form) > 0 {
			rawBody = form.Encode()
		}
	}

	endpoint := c.baseURL + path
	var bodyReader io.Reader
	if rawBody != "" {
		bodyReader = strings.NewReader(rawBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if rawQuery != "" {
		req.URL.RawQuery = rawQuery
	}
	req.Header.Set("Accept", "application/json")
	if rawBody != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if signed {
		req.Header.Set("X-MBX-APIKEY", c.signer.APIKey())
	}

	telemetry.Metrics.RequestsIssued.Inc()
	telemetry.Debugf("binance_http: %s %s params=%s body=%s",
		method, endpoint, redact(rawQuery), redact(rawBody))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.RequestFailures.Inc()
		if isTimeout(err) {
			telemetry.Errorf("binance_http: %s %s timed out", method, endpoint)
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		telemetry.Errorf("binance_http: %s %s network error: %v", method, endpoint, err)
		return nil, fmt.Errorf("%w at %s: check your network", ErrNetwork, endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.Metrics.RequestFailures.Inc()
		return nil, fmt.Errorf("%w at %s: read response: %v", ErrNetwork, endpoint, err)
	}

	telemetry.Metrics.RequestLatency.Record(time.Since(start))
	telemetry.Debugf("binance_http: %s %s -> %d (%s) body=%s",
		method, endpoint, resp.StatusCode, time.Since(start), truncate(string(body), logBodyLimit))

	if err := classify(resp.StatusCode, body); err != nil {
		telemetry.Metrics.RequestFailures.Inc()
		telemetry.Errorf("binance_http: %s %s failed: %v", method, endpoint, err)
		return nil, err
	}
	return body, nil
}

// classify turns a response into an *APIError when the exchange rejected
// it. Binance always answers JSON; a negative integer "code" in the body
// is an error even on HTTP 200, and a non-negative code is never one.
func classify(status int, body []byte) error {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return &APIError{Code: CodeNonJSON, Message: "non-JSON response: " + truncate(string(body), logBodyLimit)}
	}

	code, msg := int64(0), ""
	hasCode := false
	if obj, ok := decoded.(map[string]any); ok {
		if v, ok := obj["code"].(float64); ok {
			code, hasCode = int64(v), true
		}
		if v, ok := obj["msg"].(string); ok {
			msg = v
		}
	}

	if hasCode && code < 0 {
		return &APIError{Code: code, Message: msg}
	}
	if status != http.StatusOK {
		if !hasCode {
			code = int64(status)
		}
		if msg == "" {
			msg = truncate(string(body), logBodyLimit)
		}
		return &APIError{Code: code, Message: msg}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func merge(query, form url.Values) url.Values {
	merged := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	for k, vs := range form {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	return merged
}

// redact hides the signature value in logged payloads; the secret itself
// is never part of any payload.
func redact(payload string) string {
	if payload == "" {
		return ""
	}
	const key = "signature="
	idx := strings.Index(payload, key)
	if idx < 0 {
		return payload
	}
	end := strings.IndexByte(payload[idx:], '&')
	if end < 0 {
		return payload[:idx+len(key)] + "<redacted>"
	}
	return payload[:idx+len(key)] + "<redacted>" + payload[idx+end:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
