package binance_http

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Secret and query string from the Binance signed-endpoint documentation
// example; the expected signature is the documented reference output.
const (
	docsSecret = "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
	docsQuery  = "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"
	docsSig    = "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71"
)

func fixedSigner(apiKey, secret string, ts time.Time) *Signer {
	s := NewSigner(apiKey, secret)
	s.now = func() time.Time { return ts }
	return s
}

func TestSignMatchesReferenceVector(t *testing.T) {
	s := NewSigner("key", docsSecret)
	require.Equal(t, docsSig, s.Sign(docsQuery))
}

func TestSignedQueryByteExact(t *testing.T) {
	s := fixedSigner("key", "test-secret", time.UnixMilli(1700000000000))

	params := url.Values{}
	params.Set("symbol", "BTCUSDT")
	params.Set("side", "BUY")
	params.Set("type", "MARKET")
	params.Set("quantity", "0.01")

	got := s.SignedQuery(params)
	want := "quantity=0.01&side=BUY&symbol=BTCUSDT&timestamp=1700000000000&type=MARKET" +
		"&signature=7a9e78c11b627bf78cd27235918a54420cb206664fc88b7974f82ba6a546f55b"
	require.Equal(t, want, got)
}

func TestSignedQueryDeterministic(t *testing.T) {
	ts := time.UnixMilli(1699999999999)
	params := func() url.Values {
		v := url.Values{}
		v.Set("symbol", "ETHUSDT")
		v.Set("side", "SELL")
		return v
	}

	first := fixedSigner("key", "secret", ts).SignedQuery(params())
	second := fixedSigner("key", "secret", ts).SignedQuery(params())
	require.Equal(t, first, second)

	changed := params()
	changed.Set("side", "BUY")
	require.NotEqual(t, first, fixedSigner("key", "secret", ts).SignedQuery(changed))
}

func TestSignedQuerySignatureIsLastAndExcluded(t *testing.T) {
	s := fixedSigner("key", "secret", time.UnixMilli(1700000000000))

	params := url.Values{}
	params.Set("symbol", "BTCUSDT")
	// A stale signature from a previous signing round must not leak into
	// the string being signed.
	params.Set("signature", "stale")

	payload := s.SignedQuery(params)

	idx := strings.LastIndex(payload, "&signature=")
	require.Greater(t, idx, 0)
	prefix, sig := payload[:idx], payload[idx+len("&signature="):]

	require.NotContains(t, prefix, "signature")
	require.Equal(t, s.Sign(prefix), sig)

	parsed, err := url.ParseQuery(payload)
	require.NoError(t, err)
	require.Len(t, parsed["timestamp"], 1)
	require.Len(t, parsed["signature"], 1)
	require.Equal(t, "1700000000000", parsed.Get("timestamp"))
}

func TestSignerEnabled(t *testing.T) {
	require.True(t, NewSigner("key", "secret").Enabled())
	require.False(t, NewSigner("", "secret").Enabled())
	require.False(t, NewSigner("key", "").Enabled())
}
