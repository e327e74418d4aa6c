package binance_http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// Signer implements Binance Futures request signing: lowercase hex
// HMAC-SHA256 of the URL-encoded parameter string, keyed by the API secret.
// The secret never leaves this type.
type Signer struct {
	apiKey string
	secret []byte
	now    func() time.Time
}

func NewSigner(apiKey, secret string) *Signer {
	return &Signer{apiKey: apiKey, secret: []byte(secret), now: time.Now}
}

// Enabled reports whether a credential pair is present. Signed endpoints
// require an enabled signer; unsigned ones work without.
func (s *Signer) Enabled() bool {
	return s.apiKey != "" && len(s.secret) > 0
}

// APIKey returns the key sent in the X-MBX-APIKEY header.
func (s *Signer) APIKey() string { return s.apiKey }

// Sign returns the hex HMAC-SHA256 signature of payload. Binance verifies
// the signature against the transmitted parameter string byte for byte, so
// payload must be exactly what goes on the wire (minus the signature itself).
func (s *Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedQuery stamps a fresh millisecond timestamp into params, encodes
// them, and appends the signature as the final field. Timestamp and
// signature come from one snapshot per call, so two concurrent calls can
// never interleave a timestamp with the other call's signature.
func (s *Signer) SignedQuery(params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Del("signature")
	params.Set("timestamp", strconv.FormatInt(s.now().UnixMilli(), 10))

	encoded := params.Encode()
	return encoded + "&signature=" + s.Sign(encoded)
}
