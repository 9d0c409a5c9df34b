package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// signer produces the HMAC-SHA256 signature Binance expects on SIGNED
// endpoints: hex(hmac(secret, queryString)).
type signer struct {
	apiKey string
	secret []byte
}

func newSigner(apiKey, apiSecret string) *signer {
	return &signer{apiKey: apiKey, secret: []byte(apiSecret)}
}

func (s *signer) ready() bool {
	return s.apiKey != "" && len(s.secret) > 0
}

func (s *signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
