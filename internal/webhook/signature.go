package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the lowercase-hex HMAC-SHA256 of the raw request
// body, computed by the gateway with the pre-shared secret.
const SignatureHeader = "X-Sellauth-Signature"

// ValidSignature compares the supplied signature against the expected
// HMAC-SHA256 hex digest in constant time.
func ValidSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(computed))
}
