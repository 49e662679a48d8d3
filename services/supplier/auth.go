package supplier

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"
)

// Authenticator attaches supplier credentials to an outbound request.
type Authenticator interface {
	Apply(req *http.Request, now time.Time)
}

// SignatureAuth signs each request with the API key and a hash of
// key, secret and the current unix time.
type SignatureAuth struct {
	APIKey string
	Secret string
}

// Signature is hex(sha256(apiKey + secret + unixSeconds)).
func Signature(apiKey, secret string, unixSeconds int64) string {
	sum := sha256.Sum256([]byte(apiKey + secret + strconv.FormatInt(unixSeconds, 10)))
	return hex.EncodeToString(sum[:])
}

func (a SignatureAuth) Apply(req *http.Request, now time.Time) {
	req.Header.Set("Api-key", a.APIKey)
	req.Header.Set("X-Signature", Signature(a.APIKey, a.Secret, now.Unix()))
}

// BasicAuth sends HTTP Basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Apply(req *http.Request, _ time.Time) {
	req.SetBasicAuth(a.Username, a.Password)
}
