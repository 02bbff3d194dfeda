package pusher

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Auth query parameter names
const (
	ParamAuthKey       = "auth_key"
	ParamAuthTimestamp = "auth_timestamp"
	ParamAuthVersion   = "auth_version"
	ParamBodyMD5       = "body_md5"
	ParamAuthSignature = "auth_signature"

	// AuthVersion is the only signing scheme version Pusher accepts
	AuthVersion = "1.0"
)

// Clock returns the current time. Signing reads it once per request.
type Clock func() time.Time

// Signer computes the auth query parameters Pusher expects on every REST request.
type Signer struct {
	key    string
	secret string
	clock  Clock
}

// NewSigner returns a Signer for the given key pair. A nil clock means time.Now.
func NewSigner(key, secret string, clock Clock) *Signer {
	if clock == nil {
		clock = time.Now
	}
	return &Signer{key: key, secret: secret, clock: clock}
}

// Sign returns the signed parameter set for a request.
func (s *Signer) Sign(method, path string, query map[string]string, body []byte) map[string]string {
	return Sign(method, path, query, body, s.key, s.secret, s.clock())
}

// SignRequest replaces req.Query with the signed parameter set.
func (s *Signer) SignRequest(req *Request) {
	req.Query = s.Sign(req.Method, req.Path, req.Query, req.Body)
}

// Sign builds the auth parameters for a request and appends auth_signature.
//
// Caller supplied query entries override the auth_* defaults, keys are lower-cased.
// The returned map keeps empty values; only the signed string drops them.
func Sign(method, path string, query map[string]string, body []byte, key, secret string, now time.Time) map[string]string {
	params := map[string]string{
		ParamAuthKey:       key,
		ParamAuthTimestamp: strconv.FormatInt(now.Unix(), 10),
		ParamAuthVersion:   AuthVersion,
		ParamBodyMD5:       bodyMD5(body),
	}

	// sorted so that keys colliding after lower-casing resolve the same way every time
	for _, k := range slices.Sorted(maps.Keys(query)) {
		params[strings.ToLower(k)] = query[k]
	}
	delete(params, ParamAuthSignature)

	params[ParamAuthSignature] = hmacSHA256(StringToSign(method, path, params), secret)
	return params
}

// StringToSign returns the canonical "METHOD\nPATH\nQUERY" text that gets signed.
func StringToSign(method, path string, params map[string]string) string {
	return strings.ToUpper(method) + "\n" + path + "\n" + canonicalQuery(params)
}

// canonicalQuery form-encodes the non-empty params sorted by key and decodes the result again.
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if isFalsy(v) {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}

	encoded := b.String()
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		// QueryEscape output always unescapes
		return encoded
	}
	return decoded
}

// isFalsy matches the values the Pusher reference libraries leave out of the signed string.
func isFalsy(v string) bool {
	return v == "" || v == "0"
}

func bodyMD5(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
