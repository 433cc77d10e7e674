package goplus

import (
	"crypto/sha1" //nolint:gosec // the remote signature scheme mandates SHA-1
	"encoding/json"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// SignatureWindow is how far the signing time may drift from the server clock
	SignatureWindow = 1000 * time.Second

	// anonymousToken is the header value sent when no credential is held
	anonymousToken = "None"
)

// Credential is an access token attached to outgoing requests.
// Values are immutable once published to a Session.
type Credential struct {
	Token     string        `json:"token"`
	IssuedAt  time.Time     `json:"issued_at"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// ExpiresAt returns the instant after which the credential is stale.
func (c Credential) ExpiresAt() time.Time {
	return c.IssuedAt.Add(c.ExpiresIn)
}

// Stale reports whether the credential has outlived its validity at now.
// A zero ExpiresIn means the lifetime is unknown and the credential is never reported stale.
func (c Credential) Stale(now time.Time) bool {
	if c.ExpiresIn <= 0 {
		return false
	}
	return !now.Before(c.ExpiresAt())
}

// Sign computes the access signature: hex(SHA-1(appKey || time || secret)).
func Sign(appKey, secret string, unix uint64) string {
	h := sha1.New() //nolint:gosec
	h.Write([]byte(appKey))
	h.Write([]byte(strconv.FormatUint(unix, 10)))
	h.Write([]byte(secret))
	return common.Bytes2Hex(h.Sum(nil))
}

// SignNow signs with now truncated to UNIX seconds and returns the time used.
func SignNow(appKey, secret string, now time.Time) (signature string, unix uint64) {
	unix = uint64(now.Unix())
	return Sign(appKey, secret, unix), unix
}

// NewSignedCredential derives an optimistic credential locally. It is only
// validated by the first call that uses it.
func NewSignedCredential(appKey, secret string, now time.Time) Credential {
	sig, unix := SignNow(appKey, secret, now)
	return Credential{
		Token:     sig,
		IssuedAt:  time.Unix(int64(unix), 0),
		ExpiresIn: SignatureWindow,
	}
}

func encodeCredential(c Credential) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCredential(s string) (Credential, error) {
	var c Credential
	err := json.Unmarshal([]byte(s), &c)
	return c, err
}
