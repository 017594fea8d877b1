package aspen

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/aspen/version"
)

// Header names of the Aspen authentication scheme.
const (
	HeaderAppKey    = "X-PRO-Auth-App"
	HeaderPayload   = "X-PRO-Auth-Payload"
	HeaderRequestID = "X-PRO-Request-Id"
	HeaderUserAgent = "User-Agent"
)

// Payload is the claim set signed into X-PRO-Auth-Payload. A fresh nonce
// and epoch are used for every request.
type Payload struct {
	Nonce    string `json:"Nonce"`
	Epoch    int64  `json:"Epoch"`
	Token    string `json:"Token,omitempty"`
	DeviceID string `json:"DeviceId,omitempty"`
	Username string `json:"Username,omitempty"`
	gojwt.RegisteredClaims
}

// signer produces the authentication headers of a request.
type signer struct {
	now   func() time.Time
	nonce func() string
}

func (s signer) headers(c *Context, requestID string) (map[string]string, error) {
	payload := &Payload{
		Nonce:    s.nonce(),
		Epoch:    s.now().Unix(),
		Token:    c.token,
		DeviceID: c.deviceID,
		Username: c.username,
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, payload).SignedString([]byte(c.appSecret))
	if err != nil {
		return nil, fmt.Errorf("sign payload: %w", err)
	}

	return map[string]string{
		HeaderAppKey:    c.appKey,
		HeaderPayload:   signed,
		HeaderRequestID: requestID,
		HeaderUserAgent: version.UserAgent(),
	}, nil
}

// ParsePayload verifies an X-PRO-Auth-Payload value against secret and
// returns its claims.
func ParsePayload(raw, secret string) (*Payload, error) {
	payload := &Payload{}
	token, err := gojwt.ParseWithClaims(raw, payload, func(*gojwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("aspen: parse payload: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("aspen: invalid payload")
	}
	return payload, nil
}
