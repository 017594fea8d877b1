package aspen

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/kbukum/aspen/errors"
	"github.com/kbukum/aspen/validation"
)

// SessionModule signs users in. A successful sign-in returns a new Client
// bound to the user's session; the receiver is left unchanged.
type SessionModule interface {
	SignIn(ctx context.Context, docType, docNumber, password string) (*Client, error)
	SignInAsync(ctx context.Context, docType, docNumber, password string) *Future[*Client]
}

var _ SessionModule = (*Client)(nil)

type signInBody struct {
	DocType   string `json:"DocType"`
	DocNumber string `json:"DocNumber"`
	Password  string `json:"Password"`
	DeviceID  string `json:"DeviceId"`
}

type signInResult struct {
	AuthToken string `json:"AuthToken"`
}

// Session returns the client viewed as the session capability.
func (c *Client) Session() SessionModule { return c }

func (c *Client) SignIn(ctx context.Context, docType, docNumber, password string) (*Client, error) {
	return c.SignInAsync(ctx, docType, docNumber, password).wait()
}

func (c *Client) SignInAsync(ctx context.Context, docType, docNumber, password string) *Future[*Client] {
	v := validation.New().
		Required("docType", docType).
		Required("docNumber", docNumber).
		Required("password", password)
	if err := v.Err(); err != nil {
		return rejected[*Client](err)
	}

	body := signInBody{
		DocType:   docType,
		DocNumber: docNumber,
		Password:  password,
		DeviceID:  c.ctx.deviceID,
	}
	r := newRequest(c.ctx, c.routes.Auth.SignIn, http.MethodPost, body)

	return async(func() (*Client, error) {
		resp, err := c.execute(ctx, r)
		if err != nil {
			return nil, err
		}
		result, err := Decode[signInResult](resp)
		if err != nil {
			return nil, err
		}
		if result.AuthToken == "" {
			return nil, errors.SerializationFailure("decode sign-in response", stderrors.New("AuthToken is missing"))
		}
		return c.withContext(c.ctx.withSession(docNumber, result.AuthToken)), nil
	})
}
