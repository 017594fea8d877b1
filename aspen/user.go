package aspen

import (
	"context"
	"net/http"

	"github.com/kbukum/aspen/validation"
)

// UserModule groups the operations of the signed-in user. Every operation
// comes in a blocking form and an Async form returning a Future.
type UserModule interface {
	// SetPin sets the transactional PIN using the activation code sent by SMS.
	SetPin(ctx context.Context, pinNumber, activationCode string) (*Response, error)
	SetPinAsync(ctx context.Context, pinNumber, activationCode string) *Future[*Response]

	// RequestActivationCode asks the service to send an activation code by SMS.
	RequestActivationCode(ctx context.Context) (*Response, error)
	RequestActivationCodeAsync(ctx context.Context) *Future[*Response]

	// RequestSingleUseToken asks the service to send a single-use token.
	RequestSingleUseToken(ctx context.Context) (*Response, error)
	RequestSingleUseTokenAsync(ctx context.Context) *Future[*Response]

	// UpdatePin replaces the transactional PIN.
	UpdatePin(ctx context.Context, currentPin, newPin string) (*Response, error)
	UpdatePinAsync(ctx context.Context, currentPin, newPin string) *Future[*Response]
}

var _ UserModule = (*Client)(nil)

type setPinBody struct {
	PinNumber      string `json:"PinNumber"`
	ActivationCode string `json:"ActivationCode"`
}

type updatePinBody struct {
	CurrentValue string `json:"CurrentValue"`
	NewValue     string `json:"NewValue"`
}

// CurrentUser returns the client viewed as the current-user capability.
func (c *Client) CurrentUser() UserModule { return c }

func (c *Client) SetPin(ctx context.Context, pinNumber, activationCode string) (*Response, error) {
	return c.SetPinAsync(ctx, pinNumber, activationCode).wait()
}

func (c *Client) SetPinAsync(ctx context.Context, pinNumber, activationCode string) *Future[*Response] {
	if err := validation.RequireNonEmpty("pinNumber", pinNumber); err != nil {
		return rejected[*Response](err)
	}
	if err := validation.RequireNonEmpty("activationCode", activationCode); err != nil {
		return rejected[*Response](err)
	}
	return c.setPinAvoidingValidationAsync(ctx, pinNumber, activationCode)
}

// setPinAvoidingValidation sends the PIN without local checks so the
// service's own validation can be exercised.
func (c *Client) setPinAvoidingValidation(ctx context.Context, pinNumber, activationCode string) (*Response, error) {
	return c.setPinAvoidingValidationAsync(ctx, pinNumber, activationCode).wait()
}

func (c *Client) setPinAvoidingValidationAsync(ctx context.Context, pinNumber, activationCode string) *Future[*Response] {
	body := setPinBody{PinNumber: pinNumber, ActivationCode: activationCode}
	return c.executeAsync(ctx, newRequest(c.ctx, c.routes.Users.Pin, http.MethodPost, body))
}

func (c *Client) RequestActivationCode(ctx context.Context) (*Response, error) {
	return c.executeSync(ctx, newRequest(c.ctx, c.routes.Users.ActivationCode, http.MethodPost, nil))
}

func (c *Client) RequestActivationCodeAsync(ctx context.Context) *Future[*Response] {
	return c.executeAsync(ctx, newRequest(c.ctx, c.routes.Users.ActivationCode, http.MethodPost, nil))
}

func (c *Client) RequestSingleUseToken(ctx context.Context) (*Response, error) {
	return c.executeSync(ctx, newRequest(c.ctx, c.routes.Tokens.Request, http.MethodPost, nil))
}

func (c *Client) RequestSingleUseTokenAsync(ctx context.Context) *Future[*Response] {
	return c.executeAsync(ctx, newRequest(c.ctx, c.routes.Tokens.Request, http.MethodPost, nil))
}

func (c *Client) UpdatePin(ctx context.Context, currentPin, newPin string) (*Response, error) {
	return c.UpdatePinAsync(ctx, currentPin, newPin).wait()
}

func (c *Client) UpdatePinAsync(ctx context.Context, currentPin, newPin string) *Future[*Response] {
	if err := validation.RequireNonEmpty("currentPin", currentPin); err != nil {
		return rejected[*Response](err)
	}
	if err := validation.RequireNonEmpty("newPin", newPin); err != nil {
		return rejected[*Response](err)
	}
	body := updatePinBody{CurrentValue: currentPin, NewValue: newPin}
	return c.executeAsync(ctx, newRequest(c.ctx, c.routes.Users.Pin, http.MethodPatch, body))
}
