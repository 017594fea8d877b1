package aspen

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/aspen/errors"
	"github.com/kbukum/aspen/httpclient"
	"github.com/kbukum/aspen/logger"
	"github.com/kbukum/aspen/observability"
)

// dispatch is one execution of a Request.
type dispatch struct {
	request   *Request
	requestID string
}

// encode turns a dispatch into a signed transport request.
func (s signer) encode(_ context.Context, d dispatch) (httpclient.Request, error) {
	r := d.request
	headers, err := s.headers(r.ctx, d.requestID)
	if err != nil {
		return httpclient.Request{}, errors.SerializationFailure("sign request payload", err)
	}
	if r.body != nil {
		headers["Content-Type"] = "application/json"
	}
	return httpclient.Request{
		Method:  r.method,
		Path:    r.route.path,
		Headers: headers,
		Body:    r.body,
	}, nil
}

func decode(resp *httpclient.Response) (*Response, error) {
	if resp == nil {
		return nil, errors.SerializationFailure("read response", stderrors.New("transport returned no response"))
	}
	return newResponse(resp), nil
}

// execute is the single execution routine behind every operation.
func (c *Client) execute(ctx context.Context, r *Request) (*Response, error) {
	requestID := c.newID()
	ctx = logger.ContextWithRequestID(ctx, requestID)

	oc := observability.NewOperationContext(r.route.path, r.method, requestID, r.ctx.deviceID, c.metrics)
	ctx, span := oc.StartSpanForOperation(ctx)

	resp, err := c.pipeline.Execute(ctx, dispatch{request: r, requestID: requestID})
	fields := logger.Fields(
		logger.FieldRoute, r.route.path,
		logger.FieldMethod, r.method,
	)
	if err != nil {
		err = normalize(r, err)
		code := string(errors.ErrCodeTransportFailure)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
			if appErr.HTTPStatus > 0 {
				fields[logger.FieldStatus] = appErr.HTTPStatus
			}
		}
		fields[logger.FieldCode] = code
		oc.EndOperation(ctx, span, code, err)
		c.log.WithContext(ctx).Warn("aspen request failed", logger.MergeWithError(logger.MergeWithDuration(fields, oc.Duration()), err))
		return nil, err
	}

	resp.RequestID = requestID
	fields[logger.FieldStatus] = resp.StatusCode
	oc.EndOperation(ctx, span, "ok", nil)
	c.log.WithContext(ctx).Debug("aspen request completed", logger.MergeWithDuration(fields, oc.Duration()))
	return resp, nil
}

// executeAsync runs execute on its own goroutine.
func (c *Client) executeAsync(ctx context.Context, r *Request) *Future[*Response] {
	return async(func() (*Response, error) {
		return c.execute(ctx, r)
	})
}

// executeSync blocks on executeAsync until the transport returns. ctx is
// honoured by the transport, so its end is reported as a TRANSPORT_FAILURE.
func (c *Client) executeSync(ctx context.Context, r *Request) (*Response, error) {
	return c.executeAsync(ctx, r).wait()
}

// normalize maps any pipeline error onto the failure taxonomy.
func normalize(r *Request, err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return err
	}

	op := r.String()
	if stderrors.Is(err, context.Canceled) {
		return errors.TransportFailure(op, err)
	}

	var he *httpclient.Error
	if stderrors.As(err, &he) {
		switch {
		case he.IsStatus():
			return errors.ServiceFailure(he.StatusCode, he.Body).
				WithCause(err).
				WithDetail(errors.DetailOperation, op)
		case httpclient.IsTimeout(he):
			return errors.Timeout(op, err)
		case httpclient.IsEncoding(he):
			return errors.SerializationFailure("encode request body", err).
				WithDetail(errors.DetailOperation, op)
		default:
			return errors.TransportFailure(op, err)
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Timeout(op, err)
	}
	return errors.TransportFailure(op, err)
}
