package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"iusearch/constant"
	"iusearch/repository/credential"
	"iusearch/utils/errors"
)

// RequestTimeout is the fixed upper bound on every backend call. A request
// exceeding it fails like any other transport error.
const RequestTimeout = 30 * time.Second

// Doer is the transport seam; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the single HTTP client configuration every backend call goes
// through. It runs an ordered interceptor pipeline around each request:
// token injection and headers on the way out, session teardown on rejection
// and transport-error normalization on the way back.
type Client struct {
	baseURL       string
	doer          Doer
	requestChain  []RequestInterceptor
	responseChain []ResponseInterceptor
}

// Option customizes a Client; used by tests to swap the transport.
type Option func(*Client)

func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// NewClient builds the session-aware gateway around the given credential
// store. Interceptor order is fixed: the token read always happens before
// transmission, and the rejection clear always runs before transport-error
// normalization.
func NewClient(baseURL string, store credential.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{Timeout: RequestTimeout},
		requestChain: []RequestInterceptor{
			JSONHeaders(),
			RequestID(),
			InjectToken(store),
		},
		responseChain: []ResponseInterceptor{
			ClearSessionOnRejection(store),
			NormalizeTransportError(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PostJSON sends body as JSON and decodes a 2xx response into out.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.WrapCustomError(constant.ErrInternal, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.WrapCustomError(constant.ErrInternal, err)
	}
	return c.do(ctx, req, out)
}

// GetJSON issues a GET with the given query string and decodes a 2xx
// response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.WrapCustomError(constant.ErrInternal, err)
	}
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	for _, intercept := range c.requestChain {
		if err := intercept(ctx, req); err != nil {
			return err
		}
	}

	resp, err := c.doer.Do(req)
	for _, intercept := range c.responseChain {
		resp, err = intercept(ctx, resp, err)
	}
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errType := constant.ErrInternal
		if resp.StatusCode == http.StatusUnauthorized {
			errType = constant.ErrUnauthorized
		}
		return statusError(resp, errType)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapCustomError(constant.ErrInvalidResponse, err)
	}
	return nil
}

// statusError converts a non-2xx response into a typed error, preferring the
// backend-supplied message when one is present in the body.
func statusError(resp *http.Response, errType constant.ErrorType) error {
	var errBody struct {
		Message string `json:"message"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if json.Unmarshal(body, &errBody) == nil && errBody.Message != "" {
		return errors.SetCustomErrorMessage(errType, errBody.Message)
	}
	return errors.SetCustomError(errType)
}
