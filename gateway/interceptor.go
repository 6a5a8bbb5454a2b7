package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"iusearch/constant"
	"iusearch/repository/credential"
	"iusearch/utils/errors"
	"iusearch/utils/logger"
)

// RequestInterceptor mutates an outbound request before it is transmitted.
// Returning an error aborts the request.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor observes the transport outcome and may replace the
// error before it reaches the caller. Interceptors run in order; each sees
// the previous one's result.
type ResponseInterceptor func(ctx context.Context, resp *http.Response, err error) (*http.Response, error)

// InjectToken reads the bearer token from the credential store and attaches
// it to the request. The store read completes before the request is sent; no
// request goes out without first attempting injection. A storage failure
// degrades to an unauthenticated request rather than aborting.
func InjectToken(store credential.Store) RequestInterceptor {
	return func(ctx context.Context, req *http.Request) error {
		token, ok, err := store.Get(ctx, constant.KeyAuthToken)
		if err != nil {
			logger.Warn("[Gateway] token read failed, sending unauthenticated", zap.String("error", err.Error()))
			return nil
		}
		if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// JSONHeaders sets the content type on every outbound request.
func JSONHeaders() RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("Content-Type", "application/json")
		return nil
	}
}

// RequestID tags every outbound request for log correlation.
func RequestID() RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("X-Request-ID", uuid.NewString())
		return nil
	}
}

// ClearSessionOnRejection deletes both credential keys when the backend
// rejects the request's authorization, before the rejection is surfaced to
// the caller. A storage failure while clearing is logged and never masks the
// rejection itself. The clear is idempotent: a second in-flight request that
// captured a stale token simply triggers it again.
func ClearSessionOnRejection(store credential.Store) ResponseInterceptor {
	return func(ctx context.Context, resp *http.Response, err error) (*http.Response, error) {
		if err != nil || resp == nil || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}
		if derr := store.Delete(ctx, constant.KeyAuthToken); derr != nil {
			logger.Error("[Gateway] err clearing auth token", zap.String("error", derr.Error()))
		}
		if derr := store.Delete(ctx, constant.KeyUserInfo); derr != nil {
			logger.Error("[Gateway] err clearing user info", zap.String("error", derr.Error()))
		}
		return resp, err
	}
}

// NormalizeTransportError rewrites no-response failures (DNS, refused
// connections, timeouts) to the fixed user-safe transport error while
// keeping the cause for logs. Errors that already carry a response pass
// through unchanged.
func NormalizeTransportError() ResponseInterceptor {
	return func(_ context.Context, resp *http.Response, err error) (*http.Response, error) {
		if err == nil {
			return resp, nil
		}
		logger.Error("[Gateway] transport failure", zap.String("error", err.Error()))
		return resp, errors.WrapCustomError(constant.ErrTransport, err)
	}
}
