package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind classifies an upstream failure.
type Kind string

const (
	// KindTransport means no usable response arrived (DNS, refused
	// connection, timeout, cancelled context).
	KindTransport Kind = "transport"
	// KindProtocol means the upstream answered with a non-2xx status.
	KindProtocol Kind = "protocol"
	// KindShape means a 2xx response carried a body that does not decode
	// into the expected JSON shape.
	KindShape Kind = "shape"
)

// Error is the uniform failure signal every gateway operation returns.
// Callers decide fallback behavior; the gateway itself never retries.
type Error struct {
	Kind   Kind
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindProtocol:
		return fmt.Sprintf("upstream returned status %d: %s", e.Status, truncate(e.Body, 200))
	case KindShape:
		return fmt.Sprintf("upstream body did not match expected shape: %v", e.Err)
	default:
		return fmt.Sprintf("upstream unreachable: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client is the resty-backed base every subsystem client is built on. It
// injects the bearer token, tags each call with a request id for log
// correlation, and converts every failure mode into *Error.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a gateway client rooted at baseURL. The token may be empty or
// expired; resulting 401s surface as protocol failures like any other status.
func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", token)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: restyClient, logger: logger}
}

// Get performs a GET and decodes the body into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST with the given JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT with the given JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch performs a PATCH with the given JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()

	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{Kind: KindTransport, Err: err}
	}

	if resp.IsError() {
		c.logger.Warn("upstream returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode()))
		return &Error{Kind: KindProtocol, Status: resp.StatusCode(), Body: resp.String()}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Warn("upstream body failed to decode",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{Kind: KindShape, Status: resp.StatusCode(), Err: err}
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
