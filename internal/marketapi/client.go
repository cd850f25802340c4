package marketapi

// Package marketapi holds the credential request adapters for the remote
// marketplace REST API: one stateless operation per (user kind, flow)
// pair. Each adapter validates input locally, makes at most one HTTP
// call, and folds every outcome into a Result.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rentnest/rentnest-web/internal/observability/statsd"
	"github.com/rentnest/rentnest-web/internal/ports"
)

// Fixed endpoint paths, one per operation.
const (
	pathRenterLogin          = "/api/v1/rentor/login"
	pathRenterRegister       = "/api/v1/rentor/register"
	pathRenterForgotPassword = "/api/v1/rentor/forgot-password"
	pathRenterResetPassword  = "/api/v1/rentor/reset-password"

	pathLandlordLogin          = "/api/v1/landlord/login"
	pathLandlordRegister       = "/api/v1/landlord/register"
	pathLandlordForgotPassword = "/api/v1/landlord/forgot-password"

	pathVerifyOTP = "/api/v1/account/verify-otp"
	pathResendOTP = "/api/v1/account/resend-otp"

	pathProfile    = "/api/v1/%s/profile/%s"
	pathCategories = "/api/v1/categories/all"
	pathProperties = "/api/v1/properties/all"
)

const networkFailureMessage = "Unable to reach RentNest. Check your connection and try again."

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	BaseURL string

	// Optional dependency injection for testing/decoupling
	HTTPClient *http.Client
	Vault      ports.TokenVault
	Logger     *slog.Logger
	Metrics    statsd.Sink

	// GuestKey is sent on unauthenticated calls when configured.
	GuestKey string

	// TokenFallbackTTL is the vault expiry for opaque bearer tokens.
	TokenFallbackTTL time.Duration
}

// Client calls the remote marketplace API. All methods are safe for
// concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	vault    ports.TokenVault
	logger   *slog.Logger
	metrics  statsd.Sink
	guestKey string

	tokenFallbackTTL time.Duration
}

// NewClient constructs a Client.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.TokenFallbackTTL
	if fallback <= 0 {
		fallback = 24 * time.Hour
	}
	return &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		http:             httpClient,
		vault:            opts.Vault,
		logger:           logger,
		metrics:          statsd.OrNop(opts.Metrics),
		guestKey:         opts.GuestKey,
		tokenFallbackTTL: fallback,
	}
}

// apiResponse is a decoded API response: the envelope for status
// interpretation plus the whole body as a map so payload-shape
// normalization happens downstream in one place.
type apiResponse struct {
	Envelope Envelope
	Body     map[string]any
}

// callFailure carries the Result for a transport-level failure.
type callFailure struct {
	Result Result
}

func (f *callFailure) Error() string { return f.Result.Message }

// call issues one HTTP request and decodes the response. Transport
// failures come back as *callFailure with the three branches the UI
// distinguishes: error status, no response, request never sent.
func (c *Client) call(ctx context.Context, method, path string, payload any) (*apiResponse, error) {
	start := time.Now()
	defer func() {
		c.metrics.Timing("marketapi.request", time.Since(start), map[string]string{"path": path})
	}()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &callFailure{Result: failure(ErrCodeRequest, err.Error())}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &callFailure{Result: failure(ErrCodeRequest, err.Error())}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.guestKey != "" {
		req.Header.Set("X-Guest-Key", c.guestKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "marketapi request failed", "path", path, "error", err)
		c.metrics.Count("marketapi.network_error", 1, map[string]string{"path": path})
		return nil, &callFailure{Result: failure(ErrCodeNetwork, networkFailureMessage)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &callFailure{Result: failure(ErrCodeNetwork, networkFailureMessage)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Count("marketapi.http_error", 1, map[string]string{"path": path})
		res := failure(ErrCodeHTTP, messageForHTTPStatus(resp.StatusCode))
		return nil, &callFailure{Result: res}
	}

	out := &apiResponse{}
	if err := json.Unmarshal(raw, &out.Envelope); err != nil {
		c.logger.ErrorContext(ctx, "marketapi response is not an envelope", "path", path, "error", err)
		return nil, &callFailure{Result: failure(ErrCodeAPI, "Unexpected response from server.")}
	}
	if err := json.Unmarshal(raw, &out.Body); err != nil {
		return nil, &callFailure{Result: failure(ErrCodeAPI, "Unexpected response from server.")}
	}
	return out, nil
}

// post runs a POST call and folds transport failures and logical
// envelope failures into a Result. The success Result carries the whole
// response body for downstream normalization.
func (c *Client) post(ctx context.Context, path string, payload any) Result {
	resp, err := c.call(ctx, http.MethodPost, path, payload)
	if err != nil {
		return resultFromCallError(err)
	}

	env := &resp.Envelope
	if !env.OK() {
		c.metrics.Count("marketapi.logical_failure", 1, map[string]string{"path": path, "code": env.StatusCode})
		res := failure(ErrCodeAPI, env.FailureMessage())
		res.StatusCode = env.StatusCode
		res.Reason = env.Reason
		res.Data = resp.Body
		return res
	}

	return Result{
		Success:    true,
		Message:    env.SuccessMessage(),
		StatusCode: env.StatusCode,
		Reason:     env.Reason,
		Data:       resp.Body,
	}
}

func resultFromCallError(err error) Result {
	if f, ok := err.(*callFailure); ok {
		return f.Result
	}
	return failure(ErrCodeRequest, err.Error())
}

func fmtPath(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
