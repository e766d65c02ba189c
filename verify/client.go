package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/optimode/verifykit/internal/addr"
	"github.com/optimode/verifykit/types"
)

// Verifier is the remote verification contract consumed by the controller
// and the gate package. Implementations must honor context cancellation:
// a cancelled call returns ctx.Err() and must not be classified as an
// API failure.
type Verifier interface {
	Verify(ctx context.Context, email string) (types.Result, error)
}

const verifyPath = "/v1/verify"

// maxErrorBody caps how much of a failure response body is read for its
// error message.
const maxErrorBody = 4 << 10

// Client calls the remote verification API over HTTPS.
// All requests share the credentials given at construction.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

var _ Verifier = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
// The client's own Timeout is left untouched.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Client for the given credentials.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// wireRequest is the request payload of the verification endpoint.
type wireRequest struct {
	Email string `json:"email"`
}

// wireResponse is the response shape of the verification endpoint.
type wireResponse struct {
	Result     string  `json:"result"`
	Reason     string  `json:"reason"`
	DidYouMean string  `json:"did_you_mean"`
	Sendex     float64 `json:"sendex"`
	Email      string  `json:"email"`
	User       string  `json:"user"`
	Domain     string  `json:"domain"`
	Free       bool    `json:"free"`
	Disposable bool    `json:"disposable"`
	Role       bool    `json:"role"`
	AcceptAll  bool    `json:"accept_all"`
}

// Verify performs one verification round-trip for the given address.
// The address is normalized (trimmed, domain converted to Punycode) before
// it goes on the wire. Failures are classified: authentication and
// rate-limit responses unwrap to the package sentinels, everything else
// is a generic *APIError. Cancellation surfaces as ctx.Err().
func (c *Client) Verify(ctx context.Context, email string) (types.Result, error) {
	a := addr.Parse(email)

	body, err := json.Marshal(wireRequest{Email: a.Normalized()})
	if err != nil {
		return types.Result{}, fmt.Errorf("verify: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+verifyPath, bytes.NewReader(body))
	if err != nil {
		return types.Result{}, fmt.Errorf("verify: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Cancellation must surface as the bare context error so callers
		// can distinguish a superseded request from an API failure.
		if ctx.Err() != nil {
			return types.Result{}, ctx.Err()
		}
		return types.Result{}, fmt.Errorf("verify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readAPIMessage(resp.Body)}
		c.log.Debug().Int("status", resp.StatusCode).Msg("verification request rejected")
		return types.Result{}, apiErr
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return types.Result{}, &APIError{StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	if wire.Result == "" {
		// The API answered but returned no verification record.
		return types.Result{}, &APIError{StatusCode: resp.StatusCode, Message: "no verification record in response"}
	}

	res := toResult(wire, a)
	c.log.Debug().Str("verdict", res.Verdict).Str("domain", res.Domain).Msg("verification resolved")
	return res, nil
}

// toResult maps the wire shape to the shared Result type. When the API
// offers no spelling suggestion, a local known-provider match fills in.
func toResult(wire wireResponse, a addr.Addr) types.Result {
	res := types.Result{
		Email:      wire.Email,
		Verdict:    wire.Result,
		Reason:     wire.Reason,
		Suggestion: wire.DidYouMean,
		User:       wire.User,
		Domain:     wire.Domain,
		Score:      wire.Sendex,
		Free:       wire.Free,
		Disposable: wire.Disposable,
		Role:       wire.Role,
		AcceptAll:  wire.AcceptAll,
	}
	if res.Email == "" {
		res.Email = a.Normalized()
	}
	if res.Suggestion == "" {
		if provider := suggestProvider(a.Domain); provider != "" {
			res.Suggestion = a.Local + "@" + provider
		}
	}
	return res
}

// readAPIMessage extracts the "message" field from a failure response body,
// best-effort.
func readAPIMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
