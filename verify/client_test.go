package verify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/verifykit/types"
	"github.com/optimode/verifykit/verify"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *verify.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := verify.NewClient(verify.Config{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := verify.NewClient(verify.Config{})
	assert.ErrorIs(t, err, verify.ErrMissingAPIKey)
}

func TestClient_Verify(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		response    map[string]any
		wantVerdict types.Verdict
		wantReason  string
	}{
		{
			name:  "deliverable",
			email: "user@example.com",
			response: map[string]any{
				"result": "deliverable", "reason": "accepted_email",
				"email": "user@example.com", "user": "user", "domain": "example.com",
				"sendex": 0.92,
			},
			wantVerdict: types.VerdictDeliverable,
			wantReason:  "accepted_email",
		},
		{
			name:  "undeliverable",
			email: "nobody@example.com",
			response: map[string]any{
				"result": "undeliverable", "reason": "rejected_email",
			},
			wantVerdict: types.VerdictUndeliverable,
			wantReason:  "rejected_email",
		},
		{
			name:  "risky accept-all domain",
			email: "user@catchall.example",
			response: map[string]any{
				"result": "risky", "reason": "low_deliverability", "accept_all": true,
			},
			wantVerdict: types.VerdictRisky,
			wantReason:  "low_deliverability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/verify", r.URL.Path)
				assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

				var req struct {
					Email string `json:"email"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, tt.email, req.Email)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(tt.response)
			})

			res, err := client.Verify(context.Background(), tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVerdict, res.Verdict)
			assert.Equal(t, tt.wantReason, res.Reason)
		})
	}
}

func TestClient_Verify_SuggestionPassthrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "undeliverable", "reason": "rejected_email",
			"did_you_mean": "user@icloud.com",
		})
	})

	res, err := client.Verify(context.Background(), "user@icloud.comm")
	require.NoError(t, err)
	assert.Equal(t, "user@icloud.com", res.Suggestion)
}

func TestClient_Verify_LocalSuggestionFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "undeliverable", "reason": "rejected_email",
		})
	})

	res, err := client.Verify(context.Background(), "user@gmial.com")
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", res.Suggestion)
}

func TestClient_Verify_NoSuggestionForExactProvider(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "deliverable"})
	})

	res, err := client.Verify(context.Background(), "user@gmail.com")
	require.NoError(t, err)
	assert.Empty(t, res.Suggestion)
}

func TestClient_Verify_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantAuth      bool
		wantRateLimit bool
	}{
		{"unauthorized", http.StatusUnauthorized, true, false},
		{"forbidden", http.StatusForbidden, true, false},
		{"rate limited", http.StatusTooManyRequests, false, true},
		{"server error", http.StatusInternalServerError, false, false},
		{"bad gateway", http.StatusBadGateway, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{"message": "nope"})
			})

			_, err := client.Verify(context.Background(), "user@example.com")
			require.Error(t, err)

			var apiErr *verify.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantAuth, verify.IsAuthFailure(err))
			assert.Equal(t, tt.wantRateLimit, verify.IsRateLimited(err))
		})
	}
}

func TestClient_Verify_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Verify(context.Background(), "user@example.com")
	var apiErr *verify.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "malformed")
}

func TestClient_Verify_EmptyRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := client.Verify(context.Background(), "user@example.com")
	var apiErr *verify.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, verify.IsAuthFailure(err))
	assert.False(t, verify.IsRateLimited(err))
}

func TestClient_Verify_Cancellation(t *testing.T) {
	started := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read; otherwise
		// it never notices the client disconnect and the context never fires.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Verify(ctx, "user@example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, verify.IsAuthFailure(err))
	assert.False(t, verify.IsRateLimited(err))
}

func TestClient_Verify_NormalizesIDNDomain(t *testing.T) {
	var sent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		sent = req.Email
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "deliverable"})
	})

	_, err := client.Verify(context.Background(), "user@münchen.de")
	require.NoError(t, err)
	assert.Equal(t, "user@xn--mnchen-3ya.de", sent)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VERIFYKIT_API_KEY", "env-key")
	t.Setenv("VERIFYKIT_BASE_URL", "https://eu.api.verifykit.dev")
	t.Setenv("VERIFYKIT_TIMEOUT", "3s")

	cfg, err := verify.ConfigFromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://eu.api.verifykit.dev", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}
