// Package gate exposes remote email verification as a boolean accept/reject
// predicate for form and schema validation layers.
//
// The gate fails open: when the verification API is unreachable, rate
// limited or otherwise failing, it allows the address rather than blocking
// the user. Authentication failures are the exception and always propagate,
// since silently treating bad credentials as "valid email" is unsafe.
package gate

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/optimode/verifykit/types"
	"github.com/optimode/verifykit/verify"
)

// DefaultRejectVerdicts is the reject set used when none is configured.
var DefaultRejectVerdicts = []types.Verdict{types.VerdictUndeliverable}

// Gate decides whether an address should be accepted based on its
// verification verdict.
type Gate struct {
	verifier verify.Verifier
	rejects  map[types.Verdict]struct{}
	log      zerolog.Logger
}

// Option customizes a Gate.
type Option func(*Gate)

// WithRejectVerdicts replaces the default reject set.
func WithRejectVerdicts(verdicts ...types.Verdict) Option {
	return func(g *Gate) {
		g.rejects = make(map[types.Verdict]struct{}, len(verdicts))
		for _, v := range verdicts {
			g.rejects[v] = struct{}{}
		}
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gate) {
		g.log = l
	}
}

// New creates a Gate around the given verifier.
func New(v verify.Verifier, opts ...Option) *Gate {
	g := &Gate{
		verifier: v,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rejects == nil {
		WithRejectVerdicts(DefaultRejectVerdicts...)(g)
	}
	return g
}

// IsRejected reports whether the result's verdict is in the reject set.
func (g *Gate) IsRejected(res types.Result) bool {
	_, ok := g.rejects[res.Verdict]
	return ok
}

// Allow verifies the address and reports whether it should be accepted.
//
// Transport, rate-limit and generic API failures are swallowed and the
// address is allowed. Authentication failures and the caller's own context
// cancellation propagate as errors.
func (g *Gate) Allow(ctx context.Context, email string) (bool, error) {
	res, err := g.verifier.Verify(ctx, email)
	if err != nil {
		if verify.IsAuthFailure(err) {
			return false, err
		}
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		g.log.Warn().Err(err).Msg("verification unavailable, allowing address")
		return true, nil
	}
	return !g.IsRejected(res), nil
}
