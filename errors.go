package verifykit

import "github.com/optimode/verifykit/verify"

// Messages surfaced in State.ErrorMessage, fit for direct display next to
// an input field. Each failure class maps to a distinct message.
const (
	MsgRateLimited  = "Verification rate limit reached. Please try again shortly."
	MsgUnauthorized = "Email verification is unavailable: invalid API credentials."
	MsgGeneric      = "We could not verify this email address right now."
)

// errorMessage maps a classified verification failure to its display
// message, falling back to the generic one.
func errorMessage(err error) string {
	switch {
	case verify.IsRateLimited(err):
		return MsgRateLimited
	case verify.IsAuthFailure(err):
		return MsgUnauthorized
	default:
		return MsgGeneric
	}
}
